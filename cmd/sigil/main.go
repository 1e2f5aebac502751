package main

import "github.com/sigil-auth/sigil/cmd/sigil/cmd"

func main() {
	cmd.Execute()
}

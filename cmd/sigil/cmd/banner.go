package cmd

import (
	"fmt"
)

const banner = `
     _       _ _
 ___(_) __ _(_) |
/ __| |/ _` + "`" + ` | | |
\__ \ | (_| | | |
|___/_|\__, |_|_|
       |___/
`

func printBanner() {
	fmt.Printf("\x1b[34m%s\x1b[0m", banner)
	fmt.Printf("\x1b[32m  Recovery-code authentication - Version %s\x1b[0m\n\n", Version)
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "sigil",
	Short: "Sigil is a recovery-code authentication service",
	Long: `A passwordless authentication service built on single-issuance
recovery codes: a high-entropy, human-transcribable secret that stands in
for a username/password pair.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sigil-auth/sigil/code"
)

var codeCount int

var codeCmd = &cobra.Command{
	Use:   "code",
	Short: "Recovery code utilities",
}

var codeNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate recovery codes",
	Long: `Generate one or more recovery codes and print them to stdout.

Codes printed here are not bound to any account; this command exists for
inspecting the format and for seeding test fixtures.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for i := 0; i < codeCount; i++ {
			c, err := code.Generate()
			if err != nil {
				return fmt.Errorf("failed to generate code: %w", err)
			}
			fmt.Println(c)
		}
		return nil
	},
}

var codeCheckCmd = &cobra.Command{
	Use:   "check <code>",
	Short: "Normalize and validate a recovery code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		canonical, ok := code.Normalize(args[0])
		if !ok {
			return fmt.Errorf("not a valid recovery code")
		}
		fmt.Println(canonical)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(codeCmd)
	codeCmd.AddCommand(codeNewCmd)
	codeCmd.AddCommand(codeCheckCmd)
	codeNewCmd.Flags().IntVarP(&codeCount, "count", "n", 1, "Number of codes to generate")
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saloxy/sal-server/pkg/statefile"
)

// stateKeyCmd represents the state-key command
var stateKeyCmd = &cobra.Command{
	Use:   "state-key",
	Short: "Manage state file encryption keys",
	Long:  `Manage the matrix keys that encrypt the state file.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'state-key' requires a subcommand (generate)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// stateKeyGenerateCmd represents the state-key > generate command
var stateKeyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a state file encryption key",
	Long: `
Generate a state file encryption key

Use this command to produce a random valid matrix key, printed as four
decimal bytes. State file commands generate keys on their own; this is
for inspecting or pre-seeding key material.

Example:

$ salctl state-key generate
`,
	Run: func(cmd *cobra.Command, args []string) {
		key, err := statefile.GenerateKey()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate key: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d %d %d %d\n", key[0], key[1], key[2], key[3])
	},
}

func init() {
	rootCmd.AddCommand(stateKeyCmd)
	stateKeyCmd.AddCommand(stateKeyGenerateCmd)
}

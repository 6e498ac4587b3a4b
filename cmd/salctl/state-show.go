package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// stateShowCmd represents the state show command
var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the contents of the state file",
	Long: `Show the drive credentials and indexed files held in the state file.
The drive token is masked.

Example:
  salctl state show
  salctl state show --file ./index.bin`,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := stateFilePath(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve state file path: %v\n", err)
			os.Exit(1)
		}

		ix, _, err := readState(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read state file: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("State file: %s\n\n", path)
		fmt.Printf("uid:   %s\n", ix.UID)
		fmt.Printf("token: %s\n", maskToken(ix.Token))
		fmt.Printf("dirid: %s\n\n", ix.DirID)

		fmt.Printf("%d indexed file(s)\n", len(ix.Files))
		for _, f := range ix.Files {
			fmt.Printf("  %s  %s\n", f.ObjectID, f.Name)
		}
	},
}

func init() {
	stateCmd.AddCommand(stateShowCmd)
}

func maskToken(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

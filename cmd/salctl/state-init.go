package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saloxy/sal-server/pkg/statefile"
)

// stateInitCmd represents the state init command
var stateInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty state file",
	Long: `Create an empty state file holding the drive credentials under a
freshly generated key.

Example:
  salctl state init --uid 1000 --token tok --dirid 42`,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := stateFilePath(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve state file path: %v\n", err)
			os.Exit(1)
		}

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			fmt.Fprintf(os.Stderr, "%s already exists, use --force to overwrite\n", path)
			os.Exit(1)
		}

		uid, _ := cmd.Flags().GetString("uid")
		token, _ := cmd.Flags().GetString("token")
		dirID, _ := cmd.Flags().GetString("dirid")

		key, err := statefile.GenerateKey()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate key: %v\n", err)
			os.Exit(1)
		}

		ix := &statefile.Index{UID: uid, Token: token, DirID: dirID}
		if err := writeState(path, ix, key); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write state file: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Created %s\n", path)
	},
}

func init() {
	stateCmd.AddCommand(stateInitCmd)
	stateInitCmd.Flags().String("uid", "", "Drive account uid")
	stateInitCmd.Flags().String("token", "", "Drive account token")
	stateInitCmd.Flags().String("dirid", "", "Drive directory id to scan")
	stateInitCmd.Flags().Bool("force", false, "Overwrite an existing state file")
}

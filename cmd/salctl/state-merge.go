package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saloxy/sal-server/pkg/statefile"
)

// stateMergeCmd represents the state merge command
var stateMergeCmd = &cobra.Command{
	Use:   "merge <other-state-file>",
	Short: "Merge another state file into this one",
	Long: `Merge the file entries of another state file into this one. Entries
whose object id is already indexed are skipped. Credentials of the
current file are kept.

Example:
  salctl state merge /backup/index.bin`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path, err := stateFilePath(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to resolve state file path: %v\n", err)
			os.Exit(1)
		}

		ix, key, err := readState(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read state file: %v\n", err)
			os.Exit(1)
		}

		other, _, err := readState(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", args[0], err)
			os.Exit(1)
		}

		added := ix.Merge(other)
		if err := writeState(path, ix, key); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write state file: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Merged %d new file(s) into %s\n", added, path)
	},
}

// stateRekeyCmd represents the state rekey command
var stateRekeyCmd = &cobra.Command{
	Use:   "rekey",
	Short: "Re-encrypt the state file under a fresh key",
	Long: `Re-encrypt the state file under a freshly generated key. The contents
are unchanged.

Example:
  salctl state rekey`,
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

		key, err := statefile.GenerateKey()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate key: %v\n", err)
			os.Exit(1)
		}

		if err := writeState(path, ix, key); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write state file: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Re-encrypted %s\n", path)
	},
}

func init() {
	stateCmd.AddCommand(stateMergeCmd)
	stateCmd.AddCommand(stateRekeyCmd)
}

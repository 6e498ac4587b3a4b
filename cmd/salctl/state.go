package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saloxy/sal-server/pkg/config"
	"github.com/saloxy/sal-server/pkg/statefile"
)

// stateCmd represents the state command
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Manage the encrypted state file",
	Long: `Manage the encrypted state file that holds the drive credentials and
the file index for deployments that run without a database.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'state' requires a subcommand (init, show, export, import, merge, rekey)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.PersistentFlags().StringP("file", "f", "", "State file location (default: config or XDG data dir)")
}

func stateFilePath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		return path, nil
	}
	return statePath(config.Get())
}

func readState(path string) (*statefile.Index, statefile.Key, error) {
	var key statefile.Key

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, key, err
	}

	ix, err := statefile.Decode(data)
	if err != nil {
		return nil, key, err
	}
	copy(key[:], data[8:12])
	return ix, key, nil
}

func writeState(path string, ix *statefile.Index, key statefile.Key) error {
	data, err := statefile.Encode(ix, key)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "salctl",
	Short: "Manage the sal file index server",
	Long: `salctl manages the sal server: a small HTTP daemon that indexes a
cloud drive directory, resolves direct download links and pushes
notifications through PushPlus.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

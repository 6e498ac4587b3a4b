package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch a trigger file and scan when it's modified",
	Long: `Watch a trigger file and run a scan when it changes.

To trigger a scan, write anything to the watched file. The scan behaves
like "salctl scan" and writes its results to the state file.

Example:
  salctl watch /run/sal/scan-trigger
  salctl watch --notify /run/sal/scan-trigger`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]
		notify, _ := cmd.Flags().GetBool("notify")

		if err := watchTrigger(cmd, filename, notify); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Bool("notify", false, "Push a summary through PushPlus after each scan")
	watchCmd.Flags().StringP("file", "f", "", "State file location (default: config or XDG data dir)")
}

func watchTrigger(cmd *cobra.Command, filename string, notify bool) error {
	// Create file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", filename, err)
	}

	fmt.Printf("Watching %s for scan triggers\n", filename)

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fmt.Printf("[%s] Trigger modified, scanning...\n", time.Now().Format(time.RFC3339))

				if err := runScan(cmd, notify); err != nil {
					fmt.Fprintf(os.Stderr, "Error scanning: %v\n", err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}

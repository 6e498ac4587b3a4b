package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/saloxy/sal-server/pkg/audit"
	"github.com/saloxy/sal-server/pkg/config"
	"github.com/saloxy/sal-server/pkg/drive"
)

// linkCmd represents the link command
var linkCmd = &cobra.Command{
	Use:   "link <object-id>",
	Short: "Resolve a direct download link",
	Long: `Resolve a direct download link for an indexed object id by scraping
its share page. Downloading the link requires a Referer header from the
share host.

Example:
  salctl link 5f2a77c1e3b0`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		objectID := args[0]

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client := drive.NewClient(drive.Credentials{
			UID:   config.Get().DriveUID,
			Token: config.Get().DriveToken,
			DirID: config.Get().DriveDirID,
		})

		link, err := client.Link(ctx, objectID)
		if err != nil {
			audit.Log(audit.LinkEvent{ObjectID: objectID, Success: false, ErrorMessage: err.Error()})
			fmt.Fprintf(os.Stderr, "Failed to resolve link: %v\n", err)
			os.Exit(1)
		}

		audit.Log(audit.LinkEvent{ObjectID: objectID, Success: true})
		fmt.Println(link)
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
}

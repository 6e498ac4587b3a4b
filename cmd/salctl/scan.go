package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/saloxy/sal-server/pkg/audit"
	"github.com/saloxy/sal-server/pkg/config"
	"github.com/saloxy/sal-server/pkg/drive"
	"github.com/saloxy/sal-server/pkg/notice"
	"github.com/saloxy/sal-server/pkg/statefile"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the drive directory into the state file",
	Long: `Scan the drive directory, draining its paged listing into the state
file index. Entries already indexed are skipped.

With --notify a summary is pushed through PushPlus when new files were
indexed (requires SAL_PUSHPLUS_TOKEN).

Example:
  salctl scan
  salctl scan --notify`,
	Run: func(cmd *cobra.Command, args []string) {
		notify, _ := cmd.Flags().GetBool("notify")

		if err := runScan(cmd, notify); err != nil {
			fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().Bool("notify", false, "Push a summary through PushPlus")
	scanCmd.Flags().StringP("file", "f", "", "State file location (default: config or XDG data dir)")
}

func runScan(cmd *cobra.Command, notify bool) error {
	cfg := config.Get()

	path, err := stateFilePath(cmd)
	if err != nil {
		return err
	}

	ix, key, err := readState(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("state file %s not found, run 'salctl state init' first", path)
		}
		return err
	}

	creds := drive.Credentials{UID: ix.UID, Token: ix.Token, DirID: ix.DirID}
	if creds.UID == "" {
		creds = drive.Credentials{UID: cfg.DriveUID, Token: cfg.DriveToken, DirID: cfg.DriveDirID}
	}
	if creds.UID == "" {
		return fmt.Errorf("no drive credentials in the state file or configuration")
	}

	client := drive.NewClient(creds)
	client.PageSize = cfg.ScanPageSize

	sessionID := uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	added, scanErr := client.ScanAll(ctx, ix)

	// Write back even on a partial scan; indexed pages are already
	// deleted from the drive listing.
	if err := writeState(path, ix, key); err != nil {
		return err
	}

	if scanErr != nil {
		audit.Log(audit.ScanEvent{
			SessionID:    sessionID,
			Added:        added,
			Success:      false,
			ErrorMessage: scanErr.Error(),
		})
		return scanErr
	}

	audit.Log(audit.ScanEvent{SessionID: sessionID, Added: added, Success: true})
	fmt.Printf("Indexed %d new file(s), %d total\n", added, len(ix.Files))

	if notify && added > 0 {
		if err := pushScanSummary(ctx, cfg, ix, added); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to push summary: %v\n", err)
		}
	}

	return nil
}

func pushScanSummary(ctx context.Context, cfg *config.Config, ix *statefile.Index, added int) error {
	if cfg.PushPlusToken == "" {
		return fmt.Errorf("SAL_PUSHPLUS_TOKEN is not set")
	}

	content := fmt.Sprintf("indexed **%d** new file(s), **%d** total\n\n", added, len(ix.Files))
	start := len(ix.Files) - added
	for _, f := range ix.Files[start:] {
		content += fmt.Sprintf("- %s\n", f.Name)
	}

	sender := notice.New(cfg.PushPlusToken, notice.TemplateMarkdown, notice.ChannelWechat)
	reply, err := sender.Send(ctx, "scan finished", content)
	if err != nil {
		return err
	}
	if !reply.OK() {
		return fmt.Errorf("push service replied %d: %s", reply.Code, reply.Msg)
	}
	return nil
}

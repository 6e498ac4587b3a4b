package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saloxy/sal-server/pkg/config"
	"github.com/saloxy/sal-server/pkg/db"
	"github.com/saloxy/sal-server/pkg/drive"
	"github.com/saloxy/sal-server/pkg/notice"
	"github.com/saloxy/sal-server/pkg/server"
	"github.com/saloxy/sal-server/pkg/server/endpoints"
	"github.com/saloxy/sal-server/pkg/server/store"
	gormstore "github.com/saloxy/sal-server/pkg/server/store/gorm"
	"github.com/saloxy/sal-server/pkg/server/store/memory"
	"github.com/saloxy/sal-server/pkg/statefile"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the sal application server",
	Long: `Run the sal application server

The server requires the SAL_API_KEY environment variable. When
DATABASE_URL is set the index lives in PostgreSQL and migrations run on
startup (use --no-migrate to skip). Otherwise the index is loaded from
the encrypted state file and written back on shutdown.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind-address") {
			cfg.BindAddress, _ = cmd.Flags().GetString("bind-address")
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}

		// Validate required environment variables first (fail fast)
		if cfg.APIKey == "" {
			fmt.Fprintln(os.Stderr, "SAL_API_KEY environment variable is required")
			os.Exit(1)
		}

		var (
			filesStore  store.FilesStore
			healthStore store.HealthStore
			persist     func() error
		)

		creds := drive.Credentials{
			UID:   cfg.DriveUID,
			Token: cfg.DriveToken,
			DirID: cfg.DriveDirID,
		}

		if db.URL() != "" {
			// Run migrations unless --no-migrate is set
			noMigrate, _ := cmd.Flags().GetBool("no-migrate")
			if !noMigrate {
				log.Println("Running database migrations...")
				if err := runMigrations(); err != nil {
					fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
					os.Exit(1)
				}
			}

			database, err := db.Connect(db.Config{})
			if err != nil {
				fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
				os.Exit(1)
			}
			filesStore = gormstore.NewFilesStore(database)
			healthStore = gormstore.NewHealthStore(database)
		} else {
			memStore, stateCreds, persistFn, err := openStateStore(cfg)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Unable to open state file:", err)
				os.Exit(1)
			}
			filesStore = memStore
			healthStore = memory.NewHealthStore()
			persist = persistFn
			if stateCreds.UID != "" {
				// Credentials stored in the file win over config.
				creds = stateCreds
			}
		}

		driveClient := drive.NewClient(creds)
		driveClient.PageSize = cfg.ScanPageSize

		var sender *notice.Notice
		if cfg.PushPlusToken != "" {
			sender = notice.New(cfg.PushPlusToken, notice.TemplateMarkdown, notice.ChannelWechat)
		}

		s := server.NewServer(filesStore, healthStore, driveClient, sender, cfg)
		endpoints.RegisterAll(s)

		errChan := make(chan error, 1)
		go func() {
			log.Printf("Running server at http://%s...\n", cfg.Addr())
			errChan <- s.Start()
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errChan:
			log.Fatal(err)
		case sig := <-sigChan:
			log.Printf("Received %s, shutting down...\n", sig)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v\n", err)
		}

		if persist != nil {
			if err := persist(); err != nil {
				log.Printf("Failed to write state file: %v\n", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().IntP("port", "p", 0, "server listen port (overrides config)")
	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address (overrides config)")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}

// statePath resolves the state file location from config, falling back
// to the XDG data directory.
func statePath(cfg *config.Config) (string, error) {
	if cfg.StateFile != "" {
		return cfg.StateFile, nil
	}
	return statefile.DefaultPath()
}

// openStateStore loads the encrypted state file into an in-memory store
// and returns the stored credentials plus a function that writes the
// store back to disk. A missing file starts an empty index under a
// fresh key.
func openStateStore(cfg *config.Config) (*memory.FilesStore, drive.Credentials, func() error, error) {
	var creds drive.Credentials

	path, err := statePath(cfg)
	if err != nil {
		return nil, creds, nil, err
	}

	var (
		ix  *statefile.Index
		key statefile.Key
	)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		ix, err = statefile.Decode(data)
		if err != nil {
			return nil, creds, nil, err
		}
		copy(key[:], data[8:12])
		creds = drive.Credentials{UID: ix.UID, Token: ix.Token, DirID: ix.DirID}
		log.Printf("Loaded %d indexed files from %s\n", len(ix.Files), path)
	case os.IsNotExist(err):
		key, err = statefile.GenerateKey()
		if err != nil {
			return nil, creds, nil, err
		}
		log.Printf("State file %s not found, starting with an empty index\n", path)
	default:
		return nil, creds, nil, err
	}

	memStore := memory.NewFilesStore(ix)

	persist := func() error {
		uid, token, dirID := creds.UID, creds.Token, creds.DirID
		if uid == "" {
			uid, token, dirID = cfg.DriveUID, cfg.DriveToken, cfg.DriveDirID
		}
		out, err := statefile.Encode(memStore.Snapshot(uid, token, dirID), key)
		if err != nil {
			return err
		}
		return os.WriteFile(path, out, 0600)
	}

	return memStore, creds, persist, nil
}

package main

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"

	"github.com/pinboxsync/pinbox-to-markdown/internal/config"
	"github.com/pinboxsync/pinbox-to-markdown/internal/notes"
	"github.com/pinboxsync/pinbox-to-markdown/internal/pinbox"
	syncer "github.com/pinboxsync/pinbox-to-markdown/internal/sync"
	"github.com/pinboxsync/pinbox-to-markdown/internal/vault"
	"github.com/pinboxsync/pinbox-to-markdown/internal/web"
)

func newSyncCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync pass, or keep syncing with --watch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			s, err := buildSyncer(cfg)
			if err != nil {
				return err
			}

			if watch || cfg.AutoSync.Enabled {
				interval := cfg.AutoSync.Interval
				if interval <= 0 {
					interval = 30 * time.Minute
				}
				return s.Watch(cmd.Context(), interval)
			}

			_, err = s.Run(cmd.Context())
			return err
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep running, syncing on the configured interval")
	return cmd
}

func buildSyncer(cfg *config.Config) (*syncer.Syncer, error) {
	client, err := pinbox.NewClient(cfg.APIBaseURL, cfg.AccessToken)
	if err != nil {
		return nil, err
	}

	v := vault.New(cfg.VaultDir)

	fetcher := web.NewFetcher(&http.Client{Timeout: 60 * time.Second})

	var images *notes.ImageLocalizer
	if cfg.Images.Download {
		retryClient := retryablehttp.NewClient()
		retryClient.RetryMax = 3
		retryClient.Logger = nil // disable retryable client logging
		images = notes.NewImageLocalizer(v, retryClient.StandardClient(), cfg.Images.Folder)
	}

	mat := notes.NewMaterializer(v, fetcher, images, notes.Options{
		SyncFolder:  cfg.SyncFolder,
		ImageFolder: cfg.Images.Folder,
	})

	s := syncer.New(client, mat, v, cfg.SyncFolder)
	if cfg.Index.Enabled {
		s.IndexPath = cfg.Index.Path
	}
	s.StatePath = cfg.StateFile
	return s, nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/pinboxsync/pinbox-to-markdown/internal/notes"
	"github.com/pinboxsync/pinbox-to-markdown/internal/pinbox"
	"github.com/pinboxsync/pinbox-to-markdown/internal/vault"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <note path>",
		Short: "Delete a synced bookmark remotely and remove its local note",
		Long: `Delete reads the bookmark id from the note's frontmatter, deletes the
bookmark on Pinbox first, and only then removes the local note and its
image folder. If the remote delete fails nothing is removed locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client, err := pinbox.NewClient(cfg.APIBaseURL, cfg.AccessToken)
			if err != nil {
				return err
			}

			v := vault.New(cfg.VaultDir)

			mat := notes.NewMaterializer(v, nil, nil, notes.Options{
				SyncFolder:  cfg.SyncFolder,
				ImageFolder: cfg.Images.Folder,
			})

			return mat.Delete(cmd.Context(), client, args[0])
		},
	}
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pinboxsync/pinbox-to-markdown/internal/pinbox"
)

func newListCmd() *cobra.Command {
	var showBookmarks bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List collections, or every bookmark with --bookmarks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client, err := pinbox.NewClient(cfg.APIBaseURL, cfg.AccessToken)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			if showBookmarks {
				bookmarks, err := client.AllBookmarks(ctx)
				if err != nil {
					return err
				}
				for _, bm := range bookmarks {
					title := bm.Title
					if title == "" {
						title = strconv.FormatInt(bm.ID, 10)
					}
					fmt.Printf("%d\t%s\t%s\n", bm.ID, title, bm.URL)
				}
				return nil
			}

			collections, err := client.Collections(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%d\tDefault\n", pinbox.DefaultCollectionID)
			for _, col := range collections {
				fmt.Printf("%d\t%s\t(%d items)\n", col.ID, col.Name, col.ItemsCount)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showBookmarks, "bookmarks", false, "list individual bookmarks instead of collections")
	return cmd
}

// Package sync drives end-to-end passes over the remote bookmark
// collections.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pinboxsync/pinbox-to-markdown/internal/config"
	"github.com/pinboxsync/pinbox-to-markdown/internal/notes"
	"github.com/pinboxsync/pinbox-to-markdown/internal/pinbox"
	"github.com/pinboxsync/pinbox-to-markdown/internal/vault"
)

// BookmarkSource lists every bookmark to synchronize.
type BookmarkSource interface {
	AllBookmarks(ctx context.Context) ([]pinbox.Bookmark, error)
}

// Materializer turns one bookmark into a local note.
type Materializer interface {
	Materialize(ctx context.Context, bm pinbox.Bookmark) (notes.Result, error)
}

// Stats summarizes one sync pass.
type Stats struct {
	Total   int
	Created int
	Skipped int
}

// Syncer drives a full pass over all collections. Optional bookkeeping
// (index file, state file) runs after a successful pass when the paths
// are set.
type Syncer struct {
	source     BookmarkSource
	mat        Materializer
	vault      *vault.Vault
	syncFolder string

	IndexPath string
	StatePath string

	now func() time.Time
}

func New(source BookmarkSource, mat Materializer, v *vault.Vault, syncFolder string) *Syncer {
	return &Syncer{
		source:     source,
		mat:        mat,
		vault:      v,
		syncFolder: syncFolder,
		now:        time.Now,
	}
}

// Run synchronizes every remote bookmark into the vault. Bookmarks are
// processed strictly in the order the API returned them, one at a time,
// to bound load on the remote API and on the fetched sites. Reruns are
// idempotent: already materialized bookmarks are skipped.
func (s *Syncer) Run(ctx context.Context) (Stats, error) {
	if err := s.vault.CreateFolder(s.syncFolder); err != nil {
		return Stats{}, err
	}

	bookmarks, err := s.source.AllBookmarks(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("listing bookmarks: %w", err)
	}

	stats := Stats{Total: len(bookmarks)}
	if len(bookmarks) == 0 {
		slog.Info("no bookmarks to sync")
	}

	// An empty remote still falls through to the bookkeeping below: the
	// pass succeeded, so the index and state reflect it.
	for _, bm := range bookmarks {
		result, err := s.mat.Materialize(ctx, bm)
		if err != nil {
			return stats, fmt.Errorf("materializing bookmark %d: %w", bm.ID, err)
		}
		if result == notes.Created {
			stats.Created++
		} else {
			stats.Skipped++
		}
	}

	slog.Info("sync pass complete",
		"total", stats.Total,
		"created", stats.Created,
		"skipped", stats.Skipped)

	if s.IndexPath != "" {
		if err := s.WriteIndex(s.IndexPath); err != nil {
			return stats, err
		}
	}
	if s.StatePath != "" {
		if err := s.saveState(); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

func (s *Syncer) saveState() error {
	state, err := config.LoadState(s.StatePath)
	if err != nil {
		return err
	}
	state.LastSyncedAt = s.now()
	state.FirstRun = false
	return state.Save(s.StatePath)
}

// Watch runs a pass immediately and then one per tick until ctx ends.
// Passes run back-to-back on the ticker; a failed pass is logged and the
// next tick tries again.
func (s *Syncer) Watch(ctx context.Context, interval time.Duration) error {
	if _, err := s.Run(ctx); err != nil {
		slog.Error("sync pass failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Run(ctx); err != nil {
				slog.Error("sync pass failed", "error", err)
			}
		}
	}
}

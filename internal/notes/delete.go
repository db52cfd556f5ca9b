package notes

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
)

// RemoteDeleter removes a bookmark from the remote service.
type RemoteDeleter interface {
	DeleteItem(ctx context.Context, id int64) error
}

// noteMatter is the slice of frontmatter the delete operation reads.
type noteMatter struct {
	ID int64 `yaml:"id"`
}

// Delete removes the bookmark behind notePath remotely and then locally.
// Remote deletion goes first: if it fails, the local note and its image
// folder stay untouched. A local failure after remote success is
// reported but leaves the note orphaned; the next sync will not
// re-create it since the remote item is gone.
func (m *Materializer) Delete(ctx context.Context, remote RemoteDeleter, notePath string) error {
	content, err := m.vault.ReadNote(notePath)
	if err != nil {
		return err
	}

	var matter noteMatter
	if _, err := frontmatter.Parse(strings.NewReader(content), &matter); err != nil {
		return fmt.Errorf("parsing frontmatter of %s: %w", notePath, err)
	}
	if matter.ID == 0 {
		return fmt.Errorf("note %s has no bookmark id in its frontmatter", notePath)
	}

	if err := remote.DeleteItem(ctx, matter.ID); err != nil {
		return fmt.Errorf("remote delete of bookmark %d: %w", matter.ID, err)
	}

	if err := m.vault.TrashNote(notePath); err != nil {
		return fmt.Errorf("bookmark %d deleted remotely but local note remains: %w", matter.ID, err)
	}

	if m.opts.ImageFolder != "" {
		folder := path.Join(m.opts.ImageFolder, strconv.FormatInt(matter.ID, 10))
		if err := m.vault.TrashFolder(folder); err != nil {
			slog.Warn("failed to remove image folder", "folder", folder, "error", err)
		}
	}

	slog.Info("deleted bookmark", "id", matter.ID, "note", notePath)
	return nil
}

package sync

import (
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
)

// indexMatter is the slice of note frontmatter the index cares about.
type indexMatter struct {
	ID        int64  `yaml:"id"`
	CreatedAt string `yaml:"created_at"`
}

// WriteIndex scans the sync folder and writes a Markdown list of every
// synced note, newest first, to indexPath. Notes without a bookmark id
// in their frontmatter are the user's own and are left out.
func (s *Syncer) WriteIndex(indexPath string) error {
	type entry struct {
		matter indexMatter
		note   string
	}
	var entries []entry

	err := s.vault.Walk(s.syncFolder, func(rel string, isDir bool) error {
		if isDir || !strings.HasSuffix(rel, ".md") || rel == indexPath {
			return nil
		}

		content, err := s.vault.ReadNote(rel)
		if err != nil {
			slog.Warn("skipping unreadable note", "note", rel, "error", err)
			return nil
		}

		var matter indexMatter
		if _, err := frontmatter.Parse(strings.NewReader(content), &matter); err != nil {
			slog.Warn("skipping note with unreadable frontmatter", "note", rel, "error", err)
			return nil
		}
		if matter.ID == 0 {
			return nil
		}

		entries = append(entries, entry{matter: matter, note: rel})
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning sync folder: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].matter.CreatedAt != entries[j].matter.CreatedAt {
			return entries[i].matter.CreatedAt > entries[j].matter.CreatedAt
		}
		return entries[i].matter.ID > entries[j].matter.ID
	})

	var sb strings.Builder
	sb.WriteString("# Pinbox bookmarks\n\n")
	for _, e := range entries {
		name := strings.TrimSuffix(path.Base(e.note), ".md")
		sb.WriteString("- [[" + name + "]]")
		if e.matter.CreatedAt != "" {
			sb.WriteString(" (" + e.matter.CreatedAt + ")")
		}
		sb.WriteString("\n")
	}

	slog.Debug("writing index", "path", indexPath, "entries", len(entries))
	return s.vault.WriteNote(indexPath, sb.String())
}

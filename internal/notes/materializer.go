// Package notes turns remote bookmarks into local Markdown notes.
package notes

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pinboxsync/pinbox-to-markdown/internal/pinbox"
	"github.com/pinboxsync/pinbox-to-markdown/internal/vault"
)

// Result reports what Materialize did for one bookmark.
type Result int

const (
	Skipped Result = iota
	Created
)

// ContentFetcher retrieves a page as Markdown.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Options configures where notes and image assets land inside the vault.
type Options struct {
	SyncFolder  string
	ImageFolder string
}

// Materializer produces (or confirms the prior existence of) a local
// note for each bookmark.
type Materializer struct {
	vault   *vault.Vault
	fetcher ContentFetcher
	images  *ImageLocalizer // nil when image downloads are disabled
	opts    Options
	now     func() time.Time
}

func NewMaterializer(v *vault.Vault, fetcher ContentFetcher, images *ImageLocalizer, opts Options) *Materializer {
	return &Materializer{
		vault:   v,
		fetcher: fetcher,
		images:  images,
		opts:    opts,
		now:     time.Now,
	}
}

// Materialize creates a note for bm unless one already exists at the
// derived path. Existing notes are never rewritten: once a bookmark is
// on disk it belongs to the user, edits included, so sync stays
// additive-only.
func (m *Materializer) Materialize(ctx context.Context, bm pinbox.Bookmark) (Result, error) {
	notePath := path.Join(m.opts.SyncFolder, NoteFilename(bm)+".md")

	exists, err := m.vault.Exists(notePath)
	if err != nil {
		return Skipped, err
	}
	if exists {
		slog.Debug("note already materialized", "path", notePath, "id", bm.ID)
		return Skipped, nil
	}

	var content string
	if bm.URL != "" {
		content, err = m.fetcher.Fetch(ctx, bm.URL)
		if err != nil {
			slog.Warn("content unavailable", "url", bm.URL, "error", err)
			content = ""
		}
	}

	body := m.buildNote(bm, content)

	if m.images != nil {
		body, err = m.images.Localize(ctx, bm.ID, body)
		if err != nil {
			return Skipped, err
		}
	}

	if err := m.vault.WriteNote(notePath, body); err != nil {
		return Skipped, err
	}

	slog.Info("created note", "path", notePath, "id", bm.ID)
	return Created, nil
}

// buildNote assembles the note body: frontmatter, then the user's note,
// the cover image, and finally the fetched content or an unavailability
// notice.
func (m *Materializer) buildNote(bm pinbox.Bookmark, content string) string {
	var sb strings.Builder
	sb.WriteString(renderFrontmatter(bm, m.now()))

	if note := strings.TrimSpace(bm.Note); note != "" {
		sb.WriteString("\n## Note\n\n" + note + "\n")
	}
	if bm.Image != "" {
		sb.WriteString("\n![cover](" + bm.Image + ")\n")
	}

	sb.WriteString("\n")
	if content != "" {
		sb.WriteString(content + "\n")
	} else {
		sb.WriteString(unavailableNotice(bm))
	}

	return sb.String()
}

func unavailableNotice(bm pinbox.Bookmark) string {
	var sb strings.Builder
	sb.WriteString("> [!warning] Content unavailable\n")
	sb.WriteString("> The page content could not be fetched.\n")
	if bm.URL != "" {
		sb.WriteString(fmt.Sprintf("> Original link: %s\n", bm.URL))
	}
	return sb.String()
}

var invalidFilenameChars = strings.NewReplacer(
	`\`, "-", "/", "-", ":", "-", "*", "-", "?", "-",
	`"`, "-", "<", "-", ">", "-", "|", "-",
)

const maxFilenameRunes = 200

// NoteFilename derives a filesystem-safe note name from the bookmark's
// title, falling back to the id when no title was saved. The name is
// fixed at creation time: later remote title changes do not move notes.
func NoteFilename(bm pinbox.Bookmark) string {
	title := invalidFilenameChars.Replace(bm.Title)
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return strconv.FormatInt(bm.ID, 10)
	}
	if utf8.RuneCountInString(title) > maxFilenameRunes {
		title = strings.TrimSpace(string([]rune(title)[:maxFilenameRunes]))
	}
	return title
}

package notes

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pinboxsync/pinbox-to-markdown/internal/pinbox"
)

// renderFrontmatter renders the YAML metadata block. Key order is fixed
// so generated notes diff cleanly and downstream tooling can rely on it.
func renderFrontmatter(bm pinbox.Bookmark, syncedAt time.Time) string {
	var sb strings.Builder

	writeKV := func(key, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("%s: %s\n", key, value))
		}
	}

	sb.WriteString("---\n")
	writeKV("id", strconv.FormatInt(bm.ID, 10))
	writeKV("title", quoteYAML(bm.Title))
	writeKV("url", bm.URL)
	writeKV("item_type", bm.ItemType)
	writeKV("created_at", bm.CreatedAt)
	if len(bm.Tags) > 0 {
		sb.WriteString("tags:\n")
		for _, tag := range bm.Tags {
			sb.WriteString("  - " + tag + "\n")
		}
	}
	writeKV("collection_id", strconv.FormatInt(bm.CollectionID, 10))
	if bm.View > 0 {
		writeKV("view", strconv.FormatInt(bm.View, 10))
	}
	writeKV("brief", quoteYAML(bm.Brief))
	writeKV("description", quoteYAML(bm.Description))
	writeKV("image", bm.Image)
	writeKV("synced_at", syncedAt.Format(time.RFC3339))
	sb.WriteString("---\n")

	return sb.String()
}

// quoteYAML renders s as a single-line YAML scalar, preferring single
// quotes and switching to double quotes when the text itself contains
// one.
func quoteYAML(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	if strings.Contains(s, "'") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return "'" + s + "'"
}

package pinbox

import (
	"encoding/json"
	"fmt"
)

// Bookmark is a single saved link as returned by the Pinbox API. The id
// is the only stable identity: titles may be empty, missing, or collide.
type Bookmark struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	Description  string  `json:"description"`
	Brief        string  `json:"brief"`
	Note         string  `json:"note"`
	Tags         TagList `json:"tags"`
	CreatedAt    string  `json:"created_at"`
	ItemType     string  `json:"item_type"`
	Image        string  `json:"image"`
	CollectionID int64   `json:"collection_id"`
	View         int64   `json:"view"`
}

// Collection groups bookmarks. ID 0 is the implicit default collection:
// never returned by the listing endpoint, but it always holds the
// uncategorized items.
type Collection struct {
	ID         int64  `json:"id"`
	ParentID   *int64 `json:"parent_id"`
	Name       string `json:"name"`
	ItemsCount int    `json:"items_count"`
}

// TagList normalizes the API's mixed tag shapes, either bare strings or
// {"name": ...} records, into plain strings at the ingestion boundary.
// The rest of the system only ever sees uniform tag strings.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("tags: %w", err)
	}

	tags := make(TagList, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			tags = append(tags, s)
			continue
		}

		var record struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(r, &record); err != nil {
			return fmt.Errorf("tags: unsupported tag shape %s: %w", r, err)
		}
		tags = append(tags, record.Name)
	}

	*t = tags
	return nil
}

// itemsPage is one page of a collection's items.
type itemsPage struct {
	Items      []Bookmark `json:"items"`
	ItemsCount int        `json:"items_count"`
}

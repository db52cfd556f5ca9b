package pinbox

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkTagNormalization(t *testing.T) {
	t.Run("bare string tags", func(t *testing.T) {
		var bm Bookmark
		err := json.Unmarshal([]byte(`{"id": 1, "tags": ["news", "tech"]}`), &bm)
		require.NoError(t, err)
		assert.Equal(t, TagList{"news", "tech"}, bm.Tags)
	})

	t.Run("record tags", func(t *testing.T) {
		var bm Bookmark
		err := json.Unmarshal([]byte(`{"id": 1, "tags": [{"name": "news", "color": "red"}]}`), &bm)
		require.NoError(t, err)
		assert.Equal(t, TagList{"news"}, bm.Tags)
	})

	t.Run("mixed shapes", func(t *testing.T) {
		var bm Bookmark
		err := json.Unmarshal([]byte(`{"id": 1, "tags": ["a", {"name": "b"}]}`), &bm)
		require.NoError(t, err)
		assert.Equal(t, TagList{"a", "b"}, bm.Tags)
	})

	t.Run("unsupported shape fails", func(t *testing.T) {
		var bm Bookmark
		err := json.Unmarshal([]byte(`{"id": 1, "tags": [42]}`), &bm)
		assert.Error(t, err)
	})
}

func TestBookmarkUnmarshal(t *testing.T) {
	raw := `{
		"id": 42,
		"title": "Example Site",
		"url": "https://example.com",
		"tags": ["news"],
		"created_at": "2024-01-01",
		"item_type": "article",
		"collection_id": 5,
		"view": 7
	}`

	var bm Bookmark
	require.NoError(t, json.Unmarshal([]byte(raw), &bm))

	assert.Equal(t, int64(42), bm.ID)
	assert.Equal(t, "Example Site", bm.Title)
	assert.Equal(t, "https://example.com", bm.URL)
	assert.Equal(t, TagList{"news"}, bm.Tags)
	assert.Equal(t, int64(5), bm.CollectionID)
	assert.Equal(t, int64(7), bm.View)
}

package pinbox

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pinboxsync/pinbox-to-markdown/internal/x"
)

const (
	// DefaultBaseURL is the production Pinbox API root.
	DefaultBaseURL = "https://withpinbox.com/api"

	// DefaultCollectionID is the implicit uncategorized collection.
	DefaultCollectionID int64 = 0

	pageSize = 50

	deleteAttempts = 3
)

// Client talks to the Pinbox bookmark API on behalf of one user.
type Client struct {
	http        *resty.Client
	userID      string
	backoffUnit time.Duration
}

// NewClient builds a client from a bearer token. The user id embedded in
// the token becomes part of every endpoint path.
func NewClient(baseURL, token string) (*Client, error) {
	userID, err := UserIDFromToken(token)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)

	return &Client{
		http:        httpClient,
		userID:      userID,
		backoffUnit: time.Second,
	}, nil
}

// UserID returns the user id derived from the access token.
func (c *Client) UserID() string { return c.userID }

// Collections lists every user-created collection. The default
// collection (id 0) is not part of the listing.
func (c *Client) Collections(ctx context.Context) ([]Collection, error) {
	endpoint := fmt.Sprintf("/%s/collections", c.userID)

	var collections []Collection
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&collections).
		Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode(), Endpoint: endpoint}
	}

	return collections, nil
}

// CollectionItems fetches every bookmark in one collection, paging with
// a fixed page size until the total the server reported is reached. A
// total that changes mid-pagination is not detected; that is a known
// limitation of the endpoint contract.
func (c *Client) CollectionItems(ctx context.Context, collectionID int64) ([]Bookmark, error) {
	endpoint := fmt.Sprintf("/%s/collections/%d/items", c.userID, collectionID)

	var all []Bookmark
	offset := 0

	for {
		var page itemsPage
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"count":  strconv.Itoa(pageSize),
				"offset": strconv.Itoa(offset),
			}).
			SetResult(&page).
			Get(endpoint)
		if err != nil {
			return nil, fmt.Errorf("fetching items of collection %d: %w", collectionID, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, &APIError{StatusCode: resp.StatusCode(), Endpoint: endpoint}
		}

		all = append(all, page.Items...)

		offset += pageSize
		if offset >= page.ItemsCount {
			break
		}
	}

	return all, nil
}

// AllBookmarks aggregates the default collection and every listed
// collection. One collection's failure is logged and skipped so a single
// bad collection cannot sink the whole aggregation; the result is then
// partial. A failure to list the collections themselves is fatal.
func (c *Client) AllBookmarks(ctx context.Context) ([]Bookmark, error) {
	collections, err := c.Collections(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(collections)+1)
	ids = append(ids, DefaultCollectionID)
	for _, col := range collections {
		ids = append(ids, col.ID)
	}

	var all []Bookmark
	for _, id := range ids {
		items, err := c.CollectionItems(ctx, id)
		if err != nil {
			slog.Warn("skipping collection", "collection", id, "error", err)
			continue
		}
		all = append(all, items...)
	}

	return all, nil
}

// DeleteItem removes one bookmark from the remote service. Transient
// statuses and network failures are retried with linear backoff; any
// other failure stops immediately.
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/%s/items/%d", c.userID, id)

	return x.Do(ctx, x.Policy{
		Attempts: deleteAttempts,
		Delay: func(attempt uint, _ error) time.Duration {
			return time.Duration(attempt) * c.backoffUnit
		},
	}, func() error {
		resp, err := c.http.R().SetContext(ctx).Delete(endpoint)
		if err != nil {
			return fmt.Errorf("deleting item %d: %w", id, err)
		}
		if resp.IsSuccess() {
			return nil
		}

		apiErr := &APIError{StatusCode: resp.StatusCode(), Endpoint: endpoint}
		if retryableStatus(resp.StatusCode()) {
			return apiErr
		}
		return x.Unrecoverable(apiErr)
	})
}

func retryableStatus(code int) bool {
	return code >= 500 ||
		code == http.StatusTooManyRequests ||
		code == http.StatusRequestTimeout
}

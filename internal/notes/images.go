package notes

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pinboxsync/pinbox-to-markdown/internal/vault"
)

var imageRefRe = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)

// formatParams are query parameters some CDNs use to carry the real
// format of lazily converted assets, checked before the path extension.
var formatParams = []string{"wx_fmt", "format", "fmt"}

var imageExts = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true,
	"webp": true, "bmp": true, "svg": true,
}

// ImageLocalizer downloads remote images referenced by a note body and
// rewrites the references to local wiki embeds. Each bookmark's assets
// live in their own subfolder so deleting them later is one folder
// removal.
type ImageLocalizer struct {
	vault       *vault.Vault
	client      *http.Client
	imageFolder string
	now         func() time.Time
}

func NewImageLocalizer(v *vault.Vault, client *http.Client, imageFolder string) *ImageLocalizer {
	return &ImageLocalizer{
		vault:       v,
		client:      client,
		imageFolder: imageFolder,
		now:         time.Now,
	}
}

// Localize replaces every http(s) image reference in body with an embed
// of a downloaded copy under <imageFolder>/<bookmarkID>/. A single
// image's download failure keeps its remote reference and moves on;
// vault write failures abort.
func (l *ImageLocalizer) Localize(ctx context.Context, bookmarkID int64, body string) (string, error) {
	refs := imageRefRe.FindAllStringSubmatch(body, -1)
	if len(refs) == 0 {
		return body, nil
	}

	folder := path.Join(l.imageFolder, strconv.FormatInt(bookmarkID, 10))
	folderReady := false
	seq := 0

	for _, ref := range refs {
		full, src := ref[0], ref[2]
		if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
			continue
		}

		if !folderReady {
			if err := l.vault.CreateFolder(folder); err != nil {
				return "", err
			}
			folderReady = true
		}

		filename := fmt.Sprintf("%d-%d.%s", l.now().UnixMilli(), seq, inferExt(src))
		seq++
		target := path.Join(folder, filename)

		exists, err := l.vault.Exists(target)
		if err != nil {
			return "", err
		}
		if !exists {
			data, err := l.download(ctx, src)
			if err != nil {
				slog.Warn("keeping remote image", "url", src, "error", err)
				continue
			}
			if err := l.vault.WriteBinary(target, data); err != nil {
				return "", err
			}
		}

		body = strings.Replace(body, full, "![["+filename+"]]", 1)
	}

	return body, nil
}

func (l *ImageLocalizer) download(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading %s: status %d", src, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}
	return data, nil
}

// inferExt guesses the image extension, preferring CDN format query
// parameters over the path extension and defaulting to jpg.
func inferExt(src string) string {
	u, err := url.Parse(src)
	if err != nil {
		return "jpg"
	}

	query := u.Query()
	for _, param := range formatParams {
		if v := strings.ToLower(query.Get(param)); imageExts[v] {
			return v
		}
	}

	if ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), ".")); imageExts[ext] {
		return ext
	}
	return "jpg"
}

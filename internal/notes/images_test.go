package notes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinboxsync/pinbox-to-markdown/internal/vault"
)

func TestInferExt(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"https://cdn.example.com/a.png", "png"},
		{"https://cdn.example.com/a.JPEG", "jpeg"},
		{"https://mmbiz.qpic.cn/pic/abc?wx_fmt=gif", "gif"},
		{"https://cdn.example.com/a.png?format=webp", "webp"},
		{"https://cdn.example.com/pic?fmt=png", "png"},
		{"https://cdn.example.com/no-extension", "jpg"},
		{"https://cdn.example.com/a.tiff", "jpg"},
		{"://bad url", "jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, inferExt(tt.src))
		})
	}
}

func newTestLocalizer(t *testing.T, handler http.HandlerFunc) (*ImageLocalizer, *vault.Vault, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	v := vault.NewWithFs(afero.NewMemMapFs(), "vault")
	l := NewImageLocalizer(v, server.Client(), "Pinbox/assets")
	l.now = fixedNow

	return l, v, server
}

func TestLocalizeDownloadsAndRewrites(t *testing.T) {
	l, v, server := newTestLocalizer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	})

	body := fmt.Sprintf("intro\n\n![chart](%s/img.png)\n\noutro", server.URL)

	got, err := l.Localize(context.Background(), 42, body)
	require.NoError(t, err)

	filename := fmt.Sprintf("%d-0.png", fixedNow().UnixMilli())
	assert.Contains(t, got, "![["+filename+"]]")
	assert.NotContains(t, got, server.URL)

	exists, err := v.Exists("Pinbox/assets/42/" + filename)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalizeLeavesNonHTTPReferences(t *testing.T) {
	l, _, _ := newTestLocalizer(t, func(http.ResponseWriter, *http.Request) {})

	body := "![inline](data:image/png;base64,AAAA)\n![rel](images/local.png)"

	got, err := l.Localize(context.Background(), 42, body)
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestLocalizeKeepsRemoteReferenceOnDownloadFailure(t *testing.T) {
	l, _, server := newTestLocalizer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	body := fmt.Sprintf("![chart](%s/gone.png)", server.URL)

	got, err := l.Localize(context.Background(), 42, body)
	require.NoError(t, err)
	assert.Equal(t, body, got, "failed downloads keep the remote reference")
}

func TestLocalizeNumbersMultipleImages(t *testing.T) {
	l, v, server := newTestLocalizer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte{1})
	})

	body := fmt.Sprintf("![a](%s/one.png)\n![b](%s/two.gif)", server.URL, server.URL)

	got, err := l.Localize(context.Background(), 7, body)
	require.NoError(t, err)

	ms := fixedNow().UnixMilli()
	assert.Contains(t, got, fmt.Sprintf("![[%d-0.png]]", ms))
	assert.Contains(t, got, fmt.Sprintf("![[%d-1.gif]]", ms))

	for _, name := range []string{fmt.Sprintf("%d-0.png", ms), fmt.Sprintf("%d-1.gif", ms)} {
		exists, err := v.Exists("Pinbox/assets/7/" + name)
		require.NoError(t, err)
		assert.True(t, exists)
	}
}

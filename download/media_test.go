package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camreview/threads-affiliate/config"
)

func newTestDownloader(t *testing.T) *MediaDownloader {
	t.Helper()

	cfg := &config.Config{}
	cfg.Options.SaveLocation = t.TempDir()
	cfg.Options.TempMediaDir = filepath.Join(cfg.Options.SaveLocation, "temp_media")
	cfg.Account.UserAgent = "test-agent"

	d, err := NewMediaDownloader(cfg)
	require.NoError(t, err)
	return d
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		contentType string
		url         string
		want        string
	}{
		{"video/mp4", "https://cdn.example.com/clip", ".mp4"},
		{"image/jpeg", "https://cdn.example.com/pic", ".jpg"},
		{"image/png", "https://cdn.example.com/pic", ".png"},
		{"image/gif", "https://cdn.example.com/pic", ".gif"},
		{"image/webp", "https://cdn.example.com/pic", ".webp"},
		{"application/octet-stream", "https://cdn.example.com/clip.MP4?x=1", ".mp4"},
		{"", "https://cdn.example.com/o1/v/video-stream?id=5", ".mp4"},
		{"", "https://cdn.example.com/pic.jpeg?x=1", ".jpg"},
		{"", "https://cdn.example.com/pic.png", ".png"},
		{"", "https://cdn.example.com/nothing-to-go-on", ".jpg"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extensionFor(tt.contentType, tt.url), "%s %s", tt.contentType, tt.url)
	}
}

func TestDownloadFile(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("fake png bytes"))
	}))
	defer server.Close()

	d := newTestDownloader(t)

	path, err := d.DownloadFile(context.Background(), server.URL+"/photo")
	require.NoError(t, err)
	assert.Equal(t, "test-agent", gotUA)
	assert.True(t, strings.HasSuffix(path, ".png"))
	assert.Equal(t, d.Dir(), filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fake png bytes", string(data))
}

func TestDownloadFileBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	d := newTestDownloader(t)

	_, err := d.DownloadFile(context.Background(), server.URL+"/expired")
	assert.Error(t, err)
}

func TestDownloadAllSkipsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "broken") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("body of " + r.URL.Path))
	}))
	defer server.Close()

	d := newTestDownloader(t)

	paths := d.DownloadAll(context.Background(),
		[]string{server.URL + "/v.mp4"},
		[]string{server.URL + "/broken.jpg", server.URL + "/ok.jpg"})
	assert.Len(t, paths, 2)
}

func TestDownloadAllDropsDuplicateContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("identical bytes"))
	}))
	defer server.Close()

	d := newTestDownloader(t)

	paths := d.DownloadAll(context.Background(), nil,
		[]string{server.URL + "/cover.jpg", server.URL + "/cover-again.jpg"})
	assert.Len(t, paths, 1)
}

func TestCleanup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer server.Close()

	d := newTestDownloader(t)

	path, err := d.DownloadFile(context.Background(), server.URL+"/a.jpg")
	require.NoError(t, err)

	d.Cleanup([]string{path, filepath.Join(d.Dir(), "already-gone.jpg")})

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

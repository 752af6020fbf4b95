package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/camreview/threads-affiliate/config"
	"github.com/camreview/threads-affiliate/logger"
	"github.com/camreview/threads-affiliate/utils"
)

const maxConcurrentDownloads = 3

// MediaDownloader fetches post media into a local temp directory so the
// publisher can re-upload it, and removes the files afterwards.
type MediaDownloader struct {
	client    *http.Client
	limiter   *rate.Limiter
	dir       string
	userAgent string
}

// NewMediaDownloader creates the downloader and its temp directory.
func NewMediaDownloader(cfg *config.Config) (*MediaDownloader, error) {
	dir := cfg.Options.TempMediaDir
	if dir == "" {
		dir = filepath.Join(cfg.Options.SaveLocation, "temp_media")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	return &MediaDownloader{
		client:    &http.Client{Timeout: 30 * time.Second},
		limiter:   rate.NewLimiter(rate.Every(time.Second), 3),
		dir:       dir,
		userAgent: cfg.Account.UserAgent,
	}, nil
}

// Dir returns the temp directory downloads land in.
func (d *MediaDownloader) Dir() string {
	return d.dir
}

// DownloadFile fetches one URL and returns the local path it was saved to.
func (d *MediaDownloader) DownloadFile(ctx context.Context, url string) (string, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build download request: %w", err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed: status %d", resp.StatusCode)
	}

	ext := extensionFor(resp.Header.Get("Content-Type"), url)
	path := filepath.Join(d.dir, uuid.NewString()+ext)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer file.Close()

	bar := progressbar.DefaultBytes(resp.ContentLength, "downloading")
	if _, err := io.Copy(io.MultiWriter(file, bar), resp.Body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return path, nil
}

// DownloadImages fetches the given image URLs, skipping ones that fail.
func (d *MediaDownloader) DownloadImages(ctx context.Context, urls []string) []string {
	return d.downloadBatch(ctx, urls, "image", make(map[string]bool))
}

// DownloadVideos fetches the given video URLs, skipping ones that fail.
func (d *MediaDownloader) DownloadVideos(ctx context.Context, urls []string) []string {
	return d.downloadBatch(ctx, urls, "video", make(map[string]bool))
}

// DownloadAll fetches videos first, then images, and returns every local
// path that succeeded. Duplicate media is dropped across the whole batch.
func (d *MediaDownloader) DownloadAll(ctx context.Context, videos, images []string) []string {
	seen := make(map[string]bool)
	paths := d.downloadBatch(ctx, videos, "video", seen)
	return append(paths, d.downloadBatch(ctx, images, "image", seen)...)
}

// downloadBatch fetches urls concurrently, keeping URL order in the result.
// Carousel posts repeat media under different CDN URLs, so files whose
// content hash was already seen in this batch are discarded.
func (d *MediaDownloader) downloadBatch(ctx context.Context, urls []string, kind string, seen map[string]bool) []string {
	results := make([]string, len(urls))
	sem := semaphore.NewWeighted(maxConcurrentDownloads)
	for i, url := range urls {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		go func(i int, url string) {
			defer sem.Release(1)
			path, err := d.DownloadFile(ctx, url)
			if err != nil {
				logger.Logger.Printf("Failed to download %s %s: %v", kind, url, err)
				return
			}
			results[i] = path
		}(i, url)
	}
	if err := sem.Acquire(ctx, maxConcurrentDownloads); err != nil {
		return nil
	}
	sem.Release(maxConcurrentDownloads)

	var paths []string
	for _, path := range results {
		if path == "" {
			continue
		}
		if hash, err := utils.HashMediaFile(path); err == nil {
			if seen[hash] {
				logger.Logger.Printf("Skipping duplicate %s %s", kind, path)
				os.Remove(path)
				continue
			}
			seen[hash] = true
		}
		paths = append(paths, path)
	}
	if len(urls) > 0 {
		logger.Logger.Printf("Downloaded %d/%d %ss", len(paths), len(urls), kind)
	}
	return paths
}

// Cleanup deletes the given downloaded files.
func (d *MediaDownloader) Cleanup(paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Logger.Printf("Failed to remove %s: %v", path, err)
		}
	}
}

// CleanupAll wipes and recreates the temp media directory.
func (d *MediaDownloader) CleanupAll() error {
	if err := os.RemoveAll(d.dir); err != nil {
		return fmt.Errorf("failed to remove media directory: %w", err)
	}
	return os.MkdirAll(d.dir, 0755)
}

// extensionFor picks a file extension from the Content-Type header, falling
// back to hints in the URL. Unknown media defaults to .jpg, matching what
// Threads serves most of the time.
func extensionFor(contentType, url string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "video") || strings.Contains(ct, "mp4"):
		return ".mp4"
	case strings.Contains(ct, "image/jpeg") || strings.Contains(ct, "image/jpg"):
		return ".jpg"
	case strings.Contains(ct, "image/png"):
		return ".png"
	case strings.Contains(ct, "image/gif"):
		return ".gif"
	case strings.Contains(ct, "image/webp"):
		return ".webp"
	}

	switch utils.GetURLExtension(url) {
	case ".mp4":
		return ".mp4"
	case ".jpg", ".jpeg":
		return ".jpg"
	case ".png":
		return ".png"
	case ".gif":
		return ".gif"
	case ".webp":
		return ".webp"
	}

	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, ".mp4") || strings.Contains(lower, "/video"):
		return ".mp4"
	case strings.Contains(lower, ".jpg") || strings.Contains(lower, ".jpeg"):
		return ".jpg"
	case strings.Contains(lower, ".png"):
		return ".png"
	default:
		return ".jpg"
	}
}

// Package crawler defines the boundary to whatever scrapes Threads
// profiles. Scraping itself lives outside this program; it hands over
// already-extracted post data.
package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Post is the raw result of scraping one Threads post. Threads splits long
// captions into two segments, delivered here as primary and secondary.
type Post struct {
	ContentPrimary   string   `json:"content_1"`
	ContentSecondary string   `json:"content_2"`
	Images           []string `json:"images"`
	Videos           []string `json:"videos"`
	ShopeeLinks      []string `json:"shopee_links"`
}

// FullContent joins the caption segments into the single content string the
// store works with.
func (p *Post) FullContent() string {
	if p.ContentSecondary == "" {
		return p.ContentPrimary
	}
	return p.ContentPrimary + "\n\n" + p.ContentSecondary
}

// Crawler produces the newest post from a profile page.
type Crawler interface {
	CrawlProfile(ctx context.Context, profileURL string) (*Post, error)
}

// FileSource is a Crawler that reads a post exported as JSON by an external
// scraper, useful for feeding the pipeline without a browser session.
type FileSource struct {
	Path string
}

// CrawlProfile reads and decodes the export file. The profile URL is
// ignored; the file already identifies its origin.
func (f *FileSource) CrawlProfile(ctx context.Context, profileURL string) (*Post, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read post export: %w", err)
	}

	var post Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, fmt.Errorf("failed to parse post export: %w", err)
	}

	if post.FullContent() == "" {
		return nil, fmt.Errorf("post export %s has no content", f.Path)
	}

	return &post, nil
}

// Package pipeline drives a post through its lifecycle: crawl, store,
// convert links, rewrite text, download media, publish, mark published.
// Every collaborator is injected; nothing is reached through globals.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/camreview/threads-affiliate/config"
	"github.com/camreview/threads-affiliate/converter"
	"github.com/camreview/threads-affiliate/crawler"
	"github.com/camreview/threads-affiliate/db/service"
	"github.com/camreview/threads-affiliate/download"
	"github.com/camreview/threads-affiliate/logger"
	"github.com/camreview/threads-affiliate/notifications"
	"github.com/camreview/threads-affiliate/poster"
	"github.com/camreview/threads-affiliate/rewrite"
)

type Pipeline struct {
	cfg        *config.Config
	store      *service.PostService
	source     crawler.Crawler
	conv       converter.Converter
	downloader *download.MediaDownloader
	publisher  poster.Poster
	notifier   *notifications.NotificationService
}

func New(
	cfg *config.Config,
	store *service.PostService,
	source crawler.Crawler,
	conv converter.Converter,
	downloader *download.MediaDownloader,
	publisher poster.Poster,
	notifier *notifications.NotificationService,
) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		store:      store,
		source:     source,
		conv:       conv,
		downloader: downloader,
		publisher:  publisher,
		notifier:   notifier,
	}
}

// RunOnce pulls the newest post from the source, stores it, and pushes it
// through conversion and publishing. An already-stored post is skipped
// without touching anything.
func (p *Pipeline) RunOnce(ctx context.Context) error {
	post, err := p.source.CrawlProfile(ctx, p.cfg.Account.TargetProfile)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	id, err := p.store.SavePost(
		post.FullContent(),
		post.Images,
		post.Videos,
		post.ShopeeLinks,
		p.cfg.Account.TargetProfile,
	)
	if errors.Is(err, service.ErrDuplicatePost) {
		logger.Logger.Printf("Post already stored, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	logger.Logger.Printf("Stored post %d (%d images, %d videos, %d shopee links)",
		id, len(post.Images), len(post.Videos), len(post.ShopeeLinks))

	return p.Publish(ctx, id)
}

// ProcessBacklog drains unpublished posts, newest first. Failures are
// logged per post so one stuck post doesn't block the rest; unresolved
// links get retried naturally on the next pass.
func (p *Pipeline) ProcessBacklog(ctx context.Context, limit int) error {
	records, err := p.store.ListUnpublished(limit)
	if err != nil {
		return err
	}

	logger.Logger.Printf("Processing %d unpublished posts", len(records))

	for _, rec := range records {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := p.Publish(ctx, rec.ID); err != nil {
			logger.Logger.Printf("Post %d not published: %v", rec.ID, err)
		}
	}

	return nil
}

// Publish resolves a stored post's links, rewrites its content, downloads
// its media, and hands everything to the publisher. The post is marked
// published only after the publisher confirms success; temp media is
// removed either way.
func (p *Pipeline) Publish(ctx context.Context, id uint) error {
	rec, err := p.store.GetPost(id)
	if err != nil {
		return err
	}
	if rec.Published {
		return nil
	}

	p.resolveLinks(ctx, rec)

	// Re-read so the rewrite sees the links resolved above
	rec, err = p.store.GetPost(id)
	if err != nil {
		return err
	}

	originals := make([]string, 0, len(rec.Links))
	resolved := make([]string, 0, len(rec.Links))
	for _, pair := range rec.Links {
		originals = append(originals, pair.Original)
		resolved = append(resolved, pair.Affiliate)
	}
	content := rewrite.ReplaceShopeeLinks(rec.Content, originals, resolved)

	paths := p.downloader.DownloadAll(ctx, rec.Videos, rec.Images)
	defer p.downloader.Cleanup(paths)

	if err := p.publisher.CreatePost(ctx, content, paths); err != nil {
		return fmt.Errorf("publish failed for post %d: %w", id, err)
	}

	if err := p.store.MarkPublished(id); err != nil {
		return err
	}

	logger.Logger.Printf("Post %d published", id)
	p.notifier.NotifyPublished(id, content)

	return nil
}

// resolveLinks converts every still-unresolved shopee link on the record.
// A failed conversion leaves the link untouched for a later retry.
func (p *Pipeline) resolveLinks(ctx context.Context, rec *service.PostRecord) {
	for _, pair := range rec.Links {
		if pair.Affiliate != "" {
			continue
		}

		affiliate, err := p.conv.Convert(ctx, pair.Original)
		if err != nil {
			logger.Logger.Printf("Conversion failed for %s: %v", pair.Original, err)
			p.notifier.NotifyConversionFailed(rec.ID, pair.Original)
			continue
		}

		if err := p.store.UpdateAffiliateLink(rec.ID, pair.Original, affiliate); err != nil {
			logger.Logger.Printf("Failed to store affiliate link for post %d: %v", rec.ID, err)
		}
	}
}

// RunForever processes the backlog on a fixed interval until the context is
// cancelled. Runs never overlap.
func (p *Pipeline) RunForever(ctx context.Context, interval time.Duration, limit int) error {
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	_, err := scheduler.Every(interval).Do(func() {
		if err := p.ProcessBacklog(ctx, limit); err != nil {
			logger.Logger.Printf("Backlog run failed: %v", err)
		}
		p.LogStats()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule backlog runs: %w", err)
	}

	scheduler.StartAsync()
	<-ctx.Done()
	scheduler.Stop()

	return nil
}

// LogStats writes the store's aggregate counts to the log.
func (p *Pipeline) LogStats() {
	stats, err := p.store.Stats()
	if err != nil {
		logger.Logger.Printf("Failed to collect stats: %v", err)
		return
	}
	logger.Logger.Printf("Stats: %d posts (%d published, %d pending), %d shopee links (%d converted)",
		stats.TotalPosts, stats.Published, stats.Unpublished, stats.TotalShopeeLinks, stats.ConvertedLinks)
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camreview/threads-affiliate/api"
	"github.com/camreview/threads-affiliate/cmd"
	"github.com/camreview/threads-affiliate/config"
	"github.com/camreview/threads-affiliate/converter"
	"github.com/camreview/threads-affiliate/crawler"
	"github.com/camreview/threads-affiliate/db"
	"github.com/camreview/threads-affiliate/db/repository"
	"github.com/camreview/threads-affiliate/db/service"
	"github.com/camreview/threads-affiliate/download"
	"github.com/camreview/threads-affiliate/logger"
	"github.com/camreview/threads-affiliate/notifications"
	"github.com/camreview/threads-affiliate/pipeline"
	"github.com/camreview/threads-affiliate/poster"
)

const version = "v0.3.0"

func main() {
	flags := cmd.ParseFlags()

	if flags.Version {
		fmt.Printf("threads-affiliate %s\n", version)
		return
	}

	configPath := config.GetConfigPath()
	if err := config.EnsureConfigExists(configPath); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.InitLogger(cfg); err != nil {
		log.Fatal(err)
	}
	logger.Logger.Printf("Starting threads-affiliate %s", version)

	if flags.Serve {
		conv := converter.NewHTTPConverter(cfg.Converter.Endpoint, cfg.ConverterTimeout())
		srv := api.NewServer(conv)
		logger.Logger.Printf("Conversion API listening on %s", cfg.API.ListenAddr)
		if err := srv.Run(cfg.API.ListenAddr); err != nil {
			logger.Logger.Fatal(err)
		}
		return
	}

	database, err := db.NewDatabase(cfg.Options.SaveLocation)
	if err != nil {
		logger.Logger.Fatal(err)
	}
	defer database.Close()

	store := service.NewPostService(repository.NewPostRepository(database.DB))

	if flags.Stats {
		stats, err := store.Stats()
		if err != nil {
			logger.Logger.Fatal(err)
		}
		fmt.Println(renderStats(stats))
		return
	}

	if flags.MarkPublished > 0 {
		if err := store.MarkPublished(flags.MarkPublished); err != nil {
			logger.Logger.Fatal(err)
		}
		fmt.Printf("Post %d marked as published\n", flags.MarkPublished)
		return
	}

	downloader, err := download.NewMediaDownloader(cfg)
	if err != nil {
		logger.Logger.Fatal(err)
	}

	conv := converter.NewHTTPConverter(cfg.Converter.Endpoint, cfg.ConverterTimeout())
	notifier := notifications.NewNotificationService(cfg)
	publisher := &poster.CommandPoster{Command: cfg.Publisher.Command}

	var source crawler.Crawler
	if flags.Ingest != "" {
		source = &crawler.FileSource{Path: flags.Ingest}
	}

	pipe := pipeline.New(cfg, store, source, conv, downloader, publisher, notifier)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case flags.Ingest != "":
		if err := pipe.RunOnce(ctx); err != nil {
			logger.Logger.Fatal(err)
		}
		pipe.LogStats()
	case flags.Daemon:
		interval := flags.Interval
		if interval <= 0 {
			interval = time.Duration(cfg.Schedule.IntervalMinutes) * time.Minute
		}
		logger.Logger.Printf("Daemon mode, backlog every %s", interval)
		if err := pipe.RunForever(ctx, interval, flags.Limit); err != nil {
			logger.Logger.Fatal(err)
		}
	case flags.Backlog:
		if err := pipe.ProcessBacklog(ctx, flags.Limit); err != nil {
			logger.Logger.Fatal(err)
		}
		pipe.LogStats()
	default:
		fmt.Println("Nothing to do. Use -ingest, -backlog, -daemon, -serve, -stats or -mark-published.")
	}
}

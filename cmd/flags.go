package cmd

import (
	"flag"
	"time"
)

type Flags struct {
	Ingest        string
	Backlog       bool
	Limit         int
	Daemon        bool
	Interval      time.Duration
	Serve         bool
	Stats         bool
	MarkPublished uint
	Version       bool
}

// ParseFlags reads the command line. Modes are mutually exclusive; the
// entrypoint picks the first one set in the order ingest, backlog, daemon,
// serve, stats, mark-published.
func ParseFlags() Flags {
	var flags Flags
	var markPublished uint64

	flag.StringVar(&flags.Ingest, "ingest", "", "Path to a crawled post export (JSON) to store and publish")
	flag.BoolVar(&flags.Backlog, "backlog", false, "Process unpublished posts from the store")
	flag.IntVar(&flags.Limit, "limit", 10, "Maximum posts per backlog pass")
	flag.BoolVar(&flags.Daemon, "daemon", false, "Keep processing the backlog on an interval")
	flag.DurationVar(&flags.Interval, "interval", 0, "Backlog interval in daemon mode (default from config)")
	flag.BoolVar(&flags.Serve, "serve", false, "Run the link conversion API server")
	flag.BoolVar(&flags.Stats, "stats", false, "Print store statistics and exit")
	flag.Uint64Var(&markPublished, "mark-published", 0, "Mark the given post id as published (external publisher callback)")
	flag.BoolVar(&flags.Version, "version", false, "Print version and exit")

	flag.Parse()

	flags.MarkPublished = uint(markPublished)
	return flags
}

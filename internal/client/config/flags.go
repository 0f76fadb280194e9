package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/storyshare/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-d", "-w", "-l", "-s", "-log-level", "-log-backend"}

// parseFlags overlays cfg with the command-line flags it knows about; other
// flags in args are ignored.
//
//	-a string         story API base URL
//	-t duration       HTTP timeout, e.g. 30s
//	-d string         local database path
//	-w string         work directory for images
//	-l string         static location "lat,lon" (use -l=-6.2,106.8 for negatives)
//	-s int            feed page size
//	-log-level string
//	-log-backend string
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("storyshare", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "story API base URL")
	fs.DurationVar(&cfg.HTTPTimeout, "t", cfg.HTTPTimeout, "HTTP timeout")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.WorkDir, "w", cfg.WorkDir, "work directory for images")
	fs.StringVar(&cfg.Location, "l", cfg.Location, "static location lat,lon")
	fs.IntVar(&cfg.FeedPageSize, "s", cfg.FeedPageSize, "feed page size")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogBackend, "log-backend", cfg.LogBackend, "log backend: slog or zap")

	return fs.Parse(filtered)
}

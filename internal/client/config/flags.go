package config

import (
	"flag"
	"os"
	"time"

	"github.com/vilarbucks/vilarbucks/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   API base URL
//	-d string   path of the local SQLite database
//	-i int      online check interval (seconds)
//	-r int      profile refresh interval (seconds, 0 disables)
//	-t int      HTTP request timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// Only these flags are looked at; anything else in os.Args is ignored.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i", "-r", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	refreshInterval := fs.Int("r", int(cfg.RefreshInterval.Seconds()), "profile refresh interval (in seconds, 0 disables)")
	httpTimeout := fs.Int("t", int(cfg.HTTPTimeout.Seconds()), "HTTP request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.RefreshInterval = time.Duration(*refreshInterval) * time.Second
	cfg.HTTPTimeout = time.Duration(*httpTimeout) * time.Second
}

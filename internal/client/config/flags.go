package config

import (
	"flag"
	"os"
	"time"

	"github.com/pixeldrop/pixeldrop/internal/flagx"
)

// parseFlags populates client Config fields from command-line flags.
//
//	-a string     API base URL (e.g., "http://127.0.0.1:8080")
//	-t duration   per-request timeout for API calls
//	-T duration   per-file timeout for object transfers
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-T"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerBaseURL, "a", config.ServerBaseURL, "API base URL")
	fs.DurationVar(&config.RequestTimeout, "t", config.RequestTimeout, "API request timeout")
	fs.DurationVar(&config.TransferTimeout, "T", config.TransferTimeout, "object transfer timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 30 * time.Second
	}
	if config.TransferTimeout <= 0 {
		config.TransferTimeout = 5 * time.Minute
	}
}

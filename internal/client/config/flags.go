package config

import (
	"flag"
	"os"
	"time"

	"github.com/agroscanai/agroscan-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the classification backend
//	-t int      inactivity timeout in seconds
//	-d string   path of the local state database
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	inactivityTimeout := fs.Int("t", int(cfg.InactivityTimeout.Seconds()), "inactivity timeout (in seconds)")
	fs.StringVar(&cfg.StateDBPath, "d", cfg.StateDBPath, "path of the local state database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.InactivityTimeout = time.Duration(*inactivityTimeout) * time.Second
}

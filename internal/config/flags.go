package config

import (
	"flag"
	"os"
	"time"

	"github.com/etuitionbd/etuition-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend REST API
//	-p string   base URL of the identity provider
//	-k string   identity provider API key
//	-g string   base URL of the card payment gateway
//	-d string   local storage DSN
//	-i int      message poll interval in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-p", "-k", "-g", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendBaseURL, "a", cfg.BackendBaseURL, "base URL of the backend REST API")
	fs.StringVar(&cfg.IdentityBaseURL, "p", cfg.IdentityBaseURL, "base URL of the identity provider")
	fs.StringVar(&cfg.IdentityAPIKey, "k", cfg.IdentityAPIKey, "identity provider API key")
	fs.StringVar(&cfg.GatewayBaseURL, "g", cfg.GatewayBaseURL, "base URL of the card payment gateway")
	fs.StringVar(&cfg.StorageDSN, "d", cfg.StorageDSN, "local storage DSN")
	pollInterval := fs.Int("i", int(cfg.PollInterval.Seconds()), "message poll interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PollInterval = time.Duration(*pollInterval) * time.Second
}

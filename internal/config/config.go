// Package config holds runtime settings for the eTuitionBD CLI and loads
// them from defaults, an optional JSON file, and command-line flags.
package config

import "time"

// Config holds runtime settings for the client.
//
// Durations: PollInterval is the message-poll period while a conversation
// view is open; RedirectDelay is how long the session-expired notice stays
// on screen before navigating to the login page.
type Config struct {
	BackendBaseURL      string
	IdentityBaseURL     string
	IdentityAPIKey      string
	FederatedListenAddr string
	GatewayBaseURL      string
	StorageDSN          string
	PollInterval        time.Duration
	RedirectDelay       time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendBaseURL = "http://127.0.0.1:8080/api"
	c.IdentityBaseURL = "http://127.0.0.1:9099/v1"
	c.IdentityAPIKey = ""
	c.FederatedListenAddr = "127.0.0.1:8975"
	c.GatewayBaseURL = "https://pay.etuitionbd.example/v1"
	c.StorageDSN = "etuition.db"
	c.PollInterval = 5 * time.Second
	c.RedirectDelay = 2 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

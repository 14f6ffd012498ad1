package config

import (
	"encoding/json"
	"os"

	"github.com/etuitionbd/etuition-cli/internal/flagx"
	"github.com/etuitionbd/etuition-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "5s"
// or as integer nanoseconds.
type JsonConfig struct {
	BackendBaseURL      string         `json:"backend_base_url"`
	IdentityBaseURL     string         `json:"identity_base_url"`
	IdentityAPIKey      string         `json:"identity_api_key"`
	FederatedListenAddr string         `json:"federated_listen_addr"`
	GatewayBaseURL      string         `json:"gateway_base_url"`
	StorageDSN          string         `json:"storage_dsn"`
	PollInterval        timex.Duration `json:"poll_interval"`
	RedirectDelay       timex.Duration `json:"redirect_delay"`
}

// parseJson overlays cfg with values loaded from a JSON file whose path
// is given via the -c or -config flags. When no path is given the function
// returns without touching cfg. Only non-zero JSON fields are copied, so
// a partial file keeps the defaults for everything else.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BackendBaseURL != "" {
		cfg.BackendBaseURL = jc.BackendBaseURL
	}
	if jc.IdentityBaseURL != "" {
		cfg.IdentityBaseURL = jc.IdentityBaseURL
	}
	if jc.IdentityAPIKey != "" {
		cfg.IdentityAPIKey = jc.IdentityAPIKey
	}
	if jc.FederatedListenAddr != "" {
		cfg.FederatedListenAddr = jc.FederatedListenAddr
	}
	if jc.GatewayBaseURL != "" {
		cfg.GatewayBaseURL = jc.GatewayBaseURL
	}
	if jc.StorageDSN != "" {
		cfg.StorageDSN = jc.StorageDSN
	}
	if jc.PollInterval.Duration != 0 {
		cfg.PollInterval = jc.PollInterval.Duration
	}
	if jc.RedirectDelay.Duration != 0 {
		cfg.RedirectDelay = jc.RedirectDelay.Duration
	}
}

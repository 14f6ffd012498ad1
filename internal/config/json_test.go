package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysFileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	data := `{
		"backend_base_url": "https://api.etuitionbd.com",
		"poll_interval": "7s"
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	oldArgs := os.Args
	os.Args = []string{"etuition", "-c", path}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "https://api.etuitionbd.com", cfg.BackendBaseURL)
	require.Equal(t, 7*time.Second, cfg.PollInterval)
	// untouched fields keep defaults
	require.Equal(t, 2*time.Second, cfg.RedirectDelay)
	require.NotEmpty(t, cfg.StorageDSN)
}

func TestParseJson_NoFileIsNoop(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"etuition"}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	before := *cfg
	parseJson(cfg)
	require.Equal(t, before, *cfg)
}

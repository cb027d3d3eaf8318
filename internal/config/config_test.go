package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Point the file lookup somewhere empty so only env + defaults apply.
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "questions.json", cfg.Bank.Path)
	assert.Empty(t, cfg.Storage.Path, "storage path defaults to the XDG location")
	assert.Equal(t, 30, cfg.Review.SmartLimit)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quizdrill.yaml")
	yaml := `
bank:
  path: /data/bank.json
review:
  smart_limit: 10
log:
  file: /tmp/quizdrill.log
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/bank.json", cfg.Bank.Path)
	assert.Equal(t, 10, cfg.Review.SmartLimit)
	assert.Equal(t, "/tmp/quizdrill.log", cfg.Log.File)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quizdrill.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bank:\n  path: from-file.json\n"), 0o644))
	t.Setenv("QUIZDRILL_BANK", "from-env.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.json", cfg.Bank.Path, "env must win over file")
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty bank path", func(c *Config) { c.Bank.Path = "" }, true},
		{"zero smart limit", func(c *Config) { c.Review.SmartLimit = 0 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Bank:   BankConfig{Path: "questions.json"},
				Review: ReviewConfig{SmartLimit: 30},
				Log:    LogConfig{Level: "info"},
			}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

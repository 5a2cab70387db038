package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/treeoracle/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "logical", cfg.Grammar)
	assert.Equal(t, 1.0, cfg.Logical.Y)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "treeoracle.yaml")
	content := `
grammar: rna
count: "25"
seed: 42
workers: 8
logical:
  x: 0.25
store:
  kind: redis
  redis:
    addr: "127.0.0.1:6380"
    ttl: 90s
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "rna", cfg.Grammar)
	assert.Equal(t, 25, cfg.Count)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 0.25, cfg.Logical.X)
	assert.Equal(t, 1.0, cfg.Logical.Y, "unset nested keys keep their defaults")
	assert.Equal(t, "redis", cfg.Store.Kind)
	assert.Equal(t, "127.0.0.1:6380", cfg.Store.Redis.Addr)
	assert.Equal(t, "treeoracle:sample:", cfg.Store.Redis.Prefix)
	assert.Equal(t, 90*time.Second, cfg.Store.Redis.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 1_000_000, cfg.MaxSteps)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"Unknown grammar", "grammar: fractal", "Config.Grammar"},
		{"Zero count", "count: 0", "Config.Count"},
		{"Truth value out of range", "logical: {x: 1.5}", "Config.Logical.X"},
		{"Unknown store", "store: {kind: s3}", "Config.Store.Kind"},
		{"File store without dir", "store: {kind: file, dir: \"\"}", "Config.Store.Dir"},
		{"Badger store without dir", "store: {kind: badger, dir: \"\"}", "Config.Store.Dir"},
		{"Bad log level", "log: {level: loud}", "Config.Log.Level"},
		{"Unknown key", "colour: blue", "colour"},
		{"Broken yaml", "grammar: [", "invalid yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFromMap(t *testing.T) {
	cfg, err := config.FromMap(map[string]any{"grammar": "rna", "http": map[string]any{"addr": ":9090"}})
	require.NoError(t, err)
	assert.Equal(t, "rna", cfg.Grammar)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/stacklog/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.yaml", `
level: warn
console:
  enabled: false
slog:
  enabled: true
  format: json
jsonl_path: /tmp/records.jsonl
trace_depth: 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.LevelWarn, cfg.Level)
	assert.False(t, cfg.Console.Enabled)
	assert.Nil(t, cfg.Console.Color)
	assert.True(t, cfg.Slog.Enabled)
	assert.Equal(t, "json", cfg.Slog.Format)
	assert.Equal(t, "/tmp/records.jsonl", cfg.JSONLPath)
	assert.Equal(t, 10, cfg.TraceDepth)
}

func TestLoadLevelCode(t *testing.T) {
	path := writeFile(t, t.TempDir(), "c.yaml", "level: Q\nconsole:\n  color: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.LevelQuiet, cfg.Level)
	require.NotNil(t, cfg.Console.Color)
	assert.True(t, *cfg.Console.Color)
	assert.True(t, cfg.Console.Enabled)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadSearchesDefaultNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stacklog.yml", "level: error\n")
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, model.LevelError, cfg.Level)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]string{
		"bad yaml":   "level: [",
		"bad level":  "level: loud\n",
		"bad format": "slog:\n  format: xml\n",
		"bad depth":  "trace_depth: -1\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, name+".yaml", body))
			assert.Error(t, err)
		})
	}
}

func TestEnvLevelOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), "c.yaml", "level: warn\n")

	t.Setenv(EnvLevel, "debug")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.LevelDebug, cfg.Level)

	t.Setenv(EnvLevel, "chatty")
	_, err = Load(path)
	assert.ErrorContains(t, err, EnvLevel)
}

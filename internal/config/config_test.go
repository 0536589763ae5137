package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the default config search at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, DefaultListen, cfg.Server.Listen)
	assert.Equal(t, DefaultMode, cfg.Server.Mode)
	assert.Equal(t, DefaultReadHeaderTimeout, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, DefaultShutdownTimeout, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DefaultStorageRoot, cfg.Storage.Root)
	assert.Equal(t, "os", cfg.Storage.Type)
	assert.NotNil(t, cfg.Storage.Memory)
}

func TestLoad_FromFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, `
logging:
  level: debug
  format: json
server:
  listen: 127.0.0.1:8080
  shutdown_timeout: 5s
storage:
  root: /var/lib/webstore
  type: memory
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logging.Level, "level must be normalized to uppercase")
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Listen)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/var/lib/webstore", cfg.Storage.Root)
	assert.Equal(t, "memory", cfg.Storage.Type)
}

func TestLoad_DefaultLocation(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "webstore", "webstore.yaml"), "server:\n  listen: 127.0.0.1:7000\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Listen)
	assert.Equal(t, filepath.Join(dir, "webstore", "webstore.yaml"), GetDefaultConfigPath())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "storage:\n  root: /from/file\n")
	t.Setenv("WEBSTORE_STORAGE_ROOT", "/from/env")
	t.Setenv("WEBSTORE_STORAGE_OS_DIR_MODE", "448")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Storage.Root)
	assert.EqualValues(t, "448", cfg.Storage.OS["dir_mode"])
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("WEBSTORE_SERVER_LISTEN", "127.0.0.1:6000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("listen", "", "")
	flags.String("root", "", "")
	require.NoError(t, flags.Parse([]string{"--listen", "127.0.0.1:9000"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Listen)
	assert.Equal(t, DefaultStorageRoot, cfg.Storage.Root, "unset flags must not override defaults")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad level", "logging:\n  level: loud\n"},
		{"bad format", "logging:\n  format: xml\n"},
		{"bad storage type", "storage:\n  type: s3\n"},
		{"bad gin mode", "server:\n  mode: turbo\n"},
		{"bad listen address", "server:\n  listen: not-an-address\n"},
		{"blank root", "storage:\n  root: \"   \"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "bad.yaml")
			writeFile(t, path, tt.content)

			_, err := Load(path, nil)
			assert.Error(t, err)
		})
	}
}

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(Default()))
}

package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"webstore/internal/storage"
)

const (
	DefaultListen            = "0.0.0.0:5000"
	DefaultMode              = "release"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 30 * time.Second
	DefaultStorageRoot       = "storage"
	DefaultStorageType       = "os"
)

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.format", "console")
	v.SetDefault("server.listen", DefaultListen)
	v.SetDefault("server.mode", DefaultMode)
	v.SetDefault("server.read_header_timeout", DefaultReadHeaderTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("storage.root", DefaultStorageRoot)
	v.SetDefault("storage.type", DefaultStorageType)
	v.SetDefault("storage.os.dir_mode", uint32(storage.DefaultDirMode))
	v.SetDefault("storage.os.file_mode", uint32(storage.DefaultFileMode))
}

// ApplyDefaults fills zero values with defaults and normalizes the log level.
// Explicit values are preserved.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	if cfg.Server.Listen == "" {
		cfg.Server.Listen = DefaultListen
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultMode
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Storage.Root == "" {
		cfg.Storage.Root = DefaultStorageRoot
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = DefaultStorageType
	}
	if cfg.Storage.OS == nil {
		cfg.Storage.OS = make(map[string]any)
	}
	if cfg.Storage.Memory == nil {
		cfg.Storage.Memory = make(map[string]any)
	}
}

// Default returns a configuration made only of default values.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Server.ReadHeaderTimeout = DefaultReadHeaderTimeout

	return cfg
}

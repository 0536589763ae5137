package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the complete webstore configuration, built once at startup and
// passed explicitly to the components that need it.
//
// Configuration sources (in order of precedence):
//  1. CLI flags
//  2. Environment variables (WEBSTORE_*)
//  3. Configuration file (YAML)
//  4. Default values
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
}

type LoggingConfig struct {
	// Level is normalized to uppercase by ApplyDefaults
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Format is console (human readable) or json
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=console json"`
}

type ServerConfig struct {
	Listen string `mapstructure:"listen" yaml:"listen" validate:"required,hostname_port"`

	// Mode is the gin engine mode
	Mode string `mapstructure:"mode" yaml:"mode" validate:"required,oneof=release debug test"`

	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout" validate:"gte=0"`

	// ShutdownTimeout bounds how long in-flight requests may run after a stop signal
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"required,gt=0"`
}

// StorageConfig selects the filesystem backend. Only the section matching
// Type is decoded.
type StorageConfig struct {
	Root string `mapstructure:"root" yaml:"root" validate:"required"`

	// Type is os (local disk) or memory (ephemeral, for development)
	Type string `mapstructure:"type" yaml:"type" validate:"required,oneof=os memory"`

	OS     map[string]any `mapstructure:"os" yaml:"os"`
	Memory map[string]any `mapstructure:"memory" yaml:"memory"`
}

// flagKeys maps CLI flag names onto configuration keys.
var flagKeys = map[string]string{
	"listen":     "server.listen",
	"root":       "storage.root",
	"log-level":  "logging.level",
	"log-format": "logging.format",
}

// Load loads configuration from flags, environment, file and defaults, then
// validates it. An empty configPath searches the default locations and
// tolerates a missing file. flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setupViper(v *viper.Viper, configPath string) {
	// Example: WEBSTORE_STORAGE_ROOT=/var/lib/webstore
	v.SetEnvPrefix("WEBSTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// env lookups only happen for keys viper already knows about
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}

	v.AddConfigPath(getConfigDir())
	v.AddConfigPath(".")
	v.SetConfigName("webstore")
	v.SetConfigType("yaml")
}

func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}

		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// getConfigDir returns $XDG_CONFIG_HOME/webstore, ~/.config/webstore, or "."
// when no home directory is available.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "webstore")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "webstore")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "webstore.yaml")
}

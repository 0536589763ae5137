package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"

	"webstore/internal/storage"
)

// osStoreConfig is the storage.os section.
type osStoreConfig struct {
	DirMode  uint32 `mapstructure:"dir_mode"`
	FileMode uint32 `mapstructure:"file_mode"`
}

// CreateStore builds the store selected by cfg.Type.
func CreateStore(cfg *StorageConfig) (*storage.Store, error) {
	switch cfg.Type {
	case "os":
		return createOSStore(cfg)
	case "memory":
		return storage.New(afero.NewMemMapFs(), cfg.Root, storage.Options{})
	default:
		return nil, fmt.Errorf("unknown storage type: %q", cfg.Type)
	}
}

func createOSStore(cfg *StorageConfig) (*storage.Store, error) {
	var osCfg osStoreConfig
	if err := decodeSection(cfg.OS, &osCfg); err != nil {
		return nil, fmt.Errorf("invalid os storage config: %w", err)
	}

	if osCfg.DirMode > 0o777 || osCfg.FileMode > 0o777 {
		return nil, fmt.Errorf("invalid os storage config: modes must not exceed 0777")
	}

	return storage.New(afero.NewOsFs(), cfg.Root, storage.Options{
		DirMode:  os.FileMode(osCfg.DirMode),
		FileMode: os.FileMode(osCfg.FileMode),
	})
}

// decodeSection decodes a type-specific map, accepting the string values
// environment variables produce.
func decodeSection(section map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(section)
}

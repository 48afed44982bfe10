package store

import (
	"fmt"

	"hrops/internal/config"
)

// NewStoreFromConfig creates a Store based on the storage config type.
// crypter applies only to the filesystem backend and may be nil.
func NewStoreFromConfig(cfg config.StorageConfig, dataDir string, crypter Crypter) (Store, error) {
	switch cfg.Type {
	case "filesystem", "":
		return NewFileStore(dataDir, crypter)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %q", cfg.Type)
	}
}

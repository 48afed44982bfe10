package encryption

import (
	"fmt"

	"hrops/internal/config"
)

// NewEncryptorFromConfig creates an Encryptor based on the configuration
// type. A nil Encryptor (type "none" or empty) means artifacts are
// stored as plain JSON.
func NewEncryptorFromConfig(cfg config.EncryptionConfig) (Encryptor, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "age":
		return NewAgeEncryptor(cfg), nil
	case "test":
		return NewTestEncryptor(), nil
	default:
		return nil, fmt.Errorf("unknown encryption type: %q", cfg.Type)
	}
}

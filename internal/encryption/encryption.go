// Package encryption provides optional at-rest encryption of record
// store artifacts. Encryption uses a public key only; reading requires
// unlocking the private key with a passphrase once per process, which
// yields a Session used by the store for the lifetime of the service.
package encryption

import "io"

// Encryptor manages the key material for at-rest encryption.
type Encryptor interface {
	// Setup performs one-time key generation. Called during `hrops init`.
	// Generates a key pair, stores the public key in plaintext, and
	// encrypts the private key with the provided passphrase.
	Setup(passphrase string) error

	// Unlock decrypts the private key using the passphrase and returns a
	// Session that can encrypt and decrypt store artifacts. Returns an
	// error if the passphrase is incorrect.
	Unlock(passphrase string) (Session, error)

	// IsConfigured returns true if the key files exist at the configured paths.
	IsConfigured() bool
}

// Session holds unlocked key material in memory for the lifetime of the
// process. It satisfies the record store's Crypter interface.
type Session interface {
	Encrypt(r io.Reader, w io.Writer) error
	Decrypt(r io.Reader, w io.Writer) error
}

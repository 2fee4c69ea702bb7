package secrets

import "errors"

var (
	ErrInvalidKey          = errors.New("secrets.invalid_key: must be 32 bytes")
	ErrKeyDerivationFailed = errors.New("secrets.key_derivation_failed")
	ErrEncryptionFailed    = errors.New("secrets.encryption_failed")
	ErrDecryptionFailed    = errors.New("secrets.decryption_failed")
	ErrInvalidCiphertext   = errors.New("secrets.invalid_ciphertext")
)

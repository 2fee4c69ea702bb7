package kvstore

import "errors"

var (
	// ErrCorruptValue means a stored value exists but cannot be read back.
	ErrCorruptValue = errors.New("kvstore.corrupt_value")

	ErrEmptyKey      = errors.New("kvstore.empty_key")
	ErrUnknownDriver = errors.New("kvstore.unknown_driver")
	ErrInvalidConfig = errors.New("kvstore.invalid_config")
)

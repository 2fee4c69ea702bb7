package mockapi

import "errors"

var (
	ErrEmailTaken         = errors.New("mockapi.email_taken")
	ErrInvalidCredentials = errors.New("mockapi.invalid_credentials")
	ErrUserNotFound       = errors.New("mockapi.user_not_found")
	ErrInvalidToken       = errors.New("mockapi.invalid_token")
	ErrInvalidConfig      = errors.New("mockapi.invalid_config")
	ErrSeedFile           = errors.New("mockapi.seed_file")
)

package mockapi

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedUser is one entry of the seed file:
//
//	users:
//	  - email: a@b.com
//	    password: secret1
type SeedUser struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type seedFile struct {
	Users []SeedUser `yaml:"users"`
}

// LoadSeed reads and validates a YAML seed file.
func LoadSeed(path string) ([]SeedUser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrSeedFile, err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Join(ErrSeedFile, err)
	}

	for i, u := range f.Users {
		if normalizeEmail(u.Email) == "" || u.Password == "" {
			return nil, fmt.Errorf("%w: entry %d needs email and password", ErrSeedFile, i)
		}
	}
	return f.Users, nil
}

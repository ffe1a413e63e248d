// Package credentials provides a static, read-only credential store loaded
// from a YAML file mapping usernames to bcrypt hashes.
package credentials

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cdrscope/cdrscope/internal/domain/entities"
)

// Store holds username to password-hash mappings. Lookup only; the map is
// never mutated after load, so concurrent reads need no locking.
type Store struct {
	hashes map[string]string
}

// Load reads the users file. The file format is a flat map:
//
//	user@example.com: $2a$10$...
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading users file: %w", err)
	}

	var hashes map[string]string
	if err := yaml.Unmarshal(data, &hashes); err != nil {
		return nil, fmt.Errorf("parsing users file: %w", err)
	}

	return &Store{hashes: hashes}, nil
}

// NewStore creates a store over an in-memory map.
func NewStore(hashes map[string]string) *Store {
	return &Store{hashes: hashes}
}

// Find returns the credential for username, or nil when unknown.
func (s *Store) Find(_ context.Context, username string) (*entities.Credential, error) {
	hash, ok := s.hashes[username]
	if !ok {
		return nil, nil
	}
	return &entities.Credential{Username: username, PasswordHash: hash}, nil
}

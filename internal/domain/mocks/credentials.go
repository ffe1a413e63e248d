package mocks

import (
	"context"

	"github.com/cdrscope/cdrscope/internal/domain/entities"
)

// CredentialStore is a mock implementation of ports.CredentialStore backed
// by a username to password-hash map.
type CredentialStore struct {
	Hashes map[string]string
	Err    error
}

// Find returns the credential for username, or nil when unknown.
func (m *CredentialStore) Find(_ context.Context, username string) (*entities.Credential, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	hash, ok := m.Hashes[username]
	if !ok {
		return nil, nil
	}
	return &entities.Credential{Username: username, PasswordHash: hash}, nil
}

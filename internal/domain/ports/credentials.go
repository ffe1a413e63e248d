package ports

import (
	"context"

	"github.com/cdrscope/cdrscope/internal/domain/entities"
)

// CredentialStore looks up stored credentials. Lookup only; credential
// management is out of scope.
type CredentialStore interface {
	// Find returns the credential for username, or nil without error when
	// the user is unknown.
	Find(ctx context.Context, username string) (*entities.Credential, error)
}

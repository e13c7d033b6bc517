package auth

import (
	"context"

	"github.com/mmynk/housemate/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, OAuth, etc.)
// without changing the handler code.
type Authenticator interface {
	// Register creates a new member with the given login id and credential.
	Register(ctx context.Context, loginID, displayName, credential string) (*models.Member, error)

	// Authenticate verifies the member's credentials and returns the member if successful.
	Authenticate(ctx context.Context, loginID, credential string) (*models.Member, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}

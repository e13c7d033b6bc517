package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/housemate/internal/models"
	"github.com/mmynk/housemate/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid login id or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrLoginIDExists      = errors.New("login id already registered")
)

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage storage.MemberStore
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(store storage.MemberStore) *PasswordAuthenticator {
	return &PasswordAuthenticator{storage: store, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (a *PasswordAuthenticator) WithCost(cost int) *PasswordAuthenticator {
	a.cost = cost
	return a
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new member with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, loginID, displayName, credential string) (*models.Member, error) {
	loginID = strings.TrimSpace(loginID)
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := models.NewMember(loginID, displayName, string(hashedPassword))
	if err := a.storage.CreateMember(ctx, member); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrLoginIDExists
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

// Authenticate verifies the login id and password, returning the member if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, loginID, credential string) (*models.Member, error) {
	member, err := a.storage.GetMemberByLoginID(ctx, strings.TrimSpace(loginID))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return member, nil
}

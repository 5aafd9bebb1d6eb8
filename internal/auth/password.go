package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sharetab/sharetab/internal/identity"
	"github.com/sharetab/sharetab/internal/models"
	"github.com/sharetab/sharetab/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid party or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrPartyTaken         = errors.New("party id already registered")
)

// PasswordAuthenticator implements password-based account registration and
// login using bcrypt.
type PasswordAuthenticator struct {
	store storage.Store
	now   func() time.Time
}

// NewPasswordAuthenticator creates a new password-based authenticator backed
// by the given store.
func NewPasswordAuthenticator(store storage.Store) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		store: store,
		now:   time.Now,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new account with a hashed password. The raw party string
// is canonicalized first, so "Alice" and "alice" register the same account.
func (a *PasswordAuthenticator) Register(ctx context.Context, party, displayName, credential string) (*models.User, error) {
	p, err := identity.Parse(party)
	if err != nil {
		return nil, err
	}
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Party:        p,
		DisplayName:  displayName,
		PasswordHash: string(hashedPassword),
		CreatedAt:    a.now().Unix(),
	}

	err = a.store.RunInTx(ctx, func(tx storage.Tx) error {
		existing, err := tx.GetUser(p)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrPartyTaken
		}
		return tx.PutUser(user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the party and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, party, credential string) (*models.User, error) {
	p, err := identity.Parse(party)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	var user *models.User
	err = a.store.RunInTx(ctx, func(tx storage.Tx) error {
		u, err := tx.GetUser(p)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/sharetab/sharetab/internal/identity"
	"github.com/sharetab/sharetab/internal/models"
)

// GetUser retrieves a user by party ID, or nil if absent.
func (t *tx) GetUser(p identity.PartyID) (*models.User, error) {
	user := &models.User{}
	err := t.tx.QueryRowContext(t.ctx,
		"SELECT party, display_name, password_hash, created_at FROM users WHERE party = ?", p,
	).Scan(&user.Party, &user.DisplayName, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// PutUser inserts a new user.
func (t *tx) PutUser(u *models.User) error {
	_, err := t.tx.ExecContext(t.ctx,
		"INSERT INTO users (party, display_name, password_hash, created_at) VALUES (?, ?, ?, ?)",
		u.Party, u.DisplayName, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

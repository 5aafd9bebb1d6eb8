package models

import "github.com/sharetab/sharetab/internal/identity"

// User is a registered account behind a party ID. Registration exists only to
// establish "caller is a named party"; the ledger itself never reads users.
type User struct {
	// Party is the canonical party ID, unique across users.
	Party identity.PartyID

	// DisplayName is the human-readable name shown to other members.
	DisplayName string

	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// Package ledger implements the debt-ledger core: group membership, expense
// posting with pairwise fan-out, settlement, and balance queries. Every
// operation runs inside one store transaction, so a failure at any point
// leaves the ledger untouched.
package ledger

import (
	"time"

	"github.com/sharetab/sharetab/internal/payments"
	"github.com/sharetab/sharetab/internal/storage"
)

const (
	maxGroupNameLength          = 64
	maxExpenseDescriptionLength = 128
	maxGroupMembers             = 50
)

// Ledger owns the authoritative ledger state. All mutating and querying
// operations hang off it; it holds no hidden globals, so two Ledgers over
// two stores are fully independent.
type Ledger struct {
	store storage.Store
	bank  payments.Transferer
	now   func() time.Time
}

// New creates a Ledger over store, requesting value movement from bank.
func New(store storage.Store, bank payments.Transferer) *Ledger {
	return &Ledger{
		store: store,
		bank:  bank,
		now:   time.Now,
	}
}

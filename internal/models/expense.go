package models

import (
	"github.com/sharetab/sharetab/internal/identity"
	"github.com/sharetab/sharetab/internal/money"
)

// Expense represents a single cost posted against a group. Expenses are
// immutable after creation; the debts they fan out into live in the debt
// table and change independently as they are settled.
type Expense struct {
	// ID is the expense's numeric identifier, assigned from the expense
	// counter. Counters are shared across all groups.
	ID uint64

	// GroupID is the group this expense was posted to.
	GroupID uint64

	// Description is non-blank and at most 128 characters.
	Description string

	// Amount is the full cost paid, strictly positive.
	Amount money.Amount

	// PaidBy is the member who paid and is owed by the others.
	PaidBy identity.PartyID

	// SplitBetween is the ordered set of members sharing the cost. Never
	// empty: it defaults to the full membership at posting time.
	SplitBetween []identity.PartyID

	// Timestamp is the Unix timestamp when the expense was posted.
	Timestamp int64

	// Settled is recorded but never flipped by any operation today; the
	// per-pair debt table is the authority on what remains owed.
	Settled bool
}

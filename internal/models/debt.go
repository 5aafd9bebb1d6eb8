package models

import (
	"github.com/sharetab/sharetab/internal/identity"
	"github.com/sharetab/sharetab/internal/money"
)

// Debt records that Debtor owes Creditor Amount within one group. Both
// directions may exist at once between the same pair; a net position is
// derived by subtraction, never assumed pre-netted.
type Debt struct {
	GroupID  uint64
	Debtor   identity.PartyID
	Creditor identity.PartyID

	// Amount is strictly positive while the record exists.
	Amount money.Amount
}

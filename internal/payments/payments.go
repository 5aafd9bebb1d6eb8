// Package payments defines the external value-movement boundary. The ledger
// decides when value must move and requests it here; it never moves value
// itself.
package payments

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sharetab/sharetab/internal/identity"
	"github.com/sharetab/sharetab/internal/money"
)

// Transfer is a single request to move Amount from From to To. ID is a
// unique request identifier assigned by the caller.
type Transfer struct {
	ID      string
	GroupID uint64
	From    identity.PartyID
	To      identity.PartyID
	Amount  money.Amount
}

// NewTransfer builds a transfer request with a fresh ID.
func NewTransfer(groupID uint64, from, to identity.PartyID, amount money.Amount) Transfer {
	return Transfer{
		ID:      uuid.NewString(),
		GroupID: groupID,
		From:    from,
		To:      to,
		Amount:  amount,
	}
}

// Transferer executes transfer requests. An error refuses the transfer and
// aborts the requesting operation, which must then roll back.
type Transferer interface {
	Transfer(ctx context.Context, t Transfer) error
}

// LogTransferer acknowledges every transfer and records it in the log. It
// stands in for a real payment rail in deployments where settlement happens
// out of band.
type LogTransferer struct{}

func (LogTransferer) Transfer(_ context.Context, t Transfer) error {
	slog.Info("transfer requested",
		"transfer_id", t.ID,
		"group_id", t.GroupID,
		"from", t.From,
		"to", t.To,
		"amount", t.Amount,
	)
	return nil
}

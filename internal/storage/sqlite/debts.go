package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/sharetab/sharetab/internal/identity"
	"github.com/sharetab/sharetab/internal/money"
)

// GetDebt returns the stored debt from debtor to creditor and whether the
// record exists. Absent means zero owed.
func (t *tx) GetDebt(groupID uint64, debtor, creditor identity.PartyID) (money.Amount, bool, error) {
	var amount money.Amount
	err := t.tx.QueryRowContext(t.ctx,
		"SELECT amount FROM debts WHERE group_id = ? AND debtor = ? AND creditor = ?",
		groupID, debtor, creditor,
	).Scan(&amount)
	if err == sql.ErrNoRows {
		return money.Zero, false, nil
	}
	if err != nil {
		return money.Zero, false, fmt.Errorf("failed to get debt: %w", err)
	}
	return amount, true, nil
}

// PutDebt inserts or replaces the debt record.
func (t *tx) PutDebt(groupID uint64, debtor, creditor identity.PartyID, amount money.Amount) error {
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT OR REPLACE INTO debts (group_id, debtor, creditor, amount)
		 VALUES (?, ?, ?, ?)`,
		groupID, debtor, creditor, amount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt: %w", err)
	}
	return nil
}

// DeleteDebt removes the debt record if present.
func (t *tx) DeleteDebt(groupID uint64, debtor, creditor identity.PartyID) error {
	_, err := t.tx.ExecContext(t.ctx,
		"DELETE FROM debts WHERE group_id = ? AND debtor = ? AND creditor = ?",
		groupID, debtor, creditor,
	)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	return nil
}

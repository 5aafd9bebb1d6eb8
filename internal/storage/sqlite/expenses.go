package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/sharetab/sharetab/internal/identity"
	"github.com/sharetab/sharetab/internal/models"
)

// GetExpense retrieves an expense and its ordered split list, or nil if
// absent. Expenses stay readable even after their group is deleted.
func (t *tx) GetExpense(id uint64) (*models.Expense, error) {
	expense := &models.Expense{}
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT id, group_id, description, amount, paid_by, timestamp, settled
		 FROM expenses WHERE id = ?`, id,
	).Scan(&expense.ID, &expense.GroupID, &expense.Description, &expense.Amount,
		&expense.PaidBy, &expense.Timestamp, &expense.Settled)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	rows, err := t.tx.QueryContext(t.ctx,
		"SELECT party FROM expense_splits WHERE expense_id = ? ORDER BY position", id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var member identity.PartyID
		if err := rows.Scan(&member); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		expense.SplitBetween = append(expense.SplitBetween, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return expense, nil
}

// PutExpense inserts the expense and its split list.
func (t *tx) PutExpense(e *models.Expense) error {
	_, err := t.tx.ExecContext(t.ctx,
		`INSERT INTO expenses (id, group_id, description, amount, paid_by, timestamp, settled)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.GroupID, e.Description, e.Amount, e.PaidBy, e.Timestamp, e.Settled,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, member := range e.SplitBetween {
		_, err := t.tx.ExecContext(t.ctx,
			"INSERT INTO expense_splits (expense_id, position, party) VALUES (?, ?, ?)",
			e.ID, i, member,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	return nil
}

// ExpenseIDsForGroup returns the IDs of every expense posted to the group,
// computed from the expenses table directly.
func (t *tx) ExpenseIDsForGroup(groupID uint64) ([]uint64, error) {
	rows, err := t.tx.QueryContext(t.ctx,
		"SELECT id FROM expenses WHERE group_id = ?", groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses for group: %w", err)
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan expense id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense ids: %w", err)
	}
	return ids, nil
}

// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/sharetab/sharetab/internal/identity"
	"github.com/sharetab/sharetab/internal/models"
	"github.com/sharetab/sharetab/internal/money"
)

// Store is a transactional store for ledger state. Every ledger operation
// runs inside exactly one transaction: the writes of fn become visible
// atomically when fn returns nil, and leave no trace when it returns an
// error. Bulk operations rely on this rollback to stay all-or-nothing.
type Store interface {
	// RunInTx invokes fn with a transaction, committing if fn returns nil
	// and rolling back otherwise. The returned error is fn's error, or the
	// transaction failure if beginning or committing failed.
	RunInTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any resources held by the store.
	Close() error
}

// Tx exposes the typed state accessed within one transaction. Lookups for
// absent records return (zero, nil) rather than an error; existence policy
// belongs to the caller.
type Tx interface {
	// NextGroupID increments the group counter and returns the new value.
	// Counters only ever grow; IDs are not reused after deletes.
	NextGroupID() (uint64, error)

	// NextExpenseID increments the expense counter and returns the new value.
	NextExpenseID() (uint64, error)

	// GetGroup returns the group or nil if absent.
	GetGroup(id uint64) (*models.Group, error)

	// PutGroup inserts or replaces the group, including its member list.
	PutGroup(g *models.Group) error

	// DeleteGroup removes the group along with its membership rows and all
	// of its debts. Expense records survive; only the group-scoped state is
	// swept.
	DeleteGroup(id uint64) error

	// GroupIDsForParty returns the IDs of every group p is a member of,
	// in no particular order.
	GroupIDsForParty(p identity.PartyID) ([]uint64, error)

	// GetExpense returns the expense or nil if absent.
	GetExpense(id uint64) (*models.Expense, error)

	// PutExpense inserts the expense, including its split list.
	PutExpense(e *models.Expense) error

	// ExpenseIDsForGroup returns the IDs of every expense posted to the
	// group, in no particular order.
	ExpenseIDsForGroup(groupID uint64) ([]uint64, error)

	// GetDebt returns the stored debt from debtor to creditor and whether
	// the record exists. Absent means zero.
	GetDebt(groupID uint64, debtor, creditor identity.PartyID) (money.Amount, bool, error)

	// PutDebt inserts or replaces the debt record with amount.
	PutDebt(groupID uint64, debtor, creditor identity.PartyID, amount money.Amount) error

	// DeleteDebt removes the debt record if present.
	DeleteDebt(groupID uint64, debtor, creditor identity.PartyID) error

	// GetUser returns the user or nil if absent.
	GetUser(p identity.PartyID) (*models.User, error)

	// PutUser inserts the user.
	PutUser(u *models.User) error
}

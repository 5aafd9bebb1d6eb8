package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sharetab/sharetab/internal/identity"
	"github.com/sharetab/sharetab/internal/models"
	"github.com/sharetab/sharetab/internal/money"
	"github.com/sharetab/sharetab/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCountersAreMonotonic(t *testing.T) {
	store := newTestStore(t)

	var first, second uint64
	err := store.RunInTx(context.Background(), func(tx storage.Tx) error {
		var err error
		if first, err = tx.NextGroupID(); err != nil {
			return err
		}
		second, err = tx.NextGroupID()
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx: %v", err)
	}

	if first != 1 || second != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", first, second)
	}

	// Expense counter is independent of the group counter.
	err = store.RunInTx(context.Background(), func(tx storage.Tx) error {
		id, err := tx.NextExpenseID()
		if err != nil {
			return err
		}
		if id != 1 {
			t.Errorf("first expense id = %d, want 1", id)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx: %v", err)
	}
}

func TestGroupRoundTrip(t *testing.T) {
	store := newTestStore(t)

	want := &models.Group{
		ID:        1,
		Name:      "Room 101",
		Creator:   "alice",
		Members:   []identity.PartyID{"alice", "bob", "carol"},
		CreatedAt: 1_000_000,
	}

	err := store.RunInTx(context.Background(), func(tx storage.Tx) error {
		return tx.PutGroup(want)
	})
	if err != nil {
		t.Fatalf("PutGroup: %v", err)
	}

	err = store.RunInTx(context.Background(), func(tx storage.Tx) error {
		got, err := tx.GetGroup(1)
		if err != nil {
			return err
		}
		if got == nil {
			t.Fatal("group not found after put")
		}
		if got.Name != want.Name || got.Creator != want.Creator || got.CreatedAt != want.CreatedAt {
			t.Errorf("got %+v, want %+v", got, want)
		}
		if len(got.Members) != 3 {
			t.Fatalf("members = %v, want 3 entries", got.Members)
		}
		// Order must survive the round trip.
		for i, m := range want.Members {
			if got.Members[i] != m {
				t.Errorf("member[%d] = %s, want %s", i, got.Members[i], m)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("GetGroup: %v", err)
	}
}

func TestDeleteGroupCascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.RunInTx(ctx, func(tx storage.Tx) error {
		if err := tx.PutGroup(&models.Group{ID: 1, Name: "g", Creator: "alice", Members: []identity.PartyID{"alice", "bob"}}); err != nil {
			return err
		}
		return tx.PutDebt(1, "bob", "alice", money.FromUint64(50))
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	err = store.RunInTx(ctx, func(tx storage.Tx) error {
		return tx.DeleteGroup(1)
	})
	if err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}

	err = store.RunInTx(ctx, func(tx storage.Tx) error {
		group, err := tx.GetGroup(1)
		if err != nil {
			return err
		}
		if group != nil {
			t.Error("group still present after delete")
		}

		_, exists, err := tx.GetDebt(1, "bob", "alice")
		if err != nil {
			return err
		}
		if exists {
			t.Error("debt survived group delete")
		}

		ids, err := tx.GroupIDsForParty("alice")
		if err != nil {
			return err
		}
		if len(ids) != 0 {
			t.Errorf("membership rows survived group delete: %v", ids)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestDeleteGroupCascadesAcrossConnections(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.RunInTx(ctx, func(tx storage.Tx) error {
		if err := tx.PutGroup(&models.Group{ID: 1, Name: "g", Creator: "alice", Members: []identity.PartyID{"alice", "bob"}}); err != nil {
			return err
		}
		return tx.PutDebt(1, "bob", "alice", money.FromUint64(50))
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	// Drop every idle connection so the delete runs on a freshly opened
	// one. foreign_keys is per-connection in SQLite; the cascade must fire
	// no matter which pooled connection a transaction lands on.
	store.db.SetMaxIdleConns(0)

	err = store.RunInTx(ctx, func(tx storage.Tx) error {
		return tx.DeleteGroup(1)
	})
	if err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}

	store.db.SetMaxIdleConns(0)

	err = store.RunInTx(ctx, func(tx storage.Tx) error {
		_, exists, err := tx.GetDebt(1, "bob", "alice")
		if err != nil {
			return err
		}
		if exists {
			t.Error("debt survived group delete on a fresh connection")
		}

		for _, party := range []identity.PartyID{"alice", "bob"} {
			ids, err := tx.GroupIDsForParty(party)
			if err != nil {
				return err
			}
			if len(ids) != 0 {
				t.Errorf("membership rows for %s survived group delete: %v", party, ids)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestDebtRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.RunInTx(ctx, func(tx storage.Tx) error {
		if err := tx.PutGroup(&models.Group{ID: 1, Name: "g", Creator: "alice", Members: []identity.PartyID{"alice", "bob"}}); err != nil {
			return err
		}
		return tx.PutDebt(1, "bob", "alice", money.FromUint64(75))
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	err = store.RunInTx(ctx, func(tx storage.Tx) error {
		amount, exists, err := tx.GetDebt(1, "bob", "alice")
		if err != nil {
			return err
		}
		if !exists || amount.Cmp(money.FromUint64(75)) != 0 {
			t.Errorf("debt = %s (exists=%v), want 75", amount, exists)
		}

		// Reverse direction is a distinct record.
		_, exists, err = tx.GetDebt(1, "alice", "bob")
		if err != nil {
			return err
		}
		if exists {
			t.Error("reverse direction should not exist")
		}

		if err := tx.DeleteDebt(1, "bob", "alice"); err != nil {
			return err
		}
		_, exists, err = tx.GetDebt(1, "bob", "alice")
		if err != nil {
			return err
		}
		if exists {
			t.Error("debt still present after delete")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestRollbackLeavesNoTrace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sentinel := context.Canceled // any error will do
	err := store.RunInTx(ctx, func(tx storage.Tx) error {
		if err := tx.PutGroup(&models.Group{ID: 1, Name: "g", Creator: "alice", Members: []identity.PartyID{"alice"}}); err != nil {
			return err
		}
		return sentinel
	})
	if err != sentinel {
		t.Fatalf("RunInTx error = %v, want sentinel", err)
	}

	err = store.RunInTx(ctx, func(tx storage.Tx) error {
		group, err := tx.GetGroup(1)
		if err != nil {
			return err
		}
		if group != nil {
			t.Error("write from rolled-back transaction is visible")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestExpenseRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := &models.Expense{
		ID:           1,
		GroupID:      1,
		Description:  "Groceries",
		Amount:       money.FromUint64(150),
		PaidBy:       "alice",
		SplitBetween: []identity.PartyID{"alice", "bob", "carol"},
		Timestamp:    1_000_000,
	}

	err := store.RunInTx(ctx, func(tx storage.Tx) error {
		return tx.PutExpense(want)
	})
	if err != nil {
		t.Fatalf("PutExpense: %v", err)
	}

	err = store.RunInTx(ctx, func(tx storage.Tx) error {
		got, err := tx.GetExpense(1)
		if err != nil {
			return err
		}
		if got == nil {
			t.Fatal("expense not found after put")
		}
		if got.Description != "Groceries" || got.Amount.Cmp(want.Amount) != 0 || got.PaidBy != "alice" || got.Settled {
			t.Errorf("got %+v", got)
		}
		if len(got.SplitBetween) != 3 || got.SplitBetween[0] != "alice" {
			t.Errorf("splits = %v", got.SplitBetween)
		}

		ids, err := tx.ExpenseIDsForGroup(1)
		if err != nil {
			return err
		}
		if len(ids) != 1 || ids[0] != 1 {
			t.Errorf("expense ids = %v, want [1]", ids)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
}

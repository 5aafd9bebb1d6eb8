package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sharetab/sharetab/internal/money"
)

func TestAddExpenseDefaultSplit(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	group, err := l.CreateGroup(ctx, "creator", "Room 101 Expenses", []string{"member1", "member2"})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	expense, err := l.AddExpense(ctx, "creator", group.ID, "Groceries", money.FromUint64(150), nil)
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}

	if expense.ID != 1 {
		t.Errorf("expense id = %d, want 1", expense.ID)
	}
	if len(expense.SplitBetween) != 3 {
		t.Errorf("split = %v, want full membership", expense.SplitBetween)
	}

	// 150 / 3 = 50 owed by each non-payer.
	debts, err := l.Debts(ctx, group.ID)
	if err != nil {
		t.Fatalf("Debts: %v", err)
	}
	if len(debts) != 2 {
		t.Fatalf("debts = %v, want 2 entries", debts)
	}
	for _, d := range debts {
		if d.Creditor != "creator" {
			t.Errorf("creditor = %s, want creator", d.Creditor)
		}
		if d.Amount.Cmp(money.FromUint64(50)) != 0 {
			t.Errorf("debt %s -> %s = %s, want 50", d.Debtor, d.Creditor, d.Amount)
		}
	}
}

func TestAddExpenseExplicitSplit(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	group, err := l.CreateGroup(ctx, "creator", "Roomies", []string{"member1", "member2"})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	// Duplicates collapse; only member1 shares with the payer.
	expense, err := l.AddExpense(ctx, "creator", group.ID, "Taxi", money.FromUint64(40),
		[]string{"creator", "Member1", "member1"})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if len(expense.SplitBetween) != 2 {
		t.Fatalf("split = %v, want [creator member1]", expense.SplitBetween)
	}

	debts, err := l.Debts(ctx, group.ID)
	if err != nil {
		t.Fatalf("Debts: %v", err)
	}
	if len(debts) != 1 || debts[0].Debtor != "member1" || debts[0].Amount.Cmp(money.FromUint64(20)) != 0 {
		t.Errorf("debts = %v, want member1 -> creator 20", debts)
	}
}

func TestAddExpenseSplitMustBeMembers(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	group, err := l.CreateGroup(ctx, "creator", "Roomies", []string{"member1"})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	_, err = l.AddExpense(ctx, "creator", group.ID, "Taxi", money.FromUint64(40), []string{"stranger"})
	if !errors.Is(err, ErrUserNotInGroup) {
		t.Errorf("err = %v, want ErrUserNotInGroup", err)
	}
}

func TestAddExpenseRemainderAbsorbed(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	group, err := l.CreateGroup(ctx, "creator", "Roomies", []string{"member1", "member2"})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	// 100 / 3 truncates to 33: the ledger records 66 across two debtors and
	// absorbs the remaining 1.
	if _, err := l.AddExpense(ctx, "creator", group.ID, "Pizza", money.FromUint64(100), nil); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}

	debts, err := l.Debts(ctx, group.ID)
	if err != nil {
		t.Fatalf("Debts: %v", err)
	}
	total := money.Zero
	for _, d := range debts {
		if d.Amount.Cmp(money.FromUint64(33)) != 0 {
			t.Errorf("debt = %s, want 33", d.Amount)
		}
		total = total.Add(d.Amount)
	}
	if total.Cmp(money.FromUint64(66)) != 0 {
		t.Errorf("fanned-out total = %s, want 66", total)
	}
}

func TestAddExpenseAccumulates(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	group, err := l.CreateGroup(ctx, "creator", "Roomies", []string{"member1"})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	for range 2 {
		if _, err := l.AddExpense(ctx, "creator", group.ID, "Lunch", money.FromUint64(30), nil); err != nil {
			t.Fatalf("AddExpense: %v", err)
		}
	}

	debts, err := l.Debts(ctx, group.ID)
	if err != nil {
		t.Fatalf("Debts: %v", err)
	}
	if len(debts) != 1 || debts[0].Amount.Cmp(money.FromUint64(30)) != 0 {
		t.Errorf("debts = %v, want single 30 entry", debts)
	}
}

func TestAddExpenseValidation(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	group, err := l.CreateGroup(ctx, "creator", "Roomies", []string{"member1"})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	var descErr *InvalidExpenseDescriptionError
	if _, err := l.AddExpense(ctx, "creator", group.ID, "  ", money.FromUint64(10), nil); !errors.As(err, &descErr) {
		t.Errorf("blank description: err = %v, want InvalidExpenseDescriptionError", err)
	}
	if _, err := l.AddExpense(ctx, "creator", group.ID, strings.Repeat("x", 129), money.FromUint64(10), nil); !errors.As(err, &descErr) {
		t.Errorf("long description: err = %v, want InvalidExpenseDescriptionError", err)
	}

	var amountErr *InvalidAmountError
	if _, err := l.AddExpense(ctx, "creator", group.ID, "Lunch", money.Zero, nil); !errors.As(err, &amountErr) {
		t.Errorf("zero amount: err = %v, want InvalidAmountError", err)
	}

	if _, err := l.AddExpense(ctx, "creator", 999, "Lunch", money.FromUint64(10), nil); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("missing group: err = %v, want ErrGroupNotFound", err)
	}
	if _, err := l.AddExpense(ctx, "stranger", group.ID, "Lunch", money.FromUint64(10), nil); !errors.Is(err, ErrUserNotInGroup) {
		t.Errorf("non-member payer: err = %v, want ErrUserNotInGroup", err)
	}
}

package ledger

import (
	"context"
	"sort"

	"github.com/sharetab/sharetab/internal/identity"
	"github.com/sharetab/sharetab/internal/models"
	"github.com/sharetab/sharetab/internal/money"
	"github.com/sharetab/sharetab/internal/storage"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 30
)

// Page controls paginated listings. A zero Limit means defaultPageLimit;
// anything above maxPageLimit is clamped down to it. StartAfter excludes IDs
// less than or equal to it; zero excludes nothing, since IDs start at one.
type Page struct {
	Limit      uint32
	StartAfter uint64
}

// pageIDs applies the shared pagination contract: filter strictly greater
// than StartAfter, sort ascending, truncate to the effective limit.
func pageIDs(ids []uint64, p Page) []uint64 {
	limit := int(p.Limit)
	if limit == 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filtered := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id > p.StartAfter {
			filtered = append(filtered, id)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i] < filtered[j] })

	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}

// Group returns the group by ID.
func (l *Ledger) Group(ctx context.Context, id uint64) (*models.Group, error) {
	var group *models.Group
	err := l.store.RunInTx(ctx, func(tx storage.Tx) error {
		g, err := tx.GetGroup(id)
		if err != nil {
			return err
		}
		if g == nil {
			return ErrGroupNotFound
		}
		group = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// UserGroups lists the groups user belongs to, paginated by group ID.
func (l *Ledger) UserGroups(ctx context.Context, user string, page Page) ([]*models.Group, error) {
	p, err := identity.Parse(user)
	if err != nil {
		return nil, err
	}

	var groups []*models.Group
	err = l.store.RunInTx(ctx, func(tx storage.Tx) error {
		ids, err := tx.GroupIDsForParty(p)
		if err != nil {
			return err
		}
		for _, id := range pageIDs(ids, page) {
			g, err := tx.GetGroup(id)
			if err != nil {
				return err
			}
			if g == nil {
				return ErrGroupNotFound
			}
			groups = append(groups, g)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// Expense returns the expense by ID. Expenses outlive their group, so this
// succeeds even after the group is gone.
func (l *Ledger) Expense(ctx context.Context, id uint64) (*models.Expense, error) {
	var expense *models.Expense
	err := l.store.RunInTx(ctx, func(tx storage.Tx) error {
		e, err := tx.GetExpense(id)
		if err != nil {
			return err
		}
		if e == nil {
			return ErrExpenseNotFound
		}
		expense = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// GroupExpenses lists the group's expenses, paginated by expense ID.
func (l *Ledger) GroupExpenses(ctx context.Context, groupID uint64, page Page) ([]*models.Expense, error) {
	var expenses []*models.Expense
	err := l.store.RunInTx(ctx, func(tx storage.Tx) error {
		group, err := tx.GetGroup(groupID)
		if err != nil {
			return err
		}
		if group == nil {
			return ErrGroupNotFound
		}

		ids, err := tx.ExpenseIDsForGroup(groupID)
		if err != nil {
			return err
		}
		for _, id := range pageIDs(ids, page) {
			e, err := tx.GetExpense(id)
			if err != nil {
				return err
			}
			if e == nil {
				return ErrExpenseNotFound
			}
			expenses = append(expenses, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

// Debts lists every outstanding debt between current members of the group,
// debtor-major in membership order. Cost is quadratic in the member count,
// which the 50-member cap keeps small.
func (l *Ledger) Debts(ctx context.Context, groupID uint64) ([]models.Debt, error) {
	var debts []models.Debt
	err := l.store.RunInTx(ctx, func(tx storage.Tx) error {
		group, err := tx.GetGroup(groupID)
		if err != nil {
			return err
		}
		if group == nil {
			return ErrGroupNotFound
		}

		for _, debtor := range group.Members {
			for _, creditor := range group.Members {
				if debtor == creditor {
					continue
				}
				amount, exists, err := tx.GetDebt(groupID, debtor, creditor)
				if err != nil {
					return err
				}
				if exists && !amount.IsZero() {
					debts = append(debts, models.Debt{
						GroupID:  groupID,
						Debtor:   debtor,
						Creditor: creditor,
						Amount:   amount,
					})
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return debts, nil
}

// Balance returns the amount debtor currently owes creditor within the
// group, zero when no debt entry exists in that direction.
func (l *Ledger) Balance(ctx context.Context, groupID uint64, debtor, creditor string) (money.Amount, error) {
	d, err := identity.Parse(debtor)
	if err != nil {
		return money.Zero, err
	}
	c, err := identity.Parse(creditor)
	if err != nil {
		return money.Zero, err
	}

	owed := money.Zero
	err = l.store.RunInTx(ctx, func(tx storage.Tx) error {
		group, err := tx.GetGroup(groupID)
		if err != nil {
			return err
		}
		if group == nil {
			return ErrGroupNotFound
		}
		if !group.HasMember(d) || !group.HasMember(c) {
			return ErrUserNotInGroup
		}

		amount, exists, err := tx.GetDebt(groupID, d, c)
		if err != nil {
			return err
		}
		if exists {
			owed = amount
		}
		return nil
	})
	if err != nil {
		return money.Zero, err
	}
	return owed, nil
}

// Direction says which way a net balance points.
type Direction int8

const (
	// DirectionOwes means the queried user owes the other member.
	DirectionOwes Direction = -1
	// DirectionOwed means the other member owes the queried user.
	DirectionOwed Direction = 1
)

// Balance is the queried user's net position against one other member.
// Amount is always positive; Direction carries the sign.
type Balance struct {
	Other     identity.PartyID
	Amount    money.Amount
	Direction Direction
}

// BalanceSummary aggregates a user's position across one group. TotalOwed
// sums the user's owing nets, TotalOwedTo the owed nets. NetBalance is
// TotalOwedTo - TotalOwed floored at zero: the aggregate never goes
// negative even when the per-member directions say the user is net in debt.
type BalanceSummary struct {
	Balances    []Balance
	TotalOwed   money.Amount
	TotalOwedTo money.Amount
	NetBalance  money.Amount
}

// BalanceSummary nets the user's position against each other group member.
// Members with zero owed in both directions are omitted. The list is sorted
// owing entries first, then ascending by amount within each direction.
func (l *Ledger) BalanceSummary(ctx context.Context, groupID uint64, user string) (*BalanceSummary, error) {
	p, err := identity.Parse(user)
	if err != nil {
		return nil, err
	}

	summary := &BalanceSummary{
		TotalOwed:   money.Zero,
		TotalOwedTo: money.Zero,
		NetBalance:  money.Zero,
	}
	err = l.store.RunInTx(ctx, func(tx storage.Tx) error {
		group, err := tx.GetGroup(groupID)
		if err != nil {
			return err
		}
		if group == nil {
			return ErrGroupNotFound
		}
		if !group.HasMember(p) {
			return ErrUserNotInGroup
		}

		for _, other := range group.Members {
			if other == p {
				continue
			}

			userOwes, _, err := tx.GetDebt(groupID, p, other)
			if err != nil {
				return err
			}
			otherOwes, _, err := tx.GetDebt(groupID, other, p)
			if err != nil {
				return err
			}
			if userOwes.IsZero() && otherOwes.IsZero() {
				continue
			}

			var b Balance
			if userOwes.Cmp(otherOwes) > 0 {
				b = Balance{Other: other, Amount: userOwes.Sub(otherOwes), Direction: DirectionOwes}
				summary.TotalOwed = summary.TotalOwed.Add(b.Amount)
			} else {
				b = Balance{Other: other, Amount: otherOwes.Sub(userOwes), Direction: DirectionOwed}
				summary.TotalOwedTo = summary.TotalOwedTo.Add(b.Amount)
			}
			summary.Balances = append(summary.Balances, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(summary.Balances, func(i, j int) bool {
		a, b := summary.Balances[i], summary.Balances[j]
		if a.Direction != b.Direction {
			return a.Direction < b.Direction
		}
		return a.Amount.Cmp(b.Amount) < 0
	})

	if summary.TotalOwedTo.Cmp(summary.TotalOwed) >= 0 {
		summary.NetBalance = summary.TotalOwedTo.Sub(summary.TotalOwed)
	}
	return summary, nil
}

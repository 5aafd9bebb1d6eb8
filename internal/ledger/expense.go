package ledger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sharetab/sharetab/internal/identity"
	"github.com/sharetab/sharetab/internal/models"
	"github.com/sharetab/sharetab/internal/money"
	"github.com/sharetab/sharetab/internal/storage"
)

// AddExpense posts an expense paid by caller against the group and fans the
// cost out into pairwise debts owed to the payer.
//
// Each split member other than the payer comes to owe the payer
// amount/len(split), with truncating division. The division remainder is
// absorbed: it is charged to nobody, so the fanned-out total can fall short
// of the posted amount by up to len(split)-1 minor units. That quirk favors
// the payer's debtors and is intentional, matching what the system has
// always recorded.
//
// An empty splitBetween means the full membership at posting time.
func (l *Ledger) AddExpense(ctx context.Context, caller identity.PartyID, groupID uint64, description string, amount money.Amount, splitBetween []string) (*models.Expense, error) {
	if strings.TrimSpace(description) == "" {
		return nil, &InvalidExpenseDescriptionError{Reason: "expense description cannot be empty"}
	}
	if len(description) > maxExpenseDescriptionLength {
		return nil, &InvalidExpenseDescriptionError{Reason: "description exceeds maximum length of 128"}
	}
	if amount.IsZero() {
		return nil, &InvalidAmountError{Reason: "amount must be greater than zero"}
	}

	var expense *models.Expense
	err := l.store.RunInTx(ctx, func(tx storage.Tx) error {
		group, err := tx.GetGroup(groupID)
		if err != nil {
			return err
		}
		if group == nil {
			return ErrGroupNotFound
		}
		if !group.HasMember(caller) {
			return ErrUserNotInGroup
		}

		split, err := resolveSplit(group, splitBetween)
		if err != nil {
			return err
		}

		id, err := tx.NextExpenseID()
		if err != nil {
			return err
		}
		expense = &models.Expense{
			ID:           id,
			GroupID:      groupID,
			Description:  description,
			Amount:       amount,
			PaidBy:       caller,
			SplitBetween: split,
			Timestamp:    l.now().Unix(),
			Settled:      false,
		}
		if err := tx.PutExpense(expense); err != nil {
			return err
		}

		perHead := amount.DivUint64(uint64(len(split)))

		for _, member := range split {
			if member == caller {
				continue
			}
			current, _, err := tx.GetDebt(groupID, member, caller)
			if err != nil {
				return err
			}
			if err := tx.PutDebt(groupID, member, caller, current.Add(perHead)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("expense added",
		"expense_id", expense.ID,
		"group_id", groupID,
		"paid_by", caller,
		"amount", amount,
		"split_between", len(expense.SplitBetween),
	)
	return expense, nil
}

// resolveSplit turns the raw split list into the ordered set of members
// sharing the expense. Empty input means everyone.
func resolveSplit(group *models.Group, splitBetween []string) ([]identity.PartyID, error) {
	if len(splitBetween) == 0 {
		split := make([]identity.PartyID, len(group.Members))
		copy(split, group.Members)
		return split, nil
	}

	parsed, err := identity.ParseAll(splitBetween)
	if err != nil {
		return nil, err
	}
	var split []identity.PartyID
	for _, p := range parsed {
		if !group.HasMember(p) {
			return nil, ErrUserNotInGroup
		}
		if !containsParty(split, p) {
			split = append(split, p)
		}
	}
	return split, nil
}

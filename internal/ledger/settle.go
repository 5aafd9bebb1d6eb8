package ledger

import (
	"context"
	"log/slog"

	"github.com/sharetab/sharetab/internal/identity"
	"github.com/sharetab/sharetab/internal/money"
	"github.com/sharetab/sharetab/internal/payments"
	"github.com/sharetab/sharetab/internal/storage"
)

// Payment is one settlement leg: Amount paid to To.
type Payment struct {
	To     identity.PartyID
	Amount money.Amount
}

// SettleOutcome reports the result of a single-debt settlement.
type SettleOutcome struct {
	To        identity.PartyID
	Paid      money.Amount
	Remaining money.Amount
}

// SettleAllOutcome reports the result of settling every debt the caller owed
// within one group. Payments holds one entry per creditor, in membership
// order.
type SettleAllOutcome struct {
	TotalPaid money.Amount
	Payments  []Payment
}

// SettleDebt pays amount of the caller's debt toward to, funded by the value
// attached to the call. Paying the debt down to exactly zero deletes it. The
// transfer request goes out inside the same transaction, after the debt
// update, so a refused transfer undoes the settlement.
func (l *Ledger) SettleDebt(ctx context.Context, caller identity.PartyID, groupID uint64, to string, amount, attached money.Amount) (*SettleOutcome, error) {
	recipient, err := identity.Parse(to)
	if err != nil {
		return nil, err
	}
	if recipient == caller {
		return nil, ErrCannotSettleWithSelf
	}

	var outcome *SettleOutcome
	err = l.store.RunInTx(ctx, func(tx storage.Tx) error {
		group, err := tx.GetGroup(groupID)
		if err != nil {
			return err
		}
		if group == nil {
			return ErrGroupNotFound
		}
		if !group.HasMember(caller) || !group.HasMember(recipient) {
			return ErrUserNotInGroup
		}
		if amount.IsZero() {
			return &InvalidAmountError{Reason: "amount must be greater than zero"}
		}

		debt, _, err := tx.GetDebt(groupID, caller, recipient)
		if err != nil {
			return err
		}
		if debt.IsZero() {
			return ErrNoDebtExists
		}
		if amount.Cmp(debt) > 0 {
			return ErrInvalidPayment
		}
		if attached.Cmp(amount) < 0 {
			return &InsufficientFundsError{Needed: amount, Available: attached}
		}

		remaining := debt.Sub(amount)
		if remaining.IsZero() {
			if err := tx.DeleteDebt(groupID, caller, recipient); err != nil {
				return err
			}
		} else {
			if err := tx.PutDebt(groupID, caller, recipient, remaining); err != nil {
				return err
			}
		}

		if err := l.bank.Transfer(ctx, payments.NewTransfer(groupID, caller, recipient, amount)); err != nil {
			return err
		}

		outcome = &SettleOutcome{To: recipient, Paid: amount, Remaining: remaining}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("debt settled",
		"group_id", groupID,
		"from", caller,
		"to", recipient,
		"amount", amount,
		"remaining_debt", outcome.Remaining,
	)
	return outcome, nil
}

// SettleAllDebts pays off every debt the caller owes within the group, one
// transfer per creditor in membership order, funded by the attached value.
//
// The debts are removed while they are being summed, before the sufficiency
// check; the operation leans on transactional rollback to make insufficiency
// (or any later failure) all-or-nothing.
func (l *Ledger) SettleAllDebts(ctx context.Context, caller identity.PartyID, groupID uint64, attached money.Amount) (*SettleAllOutcome, error) {
	var outcome *SettleAllOutcome
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

		total := money.Zero
		var due []Payment
		for _, creditor := range group.Members {
			if creditor == caller {
				continue
			}
			debt, exists, err := tx.GetDebt(groupID, caller, creditor)
			if err != nil {
				return err
			}
			if !exists || debt.IsZero() {
				continue
			}
			total = total.Add(debt)
			due = append(due, Payment{To: creditor, Amount: debt})
			if err := tx.DeleteDebt(groupID, caller, creditor); err != nil {
				return err
			}
		}

		if total.IsZero() {
			return ErrNoDebtExists
		}
		if attached.Cmp(total) < 0 {
			return &InsufficientFundsError{Needed: total, Available: attached}
		}

		for _, p := range due {
			if err := l.bank.Transfer(ctx, payments.NewTransfer(groupID, caller, p.To, p.Amount)); err != nil {
				return err
			}
		}

		outcome = &SettleAllOutcome{TotalPaid: total, Payments: due}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("all debts settled",
		"group_id", groupID,
		"from", caller,
		"total_paid", outcome.TotalPaid,
		"payments", len(outcome.Payments),
	)
	return outcome, nil
}

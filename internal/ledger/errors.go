package ledger

import (
	"errors"
	"fmt"

	"github.com/sharetab/sharetab/internal/money"
)

// Sentinel errors for existence, authorization-adjacent, and state failures.
// Every error is terminal for its operation; nothing is retried and no
// partial mutation survives.
var (
	ErrGroupNotFound        = errors.New("group not found")
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrUserNotInGroup       = errors.New("user not in group")
	ErrUserAlreadyInGroup   = errors.New("user already in group")
	ErrNoDebtExists         = errors.New("no debt exists between users")
	ErrInvalidPayment       = errors.New("invalid payment: cannot pay more than owed")
	ErrCannotSettleWithSelf = errors.New("cannot settle with yourself")
	ErrUnsettledDebts       = errors.New("cannot leave group with unsettled debts")
	ErrTooManyMembers       = fmt.Errorf("too many members: maximum is %d", maxGroupMembers)
)

// InvalidGroupNameError reports a group name that failed validation.
type InvalidGroupNameError struct {
	Reason string
}

func (e *InvalidGroupNameError) Error() string {
	return "invalid group name: " + e.Reason
}

// InvalidExpenseDescriptionError reports a description that failed validation.
type InvalidExpenseDescriptionError struct {
	Reason string
}

func (e *InvalidExpenseDescriptionError) Error() string {
	return "invalid expense description: " + e.Reason
}

// InvalidAmountError reports an unusable monetary amount.
type InvalidAmountError struct {
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return "invalid amount: " + e.Reason
}

// InsufficientFundsError reports that the value attached to a settlement call
// fell short of what the settlement required. Both figures are surfaced to
// the caller unmodified.
type InsufficientFundsError struct {
	Needed    money.Amount
	Available money.Amount
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: needed %s, had %s", e.Needed, e.Available)
}

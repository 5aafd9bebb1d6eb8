package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/sharetab/sharetab/internal/identity"
	"github.com/sharetab/sharetab/internal/ledger"
)

// asConnectError maps ledger and identity errors onto Connect codes so
// clients can distinguish validation, existence, membership, and state
// failures. The original message travels unmodified.
func asConnectError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ledger.ErrGroupNotFound),
		errors.Is(err, ledger.ErrExpenseNotFound):
		return connect.NewError(connect.CodeNotFound, err)

	case errors.Is(err, ledger.ErrUserNotInGroup):
		return connect.NewError(connect.CodePermissionDenied, err)

	case errors.Is(err, ledger.ErrUserAlreadyInGroup),
		errors.Is(err, ledger.ErrNoDebtExists),
		errors.Is(err, ledger.ErrInvalidPayment),
		errors.Is(err, ledger.ErrCannotSettleWithSelf),
		errors.Is(err, ledger.ErrUnsettledDebts):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	}

	var (
		nameErr   *ledger.InvalidGroupNameError
		descErr   *ledger.InvalidExpenseDescriptionError
		amountErr *ledger.InvalidAmountError
		partyErr  *identity.InvalidPartyError
		fundsErr  *ledger.InsufficientFundsError
	)
	switch {
	case errors.As(err, &nameErr),
		errors.As(err, &descErr),
		errors.As(err, &amountErr),
		errors.As(err, &partyErr),
		errors.Is(err, ledger.ErrTooManyMembers):
		return connect.NewError(connect.CodeInvalidArgument, err)

	case errors.As(err, &fundsErr):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	}

	return connect.NewError(connect.CodeInternal, err)
}

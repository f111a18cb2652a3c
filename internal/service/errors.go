package service

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/kidoikoiaki/internal/calculator"
	"github.com/mmynk/kidoikoiaki/internal/storage"
)

// storeError maps a storage error onto a Connect error code.
func storeError(err error) *connect.Error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrParticipantInUse):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, storage.ErrAmountOutOfRange):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// calculatorError maps a balance computation failure. A stored ledger that fails
// validation means the store has drifted out of shape, not that the caller erred.
func calculatorError(err error) *connect.Error {
	switch {
	case errors.Is(err, calculator.ErrUnknownParticipant),
		errors.Is(err, calculator.ErrInvalidExpense),
		errors.Is(err, calculator.ErrDuplicateParticipant):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(format string, args ...any) *connect.Error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

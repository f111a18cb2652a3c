package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownParticipant matches an UnknownParticipantError.
	ErrUnknownParticipant = errors.New("unknown participant")

	// ErrInvalidExpense matches an InvalidExpenseError.
	ErrInvalidExpense = errors.New("invalid expense")

	// ErrDuplicateParticipant is returned when a roster lists the same id twice.
	ErrDuplicateParticipant = errors.New("duplicate participant in roster")
)

// Roles a participant can play in an expense.
const (
	RolePayer       = "payer"
	RoleBeneficiary = "beneficiary"
)

// UnknownParticipantError reports an expense that references an id missing from the roster.
type UnknownParticipantError struct {
	ExpenseIndex  int
	ParticipantID string
	Role          string
}

func (e *UnknownParticipantError) Error() string {
	return fmt.Sprintf("expense %d: %s %q is not in the roster", e.ExpenseIndex, e.Role, e.ParticipantID)
}

func (e *UnknownParticipantError) Is(target error) bool {
	return target == ErrUnknownParticipant
}

// InvalidExpenseError reports an expense that breaks the input contract
// (non-positive amount, no beneficiaries, repeated beneficiary).
type InvalidExpenseError struct {
	ExpenseIndex int
	Reason       string
}

func (e *InvalidExpenseError) Error() string {
	return fmt.Sprintf("expense %d: %s", e.ExpenseIndex, e.Reason)
}

func (e *InvalidExpenseError) Is(target error) bool {
	return target == ErrInvalidExpense
}

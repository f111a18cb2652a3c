// Package calculator holds the balance and settlement engine: it turns a roster
// and a set of expenses into per-participant net balances, and balances into the
// transfers that settle them.
//
// Everything in this package is pure. Functions never mutate their inputs and
// hold no state between calls, so they are safe to call concurrently.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Participant is a roster entry. Identity is by ID; Name is display only and may repeat.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Expense is one payment made by PayerID on behalf of BeneficiaryIDs.
// The amount is split evenly among the beneficiaries.
type Expense struct {
	PayerID        string          `json:"payerId"`
	Amount         decimal.Decimal `json:"amount"`
	BeneficiaryIDs []string        `json:"beneficiaryIds"`
}

// Balance is the accounting result for one participant.
type Balance struct {
	ParticipantID   string          `json:"participantId"`
	ParticipantName string          `json:"participantName"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	TotalOwed       decimal.Decimal `json:"totalOwed"`
	NetBalance      decimal.Decimal `json:"netBalance"` // Positive = owed money, Negative = owes money
}

// ComputeBalances reduces a roster and an expense set into one Balance per
// participant, in roster order.
//
// Algorithm:
//   - payer.paid += amount
//   - share = amount / len(beneficiaries), each beneficiary.owed += share
//   - net = paid - owed
//
// Shares are kept unrounded; TotalPaid, TotalOwed and NetBalance are rounded to
// cents (half away from zero) only when the Balance is emitted.
//
// The whole input is validated before anything is accumulated. An expense that
// references an id missing from the roster yields an *UnknownParticipantError,
// a malformed expense an *InvalidExpenseError; no partial result is returned.
func ComputeBalances(roster []Participant, expenses []Expense) ([]Balance, error) {
	index, err := indexRoster(roster)
	if err != nil {
		return nil, err
	}
	if err := validateExpenses(index, expenses); err != nil {
		return nil, err
	}

	type account struct {
		paid decimal.Decimal
		owed decimal.Decimal
	}
	accounts := make([]account, len(roster))
	for i := range accounts {
		accounts[i] = account{paid: decimal.Zero, owed: decimal.Zero}
	}

	for _, expense := range expenses {
		payer := &accounts[index[expense.PayerID]]
		payer.paid = payer.paid.Add(expense.Amount)

		share := expense.Amount.Div(decimal.NewFromInt(int64(len(expense.BeneficiaryIDs))))
		for _, id := range expense.BeneficiaryIDs {
			beneficiary := &accounts[index[id]]
			beneficiary.owed = beneficiary.owed.Add(share)
		}
	}

	balances := make([]Balance, len(roster))
	for i, p := range roster {
		acc := accounts[i]
		balances[i] = Balance{
			ParticipantID:   p.ID,
			ParticipantName: p.Name,
			TotalPaid:       RoundAmount(acc.paid),
			TotalOwed:       RoundAmount(acc.owed),
			NetBalance:      RoundAmount(acc.paid.Sub(acc.owed)),
		}
	}

	return balances, nil
}

// indexRoster maps participant ids to their roster position.
func indexRoster(roster []Participant) (map[string]int, error) {
	index := make(map[string]int, len(roster))
	for i, p := range roster {
		if _, exists := index[p.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParticipant, p.ID)
		}
		index[p.ID] = i
	}
	return index, nil
}

func validateExpenses(index map[string]int, expenses []Expense) error {
	for i, expense := range expenses {
		if !expense.Amount.IsPositive() {
			return &InvalidExpenseError{ExpenseIndex: i, Reason: fmt.Sprintf("amount must be positive, got %s", expense.Amount)}
		}
		if len(expense.BeneficiaryIDs) == 0 {
			return &InvalidExpenseError{ExpenseIndex: i, Reason: "at least one beneficiary is required"}
		}
		if _, ok := index[expense.PayerID]; !ok {
			return &UnknownParticipantError{ExpenseIndex: i, ParticipantID: expense.PayerID, Role: RolePayer}
		}

		seen := make(map[string]bool, len(expense.BeneficiaryIDs))
		for _, id := range expense.BeneficiaryIDs {
			if _, ok := index[id]; !ok {
				return &UnknownParticipantError{ExpenseIndex: i, ParticipantID: id, Role: RoleBeneficiary}
			}
			if seen[id] {
				return &InvalidExpenseError{ExpenseIndex: i, Reason: fmt.Sprintf("beneficiary %q listed twice", id)}
			}
			seen[id] = true
		}
	}
	return nil
}

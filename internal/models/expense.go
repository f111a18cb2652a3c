package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Category classifies an expense.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryAccommodation Category = "accommodation"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryHealth        Category = "health"
	CategoryUtilities     Category = "utilities"
	CategoryOther         Category = "other"

	// CategoryReimbursement marks a recorded settle-up payment between two participants.
	CategoryReimbursement Category = "reimbursement"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryAccommodation,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHealth,
	CategoryUtilities,
	CategoryOther,
	CategoryReimbursement,
}

// ParseCategory validates s. An empty string yields CategoryOther.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return CategoryOther, nil
	}
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Expense represents one payment made by a participant on behalf of others.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// ListID is the list this expense belongs to.
	ListID string

	// Title is a short description (e.g., "Groceries", "Train tickets").
	Title string

	// Amount is the total paid, in the list's currency, with two decimal places.
	Amount decimal.Decimal

	// Category classifies the expense. Defaults to CategoryOther.
	Category Category

	// PayerID is the participant who paid.
	PayerID string

	// PayerName is filled in by the store on reads.
	PayerName string

	// Participants are the beneficiaries, in roster order.
	// The amount is split evenly among them.
	Participants []ParticipantRef

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// BeneficiaryIDs returns the IDs of the expense's beneficiaries.
func (e *Expense) BeneficiaryIDs() []string {
	ids := make([]string, len(e.Participants))
	for i, p := range e.Participants {
		ids[i] = p.ID
	}
	return ids
}

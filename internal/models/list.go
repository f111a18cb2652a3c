package models

// List represents an expense-sharing group.
type List struct {
	// ID is the unique identifier for the list (UUID format).
	ID string

	// Name is the display name of the list (e.g., "Ski trip", "Flat 4B").
	Name string

	// Description is optional free text.
	Description string

	// CreatedAt is the Unix timestamp when the list was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last rename or description change.
	UpdatedAt int64
}

// Ledger is a list together with everything needed to compute its balances.
// Stores load it in a single transaction so the roster and expenses agree.
type Ledger struct {
	List         List
	Participants []Participant // roster order
	Expenses     []Expense     // newest first
}

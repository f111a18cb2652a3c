package models

// Participant is a person on a list's roster.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// ListID is the list this participant belongs to.
	ListID string

	// Name is display only. Two participants may share a name.
	Name string

	// CreatedAt is the Unix timestamp when the participant was added.
	CreatedAt int64
}

// ParticipantRef is the short form of a participant embedded in an expense.
type ParticipantRef struct {
	ID   string
	Name string
}

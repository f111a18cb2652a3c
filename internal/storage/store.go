// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/kidoikoiaki/internal/models"
)

var (
	// ErrNotFound is wrapped by every lookup that matches no row.
	ErrNotFound = errors.New("not found")

	// ErrParticipantInUse is returned when deleting a participant who paid for an
	// expense or is the only beneficiary of one.
	ErrParticipantInUse = errors.New("participant is referenced by expenses")

	// ErrAmountOutOfRange is returned when an amount in cents does not fit an int64.
	ErrAmountOutOfRange = errors.New("amount out of range")
)

// Store defines the interface for list, participant and expense storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateList persists a new list. ID, CreatedAt and UpdatedAt are populated by the store.
	CreateList(ctx context.Context, list *models.List) error

	// GetList retrieves a list by its ID.
	GetList(ctx context.Context, listID string) (*models.List, error)

	// ListLists returns every list, newest first.
	ListLists(ctx context.Context) ([]models.List, error)

	// UpdateList changes the name and description of an existing list and bumps UpdatedAt.
	UpdateList(ctx context.Context, list *models.List) error

	// DeleteList removes a list with its participants and expenses.
	DeleteList(ctx context.Context, listID string) error

	// GetLedger loads a list, its roster and its expenses in one consistent read.
	GetLedger(ctx context.Context, listID string) (*models.Ledger, error)

	// AddParticipant persists a new participant on participant.ListID.
	AddParticipant(ctx context.Context, participant *models.Participant) error

	// GetParticipant retrieves a participant by its ID.
	GetParticipant(ctx context.Context, participantID string) (*models.Participant, error)

	// ListParticipants returns a list's roster in insertion order.
	ListParticipants(ctx context.Context, listID string) ([]models.Participant, error)

	// RenameParticipant changes a participant's display name.
	RenameParticipant(ctx context.Context, participantID, name string) error

	// DeleteParticipant removes a participant and drops them from every beneficiary set.
	// Returns ErrParticipantInUse if that would orphan an expense.
	DeleteParticipant(ctx context.Context, participantID string) error

	// CreateExpense persists a new expense. ID and CreatedAt are populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with payer and beneficiary names.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenses returns a list's expenses, newest first.
	ListExpenses(ctx context.Context, listID string) ([]models.Expense, error)

	// UpdateExpense replaces the title, amount, category, payer and beneficiaries of an expense.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense.
	DeleteExpense(ctx context.Context, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}

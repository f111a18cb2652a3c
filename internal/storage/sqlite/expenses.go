package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/kidoikoiaki/internal/models"
	"github.com/mmynk/kidoikoiaki/internal/storage"
)

const selectExpense = `
	SELECT e.id, e.list_id, e.title, e.amount_cents, e.category, e.payer_id, p.name, e.created_at
	FROM expenses e
	JOIN participants p ON p.id = e.payer_id`

// CreateExpense persists a new expense and its beneficiaries.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Category == "" {
		expense.Category = models.CategoryOther
	}

	cents, err := toCents(expense.Amount)
	if err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := getList(ctx, tx, expense.ListID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, list_id, title, amount_cents, category, payer_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			expense.ID, expense.ListID, expense.Title, cents,
			string(expense.Category), expense.PayerID, expense.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		return insertBeneficiaries(ctx, tx, expense)
	})
}

// GetExpense retrieves an expense by ID, including payer and beneficiary names.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := scanExpense(s.db.QueryRowContext(ctx, selectExpense+" WHERE e.id = ?", expenseID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	beneficiaries, err := loadBeneficiaries(ctx, s.db, "ep.expense_id = ?", expenseID)
	if err != nil {
		return nil, err
	}
	expense.Participants = beneficiaries[expense.ID]

	return &expense, nil
}

// ListExpenses retrieves a list's expenses, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, listID string) ([]models.Expense, error) {
	return listExpenses(ctx, s.db, listID)
}

func listExpenses(ctx context.Context, q querier, listID string) ([]models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		selectExpense+" WHERE e.list_id = ? ORDER BY e.created_at DESC, e.rowid DESC",
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	if len(expenses) == 0 {
		return expenses, nil
	}

	beneficiaries, err := loadBeneficiaries(ctx, q,
		"ep.expense_id IN (SELECT id FROM expenses WHERE list_id = ?)", listID)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		expenses[i].Participants = beneficiaries[expenses[i].ID]
	}

	return expenses, nil
}

// UpdateExpense replaces an expense's fields and beneficiaries.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.Category == "" {
		expense.Category = models.CategoryOther
	}
	cents, err := toCents(expense.Amount)
	if err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE expenses SET title = ?, amount_cents = ?, category = ?, payer_id = ?
			 WHERE id = ?`,
			expense.Title, cents, string(expense.Category), expense.PayerID, expense.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}
		if err := requireAffected(result, "expense", expense.ID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM expense_participants WHERE expense_id = ?", expense.ID); err != nil {
			return fmt.Errorf("failed to clear expense participants: %w", err)
		}
		return insertBeneficiaries(ctx, tx, expense)
	})
}

// DeleteExpense removes an expense. Its beneficiary rows cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return requireAffected(result, "expense", expenseID)
}

func insertBeneficiaries(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	for _, p := range expense.Participants {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, participant_id) VALUES (?, ?)",
			expense.ID, p.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense participant: %w", err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (models.Expense, error) {
	var (
		e        models.Expense
		cents    int64
		category string
	)
	if err := row.Scan(&e.ID, &e.ListID, &e.Title, &cents, &category, &e.PayerID, &e.PayerName, &e.CreatedAt); err != nil {
		return models.Expense{}, err
	}
	e.Amount = fromCents(cents)
	e.Category = models.Category(category)
	return e, nil
}

// loadBeneficiaries returns beneficiary refs keyed by expense ID, each slice in roster order.
func loadBeneficiaries(ctx context.Context, q querier, where string, args ...any) (map[string][]models.ParticipantRef, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT ep.expense_id, p.id, p.name
		 FROM expense_participants ep
		 JOIN participants p ON p.id = ep.participant_id
		 WHERE `+where+`
		 ORDER BY p.created_at, p.rowid`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense participants: %w", err)
	}
	defer rows.Close()

	refs := make(map[string][]models.ParticipantRef)
	for rows.Next() {
		var expenseID string
		var ref models.ParticipantRef
		if err := rows.Scan(&expenseID, &ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("failed to scan expense participant: %w", err)
		}
		refs[expenseID] = append(refs[expenseID], ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense participants: %w", err)
	}

	return refs, nil
}

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

// CreateList persists a new list to the database.
func (s *SQLiteStore) CreateList(ctx context.Context, list *models.List) error {
	// Generate ID if not set
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	if list.CreatedAt == 0 {
		list.CreatedAt = time.Now().Unix()
	}
	list.UpdatedAt = list.CreatedAt

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO lists (id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		list.ID, list.Name, list.Description, list.CreatedAt, list.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert list: %w", err)
	}

	return nil
}

// GetList retrieves a list by ID.
func (s *SQLiteStore) GetList(ctx context.Context, listID string) (*models.List, error) {
	return getList(ctx, s.db, listID)
}

func getList(ctx context.Context, q querier, listID string) (*models.List, error) {
	list := &models.List{}
	err := q.QueryRowContext(ctx,
		"SELECT id, name, description, created_at, updated_at FROM lists WHERE id = ?",
		listID,
	).Scan(&list.ID, &list.Name, &list.Description, &list.CreatedAt, &list.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("list %s: %w", listID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}

	return list, nil
}

// ListLists retrieves all lists, newest first.
func (s *SQLiteStore) ListLists(ctx context.Context) ([]models.List, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, created_at, updated_at FROM lists ORDER BY created_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	defer rows.Close()

	var lists []models.List
	for rows.Next() {
		var list models.List
		if err := rows.Scan(&list.ID, &list.Name, &list.Description, &list.CreatedAt, &list.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lists: %w", err)
	}

	return lists, nil
}

// UpdateList updates the name and description of a list.
func (s *SQLiteStore) UpdateList(ctx context.Context, list *models.List) error {
	list.UpdatedAt = time.Now().Unix()

	result, err := s.db.ExecContext(ctx,
		"UPDATE lists SET name = ?, description = ?, updated_at = ? WHERE id = ?",
		list.Name, list.Description, list.UpdatedAt, list.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}

	return requireAffected(result, "list", list.ID)
}

// DeleteList removes a list along with its participants and expenses.
func (s *SQLiteStore) DeleteList(ctx context.Context, listID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		// Expenses reference participants, so they go first
		if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE list_id = ?", listID); err != nil {
			return fmt.Errorf("failed to delete expenses: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE list_id = ?", listID); err != nil {
			return fmt.Errorf("failed to delete participants: %w", err)
		}

		result, err := tx.ExecContext(ctx, "DELETE FROM lists WHERE id = ?", listID)
		if err != nil {
			return fmt.Errorf("failed to delete list: %w", err)
		}
		return requireAffected(result, "list", listID)
	})
}

// GetLedger loads a list with its roster and expenses in a single transaction.
func (s *SQLiteStore) GetLedger(ctx context.Context, listID string) (*models.Ledger, error) {
	var ledger *models.Ledger

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		list, err := getList(ctx, tx, listID)
		if err != nil {
			return err
		}
		participants, err := listParticipants(ctx, tx, listID)
		if err != nil {
			return err
		}
		expenses, err := listExpenses(ctx, tx, listID)
		if err != nil {
			return err
		}

		ledger = &models.Ledger{List: *list, Participants: participants, Expenses: expenses}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ledger, nil
}

// requireAffected turns a zero-row update or delete into storage.ErrNotFound.
func requireAffected(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}

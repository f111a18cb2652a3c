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

// AddParticipant persists a new participant on an existing list.
func (s *SQLiteStore) AddParticipant(ctx context.Context, participant *models.Participant) error {
	if participant.ID == "" {
		participant.ID = uuid.New().String()
	}
	if participant.CreatedAt == 0 {
		participant.CreatedAt = time.Now().Unix()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := getList(ctx, tx, participant.ListID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			"INSERT INTO participants (id, list_id, name, created_at) VALUES (?, ?, ?, ?)",
			participant.ID, participant.ListID, participant.Name, participant.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
		return nil
	})
}

// GetParticipant retrieves a participant by ID.
func (s *SQLiteStore) GetParticipant(ctx context.Context, participantID string) (*models.Participant, error) {
	p := &models.Participant{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, list_id, name, created_at FROM participants WHERE id = ?",
		participantID,
	).Scan(&p.ID, &p.ListID, &p.Name, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("participant %s: %w", participantID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return p, nil
}

// ListParticipants retrieves a list's roster in insertion order.
func (s *SQLiteStore) ListParticipants(ctx context.Context, listID string) ([]models.Participant, error) {
	return listParticipants(ctx, s.db, listID)
}

func listParticipants(ctx context.Context, q querier, listID string) ([]models.Participant, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, list_id, name, created_at FROM participants WHERE list_id = ? ORDER BY created_at, rowid",
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.ListID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

// RenameParticipant changes a participant's display name.
func (s *SQLiteStore) RenameParticipant(ctx context.Context, participantID, name string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE participants SET name = ? WHERE id = ?",
		name, participantID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename participant: %w", err)
	}

	return requireAffected(result, "participant", participantID)
}

// DeleteParticipant removes a participant from the roster and from every beneficiary set.
// A participant who paid for an expense, or who is the only beneficiary of one, cannot be
// removed without leaving that expense unbalanced.
func (s *SQLiteStore) DeleteParticipant(ctx context.Context, participantID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var paid int
		err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM expenses WHERE payer_id = ?",
			participantID,
		).Scan(&paid)
		if err != nil {
			return fmt.Errorf("failed to check payer references: %w", err)
		}
		if paid > 0 {
			return fmt.Errorf("participant %s paid for %d expenses: %w", participantID, paid, storage.ErrParticipantInUse)
		}

		var sole int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM expense_participants ep
			 WHERE ep.participant_id = ?
			   AND (SELECT COUNT(*) FROM expense_participants o WHERE o.expense_id = ep.expense_id) = 1`,
			participantID,
		).Scan(&sole)
		if err != nil {
			return fmt.Errorf("failed to check beneficiary references: %w", err)
		}
		if sole > 0 {
			return fmt.Errorf("participant %s is the only beneficiary of %d expenses: %w", participantID, sole, storage.ErrParticipantInUse)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM expense_participants WHERE participant_id = ?", participantID); err != nil {
			return fmt.Errorf("failed to remove participant from expenses: %w", err)
		}

		result, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE id = ?", participantID)
		if err != nil {
			return fmt.Errorf("failed to delete participant: %w", err)
		}
		return requireAffected(result, "participant", participantID)
	})
}

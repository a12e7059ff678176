package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/acadia-planner-api/internal/models"
)

// AvailabilityRepository handles persistence for weekly availability slots.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository creates a new repository instance.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListByUser returns a user's slots ordered by day then start minute.
func (r *AvailabilityRepository) ListByUser(ctx context.Context, userID string) ([]models.AvailabilitySlot, error) {
	const query = `SELECT id, user_id, day_of_week, start_minute, end_minute, created_at FROM availability_slots WHERE user_id = $1 ORDER BY CASE day_of_week
		WHEN 'MONDAY' THEN 1 WHEN 'TUESDAY' THEN 2 WHEN 'WEDNESDAY' THEN 3 WHEN 'THURSDAY' THEN 4
		WHEN 'FRIDAY' THEN 5 WHEN 'SATURDAY' THEN 6 ELSE 7 END, start_minute ASC`
	var slots []models.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, userID); err != nil {
		return nil, fmt.Errorf("list availability slots: %w", err)
	}
	return slots, nil
}

// ReplaceAll swaps a user's entire weekly availability in one transaction.
// The previous slots are removed even when the new set is empty.
func (r *AvailabilityRepository) ReplaceAll(ctx context.Context, userID string, slots []models.AvailabilitySlot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace availability: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM availability_slots WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear availability slots: %w", err)
	}

	if err = r.bulkInsertSlots(ctx, tx, userID, slots); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace availability: %w", err)
	}
	return nil
}

func (r *AvailabilityRepository) bulkInsertSlots(ctx context.Context, exec sqlx.ExtContext, userID string, slots []models.AvailabilitySlot) error {
	now := time.Now().UTC()
	for i := range slots {
		payload := slots[i]
		payload.UserID = userID
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}

		if _, err := sqlx.NamedExecContext(ctx, exec, `INSERT INTO availability_slots (id, user_id, day_of_week, start_minute, end_minute, created_at) VALUES (:id, :user_id, :day_of_week, :start_minute, :end_minute, :created_at)`, &payload); err != nil {
			return fmt.Errorf("insert availability slot: %w", err)
		}
		slots[i] = payload
	}
	return nil
}

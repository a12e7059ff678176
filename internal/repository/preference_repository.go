package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/acadia-planner-api/internal/models"
)

// PreferenceRepository handles persistence for study preferences,
// one row per user.
type PreferenceRepository struct {
	db *sqlx.DB
}

// NewPreferenceRepository creates a new repository instance.
func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// FindByUser returns the user's saved preferences, or sql.ErrNoRows when
// the user never saved any.
func (r *PreferenceRepository) FindByUser(ctx context.Context, userID string) (*models.StudyPreference, error) {
	const query = `SELECT id, user_id, break_length, break_frequency, learning_style, created_at, updated_at FROM study_preferences WHERE user_id = $1 LIMIT 1`
	var pref models.StudyPreference
	if err := r.db.GetContext(ctx, &pref, query, userID); err != nil {
		return nil, err
	}
	return &pref, nil
}

// Upsert creates or replaces the user's preference row.
func (r *PreferenceRepository) Upsert(ctx context.Context, pref *models.StudyPreference) error {
	if pref.ID == "" {
		pref.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if pref.CreatedAt.IsZero() {
		pref.CreatedAt = now
	}
	pref.UpdatedAt = now

	const query = `INSERT INTO study_preferences (id, user_id, break_length, break_frequency, learning_style, created_at, updated_at)
		VALUES (:id, :user_id, :break_length, :break_frequency, :learning_style, :created_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET break_length = EXCLUDED.break_length, break_frequency = EXCLUDED.break_frequency, learning_style = EXCLUDED.learning_style, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, pref); err != nil {
		return fmt.Errorf("upsert study preference: %w", err)
	}
	return nil
}

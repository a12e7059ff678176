package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/acadia-planner-api/internal/dto"
	"github.com/noah-isme/acadia-planner-api/internal/models"
	appErrors "github.com/noah-isme/acadia-planner-api/pkg/errors"
)

type mockPreferenceRepo struct {
	pref     *models.StudyPreference
	upserted *models.StudyPreference
}

func (m *mockPreferenceRepo) FindByUser(ctx context.Context, userID string) (*models.StudyPreference, error) {
	if m.pref == nil {
		return nil, sql.ErrNoRows
	}
	return m.pref, nil
}

func (m *mockPreferenceRepo) Upsert(ctx context.Context, pref *models.StudyPreference) error {
	m.upserted = pref
	return nil
}

func TestPreferenceServiceGetDefaults(t *testing.T) {
	svc := NewPreferenceService(&mockPreferenceRepo{}, validator.New(), zap.NewNop())

	pref, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultBreakLength, pref.BreakLength)
	assert.Equal(t, models.DefaultBreakFrequency, pref.BreakFrequency)
	assert.Equal(t, "u1", pref.UserID)
}

func TestPreferenceServiceGetSaved(t *testing.T) {
	repo := &mockPreferenceRepo{pref: &models.StudyPreference{ID: "p1", UserID: "u1", BreakLength: 5, BreakFrequency: 45}}
	svc := NewPreferenceService(repo, validator.New(), zap.NewNop())

	pref, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, pref.BreakLength)
	assert.Equal(t, 45, pref.BreakFrequency)
}

func TestPreferenceServiceUpdate(t *testing.T) {
	repo := &mockPreferenceRepo{}
	svc := NewPreferenceService(repo, validator.New(), zap.NewNop())

	pref, err := svc.Update(context.Background(), "u1", dto.UpdatePreferenceRequest{
		BreakLength:    20,
		BreakFrequency: 90,
		LearningStyle:  "VISUAL",
	})
	require.NoError(t, err)
	assert.Equal(t, 20, pref.BreakLength)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, "u1", repo.upserted.UserID)
}

func TestPreferenceServiceUpdateRejectsTinyFrequency(t *testing.T) {
	svc := NewPreferenceService(&mockPreferenceRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Update(context.Background(), "u1", dto.UpdatePreferenceRequest{BreakLength: 10, BreakFrequency: 5})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

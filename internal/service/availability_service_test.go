package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/acadia-planner-api/internal/dto"
	"github.com/noah-isme/acadia-planner-api/internal/models"
	appErrors "github.com/noah-isme/acadia-planner-api/pkg/errors"
)

type mockAvailabilityRepo struct {
	slots    []models.AvailabilitySlot
	replaced []models.AvailabilitySlot
}

func (m *mockAvailabilityRepo) ListByUser(ctx context.Context, userID string) ([]models.AvailabilitySlot, error) {
	return m.slots, nil
}

func (m *mockAvailabilityRepo) ReplaceAll(ctx context.Context, userID string, slots []models.AvailabilitySlot) error {
	m.replaced = slots
	return nil
}

func TestAvailabilityServiceReplace(t *testing.T) {
	repo := &mockAvailabilityRepo{}
	svc := NewAvailabilityService(repo, validator.New(), zap.NewNop())

	slots, err := svc.Replace(context.Background(), "u1", dto.ReplaceAvailabilityRequest{
		Slots: []dto.AvailabilitySlotRequest{
			{DayOfWeek: "MONDAY", StartMinute: 540, EndMinute: 660},
			{DayOfWeek: "SATURDAY", StartMinute: 0, EndMinute: 120},
		},
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "u1", slots[0].UserID)
	assert.Len(t, repo.replaced, 2)
}

func TestAvailabilityServiceReplaceEmptyClears(t *testing.T) {
	repo := &mockAvailabilityRepo{slots: []models.AvailabilitySlot{{ID: "a1"}}}
	svc := NewAvailabilityService(repo, validator.New(), zap.NewNop())

	slots, err := svc.Replace(context.Background(), "u1", dto.ReplaceAvailabilityRequest{})
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.NotNil(t, repo.replaced)
	assert.Empty(t, repo.replaced)
}

func TestAvailabilityServiceReplaceInvertedWindow(t *testing.T) {
	svc := NewAvailabilityService(&mockAvailabilityRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Replace(context.Background(), "u1", dto.ReplaceAvailabilityRequest{
		Slots: []dto.AvailabilitySlotRequest{{DayOfWeek: "MONDAY", StartMinute: 600, EndMinute: 540}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAvailabilityServiceReplaceUnknownDay(t *testing.T) {
	svc := NewAvailabilityService(&mockAvailabilityRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Replace(context.Background(), "u1", dto.ReplaceAvailabilityRequest{
		Slots: []dto.AvailabilitySlotRequest{{DayOfWeek: "FUNDAY", StartMinute: 540, EndMinute: 600}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

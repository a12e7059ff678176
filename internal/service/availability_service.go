package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/acadia-planner-api/internal/dto"
	"github.com/noah-isme/acadia-planner-api/internal/models"
	appErrors "github.com/noah-isme/acadia-planner-api/pkg/errors"
)

type availabilityRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.AvailabilitySlot, error)
	ReplaceAll(ctx context.Context, userID string, slots []models.AvailabilitySlot) error
}

// AvailabilityService manages a user's weekly availability windows.
type AvailabilityService struct {
	repo      availabilityRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAvailabilityService creates a new availability service.
func NewAvailabilityService(repo availabilityRepository, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{repo: repo, validator: validate, logger: logger}
}

// List returns the user's slots ordered by day then start minute.
func (s *AvailabilityService) List(ctx context.Context, userID string) ([]models.AvailabilitySlot, error) {
	slots, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability")
	}
	return slots, nil
}

// Replace swaps the user's whole weekly availability. An empty slot list
// clears it. Each window must lie within one day and not be inverted.
func (s *AvailabilityService) Replace(ctx context.Context, userID string, req dto.ReplaceAvailabilityRequest) ([]models.AvailabilitySlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}

	slots := make([]models.AvailabilitySlot, 0, len(req.Slots))
	for i, in := range req.Slots {
		if in.StartMinute >= in.EndMinute {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("slot %d: start minute must be before end minute", i))
		}
		slots = append(slots, models.AvailabilitySlot{
			UserID:      userID,
			DayOfWeek:   in.DayOfWeek,
			StartMinute: in.StartMinute,
			EndMinute:   in.EndMinute,
		})
	}

	if err := s.repo.ReplaceAll(ctx, userID, slots); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace availability")
	}

	s.logger.Info("availability replaced", zap.String("user_id", userID), zap.Int("slots", len(slots)))
	return slots, nil
}

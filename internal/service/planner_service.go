package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/noah-isme/acadia-planner-api/internal/dto"
	"github.com/noah-isme/acadia-planner-api/internal/models"
	"github.com/noah-isme/acadia-planner-api/internal/scheduler"
	appErrors "github.com/noah-isme/acadia-planner-api/pkg/errors"
)

type plannerSubjectRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Subject, error)
}

type plannerTaskRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.StudyTask, error)
	MarkScheduled(ctx context.Context, exec sqlx.ExtContext, userID string, ids []string) error
	ResetScheduled(ctx context.Context, exec sqlx.ExtContext, userID string) error
}

type plannerAvailabilityRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.AvailabilitySlot, error)
}

type plannerPreferenceRepository interface {
	FindByUser(ctx context.Context, userID string) (*models.StudyPreference, error)
}

type plannerBlockRepository interface {
	DB() *sqlx.DB
	ListByUser(ctx context.Context, userID string) ([]models.ScheduleBlock, error)
	DeleteByUser(ctx context.Context, exec sqlx.ExtContext, userID string) error
	BulkInsert(ctx context.Context, exec sqlx.ExtContext, blocks []models.ScheduleBlock) error
	CreateGenerationRun(ctx context.Context, exec sqlx.ExtContext, run *models.GenerationRun) error
	LatestGenerationRun(ctx context.Context, userID string) (*models.GenerationRun, error)
}

// PlannerService runs the allocation engine over a user's data and
// materializes the outcome.
type PlannerService struct {
	subjects     plannerSubjectRepository
	tasks        plannerTaskRepository
	availability plannerAvailabilityRepository
	preferences  plannerPreferenceRepository
	blocks       plannerBlockRepository
	cache        *CacheService
	logger       *zap.Logger
	now          func() time.Time
}

// NewPlannerService constructs a planner service.
func NewPlannerService(
	subjects plannerSubjectRepository,
	tasks plannerTaskRepository,
	availability plannerAvailabilityRepository,
	preferences plannerPreferenceRepository,
	blocks plannerBlockRepository,
	cache *CacheService,
	logger *zap.Logger,
) *PlannerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerService{
		subjects:     subjects,
		tasks:        tasks,
		availability: availability,
		preferences:  preferences,
		blocks:       blocks,
		cache:        cache,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func scheduleCacheKey(userID string) string {
	return fmt.Sprintf("planner:schedule:%s", userID)
}

// Generate builds a fresh weekly schedule for the user and replaces the
// stored one in a single transaction. Tasks whose whole duration was
// placed become SCHEDULED; partially placed tasks keep their blocks but
// stay PENDING and are reported as unplaceable.
func (s *PlannerService) Generate(ctx context.Context, userID string) (*dto.GenerateScheduleResponse, error) {
	snapshot, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := scheduler.Generate(*snapshot)
	if err != nil {
		var invalid *scheduler.InvalidInputError
		if errors.As(err, &invalid) {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, invalid.Error())
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "schedule generation failed")
	}

	titles := make(map[string]string, len(snapshot.Tasks))
	for _, task := range snapshot.Tasks {
		titles[task.ID] = task.Title
	}

	blocks := make([]models.ScheduleBlock, 0, len(result.Placements))
	placedMinutes := make(map[string]int)
	for _, p := range result.Placements {
		blocks = append(blocks, models.ScheduleBlock{
			UserID:      userID,
			TaskID:      p.TaskID,
			DayOfWeek:   models.DayName(p.Day),
			StartMinute: p.Start,
			EndMinute:   p.End,
		})
		placedMinutes[p.TaskID] += p.End - p.Start
	}

	fullyPlaced := make([]string, 0, len(snapshot.Tasks))
	for _, task := range snapshot.Tasks {
		if task.Status != models.TaskStatusPending {
			continue
		}
		if placedMinutes[task.ID] >= task.DurationMinutes {
			fullyPlaced = append(fullyPlaced, task.ID)
		}
	}

	meta, err := json.Marshal(map[string]interface{}{
		"unplaceable": result.Unplaceable,
		"breaks":      len(result.Breaks),
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode run metadata")
	}
	run := &models.GenerationRun{
		UserID:      userID,
		PlacedCount: len(blocks),
		Unplaced:    len(result.Unplaceable),
		Meta:        types.JSONText(meta),
	}

	if err := s.materialize(ctx, userID, blocks, fullyPlaced, run); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, scheduleCacheKey(userID)); err != nil {
			s.logger.Warn("failed to invalidate schedule cache", zap.Error(err))
		}
	}

	s.logger.Info("schedule generated",
		zap.String("user_id", userID),
		zap.Int("blocks", len(blocks)),
		zap.Int("unplaceable", len(result.Unplaceable)))

	return s.buildGenerateResponse(result, blocks, titles, run.CreatedAt), nil
}

// WeeklySchedule returns the stored schedule as a seven-day grid, serving
// from cache when possible. The second return value reports a cache hit.
func (s *PlannerService) WeeklySchedule(ctx context.Context, userID string) (*dto.WeeklyScheduleResponse, bool, error) {
	key := scheduleCacheKey(userID)
	if s.cache != nil {
		var cached dto.WeeklyScheduleResponse
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	blocks, err := s.blocks.ListByUser(ctx, userID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	resp := &dto.WeeklyScheduleResponse{
		Days:        make([]dto.DaySchedule, 0, 7),
		TotalBlocks: len(blocks),
	}
	for day := 1; day <= 7; day++ {
		resp.Days = append(resp.Days, dto.DaySchedule{
			Day:       day,
			DayOfWeek: models.DayName(day),
			Blocks:    []dto.ScheduleBlockView{},
		})
	}
	for _, b := range blocks {
		day := models.DayIndex(b.DayOfWeek)
		if day == 0 {
			continue
		}
		resp.Days[day-1].Blocks = append(resp.Days[day-1].Blocks, dto.ScheduleBlockView{
			ID:          b.ID,
			TaskID:      b.TaskID,
			TaskTitle:   b.TaskTitle,
			SubjectName: b.SubjectName,
			DayOfWeek:   b.DayOfWeek,
			StartMinute: b.StartMinute,
			EndMinute:   b.EndMinute,
		})
	}

	if run, err := s.blocks.LatestGenerationRun(ctx, userID); err == nil {
		resp.GeneratedAt = &run.CreatedAt
	} else if !errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("failed to load latest generation run", zap.Error(err))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp, 0); err != nil {
			s.logger.Warn("failed to cache schedule", zap.Error(err))
		}
	}

	return resp, false, nil
}

// Blocks returns the stored schedule as a flat ordered list, used by exports.
func (s *PlannerService) Blocks(ctx context.Context, userID string) ([]models.ScheduleBlock, error) {
	blocks, err := s.blocks.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	return blocks, nil
}

func (s *PlannerService) loadSnapshot(ctx context.Context, userID string) (*scheduler.Input, error) {
	subjects, err := s.subjects.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}

	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tasks")
	}

	slots, err := s.availability.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability")
	}

	prefs, err := s.preferences.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			defaults := models.DefaultStudyPreference(userID)
			prefs = &defaults
		} else {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load preferences")
		}
	}

	return &scheduler.Input{
		Subjects:     subjects,
		Tasks:        tasks,
		Availability: slots,
		Preferences:  *prefs,
		Now:          s.now(),
	}, nil
}

// materialize replaces the stored schedule atomically: previously scheduled
// tasks revert to PENDING, old blocks are wiped, new blocks inserted, fully
// covered tasks flipped to SCHEDULED, and the run recorded. Any failure
// rolls the whole swap back, leaving the prior schedule intact.
func (s *PlannerService) materialize(ctx context.Context, userID string, blocks []models.ScheduleBlock, fullyPlaced []string, run *models.GenerationRun) error {
	tx, err := s.blocks.DB().BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin materialization")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.tasks.ResetScheduled(ctx, tx, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset scheduled tasks")
	}
	if err = s.blocks.DeleteByUser(ctx, tx, userID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear previous schedule")
	}
	if err = s.blocks.BulkInsert(ctx, tx, blocks); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store schedule blocks")
	}
	if err = s.tasks.MarkScheduled(ctx, tx, userID, fullyPlaced); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark tasks scheduled")
	}
	if err = s.blocks.CreateGenerationRun(ctx, tx, run); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record generation run")
	}

	if err = tx.Commit(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit schedule")
	}
	return nil
}

func (s *PlannerService) buildGenerateResponse(result *scheduler.Result, blocks []models.ScheduleBlock, titles map[string]string, generatedAt time.Time) *dto.GenerateScheduleResponse {
	resp := &dto.GenerateScheduleResponse{
		Blocks:      make([]dto.ScheduleBlockView, 0, len(blocks)),
		Breaks:      make([]dto.BreakView, 0, len(result.Breaks)),
		Unplaceable: make([]dto.UnplacedTaskView, 0, len(result.Unplaceable)),
		PlacedCount: len(blocks),
		GeneratedAt: generatedAt,
	}
	for _, b := range blocks {
		resp.Blocks = append(resp.Blocks, dto.ScheduleBlockView{
			ID:          b.ID,
			TaskID:      b.TaskID,
			TaskTitle:   titles[b.TaskID],
			DayOfWeek:   b.DayOfWeek,
			StartMinute: b.StartMinute,
			EndMinute:   b.EndMinute,
		})
	}
	for _, br := range result.Breaks {
		resp.Breaks = append(resp.Breaks, dto.BreakView{
			DayOfWeek:   models.DayName(br.Day),
			StartMinute: br.Start,
			EndMinute:   br.End,
		})
	}
	for _, u := range result.Unplaceable {
		resp.Unplaceable = append(resp.Unplaceable, dto.UnplacedTaskView{
			TaskID:           u.TaskID,
			Title:            titles[u.TaskID],
			RemainingMinutes: u.RemainingMinutes,
		})
	}
	return resp
}

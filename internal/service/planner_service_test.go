package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/acadia-planner-api/internal/models"
	appErrors "github.com/noah-isme/acadia-planner-api/pkg/errors"
)

type mockPlannerRepos struct {
	subjects []models.Subject
	tasks    []models.StudyTask
	slots    []models.AvailabilitySlot
	prefs    *models.StudyPreference

	db           *sqlx.DB
	storedBlocks []models.ScheduleBlock
	listedBlocks []models.ScheduleBlock
	scheduledIDs []string
	resetCalled  bool
	deletedUser  string
	recordedRun  *models.GenerationRun
	latestRun    *models.GenerationRun
	latestRunErr error
}

func (m *mockPlannerRepos) ListByUser(ctx context.Context, userID string) ([]models.Subject, error) {
	return m.subjects, nil
}

type mockPlannerTasks struct{ parent *mockPlannerRepos }

func (m *mockPlannerTasks) ListByUser(ctx context.Context, userID string) ([]models.StudyTask, error) {
	return m.parent.tasks, nil
}

func (m *mockPlannerTasks) MarkScheduled(ctx context.Context, exec sqlx.ExtContext, userID string, ids []string) error {
	m.parent.scheduledIDs = ids
	return nil
}

func (m *mockPlannerTasks) ResetScheduled(ctx context.Context, exec sqlx.ExtContext, userID string) error {
	m.parent.resetCalled = true
	return nil
}

type mockPlannerAvailability struct{ parent *mockPlannerRepos }

func (m *mockPlannerAvailability) ListByUser(ctx context.Context, userID string) ([]models.AvailabilitySlot, error) {
	return m.parent.slots, nil
}

type mockPlannerPreferences struct{ parent *mockPlannerRepos }

func (m *mockPlannerPreferences) FindByUser(ctx context.Context, userID string) (*models.StudyPreference, error) {
	if m.parent.prefs == nil {
		return nil, sql.ErrNoRows
	}
	return m.parent.prefs, nil
}

type mockPlannerBlocks struct{ parent *mockPlannerRepos }

func (m *mockPlannerBlocks) DB() *sqlx.DB {
	return m.parent.db
}

func (m *mockPlannerBlocks) ListByUser(ctx context.Context, userID string) ([]models.ScheduleBlock, error) {
	return m.parent.listedBlocks, nil
}

func (m *mockPlannerBlocks) DeleteByUser(ctx context.Context, exec sqlx.ExtContext, userID string) error {
	m.parent.deletedUser = userID
	return nil
}

func (m *mockPlannerBlocks) BulkInsert(ctx context.Context, exec sqlx.ExtContext, blocks []models.ScheduleBlock) error {
	m.parent.storedBlocks = blocks
	return nil
}

func (m *mockPlannerBlocks) CreateGenerationRun(ctx context.Context, exec sqlx.ExtContext, run *models.GenerationRun) error {
	run.CreatedAt = time.Now().UTC()
	m.parent.recordedRun = run
	return nil
}

func (m *mockPlannerBlocks) LatestGenerationRun(ctx context.Context, userID string) (*models.GenerationRun, error) {
	if m.parent.latestRunErr != nil {
		return nil, m.parent.latestRunErr
	}
	if m.parent.latestRun == nil {
		return nil, sql.ErrNoRows
	}
	return m.parent.latestRun, nil
}

func newPlannerFixture(t *testing.T, repos *mockPlannerRepos) (*PlannerService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	repos.db = sqlx.NewDb(db, "sqlmock")

	svc := NewPlannerService(
		repos,
		&mockPlannerTasks{parent: repos},
		&mockPlannerAvailability{parent: repos},
		&mockPlannerPreferences{parent: repos},
		&mockPlannerBlocks{parent: repos},
		nil,
		zap.NewNop(),
	)
	svc.now = func() time.Time { return time.Date(2026, time.March, 2, 7, 0, 0, 0, time.UTC) }
	return svc, mock, func() { db.Close() }
}

func TestPlannerGenerate(t *testing.T) {
	subjectID := "sub-1"
	repos := &mockPlannerRepos{
		subjects: []models.Subject{{ID: subjectID, UserID: "u1", Name: "Calculus", Difficulty: 4}},
		tasks: []models.StudyTask{{
			ID: "t1", UserID: "u1", SubjectID: &subjectID, Title: "Integrals",
			TaskType: models.TaskTypeProblemSet, DurationMinutes: 90,
			Deadline: time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC),
			Status:   models.TaskStatusPending,
		}},
		slots: []models.AvailabilitySlot{{ID: "a1", UserID: "u1", DayOfWeek: "MONDAY", StartMinute: 540, EndMinute: 660}},
		prefs: &models.StudyPreference{ID: "p1", UserID: "u1", BreakLength: 10, BreakFrequency: 60},
	}
	svc, mock, cleanup := newPlannerFixture(t, repos)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Generate(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, resp.Blocks, 2)
	assert.Equal(t, "MONDAY", resp.Blocks[0].DayOfWeek)
	assert.Equal(t, 540, resp.Blocks[0].StartMinute)
	assert.Equal(t, 600, resp.Blocks[0].EndMinute)
	assert.Equal(t, 610, resp.Blocks[1].StartMinute)
	require.Len(t, resp.Breaks, 1)
	assert.Empty(t, resp.Unplaceable)

	assert.True(t, repos.resetCalled)
	assert.Equal(t, "u1", repos.deletedUser)
	assert.Len(t, repos.storedBlocks, 2)
	assert.Equal(t, []string{"t1"}, repos.scheduledIDs)
	require.NotNil(t, repos.recordedRun)
	assert.Equal(t, 2, repos.recordedRun.PlacedCount)
	assert.Equal(t, 0, repos.recordedRun.Unplaced)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlannerGeneratePartialTaskStaysPending(t *testing.T) {
	repos := &mockPlannerRepos{
		tasks: []models.StudyTask{
			{ID: "t1", UserID: "u1", Title: "Alpha", TaskType: models.TaskTypeReview, DurationMinutes: 90,
				Deadline: time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), Status: models.TaskStatusPending},
			{ID: "t2", UserID: "u1", Title: "Beta", TaskType: models.TaskTypeReview, DurationMinutes: 60,
				Deadline: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), Status: models.TaskStatusPending},
		},
		slots: []models.AvailabilitySlot{{ID: "a1", UserID: "u1", DayOfWeek: "MONDAY", StartMinute: 540, EndMinute: 660}},
		prefs: &models.StudyPreference{ID: "p1", UserID: "u1", BreakLength: 10, BreakFrequency: 60},
	}
	svc, mock, cleanup := newPlannerFixture(t, repos)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Generate(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, resp.Unplaceable, 1)
	assert.Equal(t, "t2", resp.Unplaceable[0].TaskID)
	assert.Equal(t, "Beta", resp.Unplaceable[0].Title)
	assert.Equal(t, 40, resp.Unplaceable[0].RemainingMinutes)

	// The fully covered task is flipped; the partial one stays pending.
	assert.Equal(t, []string{"t1"}, repos.scheduledIDs)
	assert.Equal(t, 1, repos.recordedRun.Unplaced)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlannerGenerateInvalidTask(t *testing.T) {
	repos := &mockPlannerRepos{
		tasks: []models.StudyTask{{ID: "t1", UserID: "u1", Title: "Broken", DurationMinutes: 0,
			Deadline: time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), Status: models.TaskStatusPending}},
		prefs: &models.StudyPreference{ID: "p1", UserID: "u1", BreakLength: 10, BreakFrequency: 60},
	}
	svc, _, cleanup := newPlannerFixture(t, repos)
	defer cleanup()

	_, err := svc.Generate(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repos.recordedRun)
}

func TestPlannerGenerateDefaultsPreferences(t *testing.T) {
	repos := &mockPlannerRepos{
		tasks: []models.StudyTask{{ID: "t1", UserID: "u1", Title: "Reading", TaskType: models.TaskTypeReading,
			DurationMinutes: 30, Deadline: time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
			Status: models.TaskStatusPending}},
		slots: []models.AvailabilitySlot{{ID: "a1", UserID: "u1", DayOfWeek: "TUESDAY", StartMinute: 600, EndMinute: 700}},
	}
	svc, mock, cleanup := newPlannerFixture(t, repos)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Generate(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, resp.Blocks, 1)
	assert.Equal(t, "TUESDAY", resp.Blocks[0].DayOfWeek)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlannerWeeklySchedule(t *testing.T) {
	now := time.Now().UTC()
	repos := &mockPlannerRepos{
		listedBlocks: []models.ScheduleBlock{
			{ID: "b1", UserID: "u1", TaskID: "t1", DayOfWeek: "MONDAY", StartMinute: 540, EndMinute: 600, TaskTitle: "Integrals", SubjectName: "Calculus"},
			{ID: "b2", UserID: "u1", TaskID: "t2", DayOfWeek: "FRIDAY", StartMinute: 480, EndMinute: 540, TaskTitle: "Essay"},
		},
		latestRun: &models.GenerationRun{ID: "g1", UserID: "u1", PlacedCount: 2, CreatedAt: now},
	}
	svc, _, cleanup := newPlannerFixture(t, repos)
	defer cleanup()

	resp, cached, err := svc.WeeklySchedule(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, resp.Days, 7)
	assert.Equal(t, "MONDAY", resp.Days[0].DayOfWeek)
	require.Len(t, resp.Days[0].Blocks, 1)
	assert.Equal(t, "Integrals", resp.Days[0].Blocks[0].TaskTitle)
	assert.Empty(t, resp.Days[1].Blocks)
	require.Len(t, resp.Days[4].Blocks, 1)
	assert.Equal(t, 2, resp.TotalBlocks)
	require.NotNil(t, resp.GeneratedAt)
	assert.Equal(t, now, *resp.GeneratedAt)
}

func TestPlannerWeeklyScheduleEmpty(t *testing.T) {
	repos := &mockPlannerRepos{}
	svc, _, cleanup := newPlannerFixture(t, repos)
	defer cleanup()

	resp, _, err := svc.WeeklySchedule(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.TotalBlocks)
	assert.Nil(t, resp.GeneratedAt)
	for _, day := range resp.Days {
		assert.Empty(t, day.Blocks)
	}
}

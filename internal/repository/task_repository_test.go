package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/acadia-planner-api/internal/models"
)

func TestListTasksWithStatusFilter(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	now := time.Now()
	listRows := sqlmock.NewRows([]string{"id", "user_id", "subject_id", "title", "task_type", "duration_minutes", "deadline", "status", "created_at", "updated_at", "subject_name"}).
		AddRow("t1", "u1", "s1", "Integrals", string(models.TaskTypeProblemSet), 90, now.AddDate(0, 0, 3), string(models.TaskStatusPending), now, now, "Calculus")
	mock.ExpectQuery("SELECT t.id, t.user_id, t.subject_id").
		WithArgs("u1", string(models.TaskStatusPending)).
		WillReturnRows(listRows)

	countRows := sqlmock.NewRows([]string{"count"}).AddRow(1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM study_tasks t")).
		WithArgs("u1", string(models.TaskStatusPending)).
		WillReturnRows(countRows)

	tasks, total, err := repo.List(context.Background(), "u1", models.TaskFilter{Status: models.TaskStatusPending})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Calculus", tasks[0].SubjectName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTask(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectExec("INSERT INTO study_tasks").WillReturnResult(sqlmock.NewResult(1, 1))

	task := &models.StudyTask{
		UserID:          "u1",
		Title:           "Essay outline",
		TaskType:        models.TaskTypeEssayDraft,
		DurationMinutes: 60,
		Deadline:        time.Now().AddDate(0, 0, 5),
		Status:          models.TaskStatusPending,
	}
	err := repo.Create(context.Background(), task)
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkScheduled(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectExec("UPDATE study_tasks SET status").WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.MarkScheduled(context.Background(), db, "u1", []string{"t1", "t2"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkScheduledNoIDs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	err := repo.MarkScheduled(context.Background(), db, "u1", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearSubject(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE study_tasks SET subject_id = NULL")).
		WithArgs("u1", "s1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.ClearSubject(context.Background(), "u1", "s1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskProgress(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTaskRepository(db)

	rows := sqlmock.NewRows([]string{"pending", "scheduled", "completed"}).AddRow(3, 2, 5)
	mock.ExpectQuery("SELECT").WithArgs("u1").WillReturnRows(rows)

	progress, err := repo.Progress(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, progress.Pending)
	assert.Equal(t, 2, progress.Scheduled)
	assert.Equal(t, 5, progress.Completed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

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

type mockSubjectRepo struct {
	subjects map[string]*models.Subject
	exists   bool
	deleted  []string
}

func (m *mockSubjectRepo) List(ctx context.Context, userID string, filter models.SubjectFilter) ([]models.Subject, int, error) {
	out := make([]models.Subject, 0, len(m.subjects))
	for _, s := range m.subjects {
		out = append(out, *s)
	}
	return out, len(out), nil
}

func (m *mockSubjectRepo) FindByID(ctx context.Context, userID, id string) (*models.Subject, error) {
	s, ok := m.subjects[id]
	if !ok || s.UserID != userID {
		return nil, sql.ErrNoRows
	}
	return s, nil
}

func (m *mockSubjectRepo) ExistsByName(ctx context.Context, userID, name, excludeID string) (bool, error) {
	return m.exists, nil
}

func (m *mockSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	if m.subjects == nil {
		m.subjects = make(map[string]*models.Subject)
	}
	if subject.ID == "" {
		subject.ID = "generated"
	}
	m.subjects[subject.ID] = subject
	return nil
}

func (m *mockSubjectRepo) Update(ctx context.Context, subject *models.Subject) error {
	m.subjects[subject.ID] = subject
	return nil
}

func (m *mockSubjectRepo) Delete(ctx context.Context, userID, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.subjects, id)
	return nil
}

type mockSubjectTasks struct {
	clearedSubjects []string
}

func (m *mockSubjectTasks) ClearSubject(ctx context.Context, userID, subjectID string) error {
	m.clearedSubjects = append(m.clearedSubjects, subjectID)
	return nil
}

func TestSubjectServiceCreate(t *testing.T) {
	repo := &mockSubjectRepo{}
	svc := NewSubjectService(repo, &mockSubjectTasks{}, validator.New(), zap.NewNop())

	subject, err := svc.Create(context.Background(), "u1", dto.CreateSubjectRequest{Name: "  Calculus ", Difficulty: 4})
	require.NoError(t, err)
	assert.Equal(t, "Calculus", subject.Name)
	assert.Equal(t, "u1", subject.UserID)
}

func TestSubjectServiceCreateRejectsDifficultyOutOfRange(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{}, &mockSubjectTasks{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), "u1", dto.CreateSubjectRequest{Name: "Chemistry", Difficulty: 6})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSubjectServiceCreateDuplicateName(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{exists: true}, &mockSubjectTasks{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), "u1", dto.CreateSubjectRequest{Name: "Calculus", Difficulty: 3})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestSubjectServiceGetScopedToUser(t *testing.T) {
	repo := &mockSubjectRepo{subjects: map[string]*models.Subject{
		"s1": {ID: "s1", UserID: "someone-else", Name: "History", Difficulty: 2},
	}}
	svc := NewSubjectService(repo, &mockSubjectTasks{}, validator.New(), zap.NewNop())

	_, err := svc.Get(context.Background(), "u1", "s1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSubjectServiceDeleteDetachesTasks(t *testing.T) {
	repo := &mockSubjectRepo{subjects: map[string]*models.Subject{
		"s1": {ID: "s1", UserID: "u1", Name: "Physics", Difficulty: 5},
	}}
	tasks := &mockSubjectTasks{}
	svc := NewSubjectService(repo, tasks, validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, tasks.clearedSubjects)
	assert.Equal(t, []string{"s1"}, repo.deleted)
}

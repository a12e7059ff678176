package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/acadia-planner-api/internal/dto"
	"github.com/noah-isme/acadia-planner-api/internal/middleware"
	"github.com/noah-isme/acadia-planner-api/internal/models"
	"github.com/noah-isme/acadia-planner-api/internal/service"
	appErrors "github.com/noah-isme/acadia-planner-api/pkg/errors"
)

type plannerServiceMock struct {
	generateCalled bool
	generateResp   *dto.GenerateScheduleResponse
	scheduleResp   *dto.WeeklyScheduleResponse
	err            error
}

func (m *plannerServiceMock) Generate(ctx context.Context, userID string) (*dto.GenerateScheduleResponse, error) {
	m.generateCalled = true
	return m.generateResp, m.err
}

func (m *plannerServiceMock) WeeklySchedule(ctx context.Context, userID string) (*dto.WeeklyScheduleResponse, bool, error) {
	return m.scheduleResp, false, m.err
}

type exportServiceMock struct {
	exportCalled bool
	format       service.ExportFormat
	result       *service.ExportResult
	err          error
}

func (m *exportServiceMock) ExportSchedule(ctx context.Context, userID string, format service.ExportFormat) (*service.ExportResult, error) {
	m.exportCalled = true
	m.format = format
	return m.result, m.err
}

func (m *exportServiceMock) ParseToken(token string, allowExpired bool) (string, string, time.Time, error) {
	if m.err != nil {
		return "", "", time.Time{}, m.err
	}
	return "user-1", "schedule.csv", time.Now().Add(time.Hour), nil
}

func (m *exportServiceMock) Open(relPath string) (*os.File, error) {
	if m.err != nil {
		return nil, m.err
	}
	f, err := os.CreateTemp("", "export-*.csv")
	if err != nil {
		return nil, err
	}
	return f, nil
}

func plannerTestContext(t *testing.T, method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1"})
	return c, w
}

func TestPlannerHandlerGenerate(t *testing.T) {
	mockSvc := &plannerServiceMock{generateResp: &dto.GenerateScheduleResponse{PlacedCount: 2}}
	handler := NewPlannerHandler(mockSvc, &exportServiceMock{})
	c, w := plannerTestContext(t, http.MethodPost, "/planner/generate")

	handler.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, mockSvc.generateCalled)
}

func TestPlannerHandlerGenerateUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPlannerHandler(&plannerServiceMock{}, &exportServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/planner/generate", nil)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlannerHandlerGenerateValidationError(t *testing.T) {
	mockSvc := &plannerServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "task has no deadline")}
	handler := NewPlannerHandler(mockSvc, &exportServiceMock{})
	c, w := plannerTestContext(t, http.MethodPost, "/planner/generate")

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlannerHandlerSchedule(t *testing.T) {
	mockSvc := &plannerServiceMock{scheduleResp: &dto.WeeklyScheduleResponse{TotalBlocks: 3}}
	handler := NewPlannerHandler(mockSvc, &exportServiceMock{})
	c, w := plannerTestContext(t, http.MethodGet, "/planner/schedule")

	handler.Schedule(c)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestPlannerHandlerExportDefaultsToCSV(t *testing.T) {
	mockSvc := &exportServiceMock{result: &service.ExportResult{URL: "/api/v1/planner/export/tok", Format: service.ExportFormatCSV}}
	handler := NewPlannerHandler(&plannerServiceMock{}, mockSvc)
	c, w := plannerTestContext(t, http.MethodPost, "/planner/export")

	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, mockSvc.exportCalled)
	require.Equal(t, service.ExportFormatCSV, mockSvc.format)
}

func TestPlannerHandlerExportRejectsUnknownFormat(t *testing.T) {
	mockSvc := &exportServiceMock{}
	handler := NewPlannerHandler(&plannerServiceMock{}, mockSvc)
	c, w := plannerTestContext(t, http.MethodPost, "/planner/export?format=xlsx")

	handler.Export(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, mockSvc.exportCalled)
}

func TestPlannerHandlerExportEmptySchedule(t *testing.T) {
	mockSvc := &exportServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "no schedule to export")}
	handler := NewPlannerHandler(&plannerServiceMock{}, mockSvc)
	c, w := plannerTestContext(t, http.MethodPost, "/planner/export?format=pdf")

	handler.Export(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlannerHandlerDownloadInvalidToken(t *testing.T) {
	mockSvc := &exportServiceMock{err: appErrors.ErrUnauthorized}
	handler := NewPlannerHandler(&plannerServiceMock{}, mockSvc)
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/planner/export/bad-token", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "token", Value: "bad-token"}}

	handler.Download(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlannerHandlerDownloadMissingToken(t *testing.T) {
	handler := NewPlannerHandler(&plannerServiceMock{}, &exportServiceMock{})
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/planner/export/", nil)
	c.Request = req

	handler.Download(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

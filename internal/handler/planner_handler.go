package handler

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/acadia-planner-api/internal/dto"
	"github.com/noah-isme/acadia-planner-api/internal/middleware"
	"github.com/noah-isme/acadia-planner-api/internal/service"
	appErrors "github.com/noah-isme/acadia-planner-api/pkg/errors"
	"github.com/noah-isme/acadia-planner-api/pkg/response"
)

type plannerService interface {
	Generate(ctx context.Context, userID string) (*dto.GenerateScheduleResponse, error)
	WeeklySchedule(ctx context.Context, userID string) (*dto.WeeklyScheduleResponse, bool, error)
}

type scheduleExportService interface {
	ExportSchedule(ctx context.Context, userID string, format service.ExportFormat) (*service.ExportResult, error)
	ParseToken(token string, allowExpired bool) (userID, relPath string, expiresAt time.Time, err error)
	Open(relPath string) (*os.File, error)
}

// PlannerHandler handles schedule generation, the weekly grid and exports.
type PlannerHandler struct {
	planner plannerService
	exports scheduleExportService
}

// NewPlannerHandler constructs a planner handler.
func NewPlannerHandler(planner plannerService, exports scheduleExportService) *PlannerHandler {
	return &PlannerHandler{planner: planner, exports: exports}
}

// Generate godoc
// @Summary Generate weekly schedule
// @Description Recomputes the schedule from pending tasks, availability and preferences, replacing the stored one.
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planner/generate [post]
func (h *PlannerHandler) Generate(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	result, err := h.planner.Generate(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Schedule godoc
// @Summary Weekly schedule grid
// @Description Returns the stored schedule grouped by weekday. Days without blocks are present and empty.
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /planner/schedule [get]
func (h *PlannerHandler) Schedule(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	schedule, cached, err := h.planner.WeeklySchedule(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, schedule, nil, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Export stored schedule
// @Description Renders the stored schedule to CSV or PDF and returns a signed download link.
// @Tags Planner
// @Produce json
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {object} response.Envelope
// @Router /planner/export [post]
func (h *PlannerHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	format := service.ExportFormat(strings.ToLower(c.DefaultQuery("format", "csv")))
	if format != service.ExportFormatCSV && format != service.ExportFormatPDF {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}

	result, err := h.exports.ExportSchedule(c.Request.Context(), claims.UserID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"url":       result.URL,
		"format":    result.Format,
		"expiresAt": result.ExpiresAt,
	}, nil)
}

// Download godoc
// @Summary Download exported schedule
// @Description Streams a previously exported file. The token embeds owner, path and expiry.
// @Tags Planner
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Router /planner/export/{token} [get]
func (h *PlannerHandler) Download(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing download token"))
		return
	}

	_, relPath, _, err := h.exports.ParseToken(token, false)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token"))
		return
	}

	file, err := h.exports.Open(relPath)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exported file not found"))
		return
	}
	path := file.Name()
	file.Close()

	c.Header("Content-Type", contentTypeForExport(relPath))
	c.FileAttachment(path, filepath.Base(relPath))
}

func contentTypeForExport(relPath string) string {
	switch strings.ToLower(filepath.Ext(relPath)) {
	case ".csv":
		return "text/csv"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

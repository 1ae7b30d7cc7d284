package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/berryseed/327project-group10/internal/dto"
	"github.com/berryseed/327project-group10/internal/middleware"
	"github.com/berryseed/327project-group10/internal/service"
	"github.com/berryseed/327project-group10/pkg/response"
)

type plannerService interface {
	Validate(ctx context.Context, userID string, req dto.ValidateScheduleRequest) (dto.ValidationResult, error)
	TimeSlots(ctx context.Context, userID string, req dto.TimeSlotsRequest) (dto.TimeSlotResult, bool, error)
	OptimalSchedule(ctx context.Context, userID string, req dto.OptimalScheduleRequest) (dto.OptimalScheduleResult, bool, error)
}

type scheduleExporter interface {
	RenderSchedule(result dto.OptimalScheduleResult, format service.ExportFormat) (*service.ExportResult, error)
}

// SchedulerHandler exposes /scheduler endpoints.
type SchedulerHandler struct {
	planner  plannerService
	exporter scheduleExporter
}

// NewSchedulerHandler constructs the handler.
func NewSchedulerHandler(planner plannerService, exporter scheduleExporter) *SchedulerHandler {
	return &SchedulerHandler{planner: planner, exporter: exporter}
}

// Validate godoc
// @Summary Check a candidate schedule against stored constraints
// @Tags Scheduler
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ValidateScheduleRequest true "Candidate schedule"
// @Success 200 {object} response.Envelope
// @Router /scheduler/validate [post]
func (h *SchedulerHandler) Validate(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	var req dto.ValidateScheduleRequest
	if !bindJSON(c, &req, "invalid candidate schedule") {
		return
	}
	result, err := h.planner.Validate(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// TimeSlots godoc
// @Summary Generate a week of study slots
// @Tags Scheduler
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.TimeSlotsRequest false "Tasks, preferences and extra unavailable windows"
// @Success 200 {object} response.Envelope
// @Router /scheduler/time-slots [post]
func (h *SchedulerHandler) TimeSlots(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	var req dto.TimeSlotsRequest
	if !bindOptionalJSON(c, &req, "invalid time slot request") {
		return
	}
	result, hit, err := h.planner.TimeSlots(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}

// OptimalSchedule godoc
// @Summary Assign tasks to study slots
// @Tags Scheduler
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.OptimalScheduleRequest false "Tasks, preferences and constraints"
// @Success 200 {object} response.Envelope
// @Router /scheduler/optimal-schedule [post]
func (h *SchedulerHandler) OptimalSchedule(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	var req dto.OptimalScheduleRequest
	if !bindOptionalJSON(c, &req, "invalid schedule request") {
		return
	}
	result, hit, err := h.planner.OptimalSchedule(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}

// ExportSchedule godoc
// @Summary Download the optimal schedule as CSV or PDF
// @Tags Scheduler
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Param payload body dto.OptimalScheduleRequest false "Tasks, preferences and constraints"
// @Success 200 {file} file
// @Router /scheduler/optimal-schedule/export [post]
func (h *SchedulerHandler) ExportSchedule(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.OptimalScheduleRequest
	if !bindOptionalJSON(c, &req, "invalid schedule request") {
		return
	}
	result, _, err := h.planner.OptimalSchedule(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exporter.RenderSchedule(result, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// bindOptionalJSON accepts an empty body as the zero request.
func bindOptionalJSON(c *gin.Context, dest interface{}, message string) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	return bindJSON(c, dest, message)
}

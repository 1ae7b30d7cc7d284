package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/berryseed/327project-group10/internal/dto"
	"github.com/berryseed/327project-group10/internal/models"
	"github.com/berryseed/327project-group10/pkg/response"
)

type classScheduleService interface {
	ListClasses(ctx context.Context, userID string) ([]models.ClassScheduleEntry, error)
	CreateClass(ctx context.Context, userID string, req dto.ClassScheduleRequest) (*models.ClassScheduleEntry, error)
	UpdateClass(ctx context.Context, userID, id string, req dto.ClassScheduleRequest) (*models.ClassScheduleEntry, error)
	DeleteClass(ctx context.Context, userID, id string) error
}

// ClassScheduleHandler exposes /class-schedule endpoints.
type ClassScheduleHandler struct {
	service classScheduleService
}

// NewClassScheduleHandler constructs the handler.
func NewClassScheduleHandler(service classScheduleService) *ClassScheduleHandler {
	return &ClassScheduleHandler{service: service}
}

// List godoc
// @Summary List class schedule entries
// @Tags Class Schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /class-schedule [get]
func (h *ClassScheduleHandler) List(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	entries, err := h.service.ListClasses(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, map[string]interface{}{"total": len(entries)})
}

// Create godoc
// @Summary Add a class; its window becomes unavailable time
// @Tags Class Schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ClassScheduleRequest true "Class entry"
// @Success 201 {object} response.Envelope
// @Router /class-schedule [post]
func (h *ClassScheduleHandler) Create(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	var req dto.ClassScheduleRequest
	if !bindJSON(c, &req, "invalid class schedule payload") {
		return
	}
	entry, err := h.service.CreateClass(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Update godoc
// @Summary Replace a class entry
// @Tags Class Schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class entry ID"
// @Param payload body dto.ClassScheduleRequest true "Class entry"
// @Success 200 {object} response.Envelope
// @Router /class-schedule/{id} [put]
func (h *ClassScheduleHandler) Update(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	id := requireParam(c, "id")
	if id == "" {
		return
	}
	var req dto.ClassScheduleRequest
	if !bindJSON(c, &req, "invalid class schedule payload") {
		return
	}
	entry, err := h.service.UpdateClass(c.Request.Context(), userID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry)
}

// Delete godoc
// @Summary Remove a class entry and its unavailable time
// @Tags Class Schedule
// @Security BearerAuth
// @Param id path string true "Class entry ID"
// @Success 204
// @Router /class-schedule/{id} [delete]
func (h *ClassScheduleHandler) Delete(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	id := requireParam(c, "id")
	if id == "" {
		return
	}
	if err := h.service.DeleteClass(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

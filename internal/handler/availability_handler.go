package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/berryseed/327project-group10/internal/dto"
	"github.com/berryseed/327project-group10/internal/models"
	appErrors "github.com/berryseed/327project-group10/pkg/errors"
	"github.com/berryseed/327project-group10/pkg/response"
)

type availabilityService interface {
	ListBlocks(ctx context.Context, userID string) ([]models.TimeBlock, error)
	CreateBlock(ctx context.Context, userID string, req dto.CreateTimeBlockRequest) (*models.TimeBlock, error)
	UpdateBlock(ctx context.Context, userID, id string, req dto.UpdateTimeBlockRequest) (*models.TimeBlock, error)
	DeleteBlock(ctx context.Context, userID, id string) error
	ListExceptions(ctx context.Context, userID string, query dto.ExceptionQuery) ([]models.AvailabilityException, error)
	CreateException(ctx context.Context, userID string, req dto.CreateExceptionRequest) (*models.AvailabilityException, error)
	DeleteException(ctx context.Context, userID, id string) error
}

// AvailabilityHandler exposes /availability endpoints.
type AvailabilityHandler struct {
	service availabilityService
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(service availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// ListBlocks godoc
// @Summary List time blocks
// @Tags Availability
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /availability/blocks [get]
func (h *AvailabilityHandler) ListBlocks(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	blocks, err := h.service.ListBlocks(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, blocks, map[string]interface{}{"total": len(blocks)})
}

// CreateBlock godoc
// @Summary Create a time block
// @Tags Availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTimeBlockRequest true "Time block"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /availability/blocks [post]
func (h *AvailabilityHandler) CreateBlock(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	var req dto.CreateTimeBlockRequest
	if !bindJSON(c, &req, "invalid time block payload") {
		return
	}
	block, err := h.service.CreateBlock(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, block)
}

// UpdateBlock godoc
// @Summary Update a time block
// @Tags Availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Block ID"
// @Param payload body dto.UpdateTimeBlockRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /availability/blocks/{id} [put]
func (h *AvailabilityHandler) UpdateBlock(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	id := requireParam(c, "id")
	if id == "" {
		return
	}
	var req dto.UpdateTimeBlockRequest
	if !bindJSON(c, &req, "invalid time block payload") {
		return
	}
	block, err := h.service.UpdateBlock(c.Request.Context(), userID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, block)
}

// DeleteBlock godoc
// @Summary Delete a time block
// @Tags Availability
// @Security BearerAuth
// @Param id path string true "Block ID"
// @Success 204
// @Router /availability/blocks/{id} [delete]
func (h *AvailabilityHandler) DeleteBlock(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	id := requireParam(c, "id")
	if id == "" {
		return
	}
	if err := h.service.DeleteBlock(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListExceptions godoc
// @Summary List availability exceptions
// @Tags Availability
// @Produce json
// @Security BearerAuth
// @Param start query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /availability/exceptions [get]
func (h *AvailabilityHandler) ListExceptions(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	var query dto.ExceptionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	items, err := h.service.ListExceptions(c.Request.Context(), userID, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, map[string]interface{}{"total": len(items)})
}

// CreateException godoc
// @Summary Create an availability exception
// @Tags Availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateExceptionRequest true "Exception"
// @Success 201 {object} response.Envelope
// @Router /availability/exceptions [post]
func (h *AvailabilityHandler) CreateException(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	var req dto.CreateExceptionRequest
	if !bindJSON(c, &req, "invalid exception payload") {
		return
	}
	exc, err := h.service.CreateException(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, exc)
}

// DeleteException godoc
// @Summary Delete an availability exception
// @Tags Availability
// @Security BearerAuth
// @Param id path string true "Exception ID"
// @Success 204
// @Router /availability/exceptions/{id} [delete]
func (h *AvailabilityHandler) DeleteException(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	id := requireParam(c, "id")
	if id == "" {
		return
	}
	if err := h.service.DeleteException(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

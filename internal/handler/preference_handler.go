package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/berryseed/327project-group10/internal/dto"
	"github.com/berryseed/327project-group10/internal/models"
	"github.com/berryseed/327project-group10/pkg/response"
)

type preferenceService interface {
	Get(ctx context.Context, userID string) (*models.UserPreferences, error)
	Update(ctx context.Context, userID string, req dto.UpdatePreferencesRequest) (*models.UserPreferences, error)
}

// PreferenceHandler exposes /user-preferences.
type PreferenceHandler struct {
	service preferenceService
}

// NewPreferenceHandler constructs the handler.
func NewPreferenceHandler(service preferenceService) *PreferenceHandler {
	return &PreferenceHandler{service: service}
}

// Get godoc
// @Summary Get scheduling preferences
// @Tags Preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /user-preferences [get]
func (h *PreferenceHandler) Get(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	prefs, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, prefs)
}

// Update godoc
// @Summary Replace scheduling preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.UpdatePreferencesRequest true "Preferences"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /user-preferences [put]
func (h *PreferenceHandler) Update(c *gin.Context) {
	userID := requireUserID(c)
	if userID == "" {
		return
	}
	var req dto.UpdatePreferencesRequest
	if !bindJSON(c, &req, "invalid preferences payload") {
		return
	}
	prefs, err := h.service.Update(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, prefs)
}

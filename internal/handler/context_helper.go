package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/berryseed/327project-group10/internal/middleware"
	"github.com/berryseed/327project-group10/internal/models"
	appErrors "github.com/berryseed/327project-group10/pkg/errors"
	"github.com/berryseed/327project-group10/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// requireUserID writes a 401 and returns "" when the request carries no authenticated user.
func requireUserID(c *gin.Context) string {
	claims := claimsFromContext(c)
	if claims == nil || strings.TrimSpace(claims.UserID) == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return ""
	}
	return claims.UserID
}

func requireParam(c *gin.Context, name string) string {
	value := strings.TrimSpace(c.Param(name))
	if value == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, name+" is required"))
	}
	return value
}

func bindJSON(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message))
		return false
	}
	return true
}

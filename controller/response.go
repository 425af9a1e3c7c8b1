package controller

import (
	"errors"
	"fooddonation-backend/models"
	"fooddonation-backend/services"
	"fooddonation-backend/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func respond(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, models.APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func respondError(c *gin.Context, code int, message string, apiErr *models.APIError) {
	c.JSON(code, models.APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		Error:   apiErr,
	})
}

// handleError maps service errors onto the response envelope.
// Store failures are logged and reported with a generic message.
func handleError(c *gin.Context, log logger.Logger, err error, action string) {
	if ve, ok := models.IsValidationError(err); ok {
		respondError(c, http.StatusBadRequest, ve.Message, &models.APIError{
			Type:    models.ErrorTypeValidation,
			Details: string(ve.Kind),
			Field:   ve.Field,
		})
		return
	}

	var nf *models.NotFoundError
	switch {
	case errors.As(err, &nf):
		respondError(c, http.StatusNotFound, nf.Error(), &models.APIError{
			Type:    models.ErrorTypeNotFound,
			Details: nf.ID,
		})
	case errors.Is(err, models.ErrNotFound):
		respondError(c, http.StatusNotFound, "Resource not found", &models.APIError{Type: models.ErrorTypeNotFound})
	case errors.Is(err, services.ErrAttachmentsDisabled), errors.Is(err, services.ErrExportDisabled):
		respondError(c, http.StatusServiceUnavailable, err.Error(), &models.APIError{Type: models.ErrorTypeUnavailable})
	default:
		log.WithFields(map[string]interface{}{
			"path":   c.FullPath(),
			"action": action,
		}).Errorf("Request failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to "+action, &models.APIError{
			Type:    models.ErrorTypeStore,
			Details: "internal server error",
		})
	}
}

func badRequest(c *gin.Context, field string, err error) {
	respondError(c, http.StatusBadRequest, "Invalid request", &models.APIError{
		Type:    models.ErrorTypeValidation,
		Details: err.Error(),
		Field:   field,
	})
}

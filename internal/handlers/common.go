// internal/handlers/common.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eterials/menu-backend/internal/services"
	"github.com/eterials/menu-backend/internal/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP status
// codes. Unknown errors are logged and become a generic 500.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		utils.ErrorResponse(c, http.StatusBadRequest, validationErr.Message, nil)
		return
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		utils.ErrorResponse(c, http.StatusNotFound, notFoundErr.Message, nil)
		return
	}

	var conflictErr *services.ConflictError
	if errors.As(err, &conflictErr) {
		var details interface{}
		if len(conflictErr.Details) > 0 {
			details = conflictErr.Details
		}
		utils.ErrorResponse(c, http.StatusConflict, conflictErr.Message, details)
		return
	}

	logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled service error")
	utils.ErrorResponse(c, http.StatusInternalServerError, "Error interno del servidor", nil)
}

// parseIDParam reads a positive numeric URL parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Identificador inválido", nil)
		return 0, false
	}
	return uint(id), true
}

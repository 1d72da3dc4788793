// internal/handlers/auth_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eterials/menu-backend/internal/services"
	"github.com/eterials/menu-backend/internal/utils"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cuerpo de solicitud inválido", nil)
		return
	}

	result, err := h.auth.Login(&req)
	if err != nil {
		// Bad credentials come back as a validation error; present them
		// as 401 rather than 400.
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) && validationErr.Message == "Credenciales inválidas" {
			utils.ErrorResponse(c, http.StatusUnauthorized, validationErr.Message, nil)
			return
		}
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// internal/handlers/settings_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eterials/menu-backend/internal/services"
	"github.com/eterials/menu-backend/internal/utils"
)

type SettingsHandler struct {
	settings    *services.SettingsService
	backgrounds *services.BackgroundService
}

func NewSettingsHandler(settings *services.SettingsService, backgrounds *services.BackgroundService) *SettingsHandler {
	return &SettingsHandler{settings: settings, backgrounds: backgrounds}
}

func (h *SettingsHandler) List(c *gin.Context) {
	settings, err := h.settings.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", settings)
}

func (h *SettingsHandler) Set(c *gin.Context) {
	key := c.Param("clave")

	var req struct {
		Value string `json:"valor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cuerpo de solicitud inválido", nil)
		return
	}

	setting, err := h.settings.Set(key, req.Value)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Configuración actualizada", setting)
}

// Greeting returns the time-of-day greeting plus the active background,
// everything the chatbot needs to render its welcome screen.
func (h *SettingsHandler) Greeting(c *gin.Context) {
	background, err := h.backgrounds.ActiveBackground()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	payload := gin.H{"saludo": h.settings.Greeting(time.Now())}
	if background != nil {
		payload["fondo"] = background
	}
	utils.SuccessResponse(c, http.StatusOK, "", payload)
}

func (h *SettingsHandler) ListBackgrounds(c *gin.Context) {
	backgrounds, err := h.backgrounds.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", backgrounds)
}

func (h *SettingsHandler) UploadBackground(c *gin.Context) {
	file, err := c.FormFile("archivo")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "No se envió ningún archivo", nil)
		return
	}

	background, err := h.backgrounds.Upload(
		c.PostForm("nombre"),
		c.PostForm("descripcion"),
		file,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Fondo subido", background)
}

func (h *SettingsHandler) ActivateBackground(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	background, err := h.backgrounds.Activate(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Fondo activado", background)
}

func (h *SettingsHandler) DeleteBackground(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.backgrounds.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Fondo eliminado", nil)
}

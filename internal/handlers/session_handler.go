// internal/handlers/session_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eterials/menu-backend/internal/services"
	"github.com/eterials/menu-backend/internal/utils"
)

type SessionHandler struct {
	sessions *services.SessionService
	settings *services.SettingsService
}

func NewSessionHandler(sessions *services.SessionService, settings *services.SettingsService) *SessionHandler {
	return &SessionHandler{sessions: sessions, settings: settings}
}

func (h *SessionHandler) Start(c *gin.Context) {
	var req services.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cuerpo de solicitud inválido", nil)
		return
	}

	result, err := h.sessions.StartSession(&req, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Reused {
		status = http.StatusOK
	}
	utils.SuccessResponse(c, status, "", gin.H{
		"sesion_id":           result.Session.ID,
		"mesa":                result.Session.Table,
		"sesion_reutilizada":  result.Reused,
		"saludo":              result.Greeting,
		"fecha_inicio":        result.Session.StartedAt,
		"fecha_ultimo_acceso": result.Session.LastSeenAt,
	})
}

func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := h.sessions.GetSession(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", session)
}

func (h *SessionHandler) Validate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	validity, err := h.sessions.Validate(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", validity)
}

func (h *SessionHandler) Heartbeat(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := h.sessions.Heartbeat(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"sesion_id":           session.ID,
		"fecha_ultimo_acceso": session.LastSeenAt,
	})
}

func (h *SessionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cuerpo de solicitud inválido", nil)
		return
	}

	session, err := h.sessions.UpdateSession(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Sesión actualizada", session)
}

func (h *SessionHandler) Close(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := h.sessions.CloseSession(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Sesión cerrada", session)
}

func (h *SessionHandler) ListActive(c *gin.Context) {
	sessions, err := h.sessions.ListActiveSessions()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", sessions)
}

// Timeout exposes the configured inactivity window to the chatbot UI.
func (h *SessionHandler) Timeout(c *gin.Context) {
	timeout := h.settings.SessionTimeout()
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"timeout_minutos":  int(timeout.Minutes()),
		"timeout_segundos": int(timeout.Seconds()),
	})
}

// internal/handlers/feedback_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eterials/menu-backend/internal/services"
	"github.com/eterials/menu-backend/internal/utils"
)

type FeedbackHandler struct {
	feedback *services.FeedbackService
}

func NewFeedbackHandler(feedback *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

func (h *FeedbackHandler) SubmitRating(c *gin.Context) {
	var req services.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cuerpo de solicitud inválido", nil)
		return
	}

	rating, err := h.feedback.SubmitRating(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Calificación registrada", rating)
}

func (h *FeedbackHandler) ListRatings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limite", "50"))
	ratings, err := h.feedback.ListRatings(limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	stats, err := h.feedback.GetStats()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"calificaciones": ratings,
		"estadisticas":   stats,
	})
}

func (h *FeedbackHandler) SubmitComment(c *gin.Context) {
	var req services.SubmitCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cuerpo de solicitud inválido", nil)
		return
	}

	comment, err := h.feedback.SubmitComment(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Comentario registrado", comment)
}

func (h *FeedbackHandler) ListComments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limite", "50"))
	comments, err := h.feedback.ListComments(limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", comments)
}

func (h *FeedbackHandler) NotifyStaff(c *gin.Context) {
	var req services.NotifyStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Cuerpo de solicitud inválido", nil)
		return
	}

	notification, err := h.feedback.NotifyStaff(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Notificación enviada", notification)
}

func (h *FeedbackHandler) ListPendingNotifications(c *gin.Context) {
	notifications, err := h.feedback.ListPendingNotifications()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", notifications)
}

func (h *FeedbackHandler) ResolveNotification(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resolvedBy := c.GetString("staff_user")
	if resolvedBy == "" {
		resolvedBy = "staff"
	}

	notification, err := h.feedback.ResolveNotification(id, resolvedBy)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Notificación atendida", notification)
}

func (h *FeedbackHandler) Stats(c *gin.Context) {
	stats, err := h.feedback.GetStats()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", stats)
}

func (h *FeedbackHandler) AnalyticsSummary(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("dias", "7"))
	summary, err := h.feedback.AnalyticsSummary(days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"dias":    days,
		"eventos": summary,
	})
}

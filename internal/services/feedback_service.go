// internal/services/feedback_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/eterials/menu-backend/internal/metrics"
	"github.com/eterials/menu-backend/internal/models"
)

// FeedbackService handles the per-session sub-ledger: ratings, free-text
// comments and staff notifications.
type FeedbackService struct {
	db       *gorm.DB
	sessions *SessionService
	settings *SettingsService
}

type SubmitRatingRequest struct {
	SessionID uint                  `json:"sesion_id" validate:"required"`
	Stars     int                   `json:"estrellas" validate:"required,min=1,max=5"`
	Category  models.RatingCategory `json:"categoria,omitempty"`
}

type SubmitCommentRequest struct {
	SessionID uint               `json:"sesion_id" validate:"required"`
	Text      string             `json:"texto_comentario" validate:"required,min=1"`
	Kind      models.CommentKind `json:"tipo,omitempty"`
}

type NotifyStaffRequest struct {
	SessionID uint                        `json:"sesion_id" validate:"required"`
	Kind      models.NotificationKind     `json:"tipo_notificacion" validate:"required"`
	Message   string                      `json:"mensaje,omitempty"`
	Priority  models.NotificationPriority `json:"prioridad,omitempty"`
}

type FeedbackStats struct {
	TotalRatings   int64              `json:"total_calificaciones"`
	AverageStars   float64            `json:"promedio_estrellas"`
	ByCategory     map[string]float64 `json:"promedio_por_categoria"`
	TotalComments  int64              `json:"total_comentarios"`
	PendingNotices int64              `json:"notificaciones_pendientes"`
}

func NewFeedbackService(db *gorm.DB, sessions *SessionService, settings *SettingsService) *FeedbackService {
	return &FeedbackService{db: db, sessions: sessions, settings: settings}
}

// requireLiveSession loads the session and rejects closed or expired
// ones. Feedback only attaches to live sessions.
func (s *FeedbackService) requireLiveSession(id uint) (*models.TableSession, error) {
	session, err := s.sessions.GetSession(id)
	if err != nil {
		return nil, err
	}
	if !session.Active {
		return nil, &ConflictError{Message: "La sesión ya está cerrada"}
	}
	if s.sessions.IsExpired(session, time.Now()) {
		if err := s.sessions.Expire(session); err != nil {
			return nil, err
		}
		return nil, &ConflictError{Message: "La sesión expiró por inactividad"}
	}
	return session, nil
}

// SubmitRating upserts the session's rating for a category: a second
// submission for the same (session, category) pair replaces the stars.
func (s *FeedbackService) SubmitRating(req *SubmitRatingRequest) (*models.Rating, error) {
	if req.Stars < 1 || req.Stars > 5 {
		return nil, NewValidationError("Las estrellas deben estar entre 1 y 5")
	}

	category := req.Category
	if category == "" {
		category = models.RatingCategoryGeneral
	}
	switch category {
	case models.RatingCategoryService, models.RatingCategoryFood,
		models.RatingCategoryAmbience, models.RatingCategoryGeneral:
	default:
		return nil, NewValidationError("Categoría de calificación inválida: %s", category)
	}

	session, err := s.requireLiveSession(req.SessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var rating models.Rating
	err = s.db.Where("sesion_id = ? AND categoria = ?", req.SessionID, category).
		First(&rating).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"estrellas":          req.Stars,
			"fecha_calificacion": now,
		}
		if err := s.db.Model(&rating).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update rating: %w", err)
		}
		rating.Stars = req.Stars
		rating.RatedAt = now
	case errors.Is(err, gorm.ErrRecordNotFound):
		rating = models.Rating{
			SessionID: req.SessionID,
			Stars:     req.Stars,
			Category:  category,
			RatedAt:   now,
		}
		if err := s.db.Create(&rating).Error; err != nil {
			return nil, fmt.Errorf("failed to create rating: %w", err)
		}
	default:
		return nil, fmt.Errorf("database error: %w", err)
	}

	metrics.RatingsSubmitted.WithLabelValues(string(category)).Inc()
	s.recordEvent(session.Table, "calificacion", float64(req.Stars), string(category))
	return &rating, nil
}

func (s *FeedbackService) SubmitComment(req *SubmitCommentRequest) (*models.Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, NewValidationError("El comentario no puede estar vacío")
	}

	kind := req.Kind
	if kind == "" {
		kind = models.CommentKindGeneral
	}

	session, err := s.requireLiveSession(req.SessionID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		SessionID: req.SessionID,
		Text:      text,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.recordEvent(session.Table, "comentario", 0, string(kind))
	return comment, nil
}

// NotifyStaff records a call-the-staff request. Emergencies are always
// urgent regardless of the requested priority.
func (s *FeedbackService) NotifyStaff(req *NotifyStaffRequest) (*models.StaffNotification, error) {
	switch req.Kind {
	case models.NotificationKindCallWaiter, models.NotificationKindSpecialOrder,
		models.NotificationKindEmergency:
	default:
		return nil, NewValidationError("Tipo de notificación inválido: %s", req.Kind)
	}

	if !s.settings.GetBool("notificaciones_habilitadas", true) {
		return nil, &ConflictError{Message: "Las notificaciones al personal están deshabilitadas"}
	}

	session, err := s.requireLiveSession(req.SessionID)
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	if req.Kind == models.NotificationKindEmergency {
		priority = models.PriorityUrgent
	}

	notification := &models.StaffNotification{
		SessionID: req.SessionID,
		Kind:      req.Kind,
		Message:   strings.TrimSpace(req.Message),
		Priority:  priority,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	metrics.StaffNotifications.WithLabelValues(string(req.Kind)).Inc()
	s.recordEvent(session.Table, "notificacion_personal", 0, string(req.Kind))
	logrus.WithFields(logrus.Fields{
		"mesa":      session.Table,
		"tipo":      req.Kind,
		"prioridad": priority,
	}).Info("Staff notification created")

	return notification, nil
}

// ListPendingNotifications returns unresolved notifications, most urgent
// first.
func (s *FeedbackService) ListPendingNotifications() ([]models.StaffNotification, error) {
	var notifications []models.StaffNotification
	err := s.db.Preload("Session").
		Where("atendida = ?", false).
		Order("CASE prioridad WHEN 'urgente' THEN 0 WHEN 'alta' THEN 1 WHEN 'normal' THEN 2 ELSE 3 END, fecha_notificacion ASC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return notifications, nil
}

// ResolveNotification marks a notification attended. Resolution is
// one-way; resolving twice is a conflict.
func (s *FeedbackService) ResolveNotification(id uint, resolvedBy string) (*models.StaffNotification, error) {
	var notification models.StaffNotification
	if err := s.db.First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "Notificación no encontrada"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if notification.Resolved {
		return nil, &ConflictError{Message: "La notificación ya fue atendida"}
	}

	now := time.Now()
	updates := map[string]interface{}{
		"atendida":       true,
		"atendida_por":   strings.TrimSpace(resolvedBy),
		"fecha_atencion": now,
	}
	if err := s.db.Model(&notification).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve notification: %w", err)
	}

	notification.Resolved = true
	notification.ResolvedBy = strings.TrimSpace(resolvedBy)
	notification.ResolvedAt = &now
	return &notification, nil
}

// ListComments returns recent comments for the staff dashboard.
func (s *FeedbackService) ListComments(limit int) ([]models.Comment, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var comments []models.Comment
	err := s.db.Preload("Session").
		Order("fecha_comentario DESC").
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	return comments, nil
}

// ListRatings returns recent ratings for the staff dashboard.
func (s *FeedbackService) ListRatings(limit int) ([]models.Rating, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var ratings []models.Rating
	err := s.db.Preload("Session").
		Order("fecha_calificacion DESC").
		Limit(limit).
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ratings: %w", err)
	}
	return ratings, nil
}

type AnalyticsSummaryRow struct {
	Event   string  `json:"evento"`
	Count   int64   `json:"total"`
	Average float64 `json:"promedio_valor"`
}

// AnalyticsSummary aggregates events over the last N days.
func (s *FeedbackService) AnalyticsSummary(days int) ([]AnalyticsSummaryRow, error) {
	if days <= 0 || days > 365 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)

	var rows []AnalyticsSummaryRow
	err := s.db.Model(&models.AnalyticsEvent{}).
		Select("evento AS event, COUNT(*) AS count, COALESCE(AVG(valor_numerico), 0) AS average").
		Where("fecha >= ?", since).
		Group("evento").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize analytics: %w", err)
	}
	return rows, nil
}

func (s *FeedbackService) GetStats() (*FeedbackStats, error) {
	stats := &FeedbackStats{ByCategory: make(map[string]float64)}

	if err := s.db.Model(&models.Rating{}).Count(&stats.TotalRatings).Error; err != nil {
		return nil, fmt.Errorf("failed to count ratings: %w", err)
	}

	if stats.TotalRatings > 0 {
		if err := s.db.Model(&models.Rating{}).
			Select("COALESCE(AVG(estrellas), 0)").
			Scan(&stats.AverageStars).Error; err != nil {
			return nil, fmt.Errorf("failed to average ratings: %w", err)
		}

		type categoryAvg struct {
			Category string
			Avg      float64
		}
		var rows []categoryAvg
		err := s.db.Model(&models.Rating{}).
			Select("categoria AS category, AVG(estrellas) AS avg").
			Group("categoria").
			Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to average ratings by category: %w", err)
		}
		for _, row := range rows {
			stats.ByCategory[row.Category] = row.Avg
		}
	}

	s.db.Model(&models.Comment{}).Count(&stats.TotalComments)
	s.db.Model(&models.StaffNotification{}).Where("atendida = ?", false).Count(&stats.PendingNotices)

	return stats, nil
}

func (s *FeedbackService) recordEvent(table, event string, numeric float64, text string) {
	row := &models.AnalyticsEvent{
		CreatedAt:    time.Now(),
		Table:        table,
		Event:        event,
		NumericValue: numeric,
		TextValue:    text,
	}
	if err := s.db.Create(row).Error; err != nil {
		logrus.WithError(err).Warn("Failed to record analytics event")
	}
}

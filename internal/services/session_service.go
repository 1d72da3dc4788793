// internal/services/session_service.go
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

// SessionService owns the chatbot table-session lifecycle: one active
// session per table, closed explicitly or by inactivity timeout.
type SessionService struct {
	db       *gorm.DB
	settings *SettingsService
}

type StartSessionRequest struct {
	Table        string `json:"mesa" validate:"required,min=1,max=20"`
	CustomerName string `json:"nombre_cliente,omitempty" validate:"omitempty,max=100"`
	Device       string `json:"dispositivo,omitempty"`
}

type StartSessionResult struct {
	Session  *models.TableSession `json:"sesion"`
	Reused   bool                 `json:"sesion_reutilizada"`
	Greeting string               `json:"saludo"`
}

func NewSessionService(db *gorm.DB, settings *SettingsService) *SessionService {
	return &SessionService{db: db, settings: settings}
}

// IsExpired reports whether a session passed the inactivity window at
// the given instant. Pure check; it never mutates the row.
func (s *SessionService) IsExpired(session *models.TableSession, now time.Time) bool {
	if !session.Active {
		return false
	}
	return now.Sub(session.LastSeenAt) > s.settings.SessionTimeout()
}

// Expire closes a session because of inactivity. Idempotent on already
// closed rows.
func (s *SessionService) Expire(session *models.TableSession) error {
	if !session.Active {
		return nil
	}

	if err := s.db.Model(session).Update("activa", false).Error; err != nil {
		return fmt.Errorf("failed to expire session: %w", err)
	}

	metrics.SessionsExpired.Inc()
	s.recordEvent(session.Table, "sesion_expirada", 0, "")
	logrus.WithFields(logrus.Fields{
		"session_id": session.ID,
		"mesa":       session.Table,
	}).Info("Session expired by inactivity")
	return nil
}

// StartSession reuses the table's active session when one exists and is
// still inside the inactivity window; otherwise it expires the stale one
// and opens a fresh session.
func (s *SessionService) StartSession(req *StartSessionRequest, clientIP string) (*StartSessionResult, error) {
	table := strings.TrimSpace(req.Table)
	if table == "" {
		return nil, NewValidationError("La mesa es requerida")
	}

	now := time.Now()

	var existing models.TableSession
	err := s.db.Where("mesa = ? AND activa = ?", table, true).First(&existing).Error
	switch {
	case err == nil:
		if !s.IsExpired(&existing, now) {
			updates := map[string]interface{}{"fecha_ultimo_acceso": now}
			if name := strings.TrimSpace(req.CustomerName); name != "" && existing.CustomerName == "" {
				updates["nombre_cliente"] = name
			}
			if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
				return nil, fmt.Errorf("failed to refresh session: %w", err)
			}
			return &StartSessionResult{
				Session:  &existing,
				Reused:   true,
				Greeting: s.settings.Greeting(now),
			}, nil
		}
		if err := s.Expire(&existing); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no active session, fall through to create
	default:
		return nil, fmt.Errorf("database error: %w", err)
	}

	session := &models.TableSession{
		Table:        table,
		CustomerName: strings.TrimSpace(req.CustomerName),
		StartedAt:    now,
		LastSeenAt:   now,
		Device:       req.Device,
		ClientIP:     clientIP,
		Active:       true,
	}

	if err := s.db.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	metrics.SessionsStarted.Inc()
	s.recordEvent(table, "sesion_iniciada", 0, session.CustomerName)
	logrus.WithFields(logrus.Fields{
		"session_id": session.ID,
		"mesa":       table,
	}).Info("Session started")

	return &StartSessionResult{
		Session:  session,
		Reused:   false,
		Greeting: s.settings.Greeting(now),
	}, nil
}

func (s *SessionService) GetSession(id uint) (*models.TableSession, error) {
	var session models.TableSession
	if err := s.db.First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "Sesión no encontrada"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &session, nil
}

// Heartbeat refreshes the inactivity clock. An expired session is closed
// and reported as a conflict so the client restarts it.
func (s *SessionService) Heartbeat(id uint) (*models.TableSession, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !session.Active {
		return nil, &ConflictError{Message: "La sesión ya está cerrada"}
	}
	if s.IsExpired(session, now) {
		if err := s.Expire(session); err != nil {
			return nil, err
		}
		return nil, &ConflictError{Message: "La sesión expiró por inactividad"}
	}

	if err := s.db.Model(session).Update("fecha_ultimo_acceso", now).Error; err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}
	session.LastSeenAt = now
	return session, nil
}

type SessionValidity struct {
	Valid            bool   `json:"valida"`
	Reason           string `json:"razon,omitempty"`
	RemainingSeconds int    `json:"tiempo_restante_segundos,omitempty"`
}

// Validate reports whether a session is still usable. A session past the
// inactivity window is expired as a side effect.
func (s *SessionService) Validate(id uint) (*SessionValidity, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !session.Active {
		return &SessionValidity{Valid: false, Reason: "sesion_cerrada"}, nil
	}
	if s.IsExpired(session, now) {
		if err := s.Expire(session); err != nil {
			return nil, err
		}
		return &SessionValidity{Valid: false, Reason: "sesion_expirada"}, nil
	}

	remaining := s.settings.SessionTimeout() - now.Sub(session.LastSeenAt)
	return &SessionValidity{
		Valid:            true,
		RemainingSeconds: int(remaining.Seconds()),
	}, nil
}

type UpdateSessionRequest struct {
	CustomerName *string `json:"nombre_cliente,omitempty" validate:"omitempty,max=100"`
	Device       *string `json:"dispositivo,omitempty"`
}

// UpdateSession edits the mutable session fields and refreshes the
// inactivity clock.
func (s *SessionService) UpdateSession(id uint, req *UpdateSessionRequest) (*models.TableSession, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}
	if !session.Active {
		return nil, &ConflictError{Message: "La sesión ya está cerrada"}
	}

	updates := map[string]interface{}{"fecha_ultimo_acceso": time.Now()}
	if req.CustomerName != nil {
		updates["nombre_cliente"] = strings.TrimSpace(*req.CustomerName)
	}
	if req.Device != nil {
		updates["dispositivo"] = *req.Device
	}

	if err := s.db.Model(session).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return s.GetSession(id)
}

// CloseSession ends a session explicitly. Closing twice is a no-op.
func (s *SessionService) CloseSession(id uint) (*models.TableSession, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}

	if !session.Active {
		return session, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"activa":              false,
		"fecha_ultimo_acceso": now,
	}
	if err := s.db.Model(session).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to close session: %w", err)
	}

	duration := now.Sub(session.StartedAt).Minutes()
	s.recordEvent(session.Table, "sesion_cerrada", duration, "")
	logrus.WithFields(logrus.Fields{
		"session_id": session.ID,
		"mesa":       session.Table,
		"minutos":    int(duration),
	}).Info("Session closed")

	session.Active = false
	session.LastSeenAt = now
	return session, nil
}

// ListActiveSessions sweeps expired sessions first, then returns the
// remaining active ones.
func (s *SessionService) ListActiveSessions() ([]models.TableSession, error) {
	if _, err := s.SweepExpired(); err != nil {
		return nil, err
	}

	var sessions []models.TableSession
	err := s.db.Where("activa = ?", true).
		Order("fecha_ultimo_acceso DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	return sessions, nil
}

// SweepExpired closes every active session past the inactivity window
// and reports how many were closed.
func (s *SessionService) SweepExpired() (int, error) {
	var sessions []models.TableSession
	if err := s.db.Where("activa = ?", true).Find(&sessions).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch sessions: %w", err)
	}

	now := time.Now()
	closed := 0
	for i := range sessions {
		if s.IsExpired(&sessions[i], now) {
			if err := s.Expire(&sessions[i]); err != nil {
				return closed, err
			}
			closed++
		}
	}
	return closed, nil
}

func (s *SessionService) recordEvent(table, event string, numeric float64, text string) {
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

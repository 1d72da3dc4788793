// internal/services/session_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eterials/menu-backend/internal/models"
)

func newSessionService(t *testing.T) (*SessionService, *SettingsService) {
	db := newTestDB(t)
	settings := NewSettingsService(db)
	return NewSessionService(db, settings), settings
}

func TestStartSessionReusesActiveSession(t *testing.T) {
	svc, _ := newSessionService(t)

	first, err := svc.StartSession(&StartSessionRequest{Table: "5"}, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, first.Reused)

	second, err := svc.StartSession(&StartSessionRequest{Table: "5", CustomerName: "Ana"}, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, second.Reused)
	assert.Equal(t, first.Session.ID, second.Session.ID)
	assert.Equal(t, "Ana", mustGetSession(t, svc, first.Session.ID).CustomerName)

	// A different table opens its own session.
	other, err := svc.StartSession(&StartSessionRequest{Table: "6"}, "10.0.0.2")
	require.NoError(t, err)
	assert.NotEqual(t, first.Session.ID, other.Session.ID)
}

func TestStartSessionReplacesExpiredSession(t *testing.T) {
	svc, _ := newSessionService(t)

	first, err := svc.StartSession(&StartSessionRequest{Table: "5"}, "")
	require.NoError(t, err)

	backdateSession(t, svc, first.Session.ID, 30*time.Minute)

	second, err := svc.StartSession(&StartSessionRequest{Table: "5"}, "")
	require.NoError(t, err)
	assert.False(t, second.Reused)
	assert.NotEqual(t, first.Session.ID, second.Session.ID)

	old := mustGetSession(t, svc, first.Session.ID)
	assert.False(t, old.Active)
}

func TestIsExpiredIsPure(t *testing.T) {
	svc, _ := newSessionService(t)

	result, err := svc.StartSession(&StartSessionRequest{Table: "1"}, "")
	require.NoError(t, err)
	session := result.Session

	now := session.LastSeenAt
	assert.False(t, svc.IsExpired(session, now.Add(9*time.Minute)))
	assert.True(t, svc.IsExpired(session, now.Add(11*time.Minute)))

	// The check never flips the stored row.
	stored := mustGetSession(t, svc, session.ID)
	assert.True(t, stored.Active)
}

func TestHeartbeatExpiresStaleSession(t *testing.T) {
	svc, _ := newSessionService(t)

	result, err := svc.StartSession(&StartSessionRequest{Table: "2"}, "")
	require.NoError(t, err)

	backdateSession(t, svc, result.Session.ID, time.Hour)

	_, err = svc.Heartbeat(result.Session.ID)
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)

	stored := mustGetSession(t, svc, result.Session.ID)
	assert.False(t, stored.Active)
}

func TestValidateReportsRemainingTime(t *testing.T) {
	svc, _ := newSessionService(t)

	result, err := svc.StartSession(&StartSessionRequest{Table: "3"}, "")
	require.NoError(t, err)

	validity, err := svc.Validate(result.Session.ID)
	require.NoError(t, err)
	assert.True(t, validity.Valid)
	assert.Greater(t, validity.RemainingSeconds, 0)
	assert.LessOrEqual(t, validity.RemainingSeconds, 600)

	backdateSession(t, svc, result.Session.ID, time.Hour)

	validity, err = svc.Validate(result.Session.ID)
	require.NoError(t, err)
	assert.False(t, validity.Valid)
	assert.Equal(t, "sesion_expirada", validity.Reason)
}

func TestCloseSessionIsIdempotent(t *testing.T) {
	svc, _ := newSessionService(t)

	result, err := svc.StartSession(&StartSessionRequest{Table: "4"}, "")
	require.NoError(t, err)

	closed, err := svc.CloseSession(result.Session.ID)
	require.NoError(t, err)
	assert.False(t, closed.Active)

	again, err := svc.CloseSession(result.Session.ID)
	require.NoError(t, err)
	assert.False(t, again.Active)
}

func TestSessionTimeoutReadFromSettings(t *testing.T) {
	svc, settings := newSessionService(t)

	_, err := settings.Set("sesion_timeout", "2")
	require.NoError(t, err)

	result, err := svc.StartSession(&StartSessionRequest{Table: "7"}, "")
	require.NoError(t, err)

	session := result.Session
	assert.False(t, svc.IsExpired(session, session.LastSeenAt.Add(1*time.Minute)))
	assert.True(t, svc.IsExpired(session, session.LastSeenAt.Add(3*time.Minute)))
}

func TestSweepExpiredClosesOnlyStaleSessions(t *testing.T) {
	svc, _ := newSessionService(t)

	stale, err := svc.StartSession(&StartSessionRequest{Table: "8"}, "")
	require.NoError(t, err)
	fresh, err := svc.StartSession(&StartSessionRequest{Table: "9"}, "")
	require.NoError(t, err)

	backdateSession(t, svc, stale.Session.ID, time.Hour)

	closed, err := svc.SweepExpired()
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	assert.False(t, mustGetSession(t, svc, stale.Session.ID).Active)
	assert.True(t, mustGetSession(t, svc, fresh.Session.ID).Active)
}

func mustGetSession(t *testing.T, svc *SessionService, id uint) *models.TableSession {
	t.Helper()
	session, err := svc.GetSession(id)
	require.NoError(t, err)
	return session
}

func backdateSession(t *testing.T, svc *SessionService, id uint, age time.Duration) {
	t.Helper()
	err := svc.db.Model(&models.TableSession{}).Where("id = ?", id).
		Update("fecha_ultimo_acceso", time.Now().Add(-age)).Error
	require.NoError(t, err)
}

// internal/services/settings_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsTypedGetters(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)

	assert.Equal(t, 10, svc.GetInt("sesion_timeout", 99))
	assert.True(t, svc.GetBool("notificaciones_habilitadas", false))
	assert.Equal(t, "Buenos días", svc.GetString("saludo_manana", ""))

	// Missing keys fall back.
	assert.Equal(t, 42, svc.GetInt("no_existe", 42))
	assert.Equal(t, "x", svc.GetString("no_existe", "x"))
}

func TestSettingsSetUpserts(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)

	updated, err := svc.Set("sesion_timeout", "25")
	require.NoError(t, err)
	assert.Equal(t, "25", updated.Value)
	assert.Equal(t, "integer", updated.Kind)
	assert.Equal(t, 25*time.Minute, svc.SessionTimeout())

	created, err := svc.Set("clave_nueva", "hola")
	require.NoError(t, err)
	assert.Equal(t, "hola", created.Value)
}

func TestGreetingByTimeOfDay(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "Buenos días", svc.Greeting(day.Add(8*time.Hour)))
	assert.Equal(t, "Buenas tardes", svc.Greeting(day.Add(14*time.Hour)))
	assert.Equal(t, "Buenas noches", svc.Greeting(day.Add(20*time.Hour)))
	assert.Equal(t, "Buenas noches", svc.Greeting(day.Add(3*time.Hour)))
}

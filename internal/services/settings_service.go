// internal/services/settings_service.go
package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/eterials/menu-backend/internal/models"
)

// SettingsService wraps the chatbot_configuracion table behind typed
// accessors. Other services take it as a dependency instead of reading
// the table themselves.
type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

func (s *SettingsService) Get(key string) (*models.Setting, error) {
	var setting models.Setting
	if err := s.db.Where("clave = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: fmt.Sprintf("Configuración %q no encontrada", key)}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &setting, nil
}

func (s *SettingsService) GetString(key, fallback string) string {
	setting, err := s.Get(key)
	if err != nil {
		return fallback
	}
	return setting.Value
}

func (s *SettingsService) GetInt(key string, fallback int) int {
	setting, err := s.Get(key)
	if err != nil {
		return fallback
	}
	if v, err := strconv.Atoi(setting.Value); err == nil {
		return v
	}
	return fallback
}

func (s *SettingsService) GetBool(key string, fallback bool) bool {
	setting, err := s.Get(key)
	if err != nil {
		return fallback
	}
	if v, err := strconv.ParseBool(setting.Value); err == nil {
		return v
	}
	return fallback
}

func (s *SettingsService) List() ([]models.Setting, error) {
	var settings []models.Setting
	if err := s.db.Order("clave ASC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	return settings, nil
}

// Set upserts a setting value keeping its kind and description when the
// row already exists.
func (s *SettingsService) Set(key, value string) (*models.Setting, error) {
	if key == "" {
		return nil, NewValidationError("La clave es requerida")
	}

	setting, err := s.Get(key)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		setting = &models.Setting{Key: key, Value: value, Kind: "string"}
		if err := s.db.Create(setting).Error; err != nil {
			return nil, fmt.Errorf("failed to create setting: %w", err)
		}
		return setting, nil
	}

	if err := s.db.Model(setting).Update("valor", value).Error; err != nil {
		return nil, fmt.Errorf("failed to update setting: %w", err)
	}
	return s.Get(key)
}

// SessionTimeout reads the inactivity window, defaulting to 10 minutes
// when the row is missing or malformed.
func (s *SettingsService) SessionTimeout() time.Duration {
	minutes := s.GetInt("sesion_timeout", 10)
	if minutes <= 0 {
		minutes = 10
	}
	return time.Duration(minutes) * time.Minute
}

// Greeting picks the configured greeting for the hour of day.
func (s *SettingsService) Greeting(now time.Time) string {
	hour := now.Hour()
	switch {
	case hour >= 6 && hour < 12:
		return s.GetString("saludo_manana", "Buenos días")
	case hour >= 12 && hour < 18:
		return s.GetString("saludo_tarde", "Buenas tardes")
	default:
		return s.GetString("saludo_noche", "Buenas noches")
	}
}

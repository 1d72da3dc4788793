// internal/services/background_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/eterials/menu-backend/internal/models"
)

// BackgroundService manages the uploaded chatbot background images and
// which one is active.
type BackgroundService struct {
	db       *gorm.DB
	storage  *StorageService
	settings *SettingsService
}

func NewBackgroundService(db *gorm.DB, storage *StorageService, settings *SettingsService) *BackgroundService {
	return &BackgroundService{db: db, storage: storage, settings: settings}
}

func (s *BackgroundService) Upload(name, description string, file *multipart.FileHeader) (*models.Background, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("El nombre es requerido")
	}

	var count int64
	if err := s.db.Model(&models.Background{}).Where("nombre = ?", name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, &ConflictError{Message: fmt.Sprintf("Ya existe un fondo con el nombre %q", name)}
	}

	stored, err := s.storage.SaveImage(file, "fondos")
	if err != nil {
		return nil, err
	}

	background := &models.Background{
		Name:         name,
		Description:  description,
		FileURL:      stored.URL,
		OriginalName: stored.OriginalName,
		FileType:     strings.TrimPrefix(stored.Extension, "."),
		FileSize:     stored.Size,
		Active:       false,
		UploadedAt:   time.Now(),
	}

	if err := s.db.Create(background).Error; err != nil {
		s.storage.Delete(stored.URL)
		return nil, fmt.Errorf("failed to create background: %w", err)
	}
	return background, nil
}

func (s *BackgroundService) List() ([]models.Background, error) {
	var backgrounds []models.Background
	if err := s.db.Order("fecha_subida DESC").Find(&backgrounds).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch backgrounds: %w", err)
	}
	return backgrounds, nil
}

func (s *BackgroundService) Get(id uint) (*models.Background, error) {
	var background models.Background
	if err := s.db.First(&background, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "Fondo no encontrado"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &background, nil
}

// Activate switches the chatbot to the given background. Only one
// background is active at a time.
func (s *BackgroundService) Activate(id uint) (*models.Background, error) {
	background, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Background{}).Where("activo = ?", true).
			Update("activo", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate backgrounds: %w", err)
		}
		updates := map[string]interface{}{
			"activo":       true,
			"fecha_uso":    now,
			"uso_contador": gorm.Expr("uso_contador + 1"),
		}
		if err := tx.Model(background).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to activate background: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.settings.Set("fondo_activo", background.Name); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// ActiveBackground returns the currently active background, or nil when
// none is set.
func (s *BackgroundService) ActiveBackground() (*models.Background, error) {
	var background models.Background
	err := s.db.Where("activo = ?", true).First(&background).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &background, nil
}

func (s *BackgroundService) Delete(id uint) error {
	background, err := s.Get(id)
	if err != nil {
		return err
	}
	if background.Active {
		return &ConflictError{Message: "No se puede eliminar el fondo activo"}
	}

	if err := s.db.Delete(background).Error; err != nil {
		return fmt.Errorf("failed to delete background: %w", err)
	}
	return s.storage.Delete(background.FileURL)
}

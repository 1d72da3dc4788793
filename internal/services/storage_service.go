// internal/services/storage_service.go
package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eterials/menu-backend/internal/config"
)

// StorageService saves uploaded images on local disk under the
// configured uploads directory and hands back public URLs.
type StorageService struct {
	cfg config.UploadConfig
}

type StoredFile struct {
	URL          string `json:"url"`
	FileName     string `json:"archivo"`
	OriginalName string `json:"archivo_original"`
	Size         int64  `json:"tamano"`
	Extension    string `json:"extension"`
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func NewStorageService(cfg config.UploadConfig) *StorageService {
	return &StorageService{cfg: cfg}
}

// SaveImage validates and persists an uploaded image. Files get a UUID
// name so uploads never overwrite each other.
func (s *StorageService) SaveImage(file *multipart.FileHeader, subdir string) (*StoredFile, error) {
	if file == nil {
		return nil, NewValidationError("No se envió ningún archivo")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return nil, NewValidationError("Tipo de archivo no permitido: %s", ext)
	}

	maxBytes := int64(s.cfg.MaxSizeMB) * 1024 * 1024
	if file.Size > maxBytes {
		return nil, NewValidationError("El archivo excede el tamaño máximo de %d MB", s.cfg.MaxSizeMB)
	}

	dir := s.cfg.Dir
	if subdir != "" {
		dir = filepath.Join(dir, subdir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.New().String() + ext
	dst := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return nil, fmt.Errorf("failed to write uploaded file: %w", err)
	}

	publicURL := s.cfg.PublicPath
	if subdir != "" {
		publicURL += "/" + subdir
	}
	publicURL += "/" + name

	logrus.WithFields(logrus.Fields{
		"archivo": name,
		"tamano":  file.Size,
	}).Info("Image stored")

	return &StoredFile{
		URL:          publicURL,
		FileName:     name,
		OriginalName: file.Filename,
		Size:         file.Size,
		Extension:    ext,
	}, nil
}

// Delete removes a stored file given its public URL. Missing files are
// not an error.
func (s *StorageService) Delete(publicURL string) error {
	rel := strings.TrimPrefix(publicURL, s.cfg.PublicPath)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" || strings.Contains(rel, "..") {
		return NewValidationError("Ruta de archivo inválida")
	}

	path := filepath.Join(s.cfg.Dir, rel)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

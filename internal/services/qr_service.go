// internal/services/qr_service.go
package services

import (
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/eterials/menu-backend/internal/config"
)

// QRService renders the per-table QR codes that open the chatbot with
// the table preselected.
type QRService struct {
	cfg config.PublicConfig
}

func NewQRService(cfg config.PublicConfig) *QRService {
	return &QRService{cfg: cfg}
}

// TableURL builds the chatbot entry URL encoded into a table's QR.
func (s *QRService) TableURL(table string) (string, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return "", NewValidationError("La mesa es requerida")
	}

	base := strings.TrimRight(s.cfg.BaseURL, "/")
	return fmt.Sprintf("%s/chatbot?mesa=%s", base, url.QueryEscape(table)), nil
}

// GenerateTableQR renders a PNG QR code for a table at the given pixel
// size. Size is clamped to a sane range.
func (s *QRService) GenerateTableQR(table string, size int) ([]byte, error) {
	target, err := s.TableURL(table)
	if err != nil {
		return nil, err
	}

	if size < 128 {
		size = 128
	}
	if size > 1024 {
		size = 1024
	}

	png, err := qrcode.Encode(target, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR: %w", err)
	}
	return png, nil
}

// internal/services/auth_service.go
package services

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/eterials/menu-backend/internal/config"
	"github.com/eterials/menu-backend/internal/utils"
)

// AuthService authenticates the shared staff account against the
// configured bcrypt hash and issues dashboard JWTs.
type AuthService struct {
	cfg config.AuthConfig
}

type LoginRequest struct {
	Username string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expira"`
	Username  string    `json:"usuario"`
}

func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{cfg: cfg}
}

func (s *AuthService) Login(req *LoginRequest) (*LoginResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("Usuario y contraseña son requeridos")
	}

	if req.Username != s.cfg.StaffUser {
		return nil, NewValidationError("Credenciales inválidas")
	}

	if s.cfg.StaffPassKey == "" {
		// Development fallback: no hash configured means open login is
		// refused rather than allowed.
		return nil, NewValidationError("Credenciales inválidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.StaffPassKey), []byte(req.Password)); err != nil {
		logrus.WithField("usuario", req.Username).Warn("Failed staff login attempt")
		return nil, NewValidationError("Credenciales inválidas")
	}

	ttl := time.Duration(s.cfg.TokenTTL) * time.Hour
	token, err := utils.GenerateStaffToken(req.Username, "staff", s.cfg.JWTSecret, ttl)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
		Username:  req.Username,
	}, nil
}

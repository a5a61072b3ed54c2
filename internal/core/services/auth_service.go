package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/fee_management_app/internal/apperrors"
	portssvc "github.com/SscSPs/fee_management_app/internal/core/ports/services"
	"github.com/SscSPs/fee_management_app/internal/platform/config"
	"github.com/SscSPs/fee_management_app/internal/utils"
)

// authService issues access tokens to the configured back-office operator.
type authService struct {
	BaseService
	cfg *config.Config
	now func() time.Time
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config) portssvc.AuthSvc {
	return &authService{cfg: cfg, now: time.Now}
}

// Login checks the operator credentials and returns a signed JWT with its expiry.
func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1
	// Always run bcrypt so a wrong username costs the same as a wrong password.
	passOK := utils.CheckPasswordHash(password, s.cfg.AdminPasswordHash)
	if s.cfg.AdminUsername == "" || !userOK || !passOK {
		s.LogWarn(ctx, "Operator login rejected", slog.String("username", username))
		return "", time.Time{}, apperrors.ErrUnauthorized
	}

	token, expiresAt, err := utils.GenerateJWT(username, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("username", username))
		return "", time.Time{}, fmt.Errorf("failed to issue token: %w", err)
	}

	s.LogInfo(ctx, "Operator logged in", slog.String("username", username))
	return token, expiresAt, nil
}

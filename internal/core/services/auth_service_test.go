package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/fee_management_app/internal/apperrors"
	"github.com/SscSPs/fee_management_app/internal/core/services"
	"github.com/SscSPs/fee_management_app/internal/platform/config"
	"github.com/SscSPs/fee_management_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "fee-backend",
		AdminUsername:     "admin",
		AdminPasswordHash: hash,
	}
}

func TestAuthService_Login(t *testing.T) {
	cfg := authConfig(t)
	svc := services.NewAuthService(cfg)

	token, expiresAt, err := svc.Login(context.Background(), "admin", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	operator, err := utils.ParseAndValidateJWT(token, cfg.JWTSecret, cfg.JWTIssuer)
	require.NoError(t, err)
	assert.Equal(t, "admin", operator)
}

func TestAuthService_LoginRejected(t *testing.T) {
	cfg := authConfig(t)
	svc := services.NewAuthService(cfg)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "battery staple"},
		{"wrong username", "root", "correct horse"},
		{"empty credentials", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, _, err := svc.Login(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
			assert.Empty(t, token)
		})
	}
}

func TestAuthService_NoOperatorConfigured(t *testing.T) {
	svc := services.NewAuthService(&config.Config{JWTSecret: "s", JWTExpiryDuration: time.Hour})

	_, _, err := svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

package services

import (
	"context"
	"time"
)

// AuthSvc authenticates back-office operators
type AuthSvc interface {
	// Login checks the operator credentials and issues an access token with its expiry.
	Login(ctx context.Context, username, password string) (string, time.Time, error)
}

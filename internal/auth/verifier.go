package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Verifier validates a bearer token and returns the user id it was issued for.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

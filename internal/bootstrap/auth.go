package bootstrap

import (
	"context"
	"fmt"

	"github.com/uptask/uptask-backend/config"
	"github.com/uptask/uptask-backend/internal/auth"
	userservice "github.com/uptask/uptask-backend/internal/users/service"
)

// Auth is the token verification and issuing setup for one AUTH_PROVIDER.
// Tokens and Hasher are nil under firebase, where accounts live outside
// this service.
type Auth struct {
	Verifier auth.Verifier
	Tokens   userservice.TokenIssuer
	Hasher   *userservice.PasswordHasher
}

func NewAuth(ctx context.Context, cfg config.AuthConfig) (*Auth, error) {
	switch cfg.Provider {
	case config.AuthProviderJWT:
		jm := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
		return &Auth{
			Verifier: jm,
			Tokens:   jm,
			Hasher:   userservice.NewPasswordHasher(cfg.BcryptCost),
		}, nil

	case config.AuthProviderFirebase:
		fv, err := auth.NewFirebaseVerifier(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return nil, err
		}
		return &Auth{Verifier: fv}, nil

	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}

package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uptask/uptask-backend/config"
)

func TestNewAuth_JWT(t *testing.T) {
	a, err := NewAuth(context.Background(), config.AuthConfig{
		Provider:   config.AuthProviderJWT,
		JWTSecret:  "palabrasecreta",
		JWTIssuer:  "uptask",
		TokenTTL:   time.Hour,
		BcryptCost: 4,
	})
	require.NoError(t, err)
	require.NotNil(t, a.Tokens)
	require.NotNil(t, a.Hasher)

	token, err := a.Tokens.Issue("user-1")
	require.NoError(t, err)
	id, err := a.Verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestNewAuth_Errors(t *testing.T) {
	_, err := NewAuth(context.Background(), config.AuthConfig{Provider: "ldap"})
	assert.Error(t, err)

	_, err = NewAuth(context.Background(), config.AuthConfig{Provider: config.AuthProviderFirebase})
	assert.Error(t, err)
}

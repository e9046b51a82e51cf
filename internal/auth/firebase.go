package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseVerifier accepts Firebase ID tokens and uses the Firebase UID as user id.
type FirebaseVerifier struct {
	client idTokenVerifier
}

// NewFirebaseVerifier initializes the Firebase Admin SDK from a service account file.
func NewFirebaseVerifier(ctx context.Context, credentialsPath string) (*FirebaseVerifier, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		if fbauth.IsIDTokenExpired(err) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	if decoded.UID == "" {
		return "", ErrInvalidToken
	}
	return decoded.UID, nil
}

package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Verifier checks restored ID tokens against the identity provider
// through the Firebase Admin SDK. The bridge uses it to confirm that a
// persisted user really belongs to the live session before adopting it.
type Verifier struct {
	auth *auth.Client
}

// NewVerifier initializes the Firebase Admin SDK from a service-account
// credentials file and returns a token verifier.
func NewVerifier(ctx context.Context, credentialsPath string) (*Verifier, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	return &Verifier{auth: authClient}, nil
}

// VerifySubject validates the ID token and returns its subject id.
func (v *Verifier) VerifySubject(ctx context.Context, idToken string) (string, error) {
	token, err := v.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}
	return token.UID, nil
}

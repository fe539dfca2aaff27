package auth

import (
	"context"

	"google.golang.org/api/idtoken"

	"iweather/internal/models"
)

// GoogleVerifier validates Google ID tokens against the app's client ID.
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (g *GoogleVerifier) VerifyCredential(ctx context.Context, credential string) (string, error) {
	payload, err := idtoken.Validate(ctx, credential, g.clientID)
	if err != nil {
		return "", models.ErrInvalidCredentials
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", models.ErrInvalidCredentials
	}

	return email, nil
}

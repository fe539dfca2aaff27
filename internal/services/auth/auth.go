package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"iweather/internal/models"
	"iweather/pkg/logger"
)

const (
	LoginTokenTTL        = time.Hour
	VerificationTokenTTL = 15 * time.Minute
	ResetTokenTTL        = 10 * time.Minute

	bcryptCost = 10
)

// Mailer delivers the account mails. pkg/mailer provides the SendGrid
// implementation; tests substitute a recorder.
type Mailer interface {
	SendVerification(ctx context.Context, to, link string) error
	SendPasswordReset(ctx context.Context, to, link string) error
}

// IdentityVerifier checks an external identity credential and returns the
// verified email it asserts.
type IdentityVerifier interface {
	VerifyCredential(ctx context.Context, credential string) (string, error)
}

// Service owns tokens, password hashing and the account flows.
type Service struct {
	users       models.UserRepository
	mailer      Mailer
	identity    IdentityVerifier
	secret      []byte
	frontendURL string
	l           *logger.Logger
}

func NewService(
	users models.UserRepository,
	mailer Mailer,
	identity IdentityVerifier,
	secret string,
	frontendURL string,
	l *logger.Logger,
) *Service {
	return &Service{
		users:       users,
		mailer:      mailer,
		identity:    identity,
		secret:      []byte(secret),
		frontendURL: strings.TrimRight(frontendURL, "/"),
		l:           l,
	}
}

// IssueToken signs an HS256 bearer token carrying the user ID as subject.
func (s *Service) IssueToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return token, nil
}

// VerifyToken returns the user ID a token was issued for. Expired tokens
// fail with models.ErrTokenExpired, everything else with
// models.ErrTokenInvalid; callers surface the same generic message for both.
func (s *Service) VerifyToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", models.ErrTokenExpired
		}
		return "", models.ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", models.ErrTokenInvalid
	}

	return claims.Subject, nil
}

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}
	return string(hash), nil
}

func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Register creates an unverified account and mails a 15-minute
// verification link. A taken email fails with models.ErrEmailTaken and
// leaves the store untouched.
func (s *Service) Register(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.ErrValidation
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	token, err := s.IssueToken(user.ID, VerificationTokenTTL)
	if err != nil {
		return err
	}

	link := s.frontendURL + "/verify-email.html?token=" + token
	if err := s.mailer.SendVerification(ctx, email, link); err != nil {
		s.l.Error(err, map[string]any{"email": email})
		return errors.Wrap(err, "failed to send verification email")
	}

	s.l.Info("user registered", map[string]any{"userId": user.ID})
	return nil
}

// Login checks credentials and issues a 1-hour token. Unknown emails and
// wrong passwords both fail with models.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", "", models.ErrValidation
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", "", models.ErrInvalidCredentials
		}
		return "", "", err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return "", "", models.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID, LoginTokenTTL)
	if err != nil {
		return "", "", err
	}

	return token, user.Email, nil
}

// VerifyEmail flips the account behind a verification token to verified.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.VerifyToken(token)
	if err != nil {
		return err
	}

	return s.users.MarkVerified(ctx, userID)
}

// ExternalLogin validates a provider credential and signs the user in,
// provisioning a verified account with a throwaway password on first login.
func (s *Service) ExternalLogin(ctx context.Context, credential string) (string, string, error) {
	email, err := s.identity.VerifyCredential(ctx, credential)
	if err != nil {
		return "", "", models.ErrInvalidCredentials
	}
	email = normalizeEmail(email)
	if email == "" {
		return "", "", models.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrUserNotFound) {
		hash, hashErr := HashPassword(uuid.NewString())
		if hashErr != nil {
			return "", "", hashErr
		}
		user = &models.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: hash,
			IsVerified:   true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return "", "", err
		}
		s.l.Info("provisioned account from external identity", map[string]any{"userId": user.ID})
	} else if err != nil {
		return "", "", err
	}

	token, err := s.IssueToken(user.ID, LoginTokenTTL)
	if err != nil {
		return "", "", err
	}

	return token, user.Email, nil
}

// ForgotPassword mails a 10-minute reset link when the account exists.
// The caller answers the same generic message either way, so unknown
// emails return nil.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token, err := s.IssueToken(user.ID, ResetTokenTTL)
	if err != nil {
		return err
	}

	link := s.frontendURL + "/reset-password.html?token=" + token
	if err := s.mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		s.l.Error(err, map[string]any{"email": user.Email})
		return errors.Wrap(err, "failed to send reset email")
	}

	return nil
}

// ResetPassword replaces the password of the account behind a reset token.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return models.ErrValidation
	}

	userID, err := s.VerifyToken(token)
	if err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, userID, hash)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iweather/internal/models"
	"iweather/internal/services/auth"
	"iweather/pkg/logger"
)

// memoryUsers implements models.UserRepository in memory for service tests.
type memoryUsers struct {
	users map[string]*models.User // keyed by ID
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]*models.User)}
}

func (m *memoryUsers) Create(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return models.ErrEmailTaken
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) MarkVerified(_ context.Context, id string) error {
	u, ok := m.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	u.IsVerified = true
	return nil
}

func (m *memoryUsers) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memoryUsers) AddFavorite(_ context.Context, userID, city string) ([]models.FavoriteCity, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	for _, f := range u.Favorites {
		if f.Name == city {
			return nil, models.ErrFavoriteExists
		}
	}
	u.Favorites = append(u.Favorites, models.FavoriteCity{UserID: userID, Name: city})
	return append([]models.FavoriteCity{}, u.Favorites...), nil
}

func (m *memoryUsers) ListFavorites(_ context.Context, userID string) ([]models.FavoriteCity, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return append([]models.FavoriteCity{}, u.Favorites...), nil
}

func (m *memoryUsers) RemoveFavorite(_ context.Context, userID, city string) ([]models.FavoriteCity, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	for i, f := range u.Favorites {
		if f.Name == city {
			u.Favorites = append(u.Favorites[:i], u.Favorites[i+1:]...)
			return append([]models.FavoriteCity{}, u.Favorites...), nil
		}
	}
	return nil, models.ErrFavoriteNotFound
}

// recordingMailer captures outgoing mails.
type recordingMailer struct {
	verificationLinks []string
	resetLinks        []string
	failNext          bool
}

func (m *recordingMailer) SendVerification(_ context.Context, _, link string) error {
	if m.failNext {
		return errors.New("mailer down")
	}
	m.verificationLinks = append(m.verificationLinks, link)
	return nil
}

func (m *recordingMailer) SendPasswordReset(_ context.Context, _, link string) error {
	if m.failNext {
		return errors.New("mailer down")
	}
	m.resetLinks = append(m.resetLinks, link)
	return nil
}

// fakeVerifier asserts a fixed email for a known credential.
type fakeVerifier struct {
	email string
}

func (v *fakeVerifier) VerifyCredential(_ context.Context, credential string) (string, error) {
	if credential != "good-credential" {
		return "", models.ErrInvalidCredentials
	}
	return v.email, nil
}

func newTestService(t *testing.T) (*auth.Service, *memoryUsers, *recordingMailer) {
	t.Helper()
	users := newMemoryUsers()
	mailer := &recordingMailer{}
	verifier := &fakeVerifier{email: "External@Example.com"}
	l := logger.NewZapLogger("test-app", "test")

	service := auth.NewService(users, mailer, verifier, "test-secret", "http://localhost:5173", l)
	return service, users, mailer
}

func TestRegisterAndLogin(t *testing.T) {
	service, users, mailer := newTestService(t)
	ctx := context.Background()

	err := service.Register(ctx, "  User@Example.com ", "hunter22")
	require.NoError(t, err)

	// Email is normalized before it reaches the store.
	stored, err := users.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.False(t, stored.IsVerified)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)

	require.Len(t, mailer.verificationLinks, 1)
	assert.Contains(t, mailer.verificationLinks[0], "/verify-email.html?token=")

	token, email, err := service.Login(ctx, "user@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user@example.com", email)
}

func TestRegisterDuplicateEmailLeavesStoreUnchanged(t *testing.T) {
	service, users, mailer := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, "user@example.com", "first"))
	require.Len(t, users.users, 1)

	err := service.Register(ctx, "USER@example.com", "second")
	assert.ErrorIs(t, err, models.ErrEmailTaken)

	assert.Len(t, users.users, 1)
	assert.Len(t, mailer.verificationLinks, 1)

	// The original password still works.
	_, _, err = service.Login(ctx, "user@example.com", "first")
	assert.NoError(t, err)
}

func TestRegisterMailFailure(t *testing.T) {
	service, _, mailer := newTestService(t)
	mailer.failNext = true

	err := service.Register(context.Background(), "user@example.com", "hunter22")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrEmailTaken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, "user@example.com", "hunter22"))

	_, _, err := service.Login(ctx, "user@example.com", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	// Unknown account fails with the same error as a wrong password.
	_, _, err = service.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	service, _, _ := newTestService(t)

	token, err := service.IssueToken("user-1", time.Hour)
	require.NoError(t, err)

	userID, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerifyTokenDistinguishesExpiredFromInvalid(t *testing.T) {
	service, _, _ := newTestService(t)

	expired, err := service.IssueToken("user-1", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(expired)
	assert.ErrorIs(t, err, models.ErrTokenExpired)

	_, err = service.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, models.ErrTokenInvalid)

	// A token signed with a different secret is invalid, not expired.
	other := auth.NewService(newMemoryUsers(), &recordingMailer{}, &fakeVerifier{}, "other-secret", "", logger.NewZapLogger("test-app", "test"))
	foreign, err := other.IssueToken("user-1", time.Hour)
	require.NoError(t, err)

	_, err = service.VerifyToken(foreign)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}

func TestVerifyEmailFlow(t *testing.T) {
	service, users, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, "user@example.com", "hunter22"))
	stored, err := users.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)

	token, err := service.IssueToken(stored.ID, auth.VerificationTokenTTL)
	require.NoError(t, err)

	require.NoError(t, service.VerifyEmail(ctx, token))

	stored, err = users.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)
}

func TestExternalLoginProvisionsVerifiedAccount(t *testing.T) {
	service, users, _ := newTestService(t)
	ctx := context.Background()

	token, email, err := service.ExternalLogin(ctx, "good-credential")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "external@example.com", email)

	stored, err := users.FindByEmail(ctx, "external@example.com")
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)

	// A second login reuses the account.
	_, _, err = service.ExternalLogin(ctx, "good-credential")
	require.NoError(t, err)
	assert.Len(t, users.users, 1)
}

func TestExternalLoginRejectsBadCredential(t *testing.T) {
	service, users, _ := newTestService(t)

	_, _, err := service.ExternalLogin(context.Background(), "bad-credential")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	assert.Empty(t, users.users)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	service, _, mailer := newTestService(t)

	err := service.ForgotPassword(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Empty(t, mailer.resetLinks)
}

func TestForgotAndResetPassword(t *testing.T) {
	service, users, mailer := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.Register(ctx, "user@example.com", "old-password"))
	require.NoError(t, service.ForgotPassword(ctx, "user@example.com"))
	require.Len(t, mailer.resetLinks, 1)
	assert.Contains(t, mailer.resetLinks[0], "/reset-password.html?token=")

	stored, err := users.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	token, err := service.IssueToken(stored.ID, auth.ResetTokenTTL)
	require.NoError(t, err)

	require.NoError(t, service.ResetPassword(ctx, token, "new-password"))

	_, _, err = service.Login(ctx, "user@example.com", "old-password")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, _, err = service.Login(ctx, "user@example.com", "new-password")
	assert.NoError(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	assert.True(t, auth.VerifyPassword("secret", hash))
	assert.False(t, auth.VerifyPassword("other", hash))
}

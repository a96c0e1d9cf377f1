package auth

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/legalmitra/legalmitra/pkg/errors"
)

type memoryRepo struct {
	mu    sync.Mutex
	users map[int64]User
	seq   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[int64]User)}
}

func (r *memoryRepo) Create(_ context.Context, name, email, passwordHash string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return User{}, ErrEmailExists
		}
	}
	r.seq++
	user := User{ID: r.seq, Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	r.users[user.ID] = user
	return user, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	return u, ok, nil
}

func (r *memoryRepo) SetResetToken(_ context.Context, userID int64, token string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.users[userID]
	u.ResetToken = token
	u.ResetTokenExpiry = expiry
	r.users[userID] = u
	return nil
}

func (r *memoryRepo) GetByResetToken(_ context.Context, email, token string) (User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token == "" {
		return User{}, false, nil
	}
	for _, u := range r.users {
		if u.Email == email && u.ResetToken == token {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

func (r *memoryRepo) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.users[userID]
	u.PasswordHash = passwordHash
	u.ResetToken = ""
	u.ResetTokenExpiry = time.Time{}
	r.users[userID] = u
	return nil
}

type captureMailer struct {
	to   string
	body string
	err  error
}

func (m *captureMailer) Send(_ context.Context, to, _ string, htmlBody string) error {
	m.to = to
	m.body = htmlBody
	return m.err
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	return Config{
		Secret:          "test-secret",
		TokenTTL:        time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		ResetTokenTTL:   time.Hour,
		FrontendURL:     "http://localhost:5000",
	}
}

func TestService_RegisterLoginAndRefresh(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(testConfig(), repo, nil, newTestLogger())

	view, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Asha",
		Email:    "User@Example.com",
		Password: "pass1234",
	})
	require.NoError(t, err)
	require.Equal(t, "user@example.com", view.Email)
	require.Equal(t, "Asha", view.Name)
	require.NotZero(t, view.ID)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "pass1234",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	require.Equal(t, view.ID, claims.UserID)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)

	refreshed, err := svc.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, resp.User.Email, refreshed.User.Email)

	// The refresh token must not pass access-token validation.
	_, err = svc.ValidateToken(context.Background(), resp.RefreshToken)
	require.True(t, apperrors.IsCode(err, "invalid_token"))
}

func TestService_DuplicateEmail(t *testing.T) {
	svc := NewService(testConfig(), newMemoryRepo(), nil, newTestLogger())

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "A", Email: "a@b.com", Password: "pass1234"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{Name: "B", Email: "a@b.com", Password: "pass5678"})
	require.True(t, apperrors.IsCode(err, "email_exists"))
}

func TestService_LoginWrongPassword(t *testing.T) {
	svc := NewService(testConfig(), newMemoryRepo(), nil, newTestLogger())
	_, err := svc.Register(context.Background(), RegisterRequest{Name: "A", Email: "a@b.com", Password: "pass1234"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "wrong-password"})
	require.True(t, apperrors.IsCode(err, "invalid_credentials"))
}

func TestService_ForgotPasswordWithoutMailer(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(testConfig(), repo, nil, newTestLogger())
	_, err := svc.Register(context.Background(), RegisterRequest{Name: "A", Email: "a@b.com", Password: "pass1234"})
	require.NoError(t, err)

	message, err := svc.ForgotPassword(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.Contains(t, message, "SMTP not configured")

	user, found, err := repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.True(t, found)
	require.NotEmpty(t, user.ResetToken)
	require.True(t, user.ResetTokenExpiry.After(time.Now()))
}

func TestService_ForgotPasswordSendsMail(t *testing.T) {
	repo := newMemoryRepo()
	mailer := &captureMailer{}
	svc := NewService(testConfig(), repo, mailer, newTestLogger())
	_, err := svc.Register(context.Background(), RegisterRequest{Name: "A", Email: "a@b.com", Password: "pass1234"})
	require.NoError(t, err)

	message, err := svc.ForgotPassword(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.Contains(t, message, "sent successfully")
	require.Equal(t, "a@b.com", mailer.to)

	user, _, _ := repo.GetByEmail(context.Background(), "a@b.com")
	require.Contains(t, mailer.body, "/reset.html?token="+user.ResetToken)
	require.Contains(t, mailer.body, "email=a%40b.com")
}

func TestService_ForgotPasswordUnknownEmail(t *testing.T) {
	svc := NewService(testConfig(), newMemoryRepo(), nil, newTestLogger())
	_, err := svc.ForgotPassword(context.Background(), "nobody@b.com")
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestService_ResetPasswordRoundtrip(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(testConfig(), repo, nil, newTestLogger())
	_, err := svc.Register(context.Background(), RegisterRequest{Name: "A", Email: "a@b.com", Password: "oldpass123"})
	require.NoError(t, err)
	_, err = svc.ForgotPassword(context.Background(), "a@b.com")
	require.NoError(t, err)

	user, _, _ := repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, svc.ValidateReset(context.Background(), "a@b.com", user.ResetToken))

	err = svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email:       "a@b.com",
		Token:       user.ResetToken,
		NewPassword: "newpass123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "oldpass123"})
	require.True(t, apperrors.IsCode(err, "invalid_credentials"))
	_, err = svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "newpass123"})
	require.NoError(t, err)

	// Token is single use.
	err = svc.ValidateReset(context.Background(), "a@b.com", user.ResetToken)
	require.True(t, apperrors.IsCode(err, "invalid_token"))
}

func TestService_ResetPasswordExpiredToken(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(testConfig(), repo, nil, newTestLogger())
	view, err := svc.Register(context.Background(), RegisterRequest{Name: "A", Email: "a@b.com", Password: "oldpass123"})
	require.NoError(t, err)

	require.NoError(t, repo.SetResetToken(context.Background(), view.ID, "stale-token", time.Now().Add(-time.Minute)))

	require.True(t, apperrors.IsCode(
		svc.ValidateReset(context.Background(), "a@b.com", "stale-token"), "invalid_token"))
	require.True(t, apperrors.IsCode(
		svc.ResetPassword(context.Background(), ResetPasswordRequest{Email: "a@b.com", Token: "stale-token", NewPassword: "newpass123"}),
		"invalid_token"))
}

func TestService_ResetPasswordWrongToken(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(testConfig(), repo, nil, newTestLogger())
	_, err := svc.Register(context.Background(), RegisterRequest{Name: "A", Email: "a@b.com", Password: "oldpass123"})
	require.NoError(t, err)
	_, err = svc.ForgotPassword(context.Background(), "a@b.com")
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email:       "a@b.com",
		Token:       strings.Repeat("0", 64),
		NewPassword: "newpass123",
	})
	require.True(t, apperrors.IsCode(err, "invalid_token"))
}

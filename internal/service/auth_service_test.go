package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/school-inventory-api/internal/models"
	appErrors "github.com/noah-isme/school-inventory-api/pkg/errors"
)

type mockAuthRepo struct {
	users            map[string]*models.User
	refreshTokens    map[string]*models.RefreshToken
	revokedUsers     []string
	lastLoginUpdated bool
}

func newMockAuthRepo(t *testing.T, users ...models.User) *mockAuthRepo {
	t.Helper()
	repo := &mockAuthRepo{users: map[string]*models.User{}, refreshTokens: map[string]*models.RefreshToken{}}
	for i := range users {
		u := users[i]
		hash, err := bcrypt.GenerateFromPassword([]byte(u.PasswordHash), bcrypt.MinCost)
		require.NoError(t, err)
		u.PasswordHash = string(hash)
		repo.users[u.ID] = &u
	}
	return repo
}

func (m *mockAuthRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *mockAuthRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func (m *mockAuthRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	u, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *mockAuthRepo) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	m.revokedUsers = append(m.revokedUsers, userID)
	for _, token := range m.refreshTokens {
		if token.UserID == userID {
			token.Revoked = true
		}
	}
	return nil
}

func (m *mockAuthRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	m.refreshTokens[token.Token] = token
	return nil
}

func (m *mockAuthRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := m.refreshTokens[token]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return rt, nil
}

func (m *mockAuthRepo) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	for _, token := range m.refreshTokens {
		if token.ID == id {
			if token.Revoked {
				return sql.ErrNoRows
			}
			token.Revoked = true
			return nil
		}
	}
	return sql.ErrNoRows
}

var (
	aliceUser = models.User{ID: "u-alice", Username: "alice", PasswordHash: "secret1", FullName: "Alice", Role: models.RoleUser}
	adminUser = models.User{ID: "u-admin", Username: "admin", PasswordHash: "adminpw", FullName: "Administrator", Role: models.RoleAdmin}
)

func newAuthServiceForTest(t *testing.T) (*AuthService, *mockAuthRepo, *mockSecurityLogRepo) {
	t.Helper()
	repo := newMockAuthRepo(t, aliceUser, adminUser)
	logs := &mockSecurityLogRepo{}
	svc := NewAuthService(repo, NewSecurityLogService(logs, nil), NewMetricsService(), nil, nil, AuthConfig{
		AccessTokenSecret:  "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "test",
		MaxFailedAttempts:  5,
		LockoutWindow:      15 * time.Minute,
		PasswordCost:       bcrypt.MinCost,
	})
	return svc, repo, logs
}

func login(svc *AuthService, username, password string) (*models.LoginResponse, error) {
	return svc.Login(context.Background(), models.LoginRequest{Username: username, Password: password, IP: "10.0.0.1"})
}

func TestLoginSuccess(t *testing.T) {
	svc, repo, logs := newAuthServiceForTest(t)

	resp, err := login(svc, "alice", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "alice", resp.User.Username)
	assert.True(t, repo.lastLoginUpdated)
	assert.Equal(t, []models.SecurityEvent{models.EventLoginSuccess}, logs.events())

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-alice", claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestLoginFailuresAreLogged(t *testing.T) {
	svc, _, logs := newAuthServiceForTest(t)

	_, err := login(svc, "", "")
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = login(svc, "ghost", "whatever")
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = login(svc, "alice", "wrong")
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	assert.Equal(t, []models.SecurityEvent{
		models.EventLoginAttempt,
		models.EventLoginAttempt,
		models.EventLoginFailed,
	}, logs.events())
	assert.False(t, logs.entries[2].Success)
	assert.Equal(t, "10.0.0.1", logs.entries[2].IPAddress)
}

func TestLoginLockout(t *testing.T) {
	svc, _, logs := newAuthServiceForTest(t)

	for i := 0; i < 5; i++ {
		_, err := login(svc, "alice", "wrong")
		require.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	}

	_, err := login(svc, "alice", "secret1")
	assert.ErrorIs(t, err, appErrors.ErrAccountLocked)
	events := logs.events()
	assert.Equal(t, models.EventLoginBlocked, events[len(events)-1])

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 429, appErr.Status)
}

func TestLoginSuccessResetsFailureCount(t *testing.T) {
	svc, _, _ := newAuthServiceForTest(t)

	for i := 0; i < 4; i++ {
		_, _ = login(svc, "alice", "wrong")
	}
	_, err := login(svc, "alice", "secret1")
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, _ = login(svc, "alice", "wrong")
	}
	_, err = login(svc, "alice", "secret1")
	assert.NoError(t, err)
}

func TestLoginFailsWhenAuditWriteFails(t *testing.T) {
	svc, _, logs := newAuthServiceForTest(t)
	logs.createErr = errors.New("db down")

	_, err := login(svc, "alice", "secret1")
	assert.ErrorIs(t, err, appErrors.ErrInternal)

	_, err = login(svc, "alice", "wrong")
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestRefreshTokenIsSingleUse(t *testing.T) {
	svc, _, _ := newAuthServiceForTest(t)
	ctx := context.Background()

	resp, err := login(svc, "alice", "secret1")
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, models.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	_, err = svc.RefreshToken(ctx, models.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, _ := newAuthServiceForTest(t)
	ctx := context.Background()

	resp, err := login(svc, "alice", "secret1")
	require.NoError(t, err)

	other := &models.JWTClaims{UserID: "u-admin", Username: "admin", Role: models.RoleAdmin}
	assert.ErrorIs(t, svc.Logout(ctx, other, resp.RefreshToken), appErrors.ErrForbidden)

	alice := &models.JWTClaims{UserID: "u-alice", Username: "alice", Role: models.RoleUser}
	require.NoError(t, svc.Logout(ctx, alice, resp.RefreshToken))

	_, err = svc.RefreshToken(ctx, models.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	svc, _, _ := newAuthServiceForTest(t)
	resp, err := login(svc, "alice", "secret1")
	require.NoError(t, err)

	other := NewAuthService(nil, nil, nil, nil, nil, AuthConfig{AccessTokenSecret: "another"})
	_, err = other.ValidateToken(resp.AccessToken)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestChangePasswordSelf(t *testing.T) {
	svc, repo, logs := newAuthServiceForTest(t)
	ctx := context.Background()
	alice := &models.JWTClaims{UserID: "u-alice", Username: "alice", Role: models.RoleUser}

	err := svc.ChangePassword(ctx, alice, models.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "newpass"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	assert.Equal(t, []models.SecurityEvent{models.EventPasswordChangeFailed}, logs.events())

	err = svc.ChangePassword(ctx, alice, models.ChangePasswordRequest{NewPassword: "newpass"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, []models.SecurityEvent{models.EventPasswordChangeFailed, models.EventPasswordChangeFailed}, logs.events())
	assert.Equal(t, "current password missing", logs.entries[1].Details)

	err = svc.ChangePassword(ctx, alice, models.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "short"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	require.NoError(t, svc.ChangePassword(ctx, alice, models.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "newpass"}))
	events := logs.events()
	assert.Equal(t, models.EventPasswordChanged, events[len(events)-1])
	assert.Contains(t, repo.revokedUsers, "u-alice")

	_, err = login(svc, "alice", "newpass")
	assert.NoError(t, err)
}

func TestChangePasswordOtherUser(t *testing.T) {
	svc, repo, logs := newAuthServiceForTest(t)
	ctx := context.Background()
	alice := &models.JWTClaims{UserID: "u-alice", Username: "alice", Role: models.RoleUser}
	admin := &models.JWTClaims{UserID: "u-admin", Username: "admin", Role: models.RoleAdmin}

	err := svc.ChangePassword(ctx, alice, models.ChangePasswordRequest{UserID: "u-admin", NewPassword: "hijack1"})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	assert.Equal(t, []models.SecurityEvent{models.EventPasswordChangeFailed}, logs.events())

	require.NoError(t, svc.ChangePassword(ctx, admin, models.ChangePasswordRequest{UserID: "u-alice", NewPassword: "reset12"}))
	events := logs.events()
	assert.Equal(t, models.EventPasswordChangedByAdmin, events[len(events)-1])
	assert.Equal(t, "alice", logs.entries[len(logs.entries)-1].Username)
	assert.Contains(t, repo.revokedUsers, "u-alice")

	err = svc.ChangePassword(ctx, admin, models.ChangePasswordRequest{UserID: "u-missing", NewPassword: "reset12"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestMe(t *testing.T) {
	svc, _, _ := newAuthServiceForTest(t)

	info, err := svc.Me(context.Background(), &models.JWTClaims{UserID: "u-alice"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", info.FullName)

	_, err = svc.Me(context.Background(), &models.JWTClaims{UserID: "gone"})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

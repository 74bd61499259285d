package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-inventory-api/internal/models"
	appErrors "github.com/noah-isme/school-inventory-api/pkg/errors"
)

type authServiceMock struct {
	loginReq     models.LoginRequest
	loginResp    *models.LoginResponse
	loginErr     error
	refreshReq   models.RefreshTokenRequest
	logoutActor  *models.JWTClaims
	logoutToken  string
	logoutCalled bool
	changeReq    models.ChangePasswordRequest
	changeErr    error
	meResp       *models.UserInfo
}

func (m *authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	m.loginReq = req
	return m.loginResp, m.loginErr
}

func (m *authServiceMock) RefreshToken(ctx context.Context, req models.RefreshTokenRequest) (*models.LoginResponse, error) {
	m.refreshReq = req
	return &models.LoginResponse{AccessToken: "new"}, nil
}

func (m *authServiceMock) Logout(ctx context.Context, actor *models.JWTClaims, refreshToken string) error {
	m.logoutCalled = true
	m.logoutActor = actor
	m.logoutToken = refreshToken
	return nil
}

func (m *authServiceMock) Me(ctx context.Context, actor *models.JWTClaims) (*models.UserInfo, error) {
	return m.meResp, nil
}

func (m *authServiceMock) ChangePassword(ctx context.Context, actor *models.JWTClaims, req models.ChangePasswordRequest) error {
	m.changeReq = req
	return m.changeErr
}

func TestAuthHandlerLoginPassesClientMetadata(t *testing.T) {
	svc := &authServiceMock{loginResp: &models.LoginResponse{AccessToken: "token"}}
	h := NewAuthHandler(svc)

	c, w := newTestContext(http.MethodPost, "/api/login", `{"username":"budi","password":"secret"}`, nil)
	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "budi", svc.loginReq.Username)
	assert.Equal(t, "handler-test", svc.loginReq.UserAgent)
	assert.Contains(t, w.Body.String(), `"access_token":"token"`)
}

func TestAuthHandlerLoginErrors(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{loginErr: appErrors.ErrAccountLocked})

	c, w := newTestContext(http.MethodPost, "/api/login", `{"username":`, nil)
	h.Login(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newTestContext(http.MethodPost, "/api/login", `{"username":"budi","password":"x"}`, nil)
	h.Login(c)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "ACCOUNT_LOCKED", decodeEnvelope(t, w).Error.Code)
}

func TestAuthHandlerLogoutWithoutBody(t *testing.T) {
	svc := &authServiceMock{}
	h := NewAuthHandler(svc)

	c, w := newTestContext(http.MethodPost, "/api/logout", "", userClaims)
	h.Logout(c)
	c.Writer.WriteHeaderNow() // flush status as the gin engine does after handlers run

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, svc.logoutCalled)
	assert.Equal(t, "", svc.logoutToken)
	assert.Equal(t, userClaims, svc.logoutActor)
}

func TestAuthHandlerLogoutWithToken(t *testing.T) {
	svc := &authServiceMock{}
	h := NewAuthHandler(svc)

	c, w := newTestContext(http.MethodPost, "/api/logout", `{"refresh_token":"rt-1"}`, userClaims)
	h.Logout(c)
	c.Writer.WriteHeaderNow() // flush status as the gin engine does after handlers run

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "rt-1", svc.logoutToken)
}

func TestAuthHandlerRequiresSession(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{})

	c, w := newTestContext(http.MethodGet, "/api/current-user", "", nil)
	h.CurrentUser(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerCurrentUser(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{meResp: &models.UserInfo{ID: "user-1", Username: "budi"}})

	c, w := newTestContext(http.MethodGet, "/api/current-user", "", userClaims)
	h.CurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decodeEnvelope(t, w).Data), `"username":"budi"`)
}

func TestAuthHandlerChangePassword(t *testing.T) {
	svc := &authServiceMock{}
	h := NewAuthHandler(svc)

	c, w := newTestContext(http.MethodPost, "/api/change-password", `{"user_id":"user-2","new_password":"secret1"}`, adminClaims)
	h.ChangePassword(c)
	c.Writer.WriteHeaderNow() // flush status as the gin engine does after handlers run

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "user-2", svc.changeReq.UserID)
	assert.Equal(t, "secret1", svc.changeReq.NewPassword)

	svc.changeErr = appErrors.Clone(appErrors.ErrForbidden, "only administrators can change other passwords")
	c, w = newTestContext(http.MethodPost, "/api/change-password", `{"user_id":"user-2","new_password":"secret1"}`, userClaims)
	h.ChangePassword(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/cateringplus/internal/client/client"
	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/dmitrijs2005/cateringplus/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validCreds = models.Credentials{Email: "ann@example.com", Password: []byte("secret")}

func TestSession_LoginPersistsAndSurvivesReload(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.LoginRet = client.LoginResult{Token: "tok-1", UserID: "42", UserName: "Ann"}
	repo := &memRepo{}

	s := NewSessionService(ctx, api, repo, logging.Nop())
	assert.False(t, s.Current().IsAuthenticated())

	got, err := s.Login(ctx, validCreds)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.Token)
	assert.NotEmpty(t, s.Current().Token)
	assert.Equal(t, "tok-1", s.Token())

	reloaded := NewSessionService(ctx, api, repo, logging.Nop())
	cur := reloaded.Current()
	assert.True(t, cur.IsAuthenticated())
	assert.Equal(t, "42", cur.UserID)
	assert.Equal(t, "Ann", cur.UserName)
}

func TestSession_LogoutClearsMemoryAndStorage(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.LoginRet = client.LoginResult{Token: "tok-1", UserID: "42", UserName: "Ann"}
	repo := &memRepo{}

	s := NewSessionService(ctx, api, repo, logging.Nop())
	_, err := s.Login(ctx, validCreds)
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.Current().IsAuthenticated())
	assert.Empty(t, s.Token())
	require.NoError(t, s.Logout(ctx), "logout is idempotent")

	fresh := NewSessionService(ctx, api, repo, logging.Nop())
	assert.False(t, fresh.Current().IsAuthenticated())
}

func TestSession_FailedLoginKeepsPriorState(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.LoginRet = client.LoginResult{Token: "tok-1", UserID: "42", UserName: "Ann"}
	repo := &memRepo{}

	s := NewSessionService(ctx, api, repo, logging.Nop())
	_, err := s.Login(ctx, validCreds)
	require.NoError(t, err)

	apiErr := &client.APIError{Op: "login", StatusCode: 401, Body: "bad"}
	api.LoginErr = apiErr

	_, err = s.Login(ctx, models.Credentials{Email: "bob@example.com", Password: []byte("x")})
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	var gotAPI *client.APIError
	require.ErrorAs(t, err, &gotAPI)
	assert.Same(t, apiErr, gotAPI)
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	assert.Equal(t, "tok-1", s.Current().Token)
	assert.Equal(t, 1, repo.saves)
}

func TestSession_LoginValidation(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	s := NewSessionService(ctx, api, &memRepo{}, logging.Nop())

	_, err := s.Login(ctx, models.Credentials{Email: "not-an-email", Password: nil})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("email"))
	assert.True(t, verr.Has("password"))
	assert.Equal(t, 0, api.Calls("login"))

	_, err = s.Login(ctx, models.Credentials{Email: "a@b.co", Password: []byte{}})
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("password"))
	assert.False(t, verr.Has("email"))
}

func TestSession_SaveFailureDoesNotLogIn(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.LoginRet = client.LoginResult{Token: "tok-1"}
	repo := &memRepo{SaveErr: errBoom}

	s := NewSessionService(ctx, api, repo, logging.Nop())
	_, err := s.Login(ctx, validCreds)
	require.ErrorIs(t, err, errBoom)
	assert.False(t, s.Current().IsAuthenticated())
}

func TestSession_UnreadableStorageStartsLoggedOut(t *testing.T) {
	repo := &memRepo{LoadErr: errors.New("decode session: bad")}
	s := NewSessionService(context.Background(), newFakeAPI(), repo, logging.Nop())
	assert.False(t, s.Current().IsAuthenticated())
}

func TestSession_IdentityFromJWTClaims(t *testing.T) {
	ctx := context.Background()
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "77",
		"name": "Claire",
		"exp":  exp.Unix(),
	}).SignedString([]byte("any-key"))
	require.NoError(t, err)

	api := newFakeAPI()
	api.LoginRet = client.LoginResult{Token: token}
	s := NewSessionService(ctx, api, &memRepo{}, logging.Nop())

	got, err := s.Login(ctx, validCreds)
	require.NoError(t, err)
	assert.Equal(t, "77", got.UserID)
	assert.Equal(t, "Claire", got.UserName)
	assert.True(t, exp.Equal(got.ExpiresAt))
}

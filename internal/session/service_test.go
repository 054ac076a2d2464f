// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhtranvo/bidaro/internal/platform/apperr"
	"github.com/minhtranvo/bidaro/internal/session"
	"github.com/minhtranvo/bidaro/internal/tokenstore"
)

// # Test Doubles

type fakeAuthGateway struct {
	credential  *tokenstore.Credential
	loginErr    error
	logoutErr   error
	loginCalls  int
	logoutCalls int
}

func (g *fakeAuthGateway) Login(_ context.Context, _, _ string) (*tokenstore.Credential, error) {
	g.loginCalls++
	if g.loginErr != nil {
		return nil, g.loginErr
	}
	return g.credential, nil
}

func (g *fakeAuthGateway) Logout(_ context.Context) error {
	g.logoutCalls++
	return g.logoutErr
}

type fakeUserGateway struct {
	user   *session.User
	err    error
	calls  int
	lastID string
}

func (g *fakeUserGateway) FindByID(_ context.Context, userID string) (*session.User, error) {
	g.calls++
	g.lastID = userID
	if g.err != nil {
		return nil, g.err
	}
	return g.user, nil
}

type fakeBinding struct {
	authErr    error
	authCalls  int
	outCalls   int
	lastUserID string
}

func (b *fakeBinding) OnAuthenticated(_ context.Context, userID string) error {
	b.authCalls++
	b.lastUserID = userID
	return b.authErr
}

func (b *fakeBinding) OnLoggedOut() {
	b.outCalls++
}

// # Fixtures

// mintToken signs a throwaway access token carrying the given identity.
func mintToken(t *testing.T, userID string, ttl time.Duration) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte("test-only-key"))
	require.NoError(t, err)

	return signed
}

type harness struct {
	manager *session.Manager
	store   tokenstore.Store
	auth    *fakeAuthGateway
	users   *fakeUserGateway
	binding *fakeBinding
}

func newHarness(t *testing.T, userID string, tokenTTL time.Duration) *harness {
	t.Helper()

	store := tokenstore.NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := &harness{
		store: store,
		auth: &fakeAuthGateway{
			credential: &tokenstore.Credential{
				AccessToken:  mintToken(t, userID, tokenTTL),
				RefreshToken: "refresh-token-value",
			},
		},
		users:   &fakeUserGateway{user: &session.User{UserID: userID, Email: "minh@bidaro.vn"}},
		binding: &fakeBinding{},
	}

	h.manager = session.NewManager(store, logger)
	h.manager.Wire(h.auth, h.users, h.binding)
	return h
}

// # Login

/*
TestManager_Login tests the full anonymous → authenticated transition: state,
user record, token exposure, durable persistence, and the cart load event.
*/
func TestManager_Login(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "user-7f3a", time.Hour)

	err := h.manager.Login(ctx, "minh@bidaro.vn", "secret-password")

	require.NoError(t, err)
	assert.Equal(t, session.StateAuthenticated, h.manager.State())
	assert.True(t, h.manager.IsAuthenticated())

	require.NotNil(t, h.manager.User())
	assert.Equal(t, "user-7f3a", h.manager.User().UserID)

	// The transport sees only the access token.
	assert.Equal(t, h.auth.credential.AccessToken, h.manager.AccessToken())

	// Identity resolution used the token's embedded claim.
	assert.Equal(t, "user-7f3a", h.users.lastID)

	// The cart load was triggered for the authenticated user.
	assert.Equal(t, 1, h.binding.authCalls)
	assert.Equal(t, "user-7f3a", h.binding.lastUserID)

	// The pair was persisted for the next boot.
	stored, err := h.store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, *h.auth.credential, *stored)
}

/*
TestManager_Login_Validation tests that invalid input never reaches the gateway.
*/
func TestManager_Login_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty_email", "", "secret-password"},
		{"invalid_email", "not-an-email", "secret-password"},
		{"empty_password", "minh@bidaro.vn", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "user-7f3a", time.Hour)

			err := h.manager.Login(context.Background(), tt.email, tt.password)

			assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
			assert.Equal(t, 0, h.auth.loginCalls)
			assert.Equal(t, session.StateAnonymous, h.manager.State())
		})
	}
}

/*
TestManager_Login_Rejected tests the error-state transition on bad credentials.
*/
func TestManager_Login_Rejected(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "user-7f3a", time.Hour)
	h.auth.loginErr = apperr.Unauthorized("Invalid login credentials")

	err := h.manager.Login(ctx, "minh@bidaro.vn", "wrong-password")

	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
	assert.Equal(t, session.StateError, h.manager.State())
	assert.Empty(t, h.manager.AccessToken())
	assert.Nil(t, h.manager.User())

	// Nothing durable survives a rejected attempt.
	stored, loadErr := h.store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Nil(t, stored)
}

/*
TestManager_Login_UserFetchFailure tests the full clear when the user record
cannot be loaded after a successful token exchange.
*/
func TestManager_Login_UserFetchFailure(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "user-7f3a", time.Hour)
	h.users.err = errors.New("connection reset")

	err := h.manager.Login(ctx, "minh@bidaro.vn", "secret-password")

	assert.True(t, apperr.IsCode(err, apperr.CodeFetch))
	assert.Equal(t, session.StateError, h.manager.State())

	// No partially-authenticated state: credential and store both cleared.
	assert.Empty(t, h.manager.AccessToken())
	stored, loadErr := h.store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Nil(t, stored)
}

/*
TestManager_Login_CartLoadFailure tests that a failed cart load is not terminal
for the session.
*/
func TestManager_Login_CartLoadFailure(t *testing.T) {
	h := newHarness(t, "user-7f3a", time.Hour)
	h.binding.authErr = errors.New("cart backend down")

	err := h.manager.Login(context.Background(), "minh@bidaro.vn", "secret-password")

	require.NoError(t, err)
	assert.Equal(t, session.StateAuthenticated, h.manager.State())
}

// # Bootstrap

/*
TestManager_Bootstrap_Absent tests that an empty store boots anonymous.
*/
func TestManager_Bootstrap_Absent(t *testing.T) {
	h := newHarness(t, "user-7f3a", time.Hour)

	err := h.manager.Bootstrap(context.Background())

	require.NoError(t, err)
	assert.Equal(t, session.StateAnonymous, h.manager.State())
	assert.Equal(t, 0, h.users.calls)
}

/*
TestManager_Bootstrap_Resume tests the silent resume from a stored live credential.
*/
func TestManager_Bootstrap_Resume(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "user-7f3a", time.Hour)
	require.NoError(t, h.store.Save(ctx, *h.auth.credential))

	err := h.manager.Bootstrap(ctx)

	require.NoError(t, err)
	assert.Equal(t, session.StateAuthenticated, h.manager.State())
	require.NotNil(t, h.manager.User())
	assert.Equal(t, "user-7f3a", h.manager.User().UserID)

	// No login round trip happened.
	assert.Equal(t, 0, h.auth.loginCalls)
	assert.Equal(t, 1, h.binding.authCalls)
}

/*
TestManager_Bootstrap_DeadToken tests the silent discard of expired and
malformed stored tokens: no error, anonymous, store wiped.
*/
func TestManager_Bootstrap_DeadToken(t *testing.T) {
	tests := []struct {
		name        string
		accessToken func(t *testing.T) string
	}{
		{"expired", func(t *testing.T) string { return mintToken(t, "user-7f3a", -time.Minute) }},
		{"malformed", func(t *testing.T) string { return "garbage-not-a-jwt" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			h := newHarness(t, "user-7f3a", time.Hour)
			require.NoError(t, h.store.Save(ctx, tokenstore.Credential{
				AccessToken:  tt.accessToken(t),
				RefreshToken: "refresh-token-value",
			}))

			err := h.manager.Bootstrap(ctx)

			// Boot failures are silent.
			require.NoError(t, err)
			assert.Equal(t, session.StateAnonymous, h.manager.State())
			assert.Empty(t, h.manager.AccessToken())

			stored, loadErr := h.store.Load(ctx)
			require.NoError(t, loadErr)
			assert.Nil(t, stored)
		})
	}
}

/*
TestManager_Bootstrap_UserFetchFailure tests that a dead backend at boot also
lands anonymous instead of erroring out.
*/
func TestManager_Bootstrap_UserFetchFailure(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "user-7f3a", time.Hour)
	require.NoError(t, h.store.Save(ctx, *h.auth.credential))
	h.users.err = errors.New("connection reset")

	err := h.manager.Bootstrap(ctx)

	require.NoError(t, err)
	assert.Equal(t, session.StateAnonymous, h.manager.State())

	stored, loadErr := h.store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Nil(t, stored)
}

// # Logout

/*
TestManager_Logout tests the full teardown: remote call, durable clear, memory
clear, and the cart event.
*/
func TestManager_Logout(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "user-7f3a", time.Hour)
	require.NoError(t, h.manager.Login(ctx, "minh@bidaro.vn", "secret-password"))
	clearsBefore := h.binding.outCalls

	err := h.manager.Logout(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, h.auth.logoutCalls)
	assert.Equal(t, session.StateAnonymous, h.manager.State())
	assert.Empty(t, h.manager.AccessToken())
	assert.Nil(t, h.manager.User())
	assert.Equal(t, clearsBefore+1, h.binding.outCalls)

	stored, loadErr := h.store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Nil(t, stored)
}

/*
TestManager_Logout_RemoteFailure tests that a failing backend never blocks the
local teardown.
*/
func TestManager_Logout_RemoteFailure(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "user-7f3a", time.Hour)
	require.NoError(t, h.manager.Login(ctx, "minh@bidaro.vn", "secret-password"))
	h.auth.logoutErr = errors.New("backend hung up")

	err := h.manager.Logout(ctx)

	// Remote failure is logged, not surfaced; local state is cleared anyway.
	require.NoError(t, err)
	assert.Equal(t, session.StateAnonymous, h.manager.State())
	assert.Empty(t, h.manager.AccessToken())

	stored, loadErr := h.store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Nil(t, stored)
}

/*
TestManager_Logout_Anonymous tests that logging out without a session skips the
remote call and stays anonymous.
*/
func TestManager_Logout_Anonymous(t *testing.T) {
	h := newHarness(t, "user-7f3a", time.Hour)

	err := h.manager.Logout(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, h.auth.logoutCalls)
	assert.Equal(t, session.StateAnonymous, h.manager.State())
}

/*
TestManager_Relogin tests that a second login fully replaces the first session.
*/
func TestManager_Relogin(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "user-7f3a", time.Hour)
	require.NoError(t, h.manager.Login(ctx, "minh@bidaro.vn", "secret-password"))

	// Switch the backend to a different user.
	h.auth.credential = &tokenstore.Credential{
		AccessToken:  mintToken(t, "user-22bc", time.Hour),
		RefreshToken: "refresh-token-two",
	}
	h.users.user = &session.User{UserID: "user-22bc", Email: "thao@bidaro.vn"}

	require.NoError(t, h.manager.Login(ctx, "thao@bidaro.vn", "other-password"))

	assert.Equal(t, session.StateAuthenticated, h.manager.State())
	assert.Equal(t, "user-22bc", h.manager.User().UserID)
	assert.Equal(t, "user-22bc", h.binding.lastUserID)
}

// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/minhtranvo/bidaro/internal/platform/apperr"
	"github.com/minhtranvo/bidaro/internal/platform/constants"
	"github.com/minhtranvo/bidaro/internal/platform/sec"
	"github.com/minhtranvo/bidaro/internal/platform/validate"
	"github.com/minhtranvo/bidaro/internal/tokenstore"
)

// Manager owns the authentication state machine.
//
// # Lifecycle
//
// Construct with [NewManager], connect the transport with [Manager.Wire], run
// [Manager.Bootstrap] once at process start, and [Manager.Logout] to tear the
// session down. The manager is passed by reference to whatever needs it;
// there is no ambient global session.
//
// # Concurrency
//
// Safe for concurrent use. State reads take a read lock; transitions hold the
// write lock only around commits, never across network calls.
type Manager struct {
	mu         sync.RWMutex
	state      State
	credential *tokenstore.Credential
	user       *User

	store       tokenstore.Store
	authGateway AuthGateway
	userGateway UserGateway
	binding     CartBinding
	log         *slog.Logger
}

// NewManager constructs a [Manager] over the given credential store.
//
// Gateways are attached separately via [Manager.Wire]: the HTTP client that
// backs them needs this manager as its token source, so the two are
// constructed in sequence, not in one shot.
func NewManager(store tokenstore.Store, logger *slog.Logger) *Manager {
	return &Manager{
		state:   StateAnonymous,
		store:   store,
		binding: NopBinding{},
		log:     logger,
	}
}

// Wire attaches the remote gateways and the cart binding.
//
// Must be called exactly once, before [Manager.Bootstrap]. A nil binding
// selects [NopBinding].
func (manager *Manager) Wire(auth AuthGateway, users UserGateway, binding CartBinding) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	manager.authGateway = auth
	manager.userGateway = users
	if binding != nil {
		manager.binding = binding
	}
}

// # Observers

// State returns the current position in the state machine.
func (manager *Manager) State() State {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.state
}

// User returns the authenticated user record, or nil while not authenticated.
func (manager *Manager) User() *User {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.user
}

// IsAuthenticated reports whether a user record is loaded.
func (manager *Manager) IsAuthenticated() bool {
	return manager.State() == StateAuthenticated
}

// AccessToken returns the current access token, or "" while anonymous.
//
// This satisfies the transport's token source contract; the transport never
// sees the refresh token.
func (manager *Manager) AccessToken() string {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	if manager.credential == nil {
		return ""
	}
	return manager.credential.AccessToken
}

// # Authentication Flow

/*
Login authenticates with the remote endpoint and establishes the session.

Description: anonymous → authenticating → authenticated. The issued credential
is persisted before identity resolution, so a crash after login still
auto-resumes on next boot. Any failure after the credential exists triggers a
full clear (credential, user, and cart) and lands in the error state.

Parameters:
  - ctx: context.Context
  - email: string
  - password: string

Returns:
  - error: VALIDATION_ERROR for empty input, UNAUTHORIZED for rejected
    credentials, or downstream failures
*/
func (manager *Manager) Login(ctx context.Context, email, password string) error {

	// Reject before any network call.
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldPassword, password)
	if err := validator.Err(); err != nil {
		return err
	}

	// Re-login replaces any existing session. Clear first so a failure below
	// cannot leave the old session half-alive.
	manager.clearLocal(ctx)
	manager.setState(StateAuthenticating)

	credential, err := manager.authGateway.Login(ctx, email, password)
	if err != nil {
		manager.setState(StateError)
		return err
	}

	// Persist on every change: read once at boot, written here.
	if err := manager.store.Save(ctx, *credential); err != nil {
		manager.setState(StateError)
		return fmt.Errorf("session_credential_save_failed: %w", err)
	}

	manager.setCredential(credential)

	// Post-login and boot share the same path from here on.
	if err := manager.finalize(ctx); err != nil {
		manager.clearLocal(ctx)
		manager.setState(StateError)
		return err
	}

	return nil
}

/*
Bootstrap restores the session from the durable credential store.

Description: Invoked once at process start. An absent credential stays
anonymous. A present credential runs the exact post-login path (identity
resolution, user fetch, cart load) minus the network login call. Boot-time
authentication failures are silent: logged, fully cleared, anonymous.

Parameters:
  - ctx: context.Context

Returns:
  - error: Credential store I/O failures only, never auth failures
*/
func (manager *Manager) Bootstrap(ctx context.Context) error {

	credential, err := manager.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("session_credential_load_failed: %w", err)
	}

	if credential == nil {
		manager.setState(StateAnonymous)
		return nil
	}

	manager.setState(StateAuthenticating)
	manager.setCredential(credential)

	if err := manager.finalize(ctx); err != nil {
		// Silent on boot: the stored token was dead or the user fetch
		// failed. Clear everything and start anonymous.
		manager.log.Info("session_bootstrap_discarded",
			slog.String("reason", err.Error()),
		)
		manager.clearLocal(ctx)
		manager.setState(StateAnonymous)
	}

	return nil
}

/*
Logout tears the session down.

Description: Remote invalidation is best-effort: a timeout or failure is
logged and never surfaced. The local clear is unconditional and covers the
credential store, the in-memory session, and the cart in one logical
transition.

Parameters:
  - ctx: context.Context

Returns:
  - error: Credential store clear failures (local state is cleared regardless)
*/
func (manager *Manager) Logout(ctx context.Context) error {

	// Best-effort remote invalidation, bounded so a hung backend cannot
	// delay the local clear.
	if manager.AccessToken() != "" {
		logoutCtx, cancel := context.WithTimeout(ctx, constants.LogoutTimeout)
		if err := manager.authGateway.Logout(logoutCtx); err != nil {
			manager.log.Warn("session_remote_logout_failed",
				slog.Any("error", err),
			)
		}
		cancel()
	}

	storeErr := manager.clearLocal(ctx)
	manager.setState(StateAnonymous)

	if storeErr != nil {
		return fmt.Errorf("session_credential_clear_failed: %w", storeErr)
	}
	return nil
}

// # Internal Transitions

/*
finalize runs the shared tail of login and boot: decode identity, fetch the
user record, transition to authenticated, and trigger the cart load.

Returns:
  - error: MALFORMED_TOKEN / EXPIRED_TOKEN from identity resolution, or the
    user fetch failure; both terminal for the session attempt
*/
func (manager *Manager) finalize(ctx context.Context) error {

	// Identity is always re-decoded from the access token, never stored.
	claims, err := sec.DecodeIdentity(manager.AccessToken())
	if err != nil {
		return err
	}

	user, err := manager.userGateway.FindByID(ctx, claims.UserID)
	if err != nil {
		return apperr.Fetch("user", err)
	}

	manager.mu.Lock()
	manager.user = user
	manager.state = StateAuthenticated
	manager.mu.Unlock()

	manager.log.Info("session_authenticated",
		slog.String("user_id", user.UserID),
	)

	// Cart load failures are local to the cart, never terminal for the
	// session: the binding surfaces them on its own side.
	if err := manager.binding.OnAuthenticated(ctx, user.UserID); err != nil {
		manager.log.Warn("session_cart_load_failed",
			slog.String("user_id", user.UserID),
			slog.Any("error", err),
		)
	}

	return nil
}

// clearLocal wipes the stored credential, the in-memory session, and the
// cart. Returns the store error, if any; memory is cleared regardless.
func (manager *Manager) clearLocal(ctx context.Context) error {
	storeErr := manager.store.Clear(ctx)

	manager.mu.Lock()
	manager.credential = nil
	manager.user = nil
	manager.mu.Unlock()

	manager.binding.OnLoggedOut()

	return storeErr
}

// setState commits a state transition.
func (manager *Manager) setState(state State) {
	manager.mu.Lock()
	manager.state = state
	manager.mu.Unlock()
}

// setCredential commits the in-memory credential.
func (manager *Manager) setCredential(credential *tokenstore.Credential) {
	manager.mu.Lock()
	manager.credential = credential
	manager.mu.Unlock()
}

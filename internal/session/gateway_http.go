// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package session

import (
	"context"
	"fmt"

	"github.com/minhtranvo/bidaro/internal/platform/apperr"
	"github.com/minhtranvo/bidaro/internal/platform/httpx"
	"github.com/minhtranvo/bidaro/internal/tokenstore"
)

// # HTTP Gateways

// HTTPAuthGateway implements [AuthGateway] against the storefront API.
type HTTPAuthGateway struct {
	api *httpx.Client
}

// NewHTTPAuthGateway creates an [AuthGateway] over the shared API client.
func NewHTTPAuthGateway(api *httpx.Client) *HTTPAuthGateway {
	return &HTTPAuthGateway{api: api}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

/*
Login exchanges credentials for a token pair.

POST /auth/login

Returns:
  - *tokenstore.Credential: The issued pair
  - error: UNAUTHORIZED for rejected credentials; transport failures otherwise
*/
func (gateway *HTTPAuthGateway) Login(context context.Context, email, password string) (*tokenstore.Credential, error) {
	var response loginResponse

	err := gateway.api.Post(context, "/auth/login", loginRequest{
		Email:    email,
		Password: password,
	}, &response)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeUnauthorized) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, fmt.Errorf("auth_gateway_login_failed: %w", err)
	}

	credential := &tokenstore.Credential{
		AccessToken:  response.AccessToken,
		RefreshToken: response.RefreshToken,
	}

	// A half-issued pair is as useless as no pair; refuse it here rather
	// than letting it poison the store.
	if !credential.Complete() {
		return nil, apperr.Unauthorized("Login response did not include a full token pair")
	}

	return credential, nil
}

/*
Logout invalidates the session server-side.

POST /auth/logout (bearer attached by the transport)
*/
func (gateway *HTTPAuthGateway) Logout(context context.Context) error {
	if err := gateway.api.Post(context, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("auth_gateway_logout_failed: %w", err)
	}
	return nil
}

// HTTPUserGateway implements [UserGateway] against the storefront API.
type HTTPUserGateway struct {
	api *httpx.Client
}

// NewHTTPUserGateway creates a [UserGateway] over the shared API client.
func NewHTTPUserGateway(api *httpx.Client) *HTTPUserGateway {
	return &HTTPUserGateway{api: api}
}

/*
FindByID returns the user record for the given ID.

GET /users/{user_id}
*/
func (gateway *HTTPUserGateway) FindByID(context context.Context, userID string) (*User, error) {
	var user User

	if err := gateway.api.Get(context, "/users/"+userID, &user); err != nil {
		return nil, err
	}

	// A record without its ID would break the cart binding downstream.
	if user.UserID == "" {
		return nil, apperr.Fetch("user", fmt.Errorf("user_gateway_missing_user_id"))
	}

	return &user, nil
}

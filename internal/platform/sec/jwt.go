// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

// Package sec provides client-side token inspection.
//
// # Architecture
//
// This package isolates JWT handling from the session logic. The client holds
// no signing key; signature verification is the backend's job on every
// request. What the client needs is the identity embedded in the access token
// (the `user_id` claim) and the embedded expiry, so that a dead token is
// discarded locally without a doomed network round trip.
package sec

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/minhtranvo/bidaro/internal/platform/apperr"
)

// IdentityClaims represents the payload embedded inside a Bidaro access token.
//
// # Why decode locally?
//
// The session manager derives the current user's ID from the token on every
// boot instead of persisting it separately. The token is the single source of
// identity; an undecodable or expired token invalidates the whole credential
// pair.
type IdentityClaims struct {
	jwt.RegisteredClaims

	// UserID is the authenticated user's identifier.
	UserID string `json:"user_id"`
}

// DecodeIdentity extracts the identity claims from an access token string.
//
// The signature is NOT verified; see the package comment. The token is
// rejected with MALFORMED_TOKEN if it cannot be decoded or carries no
// user_id, and with EXPIRED_TOKEN if the embedded expiry is in the past.
func DecodeIdentity(accessToken string) (*IdentityClaims, error) {
	claims := &IdentityClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return nil, apperr.MalformedToken(err)
	}

	// A token without an identity claim is useless to the session layer.
	if claims.UserID == "" {
		return nil, apperr.MalformedToken(jwt.ErrTokenInvalidClaims)
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil {
		return nil, apperr.MalformedToken(err)
	}

	// Tokens without an exp claim are treated as expired rather than eternal.
	if expiry == nil || expiry.Before(time.Now()) {
		return nil, apperr.ExpiredToken()
	}

	return claims, nil
}

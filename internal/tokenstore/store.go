// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

/*
Package tokenstore persists the session credential pair across process restarts.

It defines the durable storage contract for the access/refresh token pair and
two implementations: a file-backed store for interactive use and a
Redis-backed store for shared headless deployments.

# Architecture

This layer is pure persistence. No network calls, no token validation, no
identity logic; those belong to the session manager. The one invariant the
store owns is pair atomicity: a reader never observes one token without the
other.
*/
package tokenstore

import "context"

// # Domain Entities

// Credential is the access/refresh token pair identifying a session.
//
// # Invariant
//
// Both tokens present or both absent. A partial pair is treated as absent by
// every reader: it carries no usable session.
type Credential struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Complete reports whether both halves of the pair are present.
func (c Credential) Complete() bool {
	return c.AccessToken != "" && c.RefreshToken != ""
}

// # Storage Contract

// Store defines the durable persistence contract for the credential pair.
type Store interface {

	/*
		Save writes both token values durably.

		Description: The write is logically atomic: a concurrent or subsequent
		Load observes either the previous pair or the new pair, never a mix.

		Parameters:
		  - context: context.Context
		  - credential: Credential (must be complete)

		Returns:
		  - error: Persistence failures, or a validation error for a partial pair
	*/
	Save(context context.Context, credential Credential) error

	/*
		Load reads the stored pair.

		Description: Returns (nil, nil) when no credential is stored. A partial
		pair on disk is reported as absent, matching the pair invariant.

		Parameters:
		  - context: context.Context

		Returns:
		  - *Credential: The stored pair, or nil when absent
		  - error: Retrieval failures
	*/
	Load(context context.Context) (*Credential, error)

	/*
		Clear removes both values unconditionally.

		Description: Clearing an already-empty store succeeds (idempotent).

		Parameters:
		  - context: context.Context

		Returns:
		  - error: Persistence failures
	*/
	Clear(context context.Context) error
}

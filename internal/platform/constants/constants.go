// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

/*
Package constants provides centralized, immutable values for the client toolkit.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between the transport, session, and storage layers.

Categories:

  - Client Timing: Request and dial timeouts for the HTTP client.
  - Rate Limiting: Outbound request pacing for scripted usage.
  - Credential Storage: Durable key names for the token pair.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the protocol logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "bidaro"
	AppVersion = "0.1.0-dev"
)

// # Client Timing

const (
	// DefaultRequestTimeout is the deadline for a single API request lifecycle.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultDialTimeout is the maximum duration for establishing a TCP connection.
	DefaultDialTimeout = 5 * time.Second

	// DefaultIdleConnTimeout is how long a kept-alive connection may stay idle.
	DefaultIdleConnTimeout = 90 * time.Second

	// LogoutTimeout bounds the best-effort remote logout call. Local state is
	// cleared regardless of whether this deadline is hit.
	LogoutTimeout = 5 * time.Second
)

// # Rate Limiting

const (
	// DefaultClientRPS is the outbound requests per second the client allows.
	// Keeps scripted CLI loops from hammering the storefront API.
	DefaultClientRPS = 20.0

	// DefaultClientBurst is the maximum burst allowed for the outbound limiter.
	DefaultClientBurst = 40
)

// # Credential Storage

const (
	// StorageKeyAccessToken is the durable key under which the access token is kept.
	StorageKeyAccessToken = "accessToken"

	// StorageKeyRefreshToken is the durable key under which the refresh token is kept.
	StorageKeyRefreshToken = "refreshToken"

	// CredentialFileName is the default on-disk file for the file-backed token store.
	CredentialFileName = "credentials.json"

	// RedisPrefixCredential namespaces token-pair keys in the Redis-backed store.
	RedisPrefixCredential = "bidaro:credential:"
)

// # Identity

const (
	// ClaimUserID is the custom JWT claim carrying the authenticated user's ID.
	ClaimUserID = "user_id"
)

// # Transport Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"
	BearerPrefix    = "Bearer "
)

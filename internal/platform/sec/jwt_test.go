// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhtranvo/bidaro/internal/platform/apperr"
	"github.com/minhtranvo/bidaro/internal/platform/sec"
)

// mintToken signs a throwaway HS256 token with the given claims. The signing
// key is irrelevant: decoding never verifies the signature.
func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-only-key"))
	require.NoError(t, err)

	return signed
}

/*
TestDecodeIdentity tests identity extraction from a well-formed access token.
*/
func TestDecodeIdentity(t *testing.T) {
	accessToken := mintToken(t, jwt.MapClaims{
		"user_id": "user-7f3a",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	claims, err := sec.DecodeIdentity(accessToken)

	require.NoError(t, err)
	assert.Equal(t, "user-7f3a", claims.UserID)
}

/*
TestDecodeIdentity_Malformed tests rejection of tokens that cannot carry an identity.
*/
func TestDecodeIdentity_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not_a_jwt", "definitely-not-a-jwt"},
		{"empty", ""},
		{"missing_user_id", ""}, // Filled below: valid JWT, no user_id claim
	}
	tests[2].token = mintToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := sec.DecodeIdentity(tt.token)

			assert.Nil(t, claims)
			assert.True(t, apperr.IsCode(err, apperr.CodeMalformedToken))
		})
	}
}

/*
TestDecodeIdentity_Expired tests rejection of tokens past (or without) an expiry.
*/
func TestDecodeIdentity_Expired(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{
			"past_expiry",
			jwt.MapClaims{
				"user_id": "user-7f3a",
				"exp":     time.Now().Add(-time.Minute).Unix(),
			},
		},
		{
			// No exp claim: expired rather than eternal.
			"missing_expiry",
			jwt.MapClaims{"user_id": "user-7f3a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := sec.DecodeIdentity(mintToken(t, tt.claims))

			assert.Nil(t, claims)
			assert.True(t, apperr.IsCode(err, apperr.CodeExpiredToken))
		})
	}
}

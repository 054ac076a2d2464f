// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package tokenstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhtranvo/bidaro/internal/platform/apperr"
	"github.com/minhtranvo/bidaro/internal/tokenstore"
)

func newFileStore(t *testing.T) *tokenstore.FileStore {
	t.Helper()
	return tokenstore.NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
}

/*
TestFileStore_SaveLoad tests the round trip of a complete credential pair.
*/
func TestFileStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)

	saved := tokenstore.Credential{
		AccessToken:  "access-token-value",
		RefreshToken: "refresh-token-value",
	}
	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx)

	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved, *loaded)
}

/*
TestFileStore_LoadAbsent tests that a missing file reads as (nil, nil), not an error.
*/
func TestFileStore_LoadAbsent(t *testing.T) {
	store := newFileStore(t)

	loaded, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, loaded)
}

/*
TestFileStore_SavePartialPair tests that an incomplete pair is rejected before touching disk.
*/
func TestFileStore_SavePartialPair(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		credential tokenstore.Credential
	}{
		{"missing_refresh", tokenstore.Credential{AccessToken: "access-only"}},
		{"missing_access", tokenstore.Credential{RefreshToken: "refresh-only"}},
		{"empty_pair", tokenstore.Credential{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFileStore(t)

			err := store.Save(ctx, tt.credential)

			assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

			// Nothing must be visible to readers.
			loaded, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Nil(t, loaded)
		})
	}
}

/*
TestFileStore_LoadPartialPair tests that a partial pair on disk reads as absent.
*/
func TestFileStore_LoadPartialPair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"accessToken":"orphan"}`), 0o600))

	store := tokenstore.NewFileStore(path)
	loaded, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, loaded)
}

/*
TestFileStore_Clear tests removal, including the idempotent empty-store case.
*/
func TestFileStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)

	// Clearing an empty store succeeds.
	require.NoError(t, store.Clear(ctx))

	require.NoError(t, store.Save(ctx, tokenstore.Credential{
		AccessToken:  "access-token-value",
		RefreshToken: "refresh-token-value",
	}))
	require.NoError(t, store.Clear(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

/*
TestFileStore_Overwrite tests that a second save fully replaces the first pair.
*/
func TestFileStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	store := newFileStore(t)

	require.NoError(t, store.Save(ctx, tokenstore.Credential{
		AccessToken:  "first-access",
		RefreshToken: "first-refresh",
	}))
	require.NoError(t, store.Save(ctx, tokenstore.Credential{
		AccessToken:  "second-access",
		RefreshToken: "second-refresh",
	}))

	loaded, err := store.Load(ctx)

	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "second-access", loaded.AccessToken)
	assert.Equal(t, "second-refresh", loaded.RefreshToken)
}

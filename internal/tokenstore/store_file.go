// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/minhtranvo/bidaro/internal/platform/validate"
)

// FileStore implements [Store] on the local filesystem.
//
// The pair is written as a single JSON document, so pair atomicity reduces to
// file atomicity: writes go to a temp file in the same directory followed by a
// rename, which POSIX guarantees to be atomic.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed [Store] rooted at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

/*
Save writes the credential pair to disk atomically.

Parameters:
  - context: context.Context (unused; filesystem writes are not cancellable)
  - credential: Credential

Returns:
  - error: Validation error for a partial pair, or filesystem failures
*/
func (store *FileStore) Save(_ context.Context, credential Credential) error {

	// A partial pair must never become visible to readers.
	if !credential.Complete() {
		return validate.RequiredError("credential", "Both access and refresh tokens are required")
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	encoded, err := json.Marshal(credential)
	if err != nil {
		return fmt.Errorf("tokenstore_file_encode_failed: %w", err)
	}

	// Temp file in the target directory so the rename never crosses devices.
	directory := filepath.Dir(store.path)
	temp, err := os.CreateTemp(directory, ".credentials-*.tmp")
	if err != nil {
		return fmt.Errorf("tokenstore_file_temp_failed: %w", err)
	}

	// Tokens are secrets: owner read/write only.
	if err := temp.Chmod(0o600); err != nil {
		_ = temp.Close()
		_ = os.Remove(temp.Name())
		return fmt.Errorf("tokenstore_file_chmod_failed: %w", err)
	}

	if _, err := temp.Write(encoded); err != nil {
		_ = temp.Close()
		_ = os.Remove(temp.Name())
		return fmt.Errorf("tokenstore_file_write_failed: %w", err)
	}

	if err := temp.Close(); err != nil {
		_ = os.Remove(temp.Name())
		return fmt.Errorf("tokenstore_file_close_failed: %w", err)
	}

	if err := os.Rename(temp.Name(), store.path); err != nil {
		_ = os.Remove(temp.Name())
		return fmt.Errorf("tokenstore_file_rename_failed: %w", err)
	}

	return nil
}

/*
Load reads the credential pair from disk.

Returns:
  - *Credential: The stored pair, or nil when the file is missing or partial
  - error: Filesystem or decode failures
*/
func (store *FileStore) Load(_ context.Context) (*Credential, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	raw, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("tokenstore_file_read_failed: %w", err)
	}

	var credential Credential
	if err := json.Unmarshal(raw, &credential); err != nil {
		return nil, fmt.Errorf("tokenstore_file_decode_failed: %w", err)
	}

	// A partial pair carries no usable session: report absent.
	if !credential.Complete() {
		return nil, nil
	}

	return &credential, nil
}

/*
Clear removes the credential file unconditionally.

Returns:
  - error: Filesystem failures (a missing file is success)
*/
func (store *FileStore) Clear(_ context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.Remove(store.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("tokenstore_file_clear_failed: %w", err)
	}

	return nil
}

// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package tokenstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/minhtranvo/bidaro/internal/platform/constants"
	"github.com/minhtranvo/bidaro/internal/platform/validate"
)

// RedisStore implements [Store] on a Redis instance.
//
// # Use Case
//
// Shared headless deployments (CI bots, scheduled smoke tests) where no
// per-user home directory exists. The two token keys are written in a single
// MULTI/EXEC transaction so readers never observe a half-updated pair.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed [Store].
//
// The namespace argument isolates token pairs of independent consumers sharing
// one Redis instance; empty selects the default namespace.
func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "default"
	}
	return &RedisStore{
		client: client,
		prefix: constants.RedisPrefixCredential + namespace + ":",
	}
}

// accessKey returns the Redis key holding the access token.
func (store *RedisStore) accessKey() string {
	return store.prefix + constants.StorageKeyAccessToken
}

// refreshKey returns the Redis key holding the refresh token.
func (store *RedisStore) refreshKey() string {
	return store.prefix + constants.StorageKeyRefreshToken
}

/*
Save writes both token values in one transaction.

Parameters:
  - context: context.Context
  - credential: Credential

Returns:
  - error: Validation error for a partial pair, or execution failures
*/
func (store *RedisStore) Save(context context.Context, credential Credential) error {

	// A partial pair must never become visible to readers.
	if !credential.Complete() {
		return validate.RequiredError("credential", "Both access and refresh tokens are required")
	}

	// MULTI/EXEC: both SETs apply atomically or not at all.
	pipeline := store.client.TxPipeline()
	pipeline.Set(context, store.accessKey(), credential.AccessToken, 0)
	pipeline.Set(context, store.refreshKey(), credential.RefreshToken, 0)

	if _, err := pipeline.Exec(context); err != nil {
		return fmt.Errorf("tokenstore_redis_save_failed: %w", err)
	}

	return nil
}

/*
Load reads the credential pair from Redis.

Returns:
  - *Credential: The stored pair, or nil when either key is absent
  - error: Connectivity failures
*/
func (store *RedisStore) Load(context context.Context) (*Credential, error) {

	// MGET reads both keys in one round trip and one atomic snapshot.
	values, err := store.client.MGet(context, store.accessKey(), store.refreshKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("tokenstore_redis_load_failed: %w", err)
	}

	credential := Credential{
		AccessToken:  stringValue(values[0]),
		RefreshToken: stringValue(values[1]),
	}

	// A partial pair carries no usable session: report absent.
	if !credential.Complete() {
		return nil, nil
	}

	return &credential, nil
}

/*
Clear removes both keys unconditionally.

Returns:
  - error: Execution failures (missing keys are success)
*/
func (store *RedisStore) Clear(context context.Context) error {
	if err := store.client.Del(context, store.accessKey(), store.refreshKey()).Err(); err != nil {
		return fmt.Errorf("tokenstore_redis_clear_failed: %w", err)
	}

	return nil
}

// stringValue converts an MGET result slot (string or nil) into a string.
func stringValue(value interface{}) string {
	s, _ := value.(string)
	return s
}

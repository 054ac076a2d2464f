// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

// Package uuid wraps the google/uuid generator behind a minimal interface.
//
// The toolkit only ever needs opaque string identifiers (request correlation
// IDs); isolating the dependency here keeps call sites terse.
package uuid

import "github.com/google/uuid"

// New returns a new random UUIDv4 string.
func New() string {
	return uuid.NewString()
}

// IsValid reports whether the given string parses as a UUID.
func IsValid(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}

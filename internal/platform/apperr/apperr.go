// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

/*
Package apperr defines the centralized error handling framework for the Bidaro
client toolkit.

It provides a rich error type that bridges the gap between low-level transport
failures and the session/cart protocol's error taxonomy.

Architecture:

  - AppError: A struct containing a machine-readable ErrorCode and user-friendly messages.
  - Taxonomy: AuthError (UNAUTHORIZED, MALFORMED_TOKEN, EXPIRED_TOKEN), FetchError,
    ValidationError, and payment-specific NO_PAYMENT_URL.
  - Mapping: Explicit mapping from upstream HTTP status codes to AppError codes.

Every error that leaves a manager or gateway should be wrapped as an [AppError]
so that callers can branch on Code rather than on string matching.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Codes

// Machine-readable error identifiers used across the toolkit.
const (
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeMalformedToken = "MALFORMED_TOKEN"
	CodeExpiredToken   = "EXPIRED_TOKEN"
	CodeValidation     = "VALIDATION_ERROR"
	CodeFetch          = "FETCH_ERROR"
	CodeNoPaymentURL   = "NO_PAYMENT_URL"
	CodeNotFound       = "NOT_FOUND"
	CodeInternal       = "INTERNAL_ERROR"
)

// AppError is the canonical error type for the Bidaro client.
//
// It carries the upstream HTTP status (when one exists), a machine-readable
// code, a user-safe message, and an optional slice of field-level validation
// errors.
//
// # Logging
//
// The Cause field is for structured logging only and is never rendered to the
// end user, to keep CLI output free of transport noise.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "EXPIRED_TOKEN").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to the user.
	Message string `json:"error"`
	// HTTPStatus is the upstream response status, or 0 for local errors.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR results.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the input field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the user-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Authentication Errors

// Unauthorized creates an UNAUTHORIZED [AppError] (bad credentials, rejected token).
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// MalformedToken creates a MALFORMED_TOKEN [AppError] for an undecodable access token.
//
// A malformed token invalidates the whole credential pair: the session layer
// must discard both tokens, never retry with the same pair.
func MalformedToken(cause error) *AppError {
	return &AppError{
		Code:    CodeMalformedToken,
		Message: "Stored access token is malformed",
		Cause:   cause,
	}
}

// ExpiredToken creates an EXPIRED_TOKEN [AppError] for a token past its embedded expiry.
func ExpiredToken() *AppError {
	return &AppError{
		Code:    CodeExpiredToken,
		Message: "Stored access token has expired",
	}
}

// # Input Errors

// ValidationError creates a VALIDATION_ERROR [AppError] with optional per-field details.
//
// Validation errors are raised before any network call is issued.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// # Transport Errors

// Fetch creates a FETCH_ERROR [AppError] for a failed read of a named remote resource.
//
// Example:
//
//	apperr.Fetch("cart", err) // "Failed to fetch cart"
func Fetch(resource string, cause error) *AppError {
	return &AppError{
		Code:    CodeFetch,
		Message: "Failed to fetch " + resource,
		Cause:   cause,
	}
}

// NotFound creates a NOT_FOUND [AppError] for a named remote resource.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// FromStatus maps an upstream HTTP status code to an [AppError].
//
// # Mapping
//
//   - 401/403 -> UNAUTHORIZED
//   - 404     -> NOT_FOUND
//   - 4xx     -> VALIDATION_ERROR (server rejected the input)
//   - 5xx     -> INTERNAL_ERROR
func FromStatus(status int, message string) *AppError {
	if message == "" {
		message = fmt.Sprintf("Request failed with status %d", status)
	}

	code := CodeInternal
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		code = CodeUnauthorized
	case status == http.StatusNotFound:
		code = CodeNotFound
	case status >= 400 && status < 500:
		code = CodeValidation
	}

	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
	}
}

// # Payment Errors

// NoPaymentURL creates a NO_PAYMENT_URL [AppError].
//
// Raised when the payment endpoint's opaque message does not embed a
// well-formed redirect URL. Proceeding silently is never acceptable here.
func NoPaymentURL() *AppError {
	return &AppError{
		Code:    CodeNoPaymentURL,
		Message: "Payment response did not contain a redirect URL",
	}
}

// # Local Errors

// Internal creates an INTERNAL_ERROR [AppError] wrapping an unexpected local failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "An unexpected error occurred",
		Cause:   cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err carries the given machine-readable code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}

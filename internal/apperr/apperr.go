// Package apperr holds the error taxonomy shared by services and the HTTP
// boundary. Services return these sentinels (possibly wrapped); the response
// package maps them to status codes.
package apperr

import "errors"

var (
	// ErrInvalidURL marks a malformed original URL on shorten requests.
	ErrInvalidURL = errors.New("invalid URL format")

	// ErrNotFound marks a missing resource.
	ErrNotFound = errors.New("resource not found")

	// ErrNotFoundOrForbidden is returned when a row does not match both the
	// short code and the requesting owner. The two cases are deliberately
	// indistinguishable so a caller cannot probe whether a code exists.
	ErrNotFoundOrForbidden = errors.New("URL not found or you do not have permission to access it")

	// ErrConflict marks a duplicate active email.
	ErrConflict = errors.New("user already exists")

	// ErrUnauthorized marks a missing or invalid session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden marks an authenticated caller whose role is not allowed.
	ErrForbidden = errors.New("forbidden")

	// ErrAllocationExhausted is returned when no unique short code was found
	// within the bounded number of attempts.
	ErrAllocationExhausted = errors.New("failed to generate unique short code after multiple attempts")
)

// Package shortcode generates short codes and allocates collision-free ones
// against current table state.
package shortcode

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"technext-be/internal/apperr"

	"github.com/sethvargo/go-retry"
)

const (
	// CodeLength is the fixed length of every generated short code.
	CodeLength = 6

	// maxAttempts bounds the allocation loop. The loop never falls back to a
	// non-unique code; exhaustion is an error.
	maxAttempts = 100
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var errCodeTaken = errors.New("short code already taken")

// Generator produces random fixed-length alphanumeric codes. Collisions are
// the allocator's problem; math/rand is enough because uniqueness is enforced
// by the database constraint, not by the random source. It uses the
// package-level source of math/rand/v2, which is safe for concurrent use, so
// a single Generator can serve every request.
type Generator struct{}

// NewGenerator creates a generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns a CodeLength-character string drawn uniformly from [a-zA-Z0-9].
func (g *Generator) Generate() string {
	buf := make([]byte, CodeLength)
	for i := range buf {
		buf[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(buf)
}

// CodeChecker reports whether a short code is already present in storage.
type CodeChecker interface {
	ShortCodeExists(ctx context.Context, shortCode string) (bool, error)
}

// Allocator draws candidates from a Generator and rejects the ones already
// taken. Its existence check is a fast path that reduces contention against
// the unique index on shortened_urls.short_code, which remains the
// authoritative guarantee.
type Allocator struct {
	gen     *Generator
	checker CodeChecker
}

// NewAllocator creates an allocator over the given checker.
func NewAllocator(gen *Generator, checker CodeChecker) *Allocator {
	return &Allocator{gen: gen, checker: checker}
}

// Allocate returns a short code not currently present in storage, or
// apperr.ErrAllocationExhausted after maxAttempts collisions. Storage errors
// abort the loop immediately.
func (a *Allocator) Allocate(ctx context.Context) (string, error) {
	var code string

	backoff := retry.WithMaxRetries(maxAttempts-1, retry.NewConstant(1))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		candidate := a.gen.Generate()
		exists, err := a.checker.ShortCodeExists(ctx, candidate)
		if err != nil {
			return err
		}
		if exists {
			return retry.RetryableError(errCodeTaken)
		}
		code = candidate
		return nil
	})
	if err != nil {
		if errors.Is(err, errCodeTaken) {
			return "", fmt.Errorf("%w (%d attempts)", apperr.ErrAllocationExhausted, maxAttempts)
		}
		return "", err
	}

	return code, nil
}

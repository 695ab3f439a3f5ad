package shortcode

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"technext-be/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChecker scripts the existence answers for the allocator.
type stubChecker struct {
	calls   int
	answers func(call int) (bool, error)
}

func (s *stubChecker) ShortCodeExists(_ context.Context, _ string) (bool, error) {
	s.calls++
	return s.answers(s.calls)
}

func TestGeneratorProducesFixedLengthAlphanumeric(t *testing.T) {
	gen := NewGenerator()

	for i := 0; i < 1000; i++ {
		code := gen.Generate()
		assert.Len(t, code, CodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q in %q", r, code)
		}
	}
}

func TestGeneratorCodesAreDistinct(t *testing.T) {
	gen := NewGenerator()

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		code := gen.Generate()
		_, dup := seen[code]
		require.False(t, dup, "duplicate code %q after %d draws", code, i)
		seen[code] = struct{}{}
	}
}

// One Generator is shared by every request, so concurrent draws must be safe.
// Run with -race to catch regressions toward a per-instance source.
func TestGeneratorIsSafeForConcurrentUse(t *testing.T) {
	gen := NewGenerator()

	const goroutines = 8
	const perGoroutine = 200

	codes := make(chan string, goroutines*perGoroutine)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				codes <- gen.Generate()
			}
		}()
	}
	wg.Wait()
	close(codes)

	for code := range codes {
		require.Len(t, code, CodeLength)
		for _, r := range code {
			require.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q in %q", r, code)
		}
	}
}

func TestAllocatorReturnsFirstFreeCode(t *testing.T) {
	checker := &stubChecker{answers: func(int) (bool, error) { return false, nil }}
	allocator := NewAllocator(NewGenerator(), checker)

	code, err := allocator.Allocate(context.Background())
	require.NoError(t, err)
	assert.Len(t, code, CodeLength)
	assert.Equal(t, 1, checker.calls)
}

func TestAllocatorSkipsTakenCodes(t *testing.T) {
	checker := &stubChecker{answers: func(call int) (bool, error) {
		return call <= 3, nil
	}}
	allocator := NewAllocator(NewGenerator(), checker)

	code, err := allocator.Allocate(context.Background())
	require.NoError(t, err)
	assert.Len(t, code, CodeLength)
	assert.Equal(t, 4, checker.calls)
}

func TestAllocatorExhaustsAfterMaxAttempts(t *testing.T) {
	checker := &stubChecker{answers: func(int) (bool, error) { return true, nil }}
	allocator := NewAllocator(NewGenerator(), checker)

	_, err := allocator.Allocate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrAllocationExhausted)
	assert.Equal(t, maxAttempts, checker.calls)
}

func TestAllocatorAbortsOnStorageError(t *testing.T) {
	boom := errors.New("db down")
	checker := &stubChecker{answers: func(int) (bool, error) { return false, boom }}
	allocator := NewAllocator(NewGenerator(), checker)

	_, err := allocator.Allocate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, checker.calls)
}

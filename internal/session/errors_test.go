package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpError_MessageIncludesCause(t *testing.T) {
	cause := errors.New("host threw")
	err := newScanError("scan", "search failed", cause)

	assert.Contains(t, err.Error(), "SCAN_FAILED")
	assert.Contains(t, err.Error(), "search failed")
	assert.Contains(t, err.Error(), "host threw")
	assert.ErrorIs(t, err, cause)
}

func TestErrorPredicates(t *testing.T) {
	scanErr := newScanError("scan", "boom", nil)
	resolveErr := newResolveError("accept_one", "boom", nil)

	assert.True(t, IsScanFailure(scanErr))
	assert.False(t, IsScanFailure(resolveErr))
	assert.True(t, IsResolutionFailure(resolveErr))
	assert.False(t, IsResolutionFailure(scanErr))

	assert.False(t, IsScanFailure(errors.New("plain")))
	assert.False(t, IsScanFailure(nil))
}

func TestErrorPredicates_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", newScanError("scan", "boom", nil))
	assert.True(t, IsScanFailure(wrapped))
}

func TestFixedGenerator_ReturnsTokensInOrder(t *testing.T) {
	g := NewFixedGenerator("a", "b")
	assert.Equal(t, "a", g.Generate())
	assert.Equal(t, "b", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}

func TestUUIDv7Generator_UniqueTokens(t *testing.T) {
	g := UUIDv7Generator{}
	first := g.Generate()
	second := g.Generate()
	assert.NotEqual(t, first, second)
	assert.Len(t, first, 36)
}

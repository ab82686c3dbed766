package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	t.Parallel()

	a, b := New(42), New(42)
	for range 10 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotEqual(t, New(1).Uint64(), New(2).Uint64())
}

func TestSeed(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(7), Seed(7))
	assert.NotZero(t, Seed(0))
}

func TestDerive(t *testing.T) {
	t.Parallel()

	seen := make(map[int64]bool)
	for i := range 100 {
		s := Derive(12345, i)
		assert.False(t, seen[s], "stream %d repeated a seed", i)
		seen[s] = true
		assert.Equal(t, s, Derive(12345, i))
	}
	assert.NotEqual(t, Derive(1, 0), Derive(2, 0))
}

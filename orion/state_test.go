package orion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlobal_TrySetKeepsLiveValue(t *testing.T) {
	live := func(v int) bool { return v > 0 }

	var g global[int]
	assert.True(t, g.trySet(1, live))
	assert.False(t, g.trySet(2, live))

	value, ok := g.get()
	assert.True(t, ok)
	assert.Equal(t, 1, value)
}

func TestGlobal_TrySetReplacesDeadValue(t *testing.T) {
	live := func(v int) bool { return v > 0 }

	var g global[int]
	assert.True(t, g.trySet(0, live))
	assert.True(t, g.trySet(2, live))

	value, _ := g.get()
	assert.Equal(t, 2, value)
}

func TestGlobal_ResetIfOnlyClearsMatchingValue(t *testing.T) {
	live := func(v int) bool { return v > 0 }

	var g global[int]
	g.trySet(1, live)

	g.resetIf(2)
	_, ok := g.get()
	assert.True(t, ok)

	g.resetIf(1)
	_, ok = g.get()
	assert.False(t, ok)
}

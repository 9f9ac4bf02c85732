package glimpse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputState_Keys(t *testing.T) {
	var s InputState

	s.Apply(KeyEvent{Key: KeyTab, Action: Press})
	assert.True(t, s.Keys.Pressed[KeyTab])
	assert.True(t, s.Keys.JustPressed[KeyTab])

	s.NextTick()
	assert.True(t, s.Keys.Pressed[KeyTab])
	assert.False(t, s.Keys.JustPressed[KeyTab])

	s.Apply(KeyEvent{Key: KeyTab, Action: Release})
	assert.False(t, s.Keys.Pressed[KeyTab])
	assert.True(t, s.Keys.JustReleased[KeyTab])
}

func TestInputState_RepeatIsIgnored(t *testing.T) {
	var s InputState

	s.Apply(KeyEvent{Key: KeyA, Action: Repeat})

	assert.False(t, s.Keys.Pressed[KeyA])
	assert.False(t, s.Keys.JustPressed[KeyA])
}

func TestInputState_ShortClickIsStillDown(t *testing.T) {
	var s InputState

	s.Apply(MouseButtonEvent{Button: MouseButtonLeft, Action: Press})
	s.Apply(MouseButtonEvent{Button: MouseButtonLeft, Action: Release})

	assert.False(t, s.Mouse.Pressed[MouseButtonLeft])
	assert.True(t, s.Mouse.Down(MouseButtonLeft))

	s.NextTick()
	assert.False(t, s.Mouse.Down(MouseButtonLeft))
}

func TestInputState_CursorDelta(t *testing.T) {
	var s InputState

	// the first position does not produce a delta
	s.Apply(CursorEvent{X: 10, Y: 20})
	assert.Equal(t, float32(0), s.Mouse.DeltaX)
	assert.Equal(t, float32(0), s.Mouse.DeltaY)

	s.Apply(CursorEvent{X: 15, Y: 18})
	s.Apply(CursorEvent{X: 16, Y: 10})

	assert.Equal(t, float32(16), s.Mouse.CursorX)
	assert.Equal(t, float32(10), s.Mouse.CursorY)
	assert.Equal(t, float32(6), s.Mouse.DeltaX)
	assert.Equal(t, float32(-10), s.Mouse.DeltaY)

	s.NextTick()
	assert.Equal(t, float32(0), s.Mouse.DeltaX)
	assert.Equal(t, float32(16), s.Mouse.CursorX)
}

func TestInputState_ScrollAccumulates(t *testing.T) {
	var s InputState

	s.Apply(ScrollEvent{DeltaY: 1})
	s.Apply(ScrollEvent{DeltaX: 0.5, DeltaY: 2})

	assert.Equal(t, float32(0.5), s.Mouse.ScrollX)
	assert.Equal(t, float32(3), s.Mouse.ScrollY)

	s.NextTick()
	assert.Equal(t, float32(0), s.Mouse.ScrollY)
}

func TestInputState_Focus(t *testing.T) {
	var s InputState

	s.Apply(FocusEvent{Focused: true})
	assert.True(t, s.Focused)

	s.Apply(FocusEvent{Focused: false})
	assert.False(t, s.Focused)
}

func TestInputState_IgnoresOtherEvents(t *testing.T) {
	var s InputState

	s.Apply(ResizeEvent{Width: 100, Height: 100})
	s.Apply(CloseEvent{})
	s.Apply(CharEvent{Char: 'x'})

	assert.Empty(t, s.Keys.Pressed)
	assert.Empty(t, s.Mouse.Pressed)
}

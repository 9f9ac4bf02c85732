package glimpse

import "log/slog"

type KeysState struct {
	// the keys that are currently marked as "pressed"
	Pressed map[Key]bool

	// keys that where just pressed after the last call to NextTick()
	JustPressed map[Key]bool

	// keys that were just released after the last call to NextTick()
	JustReleased map[Key]bool
}

func (k *KeysState) press(key Key) {
	slog.Debug("Key just pressed", slog.String("key", key.String()))

	setTrue(&k.Pressed, key)
	setTrue(&k.JustPressed, key)
}

func (k *KeysState) release(key Key) {
	setFalse(&k.Pressed, key)
	setTrue(&k.JustReleased, key)
}

func (k *KeysState) nextTick() {
	clear(k.JustPressed)
	clear(k.JustReleased)
}

type MouseState struct {
	CursorX, CursorY float32

	// recorded movement since last tick
	DeltaX, DeltaY float32

	// accumulated scroll since last tick
	ScrollX, ScrollY float32

	Pressed map[MouseButton]bool

	// mouse buttons that were just clicked after the last call to NextTick()
	JustPressed map[MouseButton]bool

	// mouse buttons that were just released after the last call to NextTick()
	JustReleased map[MouseButton]bool

	hasPosition bool
}

func (m *MouseState) press(button MouseButton) {
	setTrue(&m.Pressed, button)
	setTrue(&m.JustPressed, button)
}

func (m *MouseState) release(button MouseButton) {
	setFalse(&m.Pressed, button)
	setTrue(&m.JustReleased, button)
}

func (m *MouseState) position(x, y float32) {
	if m.hasPosition {
		m.DeltaX += x - m.CursorX
		m.DeltaY += y - m.CursorY
	}

	m.CursorX = x
	m.CursorY = y
	m.hasPosition = true
}

func (m *MouseState) scroll(dx, dy float32) {
	m.ScrollX += dx
	m.ScrollY += dy
}

func (m *MouseState) nextTick() {
	clear(m.JustPressed)
	clear(m.JustReleased)

	m.DeltaX, m.DeltaY = 0, 0
	m.ScrollX, m.ScrollY = 0, 0
}

// Down reports if the button is pressed or was pressed and released
// again since the last tick.
func (m *MouseState) Down(button MouseButton) bool {
	return m.Pressed[button] || m.JustPressed[button]
}

type InputState struct {
	Keys    KeysState
	Mouse   MouseState
	Focused bool
}

// Apply updates the input state with the given event.
// Events not related to input are ignored.
func (s *InputState) Apply(event Event) {
	switch ev := event.(type) {
	case KeyEvent:
		switch ev.Action {
		case Press:
			s.Keys.press(ev.Key)
		case Release:
			s.Keys.release(ev.Key)
		}

	case MouseButtonEvent:
		switch ev.Action {
		case Press:
			s.Mouse.press(ev.Button)
		case Release:
			s.Mouse.release(ev.Button)
		}

	case CursorEvent:
		s.Mouse.position(ev.X, ev.Y)

	case ScrollEvent:
		s.Mouse.scroll(ev.DeltaX, ev.DeltaY)

	case FocusEvent:
		s.Focused = ev.Focused
	}
}

// NextTick clears all state that is only valid for a single tick.
func (s *InputState) NextTick() {
	s.Keys.nextTick()
	s.Mouse.nextTick()
}

func setTrue[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = true
}

func setFalse[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = false
}

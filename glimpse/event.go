package glimpse

// Event is a raw window event. The concrete type is one of the *Event
// types defined in this package.
type Event interface {
	event()
}

type EventHandler func(event Event)

type Action int

const (
	Release Action = iota
	Press
	Repeat
)

type ModifierKey int

const (
	ModShift ModifierKey = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

type KeyEvent struct {
	Key    Key
	Action Action
	Mods   ModifierKey
}

// CharEvent is emitted for text input
type CharEvent struct {
	Char rune
}

type MouseButtonEvent struct {
	Button MouseButton
	Action Action
	Mods   ModifierKey
}

// CursorEvent reports the cursor position in screen coordinates
// relative to the top left corner of the window.
type CursorEvent struct {
	X, Y float32
}

type ScrollEvent struct {
	DeltaX, DeltaY float32
}

type FocusEvent struct {
	Focused bool
}

type ResizeEvent struct {
	Width, Height int
}

type CloseEvent struct{}

func (KeyEvent) event()         {}
func (CharEvent) event()        {}
func (MouseButtonEvent) event() {}
func (CursorEvent) event()      {}
func (ScrollEvent) event()      {}
func (FocusEvent) event()       {}
func (ResizeEvent) event()      {}
func (CloseEvent) event()       {}

// Dispatcher fans out events to a list of subscribers in
// the order they subscribed.
type Dispatcher struct {
	nextID      int
	subscribers []subscriber
}

type subscriber struct {
	id      int
	handler EventHandler
}

func (d *Dispatcher) Subscribe(handler EventHandler) (cancel func()) {
	d.nextID++
	id := d.nextID

	d.subscribers = append(d.subscribers, subscriber{id: id, handler: handler})

	return func() {
		for idx, sub := range d.subscribers {
			if sub.id == id {
				d.subscribers = append(d.subscribers[:idx:idx], d.subscribers[idx+1:]...)
				return
			}
		}
	}
}

func (d *Dispatcher) Dispatch(event Event) {
	for _, sub := range d.subscribers {
		sub.handler(event)
	}
}

func (d *Dispatcher) Len() int {
	return len(d.subscribers)
}

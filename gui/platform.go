package gui

import (
	"math"
	"time"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/oliverbestmann/imstage/glimpse"
)

// IO is the part of imgui.IO the platform writes input to.
type IO interface {
	SetDisplaySize(value imgui.Vec2)
	SetDeltaTime(value float32)
	SetMousePosition(value imgui.Vec2)
	SetMouseButtonDown(index int, down bool)
	AddMouseWheelDelta(horizontal, vertical float32)
	KeyPress(key int)
	KeyRelease(key int)
	KeyMap(imguiKey int, nativeKey int)
	KeyCtrl(leftCtrl int, rightCtrl int)
	KeyShift(leftShift int, rightShift int)
	KeyAlt(leftAlt int, rightAlt int)
	KeySuper(leftSuper int, rightSuper int)
	AddInputCharacters(chars string)
}

// number of mouse buttons passed on to imgui
const mouseButtonCount = 3

// Platform translates raw window events into imgui input.
type Platform struct {
	window glimpse.Window
	io     IO
	input  glimpse.InputState

	now       func() time.Time
	lastFrame time.Time
}

// NewPlatform creates a platform adapter for the current imgui context.
func NewPlatform(window glimpse.Window) *Platform {
	return newPlatform(window, imgui.CurrentIO(), time.Now)
}

func newPlatform(window glimpse.Window, io IO, now func() time.Time) *Platform {
	configureKeyMap(io)

	return &Platform{
		window: window,
		io:     io,
		now:    now,
	}
}

func configureKeyMap(io IO) {
	keys := map[int]glimpse.Key{
		imgui.KeyTab:        glimpse.KeyTab,
		imgui.KeyLeftArrow:  glimpse.KeyLeft,
		imgui.KeyRightArrow: glimpse.KeyRight,
		imgui.KeyUpArrow:    glimpse.KeyUp,
		imgui.KeyDownArrow:  glimpse.KeyDown,
		imgui.KeyPageUp:     glimpse.KeyPageUp,
		imgui.KeyPageDown:   glimpse.KeyPageDown,
		imgui.KeyHome:       glimpse.KeyHome,
		imgui.KeyEnd:        glimpse.KeyEnd,
		imgui.KeyInsert:     glimpse.KeyInsert,
		imgui.KeyDelete:     glimpse.KeyDelete,
		imgui.KeyBackspace:  glimpse.KeyBackspace,
		imgui.KeySpace:      glimpse.KeySpace,
		imgui.KeyEnter:      glimpse.KeyEnter,
		imgui.KeyEscape:     glimpse.KeyEscape,
		imgui.KeyA:          glimpse.KeyA,
		imgui.KeyC:          glimpse.KeyC,
		imgui.KeyV:          glimpse.KeyV,
		imgui.KeyX:          glimpse.KeyX,
		imgui.KeyY:          glimpse.KeyY,
		imgui.KeyZ:          glimpse.KeyZ,
	}

	for imguiKey, key := range keys {
		io.KeyMap(imguiKey, int(key))
	}
}

// HandleEvent must be subscribed to the windows event stream.
func (p *Platform) HandleEvent(event glimpse.Event) {
	p.input.Apply(event)

	switch ev := event.(type) {
	case glimpse.KeyEvent:
		if !ev.Key.Valid() {
			return
		}

		switch ev.Action {
		case glimpse.Press:
			p.io.KeyPress(int(ev.Key))
		case glimpse.Release:
			p.io.KeyRelease(int(ev.Key))
		}

		p.io.KeyCtrl(int(glimpse.KeyLeftControl), int(glimpse.KeyRightControl))
		p.io.KeyShift(int(glimpse.KeyLeftShift), int(glimpse.KeyRightShift))
		p.io.KeyAlt(int(glimpse.KeyLeftAlt), int(glimpse.KeyRightAlt))
		p.io.KeySuper(int(glimpse.KeyLeftSuper), int(glimpse.KeyRightSuper))

	case glimpse.CharEvent:
		p.io.AddInputCharacters(string(ev.Char))

	case glimpse.ScrollEvent:
		p.io.AddMouseWheelDelta(ev.DeltaX, ev.DeltaY)
	}
}

// NewFrame passes the input state accumulated since the previous
// frame on to imgui.
func (p *Platform) NewFrame() {
	width, height := p.window.GetSize()
	p.io.SetDisplaySize(imgui.Vec2{X: float32(width), Y: float32(height)})

	now := p.now()

	delta := float32(1.0 / 60.0)
	if !p.lastFrame.IsZero() {
		// imgui requires a positive delta time
		delta = max(float32(now.Sub(p.lastFrame).Seconds()), 1e-6)
	}

	p.io.SetDeltaTime(delta)
	p.lastFrame = now

	if p.window.Focused() {
		p.io.SetMousePosition(imgui.Vec2{X: p.input.Mouse.CursorX, Y: p.input.Mouse.CursorY})
	} else {
		p.io.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}

	for idx := 0; idx < mouseButtonCount; idx++ {
		p.io.SetMouseButtonDown(idx, p.input.Mouse.Down(glimpse.MouseButton(idx)))
	}

	p.input.NextTick()
}

// Shutdown resets the input state.
func (p *Platform) Shutdown() {
	p.input = glimpse.InputState{}
	p.lastFrame = time.Time{}
}

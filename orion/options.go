package orion

import (
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/oliverbestmann/imstage/glimpse"
	"github.com/oliverbestmann/imstage/glm"
	"github.com/oliverbestmann/imstage/gui"
)

// DefaultMaxTextureSize bounds the larger side of images loaded into a Scene.
const DefaultMaxTextureSize = 8192

// UIContext is the immediate mode ui library state owned by a Scene.
type UIContext interface {
	NewFrame()
	Render() imgui.DrawData
	EndFrame()
	Destroy()
}

// Platform feeds window input into the ui library.
type Platform interface {
	HandleEvent(event glimpse.Event)
	NewFrame()
	Shutdown()
}

type Options struct {
	// the renderer backend to use. The backend package must be
	// imported for its backend to be available.
	Backend Backend

	Window glimpse.CreateInfo

	// enable debugging support of the graphics api
	Debug bool

	// color the frame is cleared with before the ui is drawn.
	// Defaults to opaque black.
	ClearColor glm.Vec4f

	// images larger than this are scaled down when loaded
	MaxTextureSize int

	// The following hooks replace the default window and ui
	// implementations. They are nil for regular use.
	NewWindow    func(info glimpse.CreateInfo, hints glimpse.Hints) (glimpse.Window, error)
	NewUIContext func() UIContext
	NewPlatform  func(window glimpse.Window) Platform
}

func (o Options) withDefaults() Options {
	o.Window = o.Window.WithDefaults()

	if o.ClearColor == (glm.Vec4f{}) {
		o.ClearColor = glm.Vec4f{0, 0, 0, 1}
	}

	if o.MaxTextureSize <= 0 {
		o.MaxTextureSize = DefaultMaxTextureSize
	}

	if o.NewWindow == nil {
		o.NewWindow = glimpse.NewWindow
	}

	if o.NewUIContext == nil {
		o.NewUIContext = func() UIContext { return gui.NewContext() }
	}

	if o.NewPlatform == nil {
		o.NewPlatform = func(window glimpse.Window) Platform { return gui.NewPlatform(window) }
	}

	return o
}

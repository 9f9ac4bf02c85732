package glimpse

import "github.com/cogentcore/webgpu/wgpu"

// Flags configure the native window. The zero value is a visible,
// decorated and resizable window.
type Flags uint32

const (
	FlagHidden Flags = 1 << iota
	FlagFixedSize
	FlagUndecorated
	FlagMaximized
	FlagFloating
)

func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// CreateInfo describes the window to create. It is consumed once by NewWindow.
type CreateInfo struct {
	Title  string
	Width  int
	Height int
	Flags  Flags
}

// WithDefaults fills in the fields that were not set.
func (c CreateInfo) WithDefaults() CreateInfo {
	if c.Width <= 0 {
		c.Width = 1000
	}

	if c.Height <= 0 {
		c.Height = 600
	}

	if c.Title == "" {
		c.Title = "imstage"
	}

	return c
}

// API selects the graphics api the window surface is created for.
type API int

const (
	// APINone creates a window without a client api, a WebGPU surface
	// is attached to it later on.
	APINone API = iota

	// APIOpenGL creates the window with an OpenGL context.
	APIOpenGL
)

func (a API) String() string {
	switch a {
	case APINone:
		return "none"
	case APIOpenGL:
		return "opengl"
	default:
		return "unknown"
	}
}

// Hints are provided by the renderer backend. They must be known before
// the window is created.
type Hints struct {
	API API

	// requested OpenGL context version, only used with APIOpenGL
	ContextMajor int
	ContextMinor int

	// request a debug context
	Debug bool
}

type Window interface {
	// GetSize returns the size of the window in screen coordinates
	GetSize() (uint32, uint32)

	// GetFramebufferSize returns the size of the window in pixels
	GetFramebufferSize() (uint32, uint32)

	Focused() bool

	ShouldClose() bool

	// PollEvents processes all pending events. Subscribers are
	// called synchronously from within PollEvents.
	PollEvents()

	// Subscribe registers a handler for raw window events. Calling
	// the returned function removes the handler again.
	Subscribe(handler EventHandler) (cancel func())

	// SurfaceDescriptor describes the native surface for WebGPU.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// MakeContextCurrent, SwapInterval and SwapBuffers are only valid for
	// windows created with APIOpenGL.
	MakeContextCurrent()
	SwapInterval(interval int)
	SwapBuffers()

	// Terminate destroys the window. It is safe to call Terminate more than once.
	Terminate()
}

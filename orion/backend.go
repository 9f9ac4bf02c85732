package orion

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/oliverbestmann/imstage/glimpse"
	"github.com/oliverbestmann/imstage/glm"
)

// Backend selects the renderer implementation a Scene is created with.
type Backend int

const (
	// BackendFixed renders using the fixed function OpenGL 2.1 pipeline.
	BackendFixed Backend = iota

	// BackendShader renders using a WebGPU shader pipeline.
	BackendShader
)

func (b Backend) String() string {
	switch b {
	case BackendFixed:
		return "fixed"
	case BackendShader:
		return "shader"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend parses the name of a backend as returned by Backend.String.
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(name) {
	case "fixed", "gl", "opengl":
		return BackendFixed, nil
	case "shader", "wgpu", "webgpu":
		return BackendShader, nil
	default:
		return 0, fmt.Errorf("unknown backend %q", name)
	}
}

// Texture is a GPU image owned by the renderer that created it.
type Texture interface {
	// ID returns the handle to pass to imgui.Image and friends.
	ID() imgui.TextureID

	// Release frees the GPU resources. It must be called exactly once.
	Release()
}

// Renderer is implemented by all renderer backends. Calling any method
// after Release is undefined.
type Renderer interface {
	// WindowHints returns the attributes the window must be created with.
	WindowHints() glimpse.Hints

	// InitUI binds the renderer to the window and uploads the font atlas
	// of the current imgui context.
	InitUI(window glimpse.Window) error

	// CreateTexture uploads tightly packed pixels. Supported values for
	// bytesPerPixel are 1 (gray), 3 (rgb) and 4 (rgba).
	CreateTexture(pixels []byte, width, height, bytesPerPixel int) (Texture, error)

	// NewFrame prepares the renderer for the next frame.
	NewFrame() error

	Clear(color glm.Vec4f) error

	// Render submits the draw data of the current frame.
	Render(drawData imgui.DrawData) error

	// Present shows the frame. Blocks until the next vertical blank.
	Present() error

	// ShutdownUI releases everything acquired by InitUI.
	ShutdownUI()

	// Release frees all remaining resources of the renderer.
	Release()
}

type RendererOptions struct {
	// enable validation and diagnostics of the graphics api
	Debug bool
}

// BackendFactory creates a new, unbound renderer instance.
type BackendFactory func(opts RendererOptions) (Renderer, error)

var (
	registryMu sync.RWMutex
	backends   = map[Backend]BackendFactory{}
)

// RegisterBackend registers a renderer factory. This is normally called
// from an init function of the backend package, so importing the backend
// package is enough to make it available.
func RegisterBackend(backend Backend, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	backends[backend] = factory
}

// UnregisterBackend removes a backend from the registry.
func UnregisterBackend(backend Backend) {
	registryMu.Lock()
	defer registryMu.Unlock()

	delete(backends, backend)
}

// AvailableBackends returns the registered backends in ascending order.
func AvailableBackends() []Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	available := make([]Backend, 0, len(backends))
	for backend := range backends {
		available = append(available, backend)
	}

	slices.Sort(available)

	return available
}

func lookupBackend(backend Backend) (BackendFactory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := backends[backend]
	return factory, ok
}

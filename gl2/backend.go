// Package gl2 implements the OpenGL 2.1 fixed function renderer backend.
// Importing the package registers it as orion.BackendFixed.
package gl2

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/oliverbestmann/imstage/glimpse"
	"github.com/oliverbestmann/imstage/glm"
	"github.com/oliverbestmann/imstage/orion"
)

var errNotInitialized = errors.New("gl2: renderer not bound to a window")

func init() {
	orion.RegisterBackend(orion.BackendFixed, func(opts orion.RendererOptions) (orion.Renderer, error) {
		return NewRenderer(opts), nil
	})
}

// Renderer draws imgui draw data using the OpenGL 2.1 fixed function pipeline.
type Renderer struct {
	debug  bool
	window glimpse.Window

	// texture names created by this renderer
	textures    map[uint32]struct{}
	fontTexture uint32
}

func NewRenderer(opts orion.RendererOptions) *Renderer {
	return &Renderer{
		debug:    opts.Debug,
		textures: map[uint32]struct{}{},
	}
}

func (r *Renderer) WindowHints() glimpse.Hints {
	return glimpse.Hints{
		API:          glimpse.APIOpenGL,
		ContextMajor: 2,
		ContextMinor: 1,
		Debug:        r.debug,
	}
}

func (r *Renderer) InitUI(window glimpse.Window) error {
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("load opengl functions: %w", err)
	}

	// present blocks until the next vertical blank
	window.SwapInterval(1)

	r.window = window

	slog.Info("OpenGL renderer initialized",
		slog.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		slog.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	fonts := imgui.CurrentIO().Fonts()
	atlas := fonts.TextureDataRGBA32()

	pixels := unsafe.Slice((*byte)(atlas.Pixels), atlas.Width*atlas.Height*4)

	fontTexture, err := r.createTexture(pixels, atlas.Width, atlas.Height, 4)
	if err != nil {
		return fmt.Errorf("upload font atlas: %w", err)
	}

	r.fontTexture = fontTexture
	fonts.SetTextureID(imgui.TextureID(fontTexture))

	return nil
}

func (r *Renderer) CreateTexture(pixels []byte, width, height, bytesPerPixel int) (orion.Texture, error) {
	name, err := r.createTexture(pixels, width, height, bytesPerPixel)
	if err != nil {
		return nil, err
	}

	return &texture{renderer: r, name: name}, nil
}

func (r *Renderer) NewFrame() error {
	if r.window == nil {
		return errNotInitialized
	}

	// another scene may have made its context current
	r.window.MakeContextCurrent()

	if r.debug {
		r.logErrors("previous frame")
	}

	return nil
}

func (r *Renderer) Clear(color glm.Vec4f) error {
	width, height := r.window.GetFramebufferSize()

	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	return nil
}

func (r *Renderer) Render(drawData imgui.DrawData) error {
	displayWidth, displayHeight := r.window.GetSize()
	fbWidth, fbHeight := r.window.GetFramebufferSize()

	renderDrawData(
		drawData,
		glm.Vec2f{float32(displayWidth), float32(displayHeight)},
		glm.Vec2u{fbWidth, fbHeight},
	)

	return nil
}

func (r *Renderer) Present() error {
	r.window.SwapBuffers()
	return nil
}

func (r *Renderer) ShutdownUI() {
	if r.fontTexture != 0 {
		r.deleteTexture(r.fontTexture)
		r.fontTexture = 0
	}
}

func (r *Renderer) Release() {
	if len(r.textures) > 0 && r.window != nil {
		slog.Warn("Releasing textures still alive", slog.Int("count", len(r.textures)))

		for name := range r.textures {
			r.deleteTexture(name)
		}
	}

	// the context is owned by the window
	r.window = nil
}

// logErrors drains the OpenGL error queue.
func (r *Renderer) logErrors(when string) {
	for {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			return
		}

		slog.Warn("OpenGL error", slog.String("when", when), slog.String("code", errorName(code)))
	}
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.STACK_OVERFLOW:
		return "GL_STACK_OVERFLOW"
	case gl.STACK_UNDERFLOW:
		return "GL_STACK_UNDERFLOW"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("0x%04x", code)
	}
}

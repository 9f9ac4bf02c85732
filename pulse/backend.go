// Package pulse implements the WebGPU renderer backend. Importing the package
// registers it as orion.BackendShader.
package pulse

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/oliverbestmann/imstage/glimpse"
	"github.com/oliverbestmann/imstage/glm"
	"github.com/oliverbestmann/imstage/orion"
)

// time to wait instead of presenting if no surface is available,
// e.g. while the window is minimized
const idleFrameDelay = 10 * time.Millisecond

var errNotInitialized = errors.New("pulse: renderer not bound to a window")

func init() {
	orion.RegisterBackend(orion.BackendShader, func(opts orion.RendererOptions) (orion.Renderer, error) {
		return NewRenderer(opts)
	})
}

// Renderer draws imgui draw data using WebGPU.
type Renderer struct {
	instance *wgpu.Instance
	window   glimpse.Window

	ctx   *Context
	view  *View
	clear *ClearCommand
	ui    *UICommand

	textures      map[imgui.TextureID]*Texture
	nextTextureID imgui.TextureID
	fontTexture   imgui.TextureID

	// surface texture of the current frame, nil if the frame is skipped
	frame *Frame
}

func NewRenderer(opts orion.RendererOptions) (*Renderer, error) {
	if opts.Debug && envLogLevel == "" {
		applyLogLevel("INFO")
	}

	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return nil, errors.New("create wgpu instance")
	}

	r := &Renderer{
		instance:      instance,
		textures:      map[imgui.TextureID]*Texture{},
		nextTextureID: 1,
	}

	return r, nil
}

func (r *Renderer) WindowHints() glimpse.Hints {
	// the surface is created by webgpu, the window must not have a client api
	return glimpse.Hints{API: glimpse.APINone}
}

func (r *Renderer) InitUI(window glimpse.Window) error {
	ctx, err := NewContext(r.instance, window.SurfaceDescriptor())
	if err != nil {
		return fmt.Errorf("initializing wgpu: %w", err)
	}

	r.window = window
	r.ctx = ctx
	r.view = NewView(ctx)
	r.clear = NewClear(ctx)

	r.ui, err = NewUICommand(ctx)
	if err != nil {
		return fmt.Errorf("create ui command: %w", err)
	}

	fonts := imgui.CurrentIO().Fonts()
	atlas := fonts.TextureDataRGBA32()

	pixels := unsafe.Slice((*byte)(atlas.Pixels), atlas.Width*atlas.Height*4)

	r.fontTexture, err = r.createTexture(pixels, atlas.Width, atlas.Height, 4, "UI.Fonts")
	if err != nil {
		return fmt.Errorf("upload font atlas: %w", err)
	}

	fonts.SetTextureID(r.fontTexture)

	slog.Info("WebGPU renderer initialized",
		slog.Int("fontAtlasWidth", atlas.Width),
		slog.Int("fontAtlasHeight", atlas.Height),
	)

	return nil
}

func (r *Renderer) CreateTexture(pixels []byte, width, height, bytesPerPixel int) (orion.Texture, error) {
	id, err := r.createTexture(pixels, width, height, bytesPerPixel, "Image")
	if err != nil {
		return nil, err
	}

	return &textureHandle{renderer: r, id: id}, nil
}

func (r *Renderer) createTexture(pixels []byte, width, height, bytesPerPixel int, label string) (imgui.TextureID, error) {
	if r.ctx == nil {
		return 0, errNotInitialized
	}

	texture, err := NewTextureFromPixels(r.ctx, pixels, width, height, bytesPerPixel, label)
	if err != nil {
		return 0, err
	}

	id := r.nextTextureID
	r.nextTextureID++

	r.textures[id] = texture

	return id, nil
}

func (r *Renderer) lookupTexture(id imgui.TextureID) (*Texture, bool) {
	texture, ok := r.textures[id]
	return texture, ok
}

func (r *Renderer) releaseTexture(id imgui.TextureID) {
	texture, ok := r.textures[id]
	if !ok {
		return
	}

	if r.ui != nil {
		r.ui.ForgetTexture(id)
	}

	texture.Release()
	delete(r.textures, id)
}

func (r *Renderer) NewFrame() error {
	if r.ctx == nil {
		return errNotInitialized
	}

	// a frame that was not presented due to an error
	r.releaseFrame()

	width, height := r.window.GetFramebufferSize()
	if width == 0 || height == 0 {
		return nil
	}

	r.view.Configure(width, height)

	frame, err := r.view.Acquire()
	if err != nil {
		slog.Warn("Skipping frame", slog.Any("err", err))

		// the surface is probably outdated
		r.view.Invalidate()
		return nil
	}

	r.frame = frame

	return nil
}

func (r *Renderer) Clear(color glm.Vec4f) error {
	if r.frame == nil {
		return nil
	}

	if err := r.clear.Clear(&r.frame.Target, ColorOf(color)); err != nil {
		return fmt.Errorf("clear surface: %w", err)
	}

	return nil
}

func (r *Renderer) Render(drawData imgui.DrawData) error {
	if r.frame == nil {
		return nil
	}

	width, height := r.window.GetSize()
	displaySize := glm.Vec2f{float32(width), float32(height)}

	return r.ui.Draw(&r.frame.Target, drawData, displaySize, r.lookupTexture)
}

func (r *Renderer) Present() error {
	if r.frame == nil {
		time.Sleep(idleFrameDelay)
		return nil
	}

	r.view.Present(r.frame)
	r.frame = nil

	return nil
}

func (r *Renderer) releaseFrame() {
	if r.frame != nil {
		r.frame.Release()
		r.frame = nil
	}
}

func (r *Renderer) ShutdownUI() {
	r.releaseFrame()

	if r.fontTexture != 0 {
		r.releaseTexture(r.fontTexture)
		r.fontTexture = 0
	}

	if r.ui != nil {
		r.ui.Release()
		r.ui = nil
	}
}

func (r *Renderer) Release() {
	r.releaseFrame()

	if r.ui != nil {
		r.ui.Release()
		r.ui = nil
	}

	if len(r.textures) > 0 {
		slog.Warn("Releasing textures still alive", slog.Int("count", len(r.textures)))

		for id := range r.textures {
			r.releaseTexture(id)
		}
	}

	r.view = nil
	r.clear = nil

	if r.ctx != nil {
		r.ctx.Release()
		r.ctx = nil
	}

	if r.instance != nil {
		r.instance.Release()
		r.instance = nil
	}
}

type textureHandle struct {
	renderer *Renderer
	id       imgui.TextureID
}

func (t *textureHandle) ID() imgui.TextureID {
	return t.id
}

func (t *textureHandle) Release() {
	t.renderer.releaseTexture(t.id)
}

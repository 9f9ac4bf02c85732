package pulse

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// View manages the configuration of the window surface.
type View struct {
	*Context

	surfaceConfig *wgpu.SurfaceConfiguration

	// true if the surface must be configured before the next frame
	stale bool
}

func NewView(ctx *Context) *View {
	// Print the available render formats
	caps := ctx.Surface.GetCapabilities(ctx.Adapter)
	slog.Debug("Available surface formats", slog.Any("formats", caps.Formats))

	alphaMode := wgpu.CompositeAlphaModeAuto
	if len(caps.AlphaModes) > 0 {
		alphaMode = caps.AlphaModes[0]
	}

	config := &wgpu.SurfaceConfiguration{
		Usage:  wgpu.TextureUsageRenderAttachment,
		Format: wgpu.TextureFormatBGRA8Unorm,

		// present blocks until the next vertical blank
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   alphaMode,
	}

	return &View{Context: ctx, surfaceConfig: config, stale: true}
}

func (vs *View) Format() wgpu.TextureFormat {
	return vs.surfaceConfig.Format
}

// Configure applies the given surface size if it differs from the
// current configuration.
func (vs *View) Configure(width, height uint32) {
	if !vs.stale && vs.surfaceConfig.Width == width && vs.surfaceConfig.Height == height {
		return
	}

	slog.Debug("Configure surface",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	vs.surfaceConfig.Width = width
	vs.surfaceConfig.Height = height
	vs.Surface.Configure(vs.Adapter, vs.Device, vs.surfaceConfig)

	vs.stale = false
}

// Invalidate forces a reconfiguration of the surface before the next frame.
func (vs *View) Invalidate() {
	vs.stale = true
}

// RenderTarget describes the texture view a pass renders into.
type RenderTarget struct {
	View *wgpu.TextureView

	// view the multisampled target is resolved to, nil without MSAA
	ResolveTarget *wgpu.TextureView

	Format wgpu.TextureFormat

	Width  uint32
	Height uint32

	SampleCount uint32
}

// Frame is a surface texture acquired for rendering a single frame.
type Frame struct {
	Target RenderTarget

	texture *wgpu.Texture
	view    *wgpu.TextureView
}

// Acquire returns the next surface texture to render into.
func (vs *View) Acquire() (*Frame, error) {
	texture, err := vs.Surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("get current texture: %w", err)
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create surface view: %w", err)
	}

	frame := &Frame{
		texture: texture,
		view:    view,

		Target: RenderTarget{
			View:        view,
			Format:      vs.surfaceConfig.Format,
			Width:       texture.GetWidth(),
			Height:      texture.GetHeight(),
			SampleCount: 1,
		},
	}

	return frame, nil
}

// Present shows the frame on screen and releases it.
func (vs *View) Present(frame *Frame) {
	vs.Surface.Present()
	frame.Release()
}

func (f *Frame) Release() {
	if f.view != nil {
		f.view.Release()
		f.view = nil
	}

	if f.texture != nil {
		f.texture.Release()
		f.texture = nil
	}
}

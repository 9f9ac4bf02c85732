package pulse

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

var ErrPixelFormat = errors.New("pulse: unsupported pixel format")

// Texture wraps a wgpu.Texture and an identity wgpu.TextureView.
type Texture struct {
	texture     *wgpu.Texture
	textureView *wgpu.TextureView

	// equal to texture.GetFormat()
	format wgpu.TextureFormat

	width  uint32
	height uint32
}

type NewTextureOptions struct {
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32

	Label string
}

func NewTexture(ctx *Context, opts NewTextureOptions) (*Texture, error) {
	desc := &wgpu.TextureDescriptor{
		Label:         opts.Label,
		Format:        opts.Format,
		SampleCount:   1,
		MipLevelCount: 1,

		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              opts.Width,
			Height:             opts.Height,
			DepthOrArrayLayers: 1,
		},

		Usage: wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	}

	return NewTextureFromDesc(ctx, desc)
}

// NewTextureFromDesc gives you full control and creates a texture directly from
// a texture descriptor
func NewTextureFromDesc(ctx *Context, desc *wgpu.TextureDescriptor) (*Texture, error) {
	texture, err := ctx.Device.CreateTexture(desc)
	if err != nil {
		return nil, err
	}

	// now create a default texture view
	textureView, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()

		return nil, err
	}

	t := &Texture{
		texture:     texture,
		textureView: textureView,
		format:      desc.Format,
		width:       desc.Size.Width,
		height:      desc.Size.Height,
	}

	return t, nil
}

// NewTextureFromPixels creates an RGBA8 texture from tightly packed pixels
// with one (gray), three (rgb) or four (rgba) bytes per pixel.
func NewTextureFromPixels(ctx *Context, pixels []byte, width, height, bytesPerPixel int, label string) (*Texture, error) {
	rgba, err := expandToRGBA(pixels, width, height, bytesPerPixel)
	if err != nil {
		return nil, err
	}

	t, err := NewTexture(ctx, NewTextureOptions{
		Format: wgpu.TextureFormatRGBA8Unorm,
		Width:  uint32(width),
		Height: uint32(height),
		Label:  label,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}

	err = t.WritePixels(ctx, rgba)
	if err != nil {
		t.Release()
		return nil, fmt.Errorf("upload texture: %w", err)
	}

	return t, nil
}

func (t *Texture) View() *wgpu.TextureView {
	return t.textureView
}

func (t *Texture) Width() uint32 {
	return t.width
}

func (t *Texture) Height() uint32 {
	return t.height
}

func (t *Texture) Format() wgpu.TextureFormat {
	return t.format
}

// Release releases the texture and its view. You must be sure to not use
// the texture after calling release.
func (t *Texture) Release() {
	if t.textureView != nil {
		t.textureView.Release()
		t.textureView = nil
	}

	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

// WritePixels replaces the content of an RGBA8 texture.
func (t *Texture) WritePixels(ctx *Context, pixels []byte) error {
	stride := t.width * 4

	if len(pixels) != int(stride*t.height) {
		return fmt.Errorf("expected %d bytes of pixel data, got %d", stride*t.height, len(pixels))
	}

	layout := &wgpu.TexelCopyBufferLayout{
		Offset:       0,
		BytesPerRow:  stride,
		RowsPerImage: t.height,
	}

	size := &wgpu.Extent3D{
		Width:              t.width,
		Height:             t.height,
		DepthOrArrayLayers: 1,
	}

	dest := &wgpu.TexelCopyTextureInfo{
		Texture:  t.texture,
		MipLevel: 0,
		Aspect:   wgpu.TextureAspectAll,
	}

	// send data to the gpu
	err := ctx.WriteTexture(dest, pixels, layout, size)
	if err != nil {
		return fmt.Errorf("copy image data to texture: %w", err)
	}

	return nil
}

// expandToRGBA converts gray and rgb pixels to rgba. RGBA pixels are
// returned as they are.
func expandToRGBA(pixels []byte, width, height, bytesPerPixel int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid texture size %dx%d", width, height)
	}

	if len(pixels) != width*height*bytesPerPixel {
		return nil, fmt.Errorf("expected %d bytes of pixel data, got %d",
			width*height*bytesPerPixel, len(pixels))
	}

	switch bytesPerPixel {
	case 4:
		return pixels, nil

	case 3:
		rgba := make([]byte, width*height*4)
		for src, dst := 0, 0; src < len(pixels); src, dst = src+3, dst+4 {
			rgba[dst+0] = pixels[src+0]
			rgba[dst+1] = pixels[src+1]
			rgba[dst+2] = pixels[src+2]
			rgba[dst+3] = 0xff
		}

		return rgba, nil

	case 1:
		rgba := make([]byte, width*height*4)
		for src, dst := 0, 0; src < len(pixels); src, dst = src+1, dst+4 {
			value := pixels[src]
			rgba[dst+0] = value
			rgba[dst+1] = value
			rgba[dst+2] = value
			rgba[dst+3] = 0xff
		}

		return rgba, nil

	default:
		return nil, fmt.Errorf("%w: %d bytes per pixel", ErrPixelFormat, bytesPerPixel)
	}
}

package gl2

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/inkyblackness/imgui-go/v4"
)

var ErrPixelFormat = errors.New("gl2: unsupported pixel format")

type texture struct {
	renderer *Renderer
	name     uint32
}

func (t *texture) ID() imgui.TextureID {
	return imgui.TextureID(t.name)
}

func (t *texture) Release() {
	t.renderer.deleteTexture(t.name)
}

// textureFormat returns the internal format and the pixel format of
// tightly packed pixels with the given number of bytes per pixel.
func textureFormat(bytesPerPixel int) (int32, uint32, error) {
	switch bytesPerPixel {
	case 1:
		return gl.LUMINANCE, gl.LUMINANCE, nil
	case 3:
		return gl.RGB, gl.RGB, nil
	case 4:
		return gl.RGBA, gl.RGBA, nil
	default:
		return 0, 0, fmt.Errorf("%w: %d bytes per pixel", ErrPixelFormat, bytesPerPixel)
	}
}

func (r *Renderer) createTexture(pixels []byte, width, height, bytesPerPixel int) (uint32, error) {
	if r.window == nil {
		return 0, errNotInitialized
	}

	internalFormat, format, err := textureFormat(bytesPerPixel)
	if err != nil {
		return 0, err
	}

	if width <= 0 || height <= 0 || len(pixels) != width*height*bytesPerPixel {
		return 0, fmt.Errorf("invalid pixel data for %dx%d texture", width, height)
	}

	r.window.MakeContextCurrent()

	// clear errors of earlier calls
	for gl.GetError() != gl.NO_ERROR {
	}

	var lastTexture int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)
	defer gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))

	var name uint32
	gl.GenTextures(1, &name)
	gl.BindTexture(gl.TEXTURE_2D, name)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	// rows are tightly packed
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	gl.TexImage2D(
		gl.TEXTURE_2D, 0, internalFormat,
		int32(width), int32(height), 0,
		format, gl.UNSIGNED_BYTE, gl.Ptr(pixels),
	)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &name)
		return 0, fmt.Errorf("upload %dx%d texture: %s", width, height, errorName(code))
	}

	r.textures[name] = struct{}{}

	return name, nil
}

func (r *Renderer) deleteTexture(name uint32) {
	if _, ok := r.textures[name]; !ok {
		return
	}

	// texture names are only valid in the context that created them
	r.window.MakeContextCurrent()

	gl.DeleteTextures(1, &name)
	delete(r.textures, name)
}

// Package surface decodes images into raw pixel surfaces that can be
// uploaded to the GPU as is.
package surface

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Format describes the memory layout of a single pixel.
type Format int

const (
	FormatRGBA8 Format = iota
	FormatRGB8
	FormatGray8
)

func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGBA8:
		return 4
	case FormatRGB8:
		return 3
	case FormatGray8:
		return 1
	default:
		panic(fmt.Sprintf("unknown pixel format %d", int(f)))
	}
}

func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "rgba8"
	case FormatRGB8:
		return "rgb8"
	case FormatGray8:
		return "gray8"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Surface holds tightly packed pixels, rows from top to bottom.
// RGBA8 surfaces hold straight (non premultiplied) alpha.
type Surface struct {
	Width  int
	Height int
	Format Format
	Pix    []byte
}

func (s *Surface) BytesPerPixel() int {
	return s.Format.BytesPerPixel()
}

// Stride returns the number of bytes in a single row.
func (s *Surface) Stride() int {
	return s.Width * s.BytesPerPixel()
}

// FromImage copies the pixels of img into a new Surface. Gray images are kept
// as a single channel, jpeg images without alpha become RGB8. Everything
// else is converted to RGBA8.
func FromImage(img image.Image) *Surface {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		surface := &Surface{
			Width:  width,
			Height: height,
			Format: FormatGray8,
			Pix:    make([]byte, width*height),
		}

		for y := 0; y < height; y++ {
			offset := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(surface.Pix[y*width:(y+1)*width], src.Pix[offset:offset+width])
		}

		return surface

	case *image.YCbCr:
		surface := &Surface{
			Width:  width,
			Height: height,
			Format: FormatRGB8,
			Pix:    make([]byte, width*height*3),
		}

		idx := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := src.YCbCrAt(x, y)
				r, g, b := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)

				surface.Pix[idx+0] = r
				surface.Pix[idx+1] = g
				surface.Pix[idx+2] = b
				idx += 3
			}
		}

		return surface

	default:
		nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)

		return &Surface{
			Width:  width,
			Height: height,
			Format: FormatRGBA8,
			Pix:    nrgba.Pix,
		}
	}
}

// ToImage wraps the surface as an image.Image, copying pixels where the
// layout does not match one of the image package types.
func (s *Surface) ToImage() image.Image {
	rect := image.Rect(0, 0, s.Width, s.Height)

	switch s.Format {
	case FormatGray8:
		return &image.Gray{Pix: s.Pix, Stride: s.Stride(), Rect: rect}

	case FormatRGB8:
		img := image.NewNRGBA(rect)
		for src, dst := 0, 0; src < len(s.Pix); src, dst = src+3, dst+4 {
			img.Pix[dst+0] = s.Pix[src+0]
			img.Pix[dst+1] = s.Pix[src+1]
			img.Pix[dst+2] = s.Pix[src+2]
			img.Pix[dst+3] = 0xff
		}
		return img

	default:
		return &image.NRGBA{Pix: s.Pix, Stride: s.Stride(), Rect: rect}
	}
}

// ScaleToFit scales the surface down so that neither side exceeds maxSize.
// The aspect ratio is kept. Surfaces that already fit are returned unchanged.
func ScaleToFit(s *Surface, maxSize int) *Surface {
	if maxSize <= 0 || (s.Width <= maxSize && s.Height <= maxSize) {
		return s
	}

	scale := float64(maxSize) / float64(max(s.Width, s.Height))
	width := max(1, int(float64(s.Width)*scale))
	height := max(1, int(float64(s.Height)*scale))

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), s.ToImage(), image.Rect(0, 0, s.Width, s.Height), draw.Src, nil)

	return FromImage(dst)
}

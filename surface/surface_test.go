package surface

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_BytesPerPixel(t *testing.T) {
	assert.Equal(t, 4, FormatRGBA8.BytesPerPixel())
	assert.Equal(t, 3, FormatRGB8.BytesPerPixel())
	assert.Equal(t, 1, FormatGray8.BytesPerPixel())

	assert.Panics(t, func() { Format(42).BytesPerPixel() })
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "rgba8", FormatRGBA8.String())
	assert.Equal(t, "rgb8", FormatRGB8.String())
	assert.Equal(t, "gray8", FormatGray8.String())
	assert.Equal(t, "Format(42)", Format(42).String())
}

func TestFromImage_NRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 128})
	img.SetNRGBA(1, 0, color.NRGBA{B: 255, A: 255})

	s := FromImage(img)

	assert.Equal(t, FormatRGBA8, s.Format)
	assert.Equal(t, 2, s.Width)
	assert.Equal(t, 1, s.Height)
	assert.Equal(t, 8, s.Stride())
	assert.Equal(t, []byte{255, 0, 0, 128, 0, 0, 255, 255}, s.Pix)
}

func TestFromImage_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	for idx := range img.Pix {
		img.Pix[idx] = byte(idx)
	}

	s := FromImage(img)

	assert.Equal(t, FormatGray8, s.Format)
	assert.Equal(t, 1, s.BytesPerPixel())
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5}, s.Pix)
}

func TestFromImage_GraySubImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.SetGray(2, 2, color.Gray{Y: 200})

	sub := img.SubImage(image.Rect(2, 2, 4, 4))
	s := FromImage(sub)

	assert.Equal(t, 2, s.Width)
	assert.Equal(t, 2, s.Height)
	assert.Equal(t, []byte{200, 0, 0, 0}, s.Pix)
}

func TestFromImage_YCbCr(t *testing.T) {
	img := image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio444)
	for idx := range img.Y {
		img.Y[idx] = 255
		img.Cb[idx] = 128
		img.Cr[idx] = 128
	}

	s := FromImage(img)

	assert.Equal(t, FormatRGB8, s.Format)
	require.Len(t, s.Pix, 2*2*3)

	for _, value := range s.Pix {
		assert.Equal(t, byte(255), value)
	}
}

func TestFromImage_PalettedBecomesRGBA(t *testing.T) {
	palette := color.Palette{color.NRGBA{R: 10, G: 20, B: 30, A: 255}}
	img := image.NewPaletted(image.Rect(0, 0, 1, 1), palette)

	s := FromImage(img)

	assert.Equal(t, FormatRGBA8, s.Format)
	assert.Equal(t, []byte{10, 20, 30, 255}, s.Pix)
}

func TestToImage_RGB(t *testing.T) {
	s := &Surface{Width: 1, Height: 1, Format: FormatRGB8, Pix: []byte{1, 2, 3}}

	img := s.ToImage()

	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 255}, img.At(0, 0))
}

func TestScaleToFit(t *testing.T) {
	s := FromImage(image.NewNRGBA(image.Rect(0, 0, 400, 100)))

	scaled := ScaleToFit(s, 100)

	assert.Equal(t, 100, scaled.Width)
	assert.Equal(t, 25, scaled.Height)
	assert.Len(t, scaled.Pix, 100*25*4)
}

func TestScaleToFit_KeepsSmallSurfaces(t *testing.T) {
	s := FromImage(image.NewNRGBA(image.Rect(0, 0, 10, 10)))

	assert.Same(t, s, ScaleToFit(s, 10))
	assert.Same(t, s, ScaleToFit(s, 0))
}

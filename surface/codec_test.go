package surface

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 128, B: 64, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestCodec_LoadBytes(t *testing.T) {
	codec := NewCodec(CodecOptions{})

	s, err := codec.LoadBytes(encodePNG(t, 4, 3))
	require.NoError(t, err)

	assert.Equal(t, 4, s.Width)
	assert.Equal(t, 3, s.Height)
	assert.Equal(t, FormatRGBA8, s.Format)
	assert.Equal(t, []byte{255, 128, 64, 255}, s.Pix[:4])
}

func TestCodec_LoadBytesDoesNotRetainBuffer(t *testing.T) {
	codec := NewCodec(CodecOptions{})

	buf := encodePNG(t, 1, 1)
	s, err := codec.LoadBytes(buf)
	require.NoError(t, err)

	for idx := range buf {
		buf[idx] = 0
	}

	assert.Equal(t, []byte{255, 128, 64, 255}, s.Pix)
}

func TestCodec_LoadBytesInvalid(t *testing.T) {
	codec := NewCodec(CodecOptions{})

	s, err := codec.LoadBytes([]byte("this is not an image"))
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestCodec_LoadFileMissing(t *testing.T) {
	codec := NewCodec(CodecOptions{})

	s, err := codec.LoadFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Nil(t, s)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, 0, codec.Cached())
}

func TestCodec_LoadFileCachesSurface(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 2, 2), 0o644))

	codec := NewCodec(CodecOptions{})

	first, err := codec.LoadFile(path)
	require.NoError(t, err)

	second, err := codec.LoadFile(path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, codec.Cached())

	codec.Close()
	assert.Equal(t, 0, codec.Cached())

	third, err := codec.LoadFile(path)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestCodec_LoadFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0o644))

	codec := NewCodec(CodecOptions{})

	s, err := codec.LoadFile(path)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Equal(t, 0, codec.Cached())
}

func TestCodec_MaxSize(t *testing.T) {
	codec := NewCodec(CodecOptions{MaxSize: 8})

	s, err := codec.LoadBytes(encodePNG(t, 32, 16))
	require.NoError(t, err)

	assert.Equal(t, 8, s.Width)
	assert.Equal(t, 4, s.Height)
}

// withPNGSize rewrites the dimensions in the IHDR chunk of an encoded png.
func withPNGSize(t *testing.T, buf []byte, width, height uint32) []byte {
	t.Helper()

	buf = bytes.Clone(buf)
	require.Equal(t, "IHDR", string(buf[12:16]))

	binary.BigEndian.PutUint32(buf[16:20], width)
	binary.BigEndian.PutUint32(buf[20:24], height)
	binary.BigEndian.PutUint32(buf[29:33], crc32.ChecksumIEEE(buf[12:29]))

	return buf
}

func TestCodec_RejectsHugeImageBeforeDecoding(t *testing.T) {
	codec := NewCodec(CodecOptions{MaxSize: 8192})

	buf := withPNGSize(t, encodePNG(t, 1, 1), 100_000, 100_000)

	s, err := codec.LoadBytes(buf)
	assert.Nil(t, s)
	require.ErrorIs(t, err, ErrDecode)
	assert.ErrorContains(t, err, "100000x100000")
}

func TestCodec_RejectsHugeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.png")
	require.NoError(t, os.WriteFile(path, withPNGSize(t, encodePNG(t, 1, 1), 1<<20, 1<<20), 0o644))

	codec := NewCodec(CodecOptions{MaxSize: 1024})

	s, err := codec.LoadFile(path)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Equal(t, 0, codec.Cached())
}

func TestCodec_AcceptsImageWithinPixelLimit(t *testing.T) {
	// 32x32 is above MaxSize but below the pixel limit and gets scaled down
	codec := NewCodec(CodecOptions{MaxSize: 8})

	s, err := codec.LoadBytes(encodePNG(t, 32, 32))
	require.NoError(t, err)

	assert.Equal(t, 8, s.Width)
	assert.Equal(t, 8, s.Height)
}

func TestCodec_RejectsImageAbovePixelLimit(t *testing.T) {
	// limit is 16 * 8 * 8 = 1024 pixels
	codec := NewCodec(CodecOptions{MaxSize: 8})

	_, err := codec.LoadBytes(encodePNG(t, 64, 64))
	assert.ErrorIs(t, err, ErrDecode)
}

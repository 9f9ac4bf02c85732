package pulse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandToRGBA_Gray(t *testing.T) {
	rgba, err := expandToRGBA([]byte{0x10, 0x80}, 2, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, []byte{
		0x10, 0x10, 0x10, 0xff,
		0x80, 0x80, 0x80, 0xff,
	}, rgba)
}

func TestExpandToRGBA_RGB(t *testing.T) {
	rgba, err := expandToRGBA([]byte{1, 2, 3, 4, 5, 6}, 1, 2, 3)
	require.NoError(t, err)

	assert.Equal(t, []byte{1, 2, 3, 0xff, 4, 5, 6, 0xff}, rgba)
}

func TestExpandToRGBA_RGBAIsKept(t *testing.T) {
	pixels := []byte{1, 2, 3, 4}

	rgba, err := expandToRGBA(pixels, 1, 1, 4)
	require.NoError(t, err)

	assert.Equal(t, pixels, rgba)
}

func TestExpandToRGBA_Errors(t *testing.T) {
	_, err := expandToRGBA([]byte{1, 2}, 1, 1, 2)
	assert.ErrorIs(t, err, ErrPixelFormat)

	_, err = expandToRGBA([]byte{1, 2, 3}, 2, 2, 3)
	assert.Error(t, err)

	_, err = expandToRGBA(nil, 0, 0, 4)
	assert.Error(t, err)
}

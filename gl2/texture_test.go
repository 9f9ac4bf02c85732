package gl2

import (
	"testing"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/stretchr/testify/require"
)

func TestTextureFormat(t *testing.T) {
	cases := []struct {
		bytesPerPixel int
		format        uint32
	}{
		{1, gl.LUMINANCE},
		{3, gl.RGB},
		{4, gl.RGBA},
	}

	for _, tc := range cases {
		internal, format, err := textureFormat(tc.bytesPerPixel)
		require.NoError(t, err)
		require.EqualValues(t, tc.format, internal)
		require.EqualValues(t, tc.format, format)
	}
}

func TestTextureFormatUnsupported(t *testing.T) {
	for _, bpp := range []int{0, 2, 5, 8} {
		_, _, err := textureFormat(bpp)
		require.ErrorIs(t, err, ErrPixelFormat)
	}
}

func TestCreateTextureWithoutWindow(t *testing.T) {
	renderer := NewRenderer(orionOptions(false))

	_, err := renderer.CreateTexture(make([]byte, 4), 1, 1, 4)
	require.ErrorIs(t, err, errNotInitialized)
}

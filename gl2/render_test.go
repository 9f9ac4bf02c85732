package gl2

import (
	"testing"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/oliverbestmann/imstage/glm"
	"github.com/stretchr/testify/require"
)

func TestScissorFlipsY(t *testing.T) {
	box, ok := scissorFor(imgui.Vec4{X: 10, Y: 20, Z: 110, W: 70}, glm.Vec2f{1, 1}, glm.Vec2u{800, 600})
	require.True(t, ok)
	require.Equal(t, scissorBox{X: 10, Y: 530, Width: 100, Height: 50}, box)
}

func TestScissorScalesToFramebuffer(t *testing.T) {
	box, ok := scissorFor(imgui.Vec4{X: 10, Y: 20, Z: 110, W: 70}, glm.Vec2f{2, 2}, glm.Vec2u{1600, 1200})
	require.True(t, ok)
	require.Equal(t, scissorBox{X: 20, Y: 1060, Width: 200, Height: 100}, box)
}

func TestScissorClampsToFramebuffer(t *testing.T) {
	box, ok := scissorFor(imgui.Vec4{X: -50, Y: -50, Z: 900, W: 700}, glm.Vec2f{1, 1}, glm.Vec2u{800, 600})
	require.True(t, ok)
	require.Equal(t, scissorBox{X: 0, Y: 0, Width: 800, Height: 600}, box)
}

func TestScissorEmpty(t *testing.T) {
	_, ok := scissorFor(imgui.Vec4{X: 100, Y: 100, Z: 100, W: 200}, glm.Vec2f{1, 1}, glm.Vec2u{800, 600})
	require.False(t, ok)

	_, ok = scissorFor(imgui.Vec4{X: 900, Y: 0, Z: 1000, W: 100}, glm.Vec2f{1, 1}, glm.Vec2u{800, 600})
	require.False(t, ok)
}

func TestIndexType(t *testing.T) {
	require.EqualValues(t, gl.UNSIGNED_SHORT, indexType(2))
	require.EqualValues(t, gl.UNSIGNED_INT, indexType(4))
}

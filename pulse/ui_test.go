package pulse

import (
	"testing"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/oliverbestmann/imstage/glm"
	"github.com/stretchr/testify/assert"
)

func TestScissorRect_ScalesToFramebuffer(t *testing.T) {
	rect, ok := scissorRect(
		imgui.Vec4{X: 10, Y: 20, Z: 110, W: 220},
		glm.Vec2f{2, 2},
		glm.Vec2u{800, 600},
	)

	assert.True(t, ok)
	assert.Equal(t, Rectangle2u{Min: glm.Vec2u{20, 40}, Max: glm.Vec2u{220, 440}}, rect)
}

func TestScissorRect_ClampsToFramebuffer(t *testing.T) {
	rect, ok := scissorRect(
		imgui.Vec4{X: -50, Y: -10, Z: 1000, W: 300},
		glm.Vec2f{1, 1},
		glm.Vec2u{800, 600},
	)

	assert.True(t, ok)

	x, y, w, h := rect.XYWH()
	assert.Equal(t, []uint32{0, 0, 800, 300}, []uint32{x, y, w, h})
}

func TestScissorRect_Invisible(t *testing.T) {
	_, ok := scissorRect(
		imgui.Vec4{X: 900, Y: 0, Z: 1000, W: 100},
		glm.Vec2f{1, 1},
		glm.Vec2u{800, 600},
	)

	assert.False(t, ok)

	_, ok = scissorRect(
		imgui.Vec4{X: 10, Y: 10, Z: 10, W: 100},
		glm.Vec2f{1, 1},
		glm.Vec2u{800, 600},
	)

	assert.False(t, ok)
}

func TestPadTo4(t *testing.T) {
	assert.Len(t, padTo4(make([]byte, 6)), 8)
	assert.Len(t, padTo4(make([]byte, 8)), 8)
	assert.Empty(t, padTo4(nil))
}

func TestRectangle_Intersect(t *testing.T) {
	a := RectangleFromSize(glm.Vec2u{0, 0}, glm.Vec2u{10, 10})
	b := RectangleFromSize(glm.Vec2u{5, 5}, glm.Vec2u{10, 10})

	assert.Equal(t, RectangleFromPoints(glm.Vec2u{5, 5}, glm.Vec2u{10, 10}), a.Intersect(b))

	c := RectangleFromSize(glm.Vec2u{20, 20}, glm.Vec2u{1, 1})
	assert.True(t, a.Intersect(c).Empty())
}

package glm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrtho_MapsDisplayToClipSpace(t *testing.T) {
	// imgui display coordinates, y pointing down
	proj := Ortho[float32](0, 800, 600, 0, -1, 1)

	assert.Equal(t, Vec4f{-1, 1, 0.5, 1}, proj.Transform(Vec4f{0, 0, 0, 1}))
	assert.Equal(t, Vec4f{1, -1, 0.5, 1}, proj.Transform(Vec4f{800, 600, 0, 1}))
	assert.Equal(t, Vec4f{0, 0, 0.5, 1}, proj.Transform(Vec4f{400, 300, 0, 1}))
}

func TestOrtho_Offset(t *testing.T) {
	proj := Ortho[float32](100, 300, 200, 100, -1, 1)

	assert.Equal(t, Vec4f{-1, 1, 0.5, 1}, proj.Transform(Vec4f{100, 100, 0, 1}))
	assert.Equal(t, Vec4f{1, -1, 0.5, 1}, proj.Transform(Vec4f{300, 200, 0, 1}))
}

func TestMat4_MulIdentity(t *testing.T) {
	m := TranslationMat4[float32](1, 2, 3).Scale(2, 2, 2)

	assert.Equal(t, m, m.Mul(IdentityMat4[float32]()))
	assert.Equal(t, Vec4f{3, 4, 5, 1}, m.Transform(Vec4f{1, 1, 1, 1}))
}

func TestVec4_Dot(t *testing.T) {
	assert.Equal(t, float32(30), Vec4f{1, 2, 3, 4}.Dot(Vec4f{1, 2, 3, 4}))
}

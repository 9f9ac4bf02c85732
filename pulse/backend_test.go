package pulse

import (
	"testing"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/oliverbestmann/imstage/glimpse"
	"github.com/oliverbestmann/imstage/glm"
	"github.com/oliverbestmann/imstage/orion"
	"github.com/stretchr/testify/assert"
)

func TestRegistersShaderBackend(t *testing.T) {
	assert.Contains(t, orion.AvailableBackends(), orion.BackendShader)
}

func TestRenderer_WindowHints(t *testing.T) {
	r := &Renderer{}
	assert.Equal(t, glimpse.APINone, r.WindowHints().API)
}

func TestRenderer_RequiresWindow(t *testing.T) {
	r := &Renderer{textures: map[imgui.TextureID]*Texture{}, nextTextureID: 1}

	_, err := r.CreateTexture([]byte{1, 2, 3, 4}, 1, 1, 4)
	assert.ErrorIs(t, err, errNotInitialized)

	assert.ErrorIs(t, r.NewFrame(), errNotInitialized)

	// nothing to draw without a frame
	assert.NoError(t, r.Clear(glm.Vec4f{0, 0, 0, 1}))

	// releasing an unbound renderer is fine
	r.ShutdownUI()
	r.Release()
}

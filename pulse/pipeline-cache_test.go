package pulse

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingConfig struct {
	format wgpu.TextureFormat
}

var errSpecialize = errors.New("specialize failed")

func (failingConfig) Specialize(*wgpu.Device) (*wgpu.RenderPipeline, error) {
	return nil, errSpecialize
}

func TestPipelineCache_SpecializeErrorIsNotCached(t *testing.T) {
	cache := NewPipelineCache[failingConfig](&Context{})

	_, err := cache.Get(failingConfig{format: wgpu.TextureFormatBGRA8Unorm})
	require.ErrorIs(t, err, errSpecialize)
	assert.Equal(t, 0, cache.Len())

	cache.Release()
}

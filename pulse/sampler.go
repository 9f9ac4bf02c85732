package pulse

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	lru "github.com/hashicorp/golang-lru/v2"
)

// SamplerCache keeps samplers of a device around for reuse.
type SamplerCache struct {
	device *wgpu.Device
	cache  *lru.Cache[wgpu.SamplerDescriptor, *wgpu.Sampler]
}

func NewSamplerCache(ctx *Context) *SamplerCache {
	cache, _ := lru.NewWithEvict[wgpu.SamplerDescriptor, *wgpu.Sampler](16, samplerCacheOnEvict)
	return &SamplerCache{device: ctx.Device, cache: cache}
}

func samplerCacheOnEvict(key wgpu.SamplerDescriptor, value *wgpu.Sampler) {
	value.Release()
}

// Get returns a sampler matching your description. The sampler may be cached,
// you  must not call wgpu.Sampler.Release() on it.
func (c *SamplerCache) Get(desc wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	cachedSampler, ok := c.cache.Get(desc)
	if ok {
		return cachedSampler, nil
	}

	// create a new sampler
	sampler, err := c.device.CreateSampler(&desc)
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}

	c.cache.Add(desc, sampler)

	return sampler, nil
}

// Release releases all cached samplers.
func (c *SamplerCache) Release() {
	c.cache.Purge()
}

package pulse

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// ClearCommand clears a render target using its own render pass.
type ClearCommand struct {
	ctx *Context
}

func NewClear(ctx *Context) *ClearCommand {
	return &ClearCommand{ctx: ctx}
}

func (c *ClearCommand) Clear(target *RenderTarget, color Color) error {
	enc, err := c.ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "ClearTexture",
	})

	if err != nil {
		return err
	}

	defer enc.Release()

	pass := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "ClearTexture",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          target.View,
				ResolveTarget: target.ResolveTarget,
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       wgpu.StoreOpStore,
				ClearValue:    color.ToWGPU(),
			},
		},
	})

	passGuard := NewReleaseGuard(pass)
	defer passGuard.Release()

	if err := pass.End(); err != nil {
		return err
	}

	passGuard.Release()

	// encode into a command buffer
	buf, err := enc.Finish(&wgpu.CommandBufferDescriptor{Label: "ClearTexture"})
	if err != nil {
		return err
	}

	defer buf.Release()

	c.ctx.Submit(buf)

	return nil
}

type Releaser interface {
	Release()
}

type ReleaseGuard struct {
	delegate Releaser
}

func NewReleaseGuard(delegate Releaser) ReleaseGuard {
	return ReleaseGuard{delegate: delegate}
}

func (r *ReleaseGuard) Release() {
	if r.delegate != nil {
		r.delegate.Release()
		r.delegate = nil
	}
}

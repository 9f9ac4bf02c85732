package pulse

import (
	_ "embed"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/oliverbestmann/imstage/glm"
)

//go:embed ui.wgsl
var uiShaderCode string

// number of texture bind groups kept around between frames
const uiBindGroupCacheSize = 64

var uiBlendState = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

type uiUniforms struct {
	Projection glm.Mat4f
}

// bytes returns the uniform block as it is laid out in the shader.
func (u *uiUniforms) bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(u)), unsafe.Sizeof(*u))
}

// TextureLookup resolves the texture ids found in imgui draw commands.
type TextureLookup func(id imgui.TextureID) (*Texture, bool)

// a single draw call of a frame
type uiDraw struct {
	texture    imgui.TextureID
	clip       imgui.Vec4
	count      uint32
	firstIndex uint32
	baseVertex int32
}

// UICommand renders imgui draw data.
type UICommand struct {
	ctx *Context

	samplers      *SamplerCache
	pipelineCache *PipelineCache[uiPipelineConfig]

	uniformLayout  *wgpu.BindGroupLayout
	textureLayout  *wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout

	bufVertices gpuBuffer
	bufIndices  gpuBuffer
	bufUniforms *wgpu.Buffer

	uniformBindGroup *wgpu.BindGroup
	bindGroups       *lru.Cache[imgui.TextureID, *wgpu.BindGroup]

	// cpu side copy of the current frame
	vertices []byte
	indices  []byte
	draws    []uiDraw
}

func NewUICommand(ctx *Context) (cmd *UICommand, err error) {
	cmd = &UICommand{
		ctx:         ctx,
		samplers:    NewSamplerCache(ctx),
		bufVertices: gpuBuffer{label: "UI.Vertices", usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst},
		bufIndices:  gpuBuffer{label: "UI.Indices", usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst},
	}

	defer func() {
		if err != nil {
			cmd.Release()
			cmd = nil
		}
	}()

	cmd.bindGroups, _ = lru.NewWithEvict[imgui.TextureID, *wgpu.BindGroup](uiBindGroupCacheSize, releaseBindGroupOnEviction)

	cmd.uniformLayout, err = ctx.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "UI.Uniforms",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(unsafe.Sizeof(uiUniforms{})),
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return cmd, fmt.Errorf("create uniform layout: %w", err)
	}

	cmd.textureLayout, err = ctx.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "UI.Texture",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		return cmd, fmt.Errorf("create texture layout: %w", err)
	}

	cmd.pipelineLayout, err = ctx.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "UI",
		BindGroupLayouts: []*wgpu.BindGroupLayout{cmd.uniformLayout, cmd.textureLayout},
	})
	if err != nil {
		return cmd, fmt.Errorf("create pipeline layout: %w", err)
	}

	cmd.pipelineCache = NewPipelineCache[uiPipelineConfig](ctx)

	cmd.bufUniforms, err = ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "UI.Uniforms",
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:  uint64(unsafe.Sizeof(uiUniforms{})),
	})
	if err != nil {
		return cmd, fmt.Errorf("create uniform buffer: %w", err)
	}

	sampler, err := cmd.samplers.Get(wgpu.SamplerDescriptor{
		Label:         "UI.Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return cmd, err
	}

	cmd.uniformBindGroup, err = ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "UI.Uniforms",
		Layout: cmd.uniformLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  cmd.bufUniforms,
				Size:    wgpu.WholeSize,
			},
			{
				Binding: 1,
				Sampler: sampler,
			},
		},
	})
	if err != nil {
		return cmd, fmt.Errorf("create uniform bind group: %w", err)
	}

	return cmd, nil
}

// Draw renders the draw data on top of the current content of target.
// displaySize is the size of the window in screen coordinates, the
// coordinate space imgui produces its vertices in.
func (u *UICommand) Draw(target *RenderTarget, drawData imgui.DrawData, displaySize glm.Vec2f, lookup TextureLookup) error {
	if displaySize[0] <= 0 || displaySize[1] <= 0 || target.Width == 0 || target.Height == 0 {
		return nil
	}

	u.collect(drawData)

	if len(u.draws) == 0 {
		return nil
	}

	if err := u.bufVertices.write(u.ctx, u.vertices); err != nil {
		return err
	}

	if err := u.bufIndices.write(u.ctx, u.indices); err != nil {
		return err
	}

	uniforms := uiUniforms{
		Projection: glm.Ortho[float32](0, displaySize[0], displaySize[1], 0, -1, 1),
	}

	if err := u.ctx.WriteBuffer(u.bufUniforms, 0, uniforms.bytes()); err != nil {
		return fmt.Errorf("update uniform buffer: %w", err)
	}

	pipeline, err := u.pipelineCache.Get(uiPipelineConfig{
		TargetFormat:      target.Format,
		TargetSampleCount: target.SampleCount,
		Layout:            u.pipelineLayout,
	})
	if err != nil {
		return fmt.Errorf("get ui pipeline: %w", err)
	}

	encoder, err := u.ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "UI"})
	if err != nil {
		return err
	}

	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "RenderPassUI",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          target.View,
				ResolveTarget: target.ResolveTarget,
				LoadOp:        wgpu.LoadOpLoad,
				StoreOp:       wgpu.StoreOpStore,
			},
		},
	})

	passGuard := NewReleaseGuard(pass)
	defer passGuard.Release()

	indexFormat := wgpu.IndexFormatUint16
	if imgui.IndexBufferLayout() == 4 {
		indexFormat = wgpu.IndexFormatUint32
	}

	pass.SetPipeline(pipeline.Pipeline)
	pass.SetBindGroup(0, u.uniformBindGroup, nil)
	pass.SetVertexBuffer(0, u.bufVertices.buffer, 0, uint64(len(u.vertices)))
	pass.SetIndexBuffer(u.bufIndices.buffer, indexFormat, 0, uint64(len(u.indices)))

	scale := glm.Vec2f{
		float32(target.Width) / displaySize[0],
		float32(target.Height) / displaySize[1],
	}

	targetSize := glm.Vec2u{target.Width, target.Height}

	for _, draw := range u.draws {
		scissor, ok := scissorRect(draw.clip, scale, targetSize)
		if !ok {
			continue
		}

		bindGroup, err := u.textureBindGroup(draw.texture, lookup)
		if err != nil {
			slog.Warn("Skip ui draw call", slog.Uint64("texture", uint64(draw.texture)), slog.Any("err", err))
			continue
		}

		pass.SetBindGroup(1, bindGroup, nil)
		pass.SetScissorRect(scissor.XYWH())
		pass.DrawIndexed(draw.count, 1, draw.firstIndex, draw.baseVertex, 0)
	}

	if err := pass.End(); err != nil {
		return err
	}

	// must release pass before finishing the encoder
	passGuard.Release()

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}

	defer cmdBuffer.Release()

	u.ctx.Submit(cmdBuffer)

	return nil
}

// collect copies the vertices and indices of all draw lists into
// a single vertex and index buffer.
func (u *UICommand) collect(drawData imgui.DrawData) {
	u.vertices = u.vertices[:0]
	u.indices = u.indices[:0]
	u.draws = u.draws[:0]

	vertexSize, _, _, _ := imgui.VertexBufferLayout()
	indexSize := imgui.IndexBufferLayout()

	for _, list := range drawData.CommandLists() {
		baseVertex := len(u.vertices) / vertexSize
		firstIndex := len(u.indices) / indexSize

		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		u.vertices = append(u.vertices, unsafe.Slice((*byte)(vertexBuffer), vertexBufferSize)...)

		indexBuffer, indexBufferSize := list.IndexBuffer()
		u.indices = append(u.indices, unsafe.Slice((*byte)(indexBuffer), indexBufferSize)...)

		var indexOffset int

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				u.draws = append(u.draws, uiDraw{
					texture:    cmd.TextureID(),
					clip:       cmd.ClipRect(),
					count:      uint32(cmd.ElementCount()),
					firstIndex: uint32(firstIndex + indexOffset),
					baseVertex: int32(baseVertex),
				})
			}

			indexOffset += cmd.ElementCount()
		}
	}

	// buffer writes must be a multiple of four bytes
	u.vertices = padTo4(u.vertices)
	u.indices = padTo4(u.indices)
}

func (u *UICommand) textureBindGroup(id imgui.TextureID, lookup TextureLookup) (*wgpu.BindGroup, error) {
	if bindGroup, ok := u.bindGroups.Get(id); ok {
		return bindGroup, nil
	}

	texture, ok := lookup(id)
	if !ok {
		return nil, fmt.Errorf("unknown texture id %d", id)
	}

	bindGroup, err := u.ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "UI.Texture",
		Layout: u.textureLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding:     0,
				TextureView: texture.View(),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create texture bind group: %w", err)
	}

	u.bindGroups.Add(id, bindGroup)

	return bindGroup, nil
}

// ForgetTexture releases the cached bind group of a texture. It must be
// called before the texture itself is released.
func (u *UICommand) ForgetTexture(id imgui.TextureID) {
	u.bindGroups.Remove(id)
}

func (u *UICommand) Release() {
	if u.bindGroups != nil {
		u.bindGroups.Purge()
	}

	if u.uniformBindGroup != nil {
		u.uniformBindGroup.Release()
		u.uniformBindGroup = nil
	}

	if u.bufUniforms != nil {
		u.bufUniforms.Release()
		u.bufUniforms = nil
	}

	u.bufVertices.release()
	u.bufIndices.release()

	if u.pipelineCache != nil {
		u.pipelineCache.Release()
	}

	if u.pipelineLayout != nil {
		u.pipelineLayout.Release()
		u.pipelineLayout = nil
	}

	if u.textureLayout != nil {
		u.textureLayout.Release()
		u.textureLayout = nil
	}

	if u.uniformLayout != nil {
		u.uniformLayout.Release()
		u.uniformLayout = nil
	}

	u.samplers.Release()
}

func releaseBindGroupOnEviction(_ imgui.TextureID, bindGroup *wgpu.BindGroup) {
	bindGroup.Release()
}

// scissorRect converts an imgui clip rectangle given in screen coordinates
// into a scissor rectangle in framebuffer pixels. It returns false if
// nothing of the clip rectangle is visible.
func scissorRect(clip imgui.Vec4, scale glm.Vec2f, size glm.Vec2u) (Rectangle2u, bool) {
	clipped := RectangleFromPoints(
		glm.Vec2f{clip.X * scale[0], clip.Y * scale[1]},
		glm.Vec2f{clip.Z * scale[0], clip.W * scale[1]},
	)

	clipped = clipped.Intersect(Rectangle2f{Max: glm.Vec2f{float32(size[0]), float32(size[1])}})
	if clipped.Empty() {
		return Rectangle2u{}, false
	}

	rect := Rectangle2u{
		Min: glm.Vec2u{uint32(clipped.Min[0]), uint32(clipped.Min[1])},
		Max: glm.Vec2u{uint32(clipped.Max[0]), uint32(clipped.Max[1])},
	}

	return rect, !rect.Empty()
}

func padTo4(buf []byte) []byte {
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}

	return buf
}

// gpuBuffer is a buffer that grows when more data is written to it.
type gpuBuffer struct {
	label    string
	usage    wgpu.BufferUsage
	buffer   *wgpu.Buffer
	capacity uint64
}

func (b *gpuBuffer) write(ctx *Context, data []byte) error {
	size := uint64(len(data))

	if b.buffer == nil || b.capacity < size {
		b.release()

		capacity := max(size, 2*b.capacity, 64*1024)

		buffer, err := ctx.CreateBuffer(&wgpu.BufferDescriptor{
			Label: b.label,
			Usage: b.usage,
			Size:  capacity,
		})
		if err != nil {
			return fmt.Errorf("create buffer %q: %w", b.label, err)
		}

		slog.Debug("Allocated buffer", slog.String("label", b.label), slog.Uint64("size", capacity))

		b.buffer = buffer
		b.capacity = capacity
	}

	if err := ctx.WriteBuffer(b.buffer, 0, data); err != nil {
		return fmt.Errorf("write buffer %q: %w", b.label, err)
	}

	return nil
}

func (b *gpuBuffer) release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}

type uiPipelineConfig struct {
	TargetFormat      wgpu.TextureFormat
	TargetSampleCount uint32
	Layout            *wgpu.PipelineLayout
}

func (conf uiPipelineConfig) Specialize(dev *wgpu.Device) (*wgpu.RenderPipeline, error) {
	slog.Info(
		"Create RenderPipeline for ui",
		slog.Any("format", conf.TargetFormat),
		slog.Any("sampleCount", conf.TargetSampleCount),
	)

	shader, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "UI.ShaderSource",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: uiShaderCode},
	})
	if err != nil {
		return nil, fmt.Errorf("compile ui shader: %w", err)
	}

	defer shader.Release()

	vertexSize, posOffset, uvOffset, colOffset := imgui.VertexBufferLayout()

	desc := &wgpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("UI.%s", conf.TargetFormat),
		Layout: conf.Layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(vertexSize),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							// position
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(posOffset),
							ShaderLocation: 0,
						},
						{
							// uv
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(uvOffset),
							ShaderLocation: 1,
						},
						{
							// packed rgba color
							Format:         wgpu.VertexFormatUnorm8x4,
							Offset:         uint64(colOffset),
							ShaderLocation: 2,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
					Blend:     &uiBlendState,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count:                  conf.TargetSampleCount,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}

	pipeline, err := dev.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("build ui pipeline: %w", err)
	}

	return pipeline, nil
}

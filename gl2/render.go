package gl2

import (
	"unsafe"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/oliverbestmann/imstage/glm"
)

// scissorBox is a scissor rectangle in framebuffer pixels with the
// origin in the lower left corner.
type scissorBox struct {
	X, Y          int32
	Width, Height int32
}

// scissorFor converts an imgui clip rectangle given in display coordinates
// into a scissor box. It returns false if nothing would be visible.
func scissorFor(clip imgui.Vec4, scale glm.Vec2f, framebuffer glm.Vec2u) (scissorBox, bool) {
	scaleX, scaleY := scale.XY()
	width, height := framebuffer.XY()

	minX := max(clip.X*scaleX, 0)
	minY := max(clip.Y*scaleY, 0)
	maxX := min(clip.Z*scaleX, float32(width))
	maxY := min(clip.W*scaleY, float32(height))

	if maxX <= minX || maxY <= minY {
		return scissorBox{}, false
	}

	box := scissorBox{
		X:      int32(minX),
		Y:      int32(float32(height) - maxY),
		Width:  int32(maxX - minX),
		Height: int32(maxY - minY),
	}

	return box, true
}

func indexType(indexSize int) uint32 {
	if indexSize == 4 {
		return gl.UNSIGNED_INT
	}

	return gl.UNSIGNED_SHORT
}

// renderDrawData draws the command lists using client side vertex arrays.
// All touched state is restored afterwards.
func renderDrawData(drawData imgui.DrawData, displaySize glm.Vec2f, framebuffer glm.Vec2u) {
	if displaySize[0] <= 0 || displaySize[1] <= 0 || framebuffer[0] == 0 || framebuffer[1] == 0 {
		return
	}

	scale := glm.Vec2f{
		float32(framebuffer[0]) / displaySize[0],
		float32(framebuffer[1]) / displaySize[1],
	}

	var lastTexture int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)

	var lastPolygonMode [2]int32
	gl.GetIntegerv(gl.POLYGON_MODE, &lastPolygonMode[0])

	var lastViewport [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &lastViewport[0])

	var lastScissorBox [4]int32
	gl.GetIntegerv(gl.SCISSOR_BOX, &lastScissorBox[0])

	gl.PushAttrib(gl.ENABLE_BIT | gl.COLOR_BUFFER_BIT | gl.TRANSFORM_BIT)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.LIGHTING)
	gl.Disable(gl.COLOR_MATERIAL)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Enable(gl.TEXTURE_2D)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.TexEnvi(gl.TEXTURE_ENV, gl.TEXTURE_ENV_MODE, gl.MODULATE)

	gl.EnableClientState(gl.VERTEX_ARRAY)
	gl.EnableClientState(gl.TEXTURE_COORD_ARRAY)
	gl.EnableClientState(gl.COLOR_ARRAY)

	gl.Viewport(0, 0, int32(framebuffer[0]), int32(framebuffer[1]))

	gl.MatrixMode(gl.PROJECTION)
	gl.PushMatrix()
	gl.LoadIdentity()
	gl.Ortho(0, float64(displaySize[0]), float64(displaySize[1]), 0, -1, 1)

	gl.MatrixMode(gl.MODELVIEW)
	gl.PushMatrix()
	gl.LoadIdentity()

	vertexSize, offsetPos, offsetUV, offsetColor := imgui.VertexBufferLayout()
	indexSize := imgui.IndexBufferLayout()
	drawType := indexType(indexSize)

	for _, list := range drawData.CommandLists() {
		vertices, _ := list.VertexBuffer()
		indices, _ := list.IndexBuffer()

		gl.VertexPointer(2, gl.FLOAT, int32(vertexSize), unsafe.Add(vertices, offsetPos))
		gl.TexCoordPointer(2, gl.FLOAT, int32(vertexSize), unsafe.Add(vertices, offsetUV))
		gl.ColorPointer(4, gl.UNSIGNED_BYTE, int32(vertexSize), unsafe.Add(vertices, offsetColor))

		indexOffset := 0

		for _, cmd := range list.Commands() {
			count := cmd.ElementCount()

			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else if box, ok := scissorFor(cmd.ClipRect(), scale, framebuffer); ok {
				gl.Scissor(box.X, box.Y, box.Width, box.Height)
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				gl.DrawElements(gl.TRIANGLES, int32(count), drawType, unsafe.Add(indices, indexOffset))
			}

			indexOffset += count * indexSize
		}
	}

	gl.DisableClientState(gl.COLOR_ARRAY)
	gl.DisableClientState(gl.TEXTURE_COORD_ARRAY)
	gl.DisableClientState(gl.VERTEX_ARRAY)

	gl.MatrixMode(gl.MODELVIEW)
	gl.PopMatrix()
	gl.MatrixMode(gl.PROJECTION)
	gl.PopMatrix()
	gl.PopAttrib()

	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))
	gl.PolygonMode(gl.FRONT, uint32(lastPolygonMode[0]))
	gl.PolygonMode(gl.BACK, uint32(lastPolygonMode[1]))
	gl.Viewport(lastViewport[0], lastViewport[1], lastViewport[2], lastViewport[3])
	gl.Scissor(lastScissorBox[0], lastScissorBox[1], lastScissorBox[2], lastScissorBox[3])
}

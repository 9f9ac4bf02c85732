// Package gui integrates the imgui library with glimpse windows.
//
// imgui keeps its state in a process wide current context. Only one
// Context should be alive at any time.
package gui

import (
	"log/slog"

	"github.com/inkyblackness/imgui-go/v4"
)

// Context owns the imgui library context.
type Context struct {
	ctx *imgui.Context
}

// NewContext creates a new imgui context and makes it the current one.
func NewContext() *Context {
	ctx := imgui.CreateContext(nil)

	// do not persist window positions next to the binary
	imgui.CurrentIO().SetIniFilename("")

	slog.Debug("Created imgui context")

	return &Context{ctx: ctx}
}

func (c *Context) NewFrame() {
	imgui.NewFrame()
}

// Render finalizes the current frame and returns its draw data.
// The draw data is valid until the next call to NewFrame.
func (c *Context) Render() imgui.DrawData {
	imgui.Render()
	return imgui.RenderedDrawData()
}

// EndFrame closes the current frame without producing draw data.
func (c *Context) EndFrame() {
	imgui.EndFrame()
}

// Destroy destroys the imgui context. It is safe to call Destroy more than once.
func (c *Context) Destroy() {
	if c.ctx == nil {
		return
	}

	c.ctx.Destroy()
	c.ctx = nil
}

package glimpse

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// glfw must only ever be called from the main thread
	runtime.LockOSThread()
}

// number of windows alive. glfw is terminated with the last one.
// Only accessed from the main thread.
var openWindows int

type glfwWindow struct {
	win        *glfw.Window
	dispatcher Dispatcher
}

func NewWindow(info CreateInfo, hints Hints) (Window, error) {
	info = info.WithDefaults()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.DefaultWindowHints()
	applyHints(info, hints)

	slog.Info("Create window",
		slog.String("title", info.Title),
		slog.Int("width", info.Width),
		slog.Int("height", info.Height),
		slog.String("api", hints.API.String()),
	)

	window, err := glfw.CreateWindow(info.Width, info.Height, info.Title, nil, nil)
	if err != nil {
		if openWindows == 0 {
			glfw.Terminate()
		}

		return nil, fmt.Errorf("create window: %w", err)
	}

	openWindows++

	w := &glfwWindow{win: window}
	w.configureCallbacks()

	return w, nil
}

func applyHints(info CreateInfo, hints Hints) {
	switch hints.API {
	case APIOpenGL:
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
		glfw.WindowHint(glfw.ContextVersionMajor, hints.ContextMajor)
		glfw.WindowHint(glfw.ContextVersionMinor, hints.ContextMinor)
		glfw.WindowHint(glfw.OpenGLDebugContext, glfwBool(hints.Debug))

	default:
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	}

	glfw.WindowHint(glfw.Visible, glfwBool(!info.Flags.Has(FlagHidden)))
	glfw.WindowHint(glfw.Resizable, glfwBool(!info.Flags.Has(FlagFixedSize)))
	glfw.WindowHint(glfw.Decorated, glfwBool(!info.Flags.Has(FlagUndecorated)))
	glfw.WindowHint(glfw.Maximized, glfwBool(info.Flags.Has(FlagMaximized)))
	glfw.WindowHint(glfw.Floating, glfwBool(info.Flags.Has(FlagFloating)))
}

func glfwBool(value bool) int {
	if value {
		return glfw.True
	}

	return glfw.False
}

func (g *glfwWindow) GetSize() (uint32, uint32) {
	width, height := g.win.GetSize()
	return uint32(width), uint32(height)
}

func (g *glfwWindow) GetFramebufferSize() (uint32, uint32) {
	width, height := g.win.GetFramebufferSize()
	return uint32(width), uint32(height)
}

func (g *glfwWindow) Focused() bool {
	return g.win.GetAttrib(glfw.Focused) == glfw.True
}

func (g *glfwWindow) ShouldClose() bool {
	return g.win.ShouldClose()
}

func (g *glfwWindow) PollEvents() {
	glfw.PollEvents()
}

func (g *glfwWindow) Subscribe(handler EventHandler) (cancel func()) {
	return g.dispatcher.Subscribe(handler)
}

func (g *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.win)
}

func (g *glfwWindow) MakeContextCurrent() {
	g.win.MakeContextCurrent()
}

func (g *glfwWindow) SwapInterval(interval int) {
	glfw.SwapInterval(interval)
}

func (g *glfwWindow) SwapBuffers() {
	g.win.SwapBuffers()
}

func (g *glfwWindow) Terminate() {
	if g.win == nil {
		return
	}

	slog.Debug("Destroy window")

	g.win.Destroy()
	g.win = nil

	openWindows--
	if openWindows == 0 {
		glfw.Terminate()
	}
}

func (g *glfwWindow) configureCallbacks() {
	window := g.win

	window.SetKeyCallback(func(_win *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		g.dispatcher.Dispatch(KeyEvent{
			Key:    Key(glfwKey),
			Action: actionOf(action),
			Mods:   modsOf(mods),
		})
	})

	window.SetCharCallback(func(_win *glfw.Window, char rune) {
		g.dispatcher.Dispatch(CharEvent{Char: char})
	})

	window.SetMouseButtonCallback(func(_win *glfw.Window, btn glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		g.dispatcher.Dispatch(MouseButtonEvent{
			Button: MouseButton(btn),
			Action: actionOf(action),
			Mods:   modsOf(mods),
		})
	})

	window.SetCursorPosCallback(func(_win *glfw.Window, xpos float64, ypos float64) {
		g.dispatcher.Dispatch(CursorEvent{X: float32(xpos), Y: float32(ypos)})
	})

	window.SetScrollCallback(func(_win *glfw.Window, xoff float64, yoff float64) {
		g.dispatcher.Dispatch(ScrollEvent{DeltaX: float32(xoff), DeltaY: float32(yoff)})
	})

	window.SetFocusCallback(func(_win *glfw.Window, focused bool) {
		g.dispatcher.Dispatch(FocusEvent{Focused: focused})
	})

	window.SetSizeCallback(func(_win *glfw.Window, width int, height int) {
		g.dispatcher.Dispatch(ResizeEvent{Width: width, Height: height})
	})

	window.SetCloseCallback(func(_win *glfw.Window) {
		g.dispatcher.Dispatch(CloseEvent{})
	})
}

func actionOf(action glfw.Action) Action {
	switch action {
	case glfw.Press:
		return Press
	case glfw.Repeat:
		return Repeat
	default:
		return Release
	}
}

func modsOf(mods glfw.ModifierKey) ModifierKey {
	var result ModifierKey

	if mods&glfw.ModShift != 0 {
		result |= ModShift
	}

	if mods&glfw.ModControl != 0 {
		result |= ModControl
	}

	if mods&glfw.ModAlt != 0 {
		result |= ModAlt
	}

	if mods&glfw.ModSuper != 0 {
		result |= ModSuper
	}

	return result
}

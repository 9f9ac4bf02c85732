package orion

import (
	"fmt"
	"log/slog"
	"weak"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/oliverbestmann/imstage/glimpse"
	"github.com/oliverbestmann/imstage/surface"
)

// BuildFunc declares the ui of a single frame. It runs synchronously
// between the start and the end of the ui frame and may call back into
// the Scene, e.g. to load images. It must not call Scene.Release.
type BuildFunc func() error

// Scene owns a window, a renderer and the textures created through it,
// and drives the frame loop. Only one Scene can be alive at a time.
//
// A Scene must be used from the goroutine that created it.
//
// A Scene that is garbage collected without Release is not released by the
// finalizer itself, as the window and the OpenGL context are bound to the
// main thread. It is queued and released by the next call to NewScene or
// Scene.Update of another scene.
type Scene struct {
	opts Options

	// identifies this scene in currentScene
	self weak.Pointer[Scene]

	renderer Renderer
	window   glimpse.Window
	ui       UIContext
	platform Platform

	// true after the renderer has been bound to the ui
	uiBound     bool
	unsubscribe func()

	// created on the first image load
	codec *surface.Codec

	textures []Texture

	quit     bool
	released bool

	frameTimes FrameTimes
}

// NewScene creates the renderer, the window and the ui context. If any step
// fails, everything created so far is released again and no scene is
// returned.
func NewScene(opts Options) (*Scene, error) {
	opts = opts.withDefaults()

	// scenes that were dropped without Release
	releasePending()

	factory, ok := lookupBackend(opts.Backend)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBackendNotAvailable, opts.Backend)
	}

	scene := &Scene{opts: opts}
	scene.self = weak.Make(scene)

	if !currentScene.trySet(scene.self, sceneLive) {
		return nil, ErrSceneActive
	}

	if err := scene.initialize(factory); err != nil {
		scene.teardown()
		currentScene.resetIf(scene.self)
		return nil, err
	}

	slog.Info("Scene created",
		slog.String("backend", opts.Backend.String()),
		slog.Int("width", opts.Window.Width),
		slog.Int("height", opts.Window.Height),
		slog.Bool("debug", opts.Debug),
	)

	return registerWithGC(scene), nil
}

func (s *Scene) initialize(factory BackendFactory) error {
	renderer, err := factory(RendererOptions{Debug: s.opts.Debug})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRendererCreate, err)
	}

	s.renderer = renderer

	// the window needs to match the graphics api of the renderer
	window, err := s.opts.NewWindow(s.opts.Window, renderer.WindowHints())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWindowCreate, err)
	}

	s.window = window

	s.ui = s.opts.NewUIContext()
	s.platform = s.opts.NewPlatform(window)

	if err := renderer.InitUI(window); err != nil {
		return fmt.Errorf("%w: %w", ErrUIInit, err)
	}

	s.uiBound = true

	s.unsubscribe = window.Subscribe(s.platform.HandleEvent)

	return nil
}

// LoadImage decodes the image file at path and uploads it into a new texture.
// It returns zero if the image can not be loaded.
func (s *Scene) LoadImage(path string) imgui.TextureID {
	surf, err := s.imageCodec().LoadFile(path)
	if err != nil {
		slog.Warn("Failed to load image", slog.String("path", path), slog.Any("err", err))
		return 0
	}

	return s.createTextureFromSurface(surf)
}

// LoadImageBytes decodes an encoded image from memory and uploads it into a
// new texture. The buffer is not retained. It returns zero if the image can
// not be decoded.
func (s *Scene) LoadImageBytes(buf []byte) imgui.TextureID {
	surf, err := s.imageCodec().LoadBytes(buf)
	if err != nil {
		slog.Warn("Failed to decode image", slog.Int("size", len(buf)), slog.Any("err", err))
		return 0
	}

	return s.createTextureFromSurface(surf)
}

func (s *Scene) imageCodec() *surface.Codec {
	if s.codec == nil {
		s.codec = surface.NewCodec(surface.CodecOptions{MaxSize: s.opts.MaxTextureSize})
	}

	return s.codec
}

func (s *Scene) createTextureFromSurface(surf *surface.Surface) imgui.TextureID {
	texture, err := s.renderer.CreateTexture(surf.Pix, surf.Width, surf.Height, surf.BytesPerPixel())
	if err != nil {
		slog.Warn("Failed to create texture",
			slog.Int("width", surf.Width),
			slog.Int("height", surf.Height),
			slog.String("format", surf.Format.String()),
			slog.Any("err", err),
		)

		return 0
	}

	s.textures = append(s.textures, texture)

	return texture.ID()
}

// Update runs a single frame. An error returned by build is passed on
// unchanged, the frame is then discarded without being rendered.
func (s *Scene) Update(build BuildFunc) error {
	releasePending()

	if s.frameTimes.Tick() {
		slog.Debug("Frame stats",
			slog.Uint64("frame", s.frameTimes.FrameCount),
			slog.Float64("fps", s.frameTimes.FPS()),
			slog.Duration("max", s.frameTimes.PeriodMaxDuration),
		)
	}

	// dispatches window events into the platform
	s.window.PollEvents()

	if err := s.renderer.NewFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}

	s.platform.NewFrame()
	s.ui.NewFrame()

	if build != nil {
		if err := build(); err != nil {
			s.ui.EndFrame()
			return err
		}
	}

	drawData := s.ui.Render()

	if err := s.renderer.Clear(s.opts.ClearColor); err != nil {
		return fmt.Errorf("clear: %w", err)
	}

	if err := s.renderer.Render(drawData); err != nil {
		return fmt.Errorf("render ui: %w", err)
	}

	if err := s.renderer.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}

	return nil
}

// Run calls Update until the window is closed or Quit was called.
func (s *Scene) Run(build BuildFunc) error {
	for !s.window.ShouldClose() && !s.quit {
		if err := s.Update(build); err != nil {
			return err
		}
	}

	return nil
}

// Quit stops Run before the next frame.
func (s *Scene) Quit() {
	s.quit = true
}

func (s *Scene) QuitRequested() bool {
	return s.quit
}

// CloseRequested reports whether the user asked to close the window.
func (s *Scene) CloseRequested() bool {
	return s.window != nil && s.window.ShouldClose()
}

// TextureCount returns the number of textures owned by the scene.
func (s *Scene) TextureCount() int {
	return len(s.textures)
}

func (s *Scene) FrameTimes() FrameTimes {
	return s.frameTimes
}

// Release frees all textures, the ui, the renderer and the window.
// It is safe to call Release more than once.
func (s *Scene) Release() {
	if s.released {
		return
	}

	s.released = true

	unregisterFromGC(s)

	s.teardown()

	currentScene.resetIf(s.self)

	slog.Info("Scene released")
}

// teardown releases everything that was created, in reverse dependency
// order. It also cleans up after a failed initialize.
func (s *Scene) teardown() {
	if s.uiBound {
		s.renderer.ShutdownUI()
		s.uiBound = false
	}

	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}

	if s.platform != nil {
		s.platform.Shutdown()
		s.platform = nil
	}

	if s.ui != nil {
		s.ui.Destroy()
		s.ui = nil
	}

	if len(s.textures) > 0 {
		slog.Debug("Releasing textures", slog.Int("count", len(s.textures)))
	}

	for _, texture := range s.textures {
		texture.Release()
	}

	s.textures = nil

	if s.codec != nil {
		s.codec.Close()
		s.codec = nil
	}

	if s.renderer != nil {
		s.renderer.Release()
		s.renderer = nil
	}

	if s.window != nil {
		s.window.Terminate()
		s.window = nil
	}
}

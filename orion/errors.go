package orion

import "errors"

var (
	// ErrBackendNotAvailable is returned if no factory is registered
	// for the requested backend.
	ErrBackendNotAvailable = errors.New("orion: backend not available")

	ErrRendererCreate = errors.New("orion: create renderer")
	ErrWindowCreate   = errors.New("orion: create window")
	ErrUIInit         = errors.New("orion: initialize ui renderer")

	// ErrSceneActive is returned when a Scene is created while another
	// one is still alive. imgui only supports a single current context.
	ErrSceneActive = errors.New("orion: another scene is still alive")
)

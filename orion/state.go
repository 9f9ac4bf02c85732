package orion

import (
	"sync"
	"weak"
)

// the scene currently owning the imgui context. Only a weak reference is
// kept so a forgotten scene can still be collected and released.
var currentScene global[weak.Pointer[Scene]]

type global[T comparable] struct {
	mu       sync.Mutex
	value    T
	hasValue bool
}

// trySet stores the value if no value is set, or if the stored
// value is no longer live.
func (g *global[T]) trySet(value T, live func(T) bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.hasValue && live(g.value) {
		return false
	}

	g.value = value
	g.hasValue = true
	return true
}

// resetIf clears the stored value if it equals value.
func (g *global[T]) resetIf(value T) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.hasValue || g.value != value {
		return
	}

	var tZero T
	g.value = tZero
	g.hasValue = false
}

func (g *global[T]) get() (T, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.value, g.hasValue
}

func sceneLive(ptr weak.Pointer[Scene]) bool {
	return ptr.Value() != nil
}

// CurrentScene returns the scene that is currently alive, or nil. A scene
// that became unreachable without being released is not current anymore,
// a new scene can be created right away.
func CurrentScene() *Scene {
	ptr, ok := currentScene.get()
	if !ok {
		return nil
	}

	return ptr.Value()
}

package orion

import (
	"log/slog"
	"runtime"
	"sync"
)

// scenes that were garbage collected without being released. glfw and
// OpenGL must not be called from the finalizer goroutine, so the finalizer
// only queues the scene. The queue is drained by NewScene and Scene.Update,
// which run on the goroutine owning the window.
var pendingRelease struct {
	mu     sync.Mutex
	scenes []*Scene
}

// registerWithGC queues scene for release if it is garbage
// collected without being released.
func registerWithGC(scene *Scene) *Scene {
	runtime.SetFinalizer(scene, enqueueRelease)
	return scene
}

// unregisterFromGC removes the finalizer installed by registerWithGC.
func unregisterFromGC(scene *Scene) {
	runtime.SetFinalizer(scene, nil)
}

func enqueueRelease(scene *Scene) {
	slog.Warn("Scene was garbage collected, call Release explicitly")

	pendingRelease.mu.Lock()
	defer pendingRelease.mu.Unlock()

	pendingRelease.scenes = append(pendingRelease.scenes, scene)
}

// releasePending releases all scenes queued by the finalizer.
func releasePending() {
	pendingRelease.mu.Lock()
	scenes := pendingRelease.scenes
	pendingRelease.scenes = nil
	pendingRelease.mu.Unlock()

	for _, scene := range scenes {
		scene.Release()
	}
}

func pendingReleaseCount() int {
	pendingRelease.mu.Lock()
	defer pendingRelease.mu.Unlock()

	return len(pendingRelease.scenes)
}

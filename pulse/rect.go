package pulse

import (
	"github.com/oliverbestmann/imstage/glm"
	"golang.org/x/exp/constraints"
)

type numeric interface {
	constraints.Unsigned | constraints.Float
}

type Rectangle2f = Rectangle2[float32]
type Rectangle2u = Rectangle2[uint32]

type Rectangle2[T numeric] struct {
	Min glm.Vec2[T]
	Max glm.Vec2[T]
}

func RectangleFromSize[T numeric](pos glm.Vec2[T], size glm.Vec2[T]) Rectangle2[T] {
	return RectangleFromPoints[T](pos, glm.Vec2[T]{pos[0] + size[0], pos[1] + size[1]})
}

func RectangleFromPoints[T numeric](a, b glm.Vec2[T]) Rectangle2[T] {
	return Rectangle2[T]{
		Min: glm.Vec2[T]{
			min(a[0], b[0]),
			min(a[1], b[1]),
		},
		Max: glm.Vec2[T]{
			max(a[0], b[0]),
			max(a[1], b[1]),
		},
	}
}

// Intersect returns the overlap of both rectangles. The result is
// empty if they do not overlap.
func (r Rectangle2[T]) Intersect(other Rectangle2[T]) Rectangle2[T] {
	minX := max(r.Min[0], other.Min[0])
	minY := max(r.Min[1], other.Min[1])

	maxX := max(min(r.Max[0], other.Max[0]), minX)
	maxY := max(min(r.Max[1], other.Max[1]), minY)

	return Rectangle2[T]{
		Min: glm.Vec2[T]{minX, minY},
		Max: glm.Vec2[T]{maxX, maxY},
	}
}

func (r Rectangle2[T]) Empty() bool {
	return r.Max[0] <= r.Min[0] || r.Max[1] <= r.Min[1]
}

func (r Rectangle2[T]) Width() T {
	return r.Max[0] - r.Min[0]
}

func (r Rectangle2[T]) Height() T {
	return r.Max[1] - r.Min[1]
}

func (r Rectangle2[T]) XYWH() (T, T, T, T) {
	return r.Min[0], r.Min[1], r.Width(), r.Height()
}

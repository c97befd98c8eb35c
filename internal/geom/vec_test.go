package geom_test

import (
	"testing"

	"github.com/KirkDiggler/horde-survivor/internal/geom"
	"github.com/stretchr/testify/assert"
)

func TestVec2(t *testing.T) {
	a := geom.V(3, 4)

	assert.Equal(t, 5.0, a.Len())
	assert.Equal(t, 25.0, a.DistSq(geom.Vec2{}))
	assert.Equal(t, geom.V(4, 6), a.Add(geom.V(1, 2)))
	assert.Equal(t, geom.V(2, 2), a.Sub(geom.V(1, 2)))
	assert.Equal(t, geom.V(6, 8), a.Scale(2))
	assert.InDelta(t, 0.6, a.Normalize().X, 1e-12)
	assert.Equal(t, geom.Vec2{}, geom.Vec2{}.Normalize())
}

func TestPolar(t *testing.T) {
	p := geom.Polar(90, 2)

	assert.InDelta(t, 0, p.X, 1e-12)
	assert.InDelta(t, 2, p.Y, 1e-12)
}

func TestSegmentDist(t *testing.T) {
	a, b := geom.V(0, 0), geom.V(10, 0)

	assert.InDelta(t, 2, geom.SegmentDist(a, b, geom.V(5, 2)), 1e-12)
	assert.InDelta(t, 5, geom.SegmentDist(a, b, geom.V(-3, 4)), 1e-12)
	assert.InDelta(t, 1, geom.SegmentDist(a, b, geom.V(11, 0)), 1e-12)
	assert.InDelta(t, 5, geom.SegmentDist(a, a, geom.V(3, 4)), 1e-12)
}

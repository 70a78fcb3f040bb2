package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petalo-go/petalo/units"
)

func TestVector_Norm_345Triangle_ReturnsFive(t *testing.T) {
	v := Vector{X: 3, Y: 4, Z: 0}
	assert.Equal(t, units.Length(5), v.Norm())
}

func TestVector_Normalize_ReturnsUnitLength(t *testing.T) {
	v := Vector{X: 3, Y: 4, Z: 0}
	n := v.Normalize()
	assert.InDelta(t, 1.0, float64(n.Norm()), 1e-12)
}

func TestVector_Normalize_ZeroVector_ReturnsUnchanged(t *testing.T) {
	v := Vector{}
	assert.Equal(t, v, v.Normalize())
}

func TestVector_ArgMin_ReturnsSmallestComponent(t *testing.T) {
	v := Vector{X: 5, Y: -2, Z: 3}
	idx, val := v.ArgMin()
	assert.Equal(t, 1, idx)
	assert.Equal(t, units.Length(-2), val)
}

func TestPoint_Sub_ReturnsDisplacementFromQToP(t *testing.T) {
	p := Point{X: 1, Y: 2, Z: 3}
	q := Point{X: 0, Y: 0, Z: 0}
	assert.Equal(t, Vector{X: 1, Y: 2, Z: 3}, p.Sub(q))
}

func TestPoint_Add_TranslatesByVector(t *testing.T) {
	p := Point{X: 1, Y: 1, Z: 1}
	got := p.Add(Vector{X: 2, Y: 3, Z: 4})
	assert.Equal(t, Point{X: 3, Y: 4, Z: 5}, got)
}

func TestPoint_Negate_FlipsOnlyTheGivenAxis(t *testing.T) {
	p := Point{X: 1, Y: 2, Z: 3}
	assert.Equal(t, Point{X: -1, Y: 2, Z: 3}, p.Negate(0))
	assert.Equal(t, Point{X: 1, Y: -2, Z: 3}, p.Negate(1))
	assert.Equal(t, Point{X: 1, Y: 2, Z: -3}, p.Negate(2))
}

func TestVector_Floor_RoundsEachComponentDown(t *testing.T) {
	v := Vector{X: 1.9, Y: -1.1, Z: 2.0}
	got := v.Floor()
	assert.Equal(t, Vector{X: 1, Y: -2, Z: 2}, got)
}

func TestVector_Dot_OrthogonalVectors_ReturnsZero(t *testing.T) {
	a := Vector{X: 1, Y: 0, Z: 0}
	b := Vector{X: 0, Y: 1, Z: 0}
	assert.Equal(t, 0.0, a.Dot(b))
}

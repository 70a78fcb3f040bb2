package lor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petalo-go/petalo/geom"
	"github.com/petalo-go/petalo/units"
)

func TestNew_DefaultsAdditiveCorrectionToOne(t *testing.T) {
	l := New(geom.Point{}, geom.Point{X: 1}, 0)
	assert.Equal(t, units.Ratio(1), l.AdditiveCorrection)
}

func TestDirection_UnitVectorAlongX(t *testing.T) {
	l := New(geom.NewPoint(0, 0, 0), geom.NewPoint(10, 0, 0), 0)
	dir, ok := l.Direction()
	assert.True(t, ok)
	assert.InDelta(t, 1.0, float64(dir.X), 1e-12)
	assert.InDelta(t, 0.0, float64(dir.Y), 1e-12)
}

func TestDirection_DegenerateLOR_ReturnsFalse(t *testing.T) {
	l := New(geom.NewPoint(1, 1, 1), geom.NewPoint(1, 1, 1), 0)
	_, ok := l.Direction()
	assert.False(t, ok)
}

func TestLength_MatchesEuclideanDistance(t *testing.T) {
	l := New(geom.NewPoint(0, 0, 0), geom.NewPoint(3, 4, 0), 0)
	assert.Equal(t, units.Length(5), l.Length())
}

func TestIsDegenerate_ZeroLength_ReturnsTrue(t *testing.T) {
	l := New(geom.NewPoint(2, 2, 2), geom.NewPoint(2, 2, 2), 0)
	assert.True(t, l.IsDegenerate())
}

func TestIsDegenerate_NonFiniteCoordinate_ReturnsTrue(t *testing.T) {
	l := New(geom.NewPoint(units.Length(math.NaN()), 0, 0), geom.NewPoint(1, 1, 1), 0)
	assert.True(t, l.IsDegenerate())
}

func TestIsDegenerate_OrdinaryLOR_ReturnsFalse(t *testing.T) {
	l := New(geom.NewPoint(0, 0, 0), geom.NewPoint(1, 0, 0), 0)
	assert.False(t, l.IsDegenerate())
}

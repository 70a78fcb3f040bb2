package phantom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petalo-go/petalo/units"
)

func TestUniformCylinder_Generate_EveryLORHasBothEndpointsOnDetectorRadius(t *testing.T) {
	c := UniformCylinder{
		Radius:         units.Length(100),
		HalfLength:     units.Length(100),
		DetectorRadius: units.Length(200),
	}
	rng := NewRNG(7)

	lors := c.Generate(rng, 50)

	assert.NotEmpty(t, lors)
	for _, l := range lors {
		r1 := float64(l.P1.X)*float64(l.P1.X) + float64(l.P1.Y)*float64(l.P1.Y)
		r2 := float64(l.P2.X)*float64(l.P2.X) + float64(l.P2.Y)*float64(l.P2.Y)
		assert.InDelta(t, 200*200, r1, 1e-3)
		assert.InDelta(t, 200*200, r2, 1e-3)
	}
}

func TestUniformCylinder_Generate_DeterministicForSameSeed(t *testing.T) {
	c := UniformCylinder{Radius: 100, HalfLength: 100, DetectorRadius: 200}

	a := c.Generate(NewRNG(99), 10)
	b := c.Generate(NewRNG(99), 10)

	assert.Equal(t, a, b)
}

func TestUniformCylinder_Generate_WithTimeSigma_ProducesNonZeroDT(t *testing.T) {
	c := UniformCylinder{Radius: 100, HalfLength: 100, DetectorRadius: 200, TimeSigma: 0.2}

	lors := c.Generate(NewRNG(3), 20)

	anyNonZero := false
	for _, l := range lors {
		if l.DT != 0 {
			anyNonZero = true
		}
	}
	assert.True(t, anyNonZero)
}

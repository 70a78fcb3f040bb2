package tof

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petalo-go/petalo/fov"
	"github.com/petalo-go/petalo/geom"
	"github.com/petalo-go/petalo/units"
)

func newTestBox(t *testing.T) *fov.VoxelBox {
	t.Helper()
	box, err := fov.NewVoxelBox(geom.Vector{X: 10, Y: 10, Z: 10}, [3]int{4, 1, 1})
	assert.NoError(t, err)
	return box
}

func TestNew_SegmentMissingFOV_ReturnsErrMissesFOV(t *testing.T) {
	box := newTestBox(t)
	_, err := New(geom.NewPoint(-10, 50, 0), geom.NewPoint(10, 50, 0), 0, 0, box, Config{Sigma: 30})
	assert.True(t, errors.Is(err, ErrMissesFOV))
}

func TestNext_SimultaneousEndpointTimes_WeightsPeakNearSegmentCentre(t *testing.T) {
	box := newTestBox(t)
	w, err := New(geom.NewPoint(-10, -5, -5), geom.NewPoint(10, -5, -5), 0, 0, box, Config{Sigma: 5})
	assert.NoError(t, err)

	var chords []units.Length
	for {
		_, chord, ok := w.Next()
		if !ok {
			break
		}
		chords = append(chords, chord)
	}

	assert.Len(t, chords, 4)
	// The two centre voxels (straddling the geometric midpoint, where
	// equal endpoint times place the TOF peak) should outweigh the two
	// outer ones.
	assert.Greater(t, float64(chords[1]+chords[2]), float64(chords[0]+chords[3]))
}

func TestNext_LargeCutoff_AllWeightsPositive(t *testing.T) {
	box := newTestBox(t)
	cutoff := 10.0
	w, err := New(geom.NewPoint(-10, -5, -5), geom.NewPoint(10, -5, -5), 0, 0, box, Config{Sigma: 5, Cutoff: &cutoff})
	assert.NoError(t, err)

	for {
		_, chord, ok := w.Next()
		if !ok {
			break
		}
		assert.Greater(t, float64(chord), 0.0)
	}
}

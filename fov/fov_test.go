package fov

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petalo-go/petalo/geom"
)

func TestNewVoxelBox_ComputesVoxelSizeFromHalfWidthAndCount(t *testing.T) {
	box, err := NewVoxelBox(geom.Vector{X: 100, Y: 100, Z: 100}, [3]int{10, 10, 10})
	assert.NoError(t, err)
	assert.Equal(t, 20.0, float64(box.VoxelSize.X))
}

func TestNewVoxelBox_NonPositiveVoxelCount_ReturnsConfigError(t *testing.T) {
	_, err := NewVoxelBox(geom.Vector{X: 100, Y: 100, Z: 100}, [3]int{0, 10, 10})
	assert.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNewVoxelBox_NonPositiveHalfWidth_ReturnsConfigError(t *testing.T) {
	_, err := NewVoxelBox(geom.Vector{X: -1, Y: 100, Z: 100}, [3]int{10, 10, 10})
	assert.Error(t, err)
}

func TestVoxelBox_NVoxels_MultipliesAxisCounts(t *testing.T) {
	box, err := NewVoxelBox(geom.Vector{X: 100, Y: 100, Z: 100}, [3]int{4, 5, 6})
	assert.NoError(t, err)
	assert.Equal(t, 120, box.NVoxels())
}

func TestVoxelBox_VoxelCentre_FirstVoxelIsHalfAVoxelFromCorner(t *testing.T) {
	box, err := NewVoxelBox(geom.Vector{X: 10, Y: 10, Z: 10}, [3]int{10, 10, 10})
	assert.NoError(t, err)
	c := box.VoxelCentre([3]int{0, 0, 0})
	assert.InDelta(t, -9.0, float64(c.X), 1e-9)
}

func TestVoxelBox_LinearIndex_XSlowestZFastest(t *testing.T) {
	box, err := NewVoxelBox(geom.Vector{X: 10, Y: 10, Z: 10}, [3]int{2, 2, 2})
	assert.NoError(t, err)
	assert.Equal(t, 0, box.LinearIndex([3]int{0, 0, 0}))
	assert.Equal(t, 1, box.LinearIndex([3]int{0, 0, 1}))
	assert.Equal(t, 2, box.LinearIndex([3]int{0, 1, 0}))
	assert.Equal(t, 4, box.LinearIndex([3]int{1, 0, 0}))
}

func TestVoxelBox_Entry_SegmentThroughCentre_ReturnsFaceCrossing(t *testing.T) {
	box, err := NewVoxelBox(geom.Vector{X: 10, Y: 10, Z: 10}, [3]int{10, 10, 10})
	assert.NoError(t, err)
	entry, ok := box.Entry(geom.NewPoint(-20, 0, 0), geom.NewPoint(20, 0, 0))
	assert.True(t, ok)
	assert.InDelta(t, -10.0, float64(entry.X), 1e-9)
}

func TestVoxelBox_Entry_SegmentMissingBox_ReturnsFalse(t *testing.T) {
	box, err := NewVoxelBox(geom.Vector{X: 10, Y: 10, Z: 10}, [3]int{10, 10, 10})
	assert.NoError(t, err)
	_, ok := box.Entry(geom.NewPoint(-20, 50, 0), geom.NewPoint(20, 50, 0))
	assert.False(t, ok)
}

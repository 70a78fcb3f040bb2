package imgio

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petalo-go/petalo/fov"
	"github.com/petalo-go/petalo/geom"
)

func TestWrite_EmitsRowMajorLittleEndianFloat32(t *testing.T) {
	box, err := fov.NewVoxelBox(geom.Vector{X: 10, Y: 10, Z: 10}, [3]int{2, 1, 1})
	assert.NoError(t, err)
	img := fov.NewImage(box)
	img.Set([3]int{0, 0, 0}, 1.5)
	img.Set([3]int{1, 0, 0}, -2.25)

	path := filepath.Join(t.TempDir(), "out.raw")
	assert.NoError(t, Write(img, path))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Len(t, data, 2*4)

	v0 := math.Float32frombits(binary.LittleEndian.Uint32(data[0:4]))
	v1 := math.Float32frombits(binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, float32(1.5), v0)
	assert.Equal(t, float32(-2.25), v1)
}

func TestPathForIteration_ExpandsTemplate(t *testing.T) {
	got := PathForIteration("out/iter-%03d.raw", 7)
	assert.Equal(t, "out/iter-007.raw", got)
}

func TestWrite_UnwritableDirectory_ReturnsError(t *testing.T) {
	box, err := fov.NewVoxelBox(geom.Vector{X: 10, Y: 10, Z: 10}, [3]int{1, 1, 1})
	assert.NoError(t, err)
	img := fov.NewImage(box)

	err = Write(img, filepath.Join(t.TempDir(), "missing-dir", "out.raw"))

	assert.Error(t, err)
}

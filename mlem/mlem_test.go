package mlem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petalo-go/petalo/fov"
	"github.com/petalo-go/petalo/geom"
	"github.com/petalo-go/petalo/lor"
)

func newTestBox(t *testing.T) *fov.VoxelBox {
	t.Helper()
	box, err := fov.NewVoxelBox(geom.Vector{X: 10, Y: 10, Z: 10}, [3]int{2, 1, 1})
	assert.NoError(t, err)
	return box
}

func TestNew_MismatchedSensitivityShape_ReturnsConfigError(t *testing.T) {
	box := newTestBox(t)
	bad := fov.NewUniform(box, 1.0)
	bad.Data = bad.Data[:1]

	_, err := New(box, nil, bad, Config{})

	assert.Error(t, err)
}

func TestNext_SingleAxialLOR_MatchesHandComputedUpdate(t *testing.T) {
	box := newTestBox(t)
	l := lor.New(geom.NewPoint(-10, -5, -5), geom.NewPoint(10, -5, -5), 0)

	recon, err := New(box, []lor.LOR{l}, nil, Config{Workers: 1})
	assert.NoError(t, err)

	img, err := recon.Next()
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, img.At([3]int{0, 0, 0}), 1e-9)
	assert.InDelta(t, 0.5, img.At([3]int{1, 0, 0}), 1e-9)
	assert.Equal(t, 1, recon.Stats().Iterations)
	assert.Equal(t, 0, recon.Stats().SkippedLORs)
}

func TestNext_DegenerateLOR_IsSkippedNotErrored(t *testing.T) {
	box := newTestBox(t)
	degenerate := lor.New(geom.NewPoint(1, 1, 1), geom.NewPoint(1, 1, 1), 0)

	recon, err := New(box, []lor.LOR{degenerate}, nil, Config{Workers: 1})
	assert.NoError(t, err)

	_, err = recon.Next()
	assert.NoError(t, err)
	assert.Equal(t, 1, recon.Stats().SkippedLORs)
}

func TestNext_LORMissingFOV_IsSkipped(t *testing.T) {
	box := newTestBox(t)
	miss := lor.New(geom.NewPoint(-10, 50, 0), geom.NewPoint(10, 50, 0), 0)

	recon, err := New(box, []lor.LOR{miss}, nil, Config{Workers: 1})
	assert.NoError(t, err)

	_, err = recon.Next()
	assert.NoError(t, err)
	assert.Equal(t, 1, recon.Stats().SkippedLORs)
}

func TestImage_BeforeFirstNext_IsUniformOne(t *testing.T) {
	box := newTestBox(t)
	recon, err := New(box, nil, nil, Config{})
	assert.NoError(t, err)
	assert.Equal(t, 1.0, recon.Image().At([3]int{0, 0, 0}))
}

func TestNext_MultipleWorkers_ProducesSameResultAsSingleWorker(t *testing.T) {
	box := newTestBox(t)
	lors := []lor.LOR{
		lor.New(geom.NewPoint(-10, -5, -5), geom.NewPoint(10, -5, -5), 0),
		lor.New(geom.NewPoint(-10, -5, -5), geom.NewPoint(10, -5, -5), 0),
	}

	single, err := New(box, lors, nil, Config{Workers: 1})
	assert.NoError(t, err)
	imgSingle, err := single.Next()
	assert.NoError(t, err)

	parallel, err := New(box, lors, nil, Config{Workers: 4})
	assert.NoError(t, err)
	imgParallel, err := parallel.Next()
	assert.NoError(t, err)

	assert.InDelta(t, imgSingle.At([3]int{0, 0, 0}), imgParallel.At([3]int{0, 0, 0}), 1e-9)
	assert.InDelta(t, imgSingle.At([3]int{1, 0, 0}), imgParallel.At([3]int{1, 0, 0}), 1e-9)
}

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petalo-go/petalo/scattergram"
)

func testAxes() []scattergram.Axis {
	return []scattergram.Axis{
		scattergram.AxisZ(2, -10, 10),
		scattergram.AxisR(3, 30),
	}
}

func TestAxisIndex_FindsByName(t *testing.T) {
	axes := testAxes()
	assert.Equal(t, 0, axisIndex(axes, "z"))
	assert.Equal(t, 1, axisIndex(axes, "r"))
	assert.Equal(t, -1, axisIndex(axes, "phi"))
}

func TestDecodeFlat_RecoversMixedRadixIndices(t *testing.T) {
	axes := testAxes() // nbins 2 and 3: last axis (r) varies fastest
	for flat := 0; flat < totalBins(axes); flat++ {
		idx := decodeFlat(axes, flat)
		assert.Equal(t, flat/3, idx[0])
		assert.Equal(t, flat%3, idx[1])
	}
}

func TestTotalBins_IsProductOfAxisBinCounts(t *testing.T) {
	assert.Equal(t, 6, totalBins(testAxes()))
}

func TestBinCenter_MidpointOfEachBin(t *testing.T) {
	z := scattergram.AxisZ(2, -10, 10)
	assert.InDelta(t, -5, binCenter(z, 0), 1e-9)
	assert.InDelta(t, 5, binCenter(z, 1), 1e-9)
}

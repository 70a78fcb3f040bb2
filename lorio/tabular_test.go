package lorio

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTabularFile(t *testing.T, records [][tabularFieldCount]float32) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lors.bin")
	buf := make([]byte, 0, len(records)*tabularFieldCount*4)
	for _, rec := range records {
		for _, v := range rec {
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
			buf = append(buf, b[:]...)
		}
	}
	assert.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func TestTabularReader_ReadLORs_ParsesEveryField(t *testing.T) {
	path := writeTabularFile(t, [][tabularFieldCount]float32{
		{1.5, 10, 20, 30, -10, -20, -30, 0.9, 0.8, 511, 511},
	})
	r := TabularReader{Path: path}

	result, err := r.ReadLORs(Filter{})

	assert.NoError(t, err)
	assert.Len(t, result.Records, 1)
	assert.Equal(t, 0, result.Rejected)
	rec := result.Records[0]
	assert.InDelta(t, 1.5, float64(rec.LOR.DT), 1e-5)
	assert.InDelta(t, 10, float64(rec.LOR.P1.X), 1e-5)
	assert.InDelta(t, -30, float64(rec.LOR.P2.Z), 1e-5)
	assert.InDelta(t, 511, rec.E1, 1e-5)
}

func TestTabularReader_ReadLORs_ECutRejectsOutOfRangeEnergies(t *testing.T) {
	path := writeTabularFile(t, [][tabularFieldCount]float32{
		{0, 0, 0, 0, 10, 0, 0, 1, 1, 300, 511},
		{0, 0, 0, 0, 10, 0, 0, 1, 1, 511, 511},
	})
	r := TabularReader{Path: path}

	result, err := r.ReadLORs(Filter{ECut: [2]float32{400, 600}})

	assert.NoError(t, err)
	assert.Len(t, result.Records, 1)
	assert.Equal(t, 1, result.Rejected)
}

func TestTabularReader_ReadLORs_EventRangeLimitsRecords(t *testing.T) {
	path := writeTabularFile(t, [][tabularFieldCount]float32{
		{0, 0, 0, 0, 1, 0, 0, 1, 1, 511, 511},
		{0, 0, 0, 0, 2, 0, 0, 1, 1, 511, 511},
		{0, 0, 0, 0, 3, 0, 0, 1, 1, 511, 511},
	})
	r := TabularReader{Path: path}

	result, err := r.ReadLORs(Filter{EventRange: [2]int{1, 3}})

	assert.NoError(t, err)
	assert.Len(t, result.Records, 2)
	assert.InDelta(t, 2, float64(result.Records[0].LOR.P2.X), 1e-5)
}

func TestTabularReader_ReadLORs_TruncatedFile_ReturnsParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	assert.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))
	r := TabularReader{Path: path}

	_, err := r.ReadLORs(Filter{})

	assert.Error(t, err)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

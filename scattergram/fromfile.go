package scattergram

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/petalo-go/petalo/geom"
	"github.com/petalo-go/petalo/lor"
	"github.com/petalo-go/petalo/units"
)

// classifiedFieldCount is the number of float32 fields in one
// classified-event record: kind (0=True, 1=Scatter), dt, x1,y1,z1,
// x2,y2,z2, e1, e2.
const classifiedFieldCount = 10

// LoadAndFill reads a binary stream of pre-classified coincidence events
// (as produced by an external Monte-Carlo truth source) and fills a new
// Scattergram built over axes. It is the scatter-correction counterpart
// of lorio's measured-LOR readers: same little-endian float32 record
// shape, but every event already carries its True/Scatter label.
func LoadAndFill(path string, axes []Axis) (*Scattergram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scattergram: opening %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file; close error is not actionable

	s := New(axes)
	buf := make([]byte, classifiedFieldCount*4)
	for {
		_, err := io.ReadFull(f, buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scattergram: reading %s: %w", path, err)
		}

		var fields [classifiedFieldCount]float32
		for i := range fields {
			fields[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		}
		kind := True
		if fields[0] != 0 {
			kind = Scatter
		}
		dt, x1, y1, z1, x2, y2, z2 :=
			fields[1], fields[2], fields[3], fields[4],
			fields[5], fields[6], fields[7]
		// fields[8], fields[9] (e1, e2) are carried in the file format for
		// symmetry with the measured-LOR records but unused here: binning
		// is purely geometric.

		l := lor.New(
			geom.NewPoint(units.Length(x1), units.Length(y1), units.Length(z1)),
			geom.NewPoint(units.Length(x2), units.Length(y2), units.Length(z2)),
			units.Time(dt),
		)
		if err := s.FillKind(kind, l); err != nil {
			return nil, fmt.Errorf("scattergram: filling event from %s: %w", path, err)
		}
	}
	return s, nil
}

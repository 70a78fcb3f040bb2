// Package lor defines the Line Of Response record: the segment joining
// two coincident gamma detections, plus the metadata (arrival-time
// difference, per-event correction factor) that the rest of the
// reconstruction pipeline needs.
package lor

import (
	"github.com/petalo-go/petalo/geom"
	"github.com/petalo-go/petalo/units"
)

// LOR is one measured line of response.
type LOR struct {
	P1, P2 geom.Point
	// DT is t1 - t2, the arrival-time difference at the two endpoints.
	DT units.Time
	// AdditiveCorrection is a per-LOR multiplicative correction factor
	// (c_l in the MLEM update). Defaults to 1.
	AdditiveCorrection units.Ratio
}

// New builds a LOR with the default additive correction of 1.
func New(p1, p2 geom.Point, dt units.Time) LOR {
	return LOR{P1: p1, P2: p2, DT: dt, AdditiveCorrection: 1}
}

// Direction returns the unit vector from P1 to P2, and reports false if
// the LOR is degenerate (zero length or non-finite).
func (l LOR) Direction() (geom.Vector, bool) {
	v := l.P2.Sub(l.P1)
	n := v.Norm()
	if !n.IsFinite() || n == 0 {
		return geom.Vector{}, false
	}
	return v.Scale(1.0 / float64(n)), true
}

// Length returns |P2 - P1|.
func (l LOR) Length() units.Length {
	return l.P2.Sub(l.P1).Norm()
}

// IsDegenerate reports whether the LOR should be silently skipped by the
// traversal and MLEM cores: zero length, or any non-finite coordinate.
func (l LOR) IsDegenerate() bool {
	for _, c := range []units.Length{
		l.P1.X, l.P1.Y, l.P1.Z, l.P2.X, l.P2.Y, l.P2.Z,
	} {
		if !c.IsFinite() {
			return true
		}
	}
	return l.Length() == 0
}

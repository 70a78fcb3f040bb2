package scattergram

import (
	"math"

	"github.com/petalo-go/petalo/lor"
)

// Axis maps a LOR to a bin index in one dimension of a Scattergram. It is
// a closed, tagged set of kinds (uniform and cyclic) rather than an open
// plugin interface: every Axis below is built from one of the two
// constructors in this file, each wrapping a named projector function.
type Axis struct {
	name      string
	nbins     int
	low, high float64
	cyclic    bool
	project   func(lor.LOR) float64
}

// NumBins reports the number of bins on the axis.
func (a Axis) NumBins() int { return a.nbins }

// Name reports the axis's short identifier ("z", "dz", "r", "phi"), used
// by the scattergram-inspect CLI command to let a caller select axes by
// name rather than by position.
func (a Axis) Name() string { return a.name }

// Low and High report the axis's range, in whatever unit its project
// function returns (mm for z/dz/r, radians for phi).
func (a Axis) Low() float64  { return a.low }
func (a Axis) High() float64 { return a.high }

// Index returns the bin index of l's projected coordinate on this axis.
// For a non-cyclic axis, ok is false when the coordinate falls outside
// [low, high). A cyclic axis returns ok=true for any non-NaN coordinate;
// a NaN coordinate gives ok=false on either kind of axis.
func (a Axis) Index(l lor.LOR) (int, bool) {
	x := a.project(l)
	if math.IsNaN(x) {
		return 0, false
	}
	if a.cyclic {
		span := a.high - a.low
		for x >= a.high {
			x -= span
		}
		for x < a.low {
			x += span
		}
	} else if x < a.low || x >= a.high {
		return 0, false
	}
	span := a.high - a.low
	idx := int((x - a.low) / span * float64(a.nbins))
	if idx < 0 {
		idx = 0
	}
	if idx >= a.nbins {
		idx = a.nbins - 1
	}
	return idx, true
}

// uniform builds a non-cyclic, equal-width binning of [low, high) into
// nbins bins, projecting LORs with project.
func uniform(name string, nbins int, low, high float64, project func(lor.LOR) float64) Axis {
	return Axis{name: name, nbins: nbins, low: low, high: high, project: project}
}

// cyclic builds a wrap-around binning of [low, high) into nbins bins,
// with no overflow/underflow bins: any coordinate wraps into range first.
func cyclic(name string, nbins int, low, high float64, project func(lor.LOR) float64) Axis {
	return Axis{name: name, nbins: nbins, low: low, high: high, cyclic: true, project: project}
}

// ZOfMidpoint projects a LOR onto the z coordinate of its midpoint.
func zOfMidpoint(l lor.LOR) float64 {
	return (float64(l.P1.Z) + float64(l.P2.Z)) / 2.0
}

// deltaZ projects a LOR onto |z1 - z2|.
func deltaZ(l lor.LOR) float64 {
	return math.Abs(float64(l.P1.Z - l.P2.Z))
}

// radialDistance projects a LOR onto the perpendicular distance of the
// line through p1,p2 from the z axis.
func radialDistance(l lor.LOR) float64 {
	dx := float64(l.P2.X - l.P1.X)
	dy := float64(l.P2.Y - l.P1.Y)
	x1 := float64(l.P1.X)
	y1 := float64(l.P1.Y)
	num := math.Abs(dx*y1 - dy*x1)
	den := math.Sqrt(dx*dx + dy*dy)
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// phi projects a LOR onto atan2(dy, dx). Opposite-direction LORs trace
// the same physical line, which is why Phi is always built as a cyclic
// axis with period pi, not 2*pi.
func phi(l lor.LOR) float64 {
	dx := float64(l.P2.X - l.P1.X)
	dy := float64(l.P2.Y - l.P1.Y)
	return math.Atan2(dy, dx)
}

// AxisZ builds the "z of midpoint" axis over [low, high) mm.
func AxisZ(nbins int, low, high float64) Axis {
	return uniform("z", nbins, low, high, zOfMidpoint)
}

// AxisDZ builds the "|delta z|" axis over [0, max) mm.
func AxisDZ(nbins int, max float64) Axis {
	return uniform("dz", nbins, 0, max, deltaZ)
}

// AxisR builds the radial-distance axis over [0, max) mm.
func AxisR(nbins int, max float64) Axis {
	return uniform("r", nbins, 0, max, radialDistance)
}

// AxisPhi builds the cyclic phi axis with period pi (radians).
func AxisPhi(nbins int) Axis {
	return cyclic("phi", nbins, 0, math.Pi, phi)
}

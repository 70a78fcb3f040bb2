// Package tof wraps a voxel traversal with Time-of-Flight weighting: each
// chord length emitted by the underlying traversal is scaled by a
// Gaussian centred on the most-likely annihilation point implied by the
// two endpoint detection times.
package tof

import (
	"errors"
	"math"

	"github.com/petalo-go/petalo/fov"
	"github.com/petalo-go/petalo/geom"
	"github.com/petalo-go/petalo/traverse"
	"github.com/petalo-go/petalo/units"
)

// ErrMissesFOV is returned by New when the LOR the caller is trying to
// TOF-weight does not intersect the box at all. Constructing a TOF
// adapter over such a LOR is a programmer error: the caller should have
// checked box.Entry (or simply not invoked TOF weighting) before getting
// here, so the condition is surfaced as an error rather than silently
// producing an adapter that can never yield anything.
var ErrMissesFOV = errors.New("tof: cannot weight a LOR that misses the field of view")

// Config holds the TOF parameters for a reconstruction run.
type Config struct {
	// Sigma is the TOF resolution, expressed as a Length (time-domain
	// sigma already multiplied by units.C by the caller).
	Sigma units.Length
	// Cutoff truncates the Gaussian beyond Cutoff*Sigma. Nil disables
	// the cutoff (the Gaussian is evaluated everywhere).
	Cutoff *float64
}

// DefaultCutoff is the conventional truncation of 3 sigma.
const DefaultCutoff = 3.0

// Weighted wraps a *traverse.Traversal, multiplying each yielded chord by
// the Gaussian TOF factor evaluated at the voxel's mid-chord position.
type Weighted struct {
	inner          *traverse.Traversal
	gauss          func(units.Length) units.PerLength
	distanceToPeak units.Length
}

// New builds a Weighted adapter for the LOR p1,p2 with endpoint times
// t1,t2, over box, using the given TOF sigma and cutoff. Returns
// ErrMissesFOV if the LOR does not intersect box.
func New(p1, p2 geom.Point, t1, t2 units.Time, box *fov.VoxelBox, cfg Config) (*Weighted, error) {
	entry, ok := box.Entry(p1, p2)
	if !ok {
		return nil, ErrMissesFOV
	}
	p1ToEntry := entry.Sub(p1).Norm()
	p1ToPeak := 0.5 * (p2.Sub(p1).Norm() + units.LightTravel(t1-t2))

	return &Weighted{
		inner:          traverse.New(p1, p2, box),
		gauss:          makeGauss(cfg.Sigma, cfg.Cutoff),
		distanceToPeak: p1ToPeak - p1ToEntry,
	}, nil
}

// Next yields the next (voxel index, TOF-weighted chord length) pair.
func (w *Weighted) Next() (idx [3]int, chord units.Length, ok bool) {
	idx, delta, ok := w.inner.Next()
	if !ok {
		return idx, 0, false
	}
	mid := w.distanceToPeak - delta/2
	weight := float64(delta) * float64(w.gauss(mid))
	w.distanceToPeak -= delta
	return idx, units.Length(weight), true
}

// makeGauss returns g(x) = (1/(sigma*sqrt(2*pi))) * exp(-0.5*(x/sigma)^2),
// truncated to zero beyond cutoff*sigma (cutoff nil disables truncation).
func makeGauss(sigma units.Length, cutoff *float64) func(units.Length) units.PerLength {
	rootTwoPi := math.Sqrt(2 * math.Pi)
	peakHeight := 1.0 / (float64(sigma) * rootTwoPi)
	limit := math.Inf(1)
	if cutoff != nil {
		limit = *cutoff * float64(sigma)
	}
	return func(dx units.Length) units.PerLength {
		if math.Abs(float64(dx)) >= limit {
			return 0
		}
		y := float64(dx) / float64(sigma)
		return units.PerLength(peakHeight * math.Exp(-0.5*y*y))
	}
}

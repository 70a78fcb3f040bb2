package phantom

import (
	"math"
	"math/rand"

	"github.com/petalo-go/petalo/geom"
	"github.com/petalo-go/petalo/lor"
	"github.com/petalo-go/petalo/units"
)

// UniformCylinder samples back-to-back annihilation LORs from a source
// uniformly distributed inside a cylinder of the given radius and
// half-length, as seen by a detector ring of DetectorRadius. It exists
// so that "reconstruct --demo" and package tests can exercise the full
// pipeline without real detector data.
type UniformCylinder struct {
	Radius         units.Length
	HalfLength     units.Length
	DetectorRadius units.Length
	// TimeSigma, if non-zero, adds Gaussian jitter (ns) to each
	// endpoint's arrival time, so DT is no longer exactly zero.
	TimeSigma units.Time
}

// Generate draws n LORs using rng's geometry and time subsystems.
func (c UniformCylinder) Generate(rng *RNG, n int) []lor.LOR {
	geomRNG := rng.ForSubsystem(SubsystemGeometry)
	timeRNG := rng.ForSubsystem(SubsystemTime)

	out := make([]lor.LOR, 0, n)
	for i := 0; i < n; i++ {
		src := c.sampleSource(geomRNG)
		dir := sampleDirection(geomRNG)

		p1, ok1 := c.project(src, dir)
		p2, ok2 := c.project(src, dir.Scale(-1))
		if !ok1 || !ok2 {
			continue
		}

		dt := units.Time(0)
		if c.TimeSigma > 0 {
			dt = (units.Time(timeRNG.NormFloat64()) - units.Time(timeRNG.NormFloat64())) * c.TimeSigma
		}
		out = append(out, lor.New(p1, p2, dt))
	}
	return out
}

// sampleSource draws a point uniformly inside the cylinder by rejection
// sampling on the disc cross-section (simple, adequate for a demo
// phantom; not intended for statistically exact Monte Carlo work).
func (c UniformCylinder) sampleSource(rng *rand.Rand) geom.Point {
	r := float64(c.Radius)
	for {
		x := (rng.Float64()*2 - 1) * r
		y := (rng.Float64()*2 - 1) * r
		if x*x+y*y <= r*r {
			z := (rng.Float64()*2 - 1) * float64(c.HalfLength)
			return geom.NewPoint(units.Length(x), units.Length(y), units.Length(z))
		}
	}
}

// sampleDirection draws a direction uniformly on the unit sphere.
func sampleDirection(rng *rand.Rand) geom.Vector {
	u := rng.Float64()*2 - 1
	theta := rng.Float64() * 2 * math.Pi
	s := math.Sqrt(1 - u*u)
	return geom.Vector{X: units.Length(s * math.Cos(theta)), Y: units.Length(s * math.Sin(theta)), Z: units.Length(u)}
}

// project extends src along dir until it crosses the detector cylinder,
// returning false if dir never reaches it (should not happen for a
// source strictly inside DetectorRadius, but guarded for safety).
func (c UniformCylinder) project(src geom.Point, dir geom.Vector) (geom.Point, bool) {
	a := float64(dir.X)*float64(dir.X) + float64(dir.Y)*float64(dir.Y)
	if a == 0 {
		return geom.Point{}, false
	}
	b := 2 * (float64(src.X)*float64(dir.X) + float64(src.Y)*float64(dir.Y))
	cc := float64(src.X)*float64(src.X) + float64(src.Y)*float64(src.Y) - float64(c.DetectorRadius)*float64(c.DetectorRadius)
	disc := b*b - 4*a*cc
	if disc < 0 {
		return geom.Point{}, false
	}
	t := (-b + math.Sqrt(disc)) / (2 * a)
	if t < 0 {
		return geom.Point{}, false
	}
	return geom.NewPoint(
		units.Length(float64(src.X)+t*float64(dir.X)),
		units.Length(float64(src.Y)+t*float64(dir.Y)),
		units.Length(float64(src.Z)+t*float64(dir.Z)),
	), true
}

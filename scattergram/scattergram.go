// Package scattergram builds and queries the scatter-correction
// histogram: a multi-axis count of true vs. scattered coincidences,
// keyed on geometric features of each LOR, that yields the additive
// correction term MLEM needs per LOR.
package scattergram

import (
	"errors"
	"math"

	"github.com/petalo-go/petalo/lor"
)

// Prompt classifies an incoming coincidence event.
type Prompt int

const (
	// True marks a coincidence believed to be unscattered.
	True Prompt = iota
	// Scatter marks a coincidence believed to have scattered.
	Scatter
	// Random is reserved for accidental coincidences; FillKind rejects
	// it, and Fill's energy rule never produces it.
	Random
)

// ErrRandomNotSupported is returned by FillKind when asked to record a
// Random-kind event.
var ErrRandomNotSupported = errors.New("scattergram: random-coincidence filling is not supported")

// Scattergram holds two identically-shaped histograms, Trues and
// Scatters, built from the same ordered set of Axis values so that a bin
// index always means the same thing in both.
type Scattergram struct {
	axes     []Axis
	trues    []int
	scatters []int
}

// New builds an empty Scattergram over the given axes. Axis order fixes
// the mixed-radix layout of the flat backing slices: the last axis
// varies fastest.
func New(axes []Axis) *Scattergram {
	n := 1
	for _, a := range axes {
		n *= a.NumBins()
	}
	return &Scattergram{
		axes:     axes,
		trues:    make([]int, n),
		scatters: make([]int, n),
	}
}

// binIndex computes the flat, mixed-radix bin index for l, or ok=false if
// l falls outside the range of any non-cyclic axis.
func (s *Scattergram) binIndex(l lor.LOR) (int, bool) {
	flat := 0
	for _, a := range s.axes {
		idx, ok := a.Index(l)
		if !ok {
			return 0, false
		}
		flat = flat*a.NumBins() + idx
	}
	return flat, true
}

// Fill classifies the event (e1, e2 in keV) as True or Scatter and
// increments the matching histogram at l's bin. NaN coordinates or a bin
// outside any axis's range are silently skipped, matching the
// traversal/MLEM policy of never erroring on bad geometry.
func (s *Scattergram) Fill(l lor.LOR, e1, e2 float64) error {
	for _, c := range []float64{
		float64(l.P1.X), float64(l.P1.Y), float64(l.P1.Z),
		float64(l.P2.X), float64(l.P2.Y), float64(l.P2.Z),
	} {
		if math.IsNaN(c) {
			return nil
		}
	}
	idx, ok := s.binIndex(l)
	if !ok {
		return nil
	}
	if math.Min(e1, e2) < 511.0 {
		s.scatters[idx]++
	} else {
		s.trues[idx]++
	}
	return nil
}

// FillKind increments the given Prompt kind's histogram directly, for
// callers that have already classified the event. Returns
// ErrRandomNotSupported for kind == Random.
func (s *Scattergram) FillKind(kind Prompt, l lor.LOR) error {
	idx, ok := s.binIndex(l)
	if !ok {
		return nil
	}
	switch kind {
	case True:
		s.trues[idx]++
	case Scatter:
		s.scatters[idx]++
	case Random:
		return ErrRandomNotSupported
	}
	return nil
}

// Value returns the scatter-correction ratio for l:
// scatters / (trues + scatters), or 0 when the denominator is zero or l
// falls outside the histogram's range. This is the a_l additive
// correction fed into MLEM; see DESIGN.md for why this formula (rather
// than (trues+scatters)/trues) is the one used here.
func (s *Scattergram) Value(l lor.LOR) float64 {
	idx, ok := s.binIndex(l)
	if !ok {
		return 0
	}
	trues := float64(s.trues[idx])
	scatters := float64(s.scatters[idx])
	if trues+scatters == 0 {
		return 0
	}
	return scatters / (trues + scatters)
}

// Triplet returns (value, trues, scatters) for l, useful for reporting.
func (s *Scattergram) Triplet(l lor.LOR) (value, trues, scatters float64) {
	idx, ok := s.binIndex(l)
	if !ok {
		return 0, 0, 0
	}
	trues = float64(s.trues[idx])
	scatters = float64(s.scatters[idx])
	if trues+scatters == 0 {
		return 0, trues, scatters
	}
	return scatters / (trues + scatters), trues, scatters
}

// Axes returns the axes the Scattergram was built with, for introspection
// by the "scattergram inspect" CLI command.
func (s *Scattergram) Axes() []Axis { return s.axes }

// TruesAt and ScattersAt expose the raw bin counts at a flat mixed-radix
// index, for projection/printing by the CLI inspect command.
func (s *Scattergram) TruesAt(flat int) int    { return s.trues[flat] }
func (s *Scattergram) ScattersAt(flat int) int { return s.scatters[flat] }

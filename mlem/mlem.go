// Package mlem drives the Maximum Likelihood Expectation Maximization
// reconstruction: it turns voxel traversal, optional TOF weighting, and
// an optional scattergram scatter correction into a sequence of
// successively refined images.
package mlem

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/petalo-go/petalo/fov"
	"github.com/petalo-go/petalo/lor"
	"github.com/petalo-go/petalo/scattergram"
	"github.com/petalo-go/petalo/tof"
	"github.com/petalo-go/petalo/units"
)

// voxelStream is satisfied by both *traverse.Traversal and *tof.Weighted,
// letting the reconstruction loop stay agnostic to whether TOF weighting
// is in effect.
type voxelStream interface {
	Next() (idx [3]int, chord units.Length, ok bool)
}

// Config holds the optional knobs for a reconstruction run. The zero
// value reconstructs with no TOF weighting, no scatter correction, and
// one worker goroutine per logical CPU.
type Config struct {
	// TOF, if non-nil, enables time-of-flight weighting of every LOR.
	TOF *tof.Config
	// Scattergram, if non-nil, supplies the additive scatter correction
	// a_l for every LOR.
	Scattergram *scattergram.Scattergram
	// Workers is the number of goroutines that share the LOR set. Zero
	// means runtime.GOMAXPROCS(0).
	Workers int
}

// NumericalError reports a NaN encountered in an image while iterating.
// Numerical breakdown is treated as fatal, and carries enough context
// (the iteration and voxel index, plus the last good image) to debug it.
type NumericalError struct {
	Iteration int
	Voxel     [3]int
	LastGood  *fov.Image
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("mlem: NaN at voxel %v during iteration %d", e.Voxel, e.Iteration)
}

// Stats reports aggregate counters accumulated across calls to Next.
type Stats struct {
	SkippedLORs int
	Iterations  int
}

// Reconstructor produces one MLEM image estimate per call to Next.
type Reconstructor struct {
	box         *fov.VoxelBox
	lors        []lor.LOR
	sensitivity *fov.Image
	cfg         Config
	workers     int

	current *fov.Image
	stats   Stats
}

// New builds a Reconstructor. sensitivity must have the same shape as
// box; pass fov.NewSensitivityAllOnes(box) for the default of uniform 1.
func New(box *fov.VoxelBox, lors []lor.LOR, sensitivity *fov.Image, cfg Config) (*Reconstructor, error) {
	if sensitivity == nil {
		sensitivity = fov.NewSensitivityAllOnes(box)
	}
	if len(sensitivity.Data) != box.NVoxels() {
		return nil, &fov.ConfigError{Msg: "sensitivity image shape does not match voxel box"}
	}
	if cfg.TOF != nil && cfg.TOF.Sigma <= 0 {
		return nil, &fov.ConfigError{Msg: "TOF sigma must be positive"}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Reconstructor{
		box:         box,
		lors:        lors,
		sensitivity: sensitivity,
		cfg:         cfg,
		workers:     workers,
		current:     fov.NewUniform(box, 1.0),
	}, nil
}

// Stats returns the counters accumulated so far.
func (r *Reconstructor) Stats() Stats { return r.stats }

// Image returns the most recently produced estimate (the initial uniform
// image before the first call to Next).
func (r *Reconstructor) Image() *fov.Image { return r.current }

// Next performs one MLEM iteration and returns the new image estimate.
// The engine keeps the previous estimate internally; callers that want
// every iteration's image must retain the returned pointer themselves,
// since each call yields an independent snapshot.
func (r *Reconstructor) Next() (*fov.Image, error) {
	n := len(r.lors)
	chunks := partition(n, r.workers)

	shadows := make([][]float64, len(chunks))
	skipped := make([]int, len(chunks))

	var wg sync.WaitGroup
	for w, chunk := range chunks {
		w, chunk := w, chunk
		wg.Add(1)
		go func() {
			defer wg.Done()
			shadow := make([]float64, r.box.NVoxels())
			skip := 0
			for i := chunk.lo; i < chunk.hi; i++ {
				if !r.accumulate(r.lors[i], shadow) {
					skip++
				}
			}
			shadows[w] = shadow
			skipped[w] = skip
		}()
	}
	wg.Wait()

	backProjection := make([]float64, r.box.NVoxels())
	for _, shadow := range shadows {
		for v, val := range shadow {
			backProjection[v] += val
		}
	}
	for _, s := range skipped {
		r.stats.SkippedLORs += s
	}

	next := fov.NewImage(r.box)
	for v := range next.Data {
		sens := r.sensitivity.Data[v]
		if sens == 0 {
			next.Data[v] = 0
			continue
		}
		val := r.current.Data[v] * backProjection[v] / sens
		if math.IsNaN(val) {
			return nil, &NumericalError{
				Iteration: r.stats.Iterations,
				Voxel:     unflatten(v, r.box.N),
				LastGood:  r.current,
			}
		}
		next.Data[v] = val
	}

	r.stats.Iterations++
	r.current = next
	return next.Clone(), nil
}

// accumulate streams l's voxels twice: once to compute the forward
// projection f_l, once to add w*r_l into shadow. Returns false if l was
// skipped (degenerate, misses the FOV, or f_l is zero/non-finite).
func (r *Reconstructor) accumulate(l lor.LOR, shadow []float64) bool {
	if l.IsDegenerate() {
		return false
	}

	forward := r.openStream(l)
	if forward == nil {
		return false
	}
	var f float64
	for {
		idx, chord, ok := forward.Next()
		if !ok {
			break
		}
		f += float64(chord) * r.current.At(idx)
	}
	if r.cfg.Scattergram != nil {
		f += r.cfg.Scattergram.Value(l)
	}
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	ratio := float64(l.AdditiveCorrection) / f

	back := r.openStream(l)
	if back == nil {
		return false
	}
	for {
		idx, chord, ok := back.Next()
		if !ok {
			break
		}
		shadow[r.box.LinearIndex(idx)] += float64(chord) * ratio
	}
	return true
}

// openStream builds a fresh voxelStream for l: a plain traversal, or a
// TOF-weighted one if cfg.TOF is set. Returns nil if TOF is configured
// but l misses the FOV (tof.New reports this as an error, which here
// just means "no contribution").
func (r *Reconstructor) openStream(l lor.LOR) voxelStream {
	if r.cfg.TOF == nil {
		return newPlainTraversal(l, r.box)
	}
	// l.DT is t1-t2 as measured at the endpoints; splitting it as
	// (DT, 0) preserves that difference without needing two separate
	// absolute timestamps, which the LOR record does not carry.
	w, err := tof.New(l.P1, l.P2, l.DT, 0, r.box, *r.cfg.TOF)
	if err != nil {
		return nil
	}
	return w
}

type chunk struct{ lo, hi int }

// partition splits [0,n) into at most workers contiguous, roughly equal
// chunks. Never returns an empty chunk list for n>0, and never more
// chunks than LORs.
func partition(n, workers int) []chunk {
	if workers > n {
		workers = n
	}
	if workers <= 0 {
		workers = 1
	}
	chunks := make([]chunk, 0, workers)
	base := n / workers
	rem := n % workers
	lo := 0
	for w := 0; w < workers; w++ {
		size := base
		if w < rem {
			size++
		}
		hi := lo + size
		if hi > lo {
			chunks = append(chunks, chunk{lo: lo, hi: hi})
		}
		lo = hi
	}
	return chunks
}

func unflatten(flat int, n [3]int) [3]int {
	z := flat % n[2]
	flat /= n[2]
	y := flat % n[1]
	x := flat / n[1]
	return [3]int{x, y, z}
}

// Package traverse implements the incremental voxel traversal at the
// heart of the reconstruction: given a LOR and a voxel box, it yields,
// in order, every voxel the LOR crosses and the chord length within it.
//
// The algorithm rests on two simplifications. First, voxel size is
// expressed in LOR distance units, so "distance to the next boundary in
// axis k" is a plain scalar, not a geometric intersection to solve afresh
// at every step. Second, axes along which the LOR direction is negative
// are reflected before the walk begins, so the walk itself only ever
// needs to handle positive progress; yielded indices are flipped back to
// the caller's coordinate system on the way out.
package traverse

import (
	"math"

	"github.com/petalo-go/petalo/fov"
	"github.com/petalo-go/petalo/geom"
	"github.com/petalo-go/petalo/units"
)

// SnapEpsilon is the tolerance, in voxel units, below which an entry-point
// coordinate is snapped to exactly zero. Floating-point subtraction from
// half_width routinely leaves a tiny negative residue that would otherwise
// floor to the wrong voxel.
const SnapEpsilon = 1e-7

// Traversal is a finite, non-restartable, single-pass stream of
// (voxel index, chord length) pairs, in the style of bufio.Scanner: call
// Next repeatedly until it reports ok=false.
type Traversal struct {
	inside bool // false once the LOR has left the box, or never entered it

	remaining         geom.Vector // distance to next boundary, each axis
	voxelSizeAlongLOR geom.Vector // LOR-distance needed to cross one voxel
	index             [3]int
	flipped           [3]bool
	n                 [3]int
}

// New constructs a Traversal for the segment p1->p2 through box. A
// degenerate segment (zero length, non-finite endpoint) or one that
// misses the box yields a Traversal whose first Next call returns ok=false.
func New(p1, p2 geom.Point, box *fov.VoxelBox) *Traversal {
	originalDir := p2.Sub(p1)

	var flipped [3]bool
	fp1, fp2 := p1, p2
	for axis := 0; axis < 3; axis++ {
		if originalDir.At(axis) < 0 {
			flipped[axis] = true
			fp1 = fp1.Negate(axis)
			fp2 = fp2.Negate(axis)
		}
	}

	entry, ok := box.Entry(fp1, fp2)
	if !ok {
		return &Traversal{inside: false}
	}

	// Translate so the box's lower corner sits at the origin, then
	// express the entry point in voxel units.
	entryInVoxels := geom.VectorFromPoint(entry).AddV(box.HalfWidth).Div(box.VoxelSize)
	entryInVoxels = snapToZero(entryInVoxels, SnapEpsilon)

	index := entryInVoxels.Floor()
	fraction := entryInVoxels.Sub(index)

	dir := fp2.Sub(fp1)
	unit := dir.Normalize()
	voxelSizeAlongLOR := geom.Vector{
		X: divOrInf(box.VoxelSize.X, unit.X),
		Y: divOrInf(box.VoxelSize.Y, unit.Y),
		Z: divOrInf(box.VoxelSize.Z, unit.Z),
	}

	one := geom.Vector{X: 1, Y: 1, Z: 1}
	remaining := one.Sub(fraction).Mul(voxelSizeAlongLOR)

	return &Traversal{
		inside:            true,
		remaining:         remaining,
		voxelSizeAlongLOR: voxelSizeAlongLOR,
		index:             [3]int{int(index.X), int(index.Y), int(index.Z)},
		flipped:           flipped,
		n:                 box.N,
	}
}

// Next yields the next (voxel index, chord length) pair, or ok=false when
// the LOR has been fully traversed (or never entered the box).
func (t *Traversal) Next() (idx [3]int, chord units.Length, ok bool) {
	if !t.inside {
		return [3]int{}, 0, false
	}

	trueIndex := t.unflip()

	k, delta := t.remaining.ArgMin()

	t.remaining = t.remaining.Sub(geom.Vector{X: delta, Y: delta, Z: delta})

	for axis := 0; axis < 3; axis++ {
		if t.remaining.At(axis) <= 0 {
			t.remaining = t.remaining.Set(axis, t.remaining.At(axis)+t.voxelSizeAlongLOR.At(axis))
			t.index[axis]++
		}
	}

	if t.index[k] >= t.n[k] {
		t.inside = false
	}

	return trueIndex, delta, true
}

func (t *Traversal) unflip() [3]int {
	var out [3]int
	for axis := 0; axis < 3; axis++ {
		if t.flipped[axis] {
			out[axis] = t.n[axis] - 1 - t.index[axis]
		} else {
			out[axis] = t.index[axis]
		}
	}
	return out
}

func divOrInf(a, b units.Length) units.Length {
	if b == 0 {
		return units.Length(math.Inf(1))
	}
	return a / b
}

func snapToZero(v geom.Vector, eps units.Length) geom.Vector {
	snap := func(x units.Length) units.Length {
		if x.Abs() < eps {
			return 0
		}
		return x
	}
	return geom.Vector{X: snap(v.X), Y: snap(v.Y), Z: snap(v.Z)}
}

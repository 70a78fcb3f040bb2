// Package fov models the field of view: the axis-aligned voxel box that
// reconstruction estimates an image over, and the Image type itself.
package fov

import (
	"fmt"

	"github.com/petalo-go/petalo/geom"
	"github.com/petalo-go/petalo/units"
)

// ConfigError reports a structurally invalid FOV or reconstruction
// configuration, detected at startup before any LOR is processed.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "petalo: invalid configuration: " + e.Msg }

// VoxelBox describes the reconstruction volume: its half-widths, the
// number of voxels along each axis, and the derived per-axis voxel size.
// Immutable once constructed; safe to share read-only across goroutines.
type VoxelBox struct {
	HalfWidth geom.Vector
	N         [3]int
	VoxelSize geom.Vector
}

// NewVoxelBox builds a VoxelBox from half-widths and voxel counts,
// enforcing VoxelSize = (2*HalfWidth) / N.
func NewVoxelBox(halfWidth geom.Vector, n [3]int) (*VoxelBox, error) {
	for i, ni := range n {
		if ni <= 0 {
			return nil, &ConfigError{Msg: fmt.Sprintf("axis %d: voxel count must be positive, got %d", i, ni)}
		}
	}
	for i := 0; i < 3; i++ {
		if halfWidth.At(i) <= 0 {
			return nil, &ConfigError{Msg: fmt.Sprintf("axis %d: half-width must be positive, got %v", i, halfWidth.At(i))}
		}
	}
	nl := geom.Vector{
		X: units.Length(n[0]),
		Y: units.Length(n[1]),
		Z: units.Length(n[2]),
	}
	voxelSize := halfWidth.Scale(2).Div(nl)
	return &VoxelBox{HalfWidth: halfWidth, N: n, VoxelSize: voxelSize}, nil
}

// NVoxels returns the total number of voxels in the box.
func (b *VoxelBox) NVoxels() int { return b.N[0] * b.N[1] * b.N[2] }

// VoxelCentre returns the centre, in FOV coordinates, of voxel idx.
func (b *VoxelBox) VoxelCentre(idx [3]int) geom.Point {
	corner := geom.Vector{X: -b.HalfWidth.X, Y: -b.HalfWidth.Y, Z: -b.HalfWidth.Z}
	offset := geom.Vector{
		X: units.Length(float64(idx[0])+0.5) * b.VoxelSize.X,
		Y: units.Length(float64(idx[1])+0.5) * b.VoxelSize.Y,
		Z: units.Length(float64(idx[2])+0.5) * b.VoxelSize.Z,
	}
	return geom.PointFromVector(corner.AddV(offset))
}

// LinearIndex flattens a 3-D voxel index into the row-major offset used
// by Image's backing slice (x slowest, z fastest).
func (b *VoxelBox) LinearIndex(idx [3]int) int {
	return (idx[0]*b.N[1]+idx[1])*b.N[2] + idx[2]
}

// Entry solves the axis-aligned slab intersection of the segment p1->p2
// against this box, returning the point where the segment enters the box.
// Reports ok=false if the segment misses the box (including the tangent
// case, treated as a miss per the traversal contract).
func (b *VoxelBox) Entry(p1, p2 geom.Point) (geom.Point, bool) {
	dir := p2.Sub(p1)
	length := dir.Norm()
	if !length.IsFinite() || length == 0 {
		return geom.Point{}, false
	}
	d := dir.Scale(1.0 / float64(length))

	tIn, tOut := 0.0, float64(length)
	for axis := 0; axis < 3; axis++ {
		lo := -float64(b.HalfWidth.At(axis))
		hi := float64(b.HalfWidth.At(axis))
		p := float64(p1.At(axis))
		dk := float64(d.At(axis))

		if dk == 0 {
			if p <= lo || p >= hi {
				return geom.Point{}, false
			}
			continue
		}
		t0 := (lo - p) / dk
		t1 := (hi - p) / dk
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tIn {
			tIn = t0
		}
		if t1 < tOut {
			tOut = t1
		}
	}
	if tIn >= tOut {
		return geom.Point{}, false
	}
	return p1.Add(d.Scale(tIn)), true
}

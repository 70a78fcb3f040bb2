// Package geom provides 3-component points and vectors of units.Length,
// and the handful of operations the voxel traversal and box-entry tests
// need. It deliberately does not pull in a general-purpose linear-algebra
// library: three components, fixed dimension, no matrices.
package geom

import (
	"math"

	"github.com/petalo-go/petalo/units"
)

// Point is a position in millimetres, measured from the FOV centre.
type Point struct {
	X, Y, Z units.Length
}

// Vector is a displacement in millimetres.
type Vector struct {
	X, Y, Z units.Length
}

// NewPoint builds a Point from raw millimetre components.
func NewPoint(x, y, z units.Length) Point { return Point{x, y, z} }

// Sub returns the vector from q to p (p - q).
func (p Point) Sub(q Point) Vector {
	return Vector{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Add translates p by v.
func (p Point) Add(v Vector) Point {
	return Point{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// At returns the i-th component (0=X, 1=Y, 2=Z). Any i other than 0 or 1
// returns Z.
func (p Point) At(i int) units.Length {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// At returns the i-th component of v.
func (v Vector) At(i int) units.Length {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Set returns a copy of v with component i replaced by x.
func (v Vector) Set(i int, x units.Length) Vector {
	switch i {
	case 0:
		v.X = x
	case 1:
		v.Y = x
	default:
		v.Z = x
	}
	return v
}

// Norm is the Euclidean length of v.
func (v Vector) Norm() units.Length {
	x, y, z := float64(v.X), float64(v.Y), float64(v.Z)
	return units.Length(math.Sqrt(x*x + y*y + z*z))
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged (callers must reject zero-length LORs before normalizing).
func (v Vector) Normalize() Vector {
	n := float64(v.Norm())
	if n == 0 {
		return v
	}
	return Vector{v.X / units.Length(n), v.Y / units.Length(n), v.Z / units.Length(n)}
}

// Scale multiplies every component of v by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * units.Length(s), v.Y * units.Length(s), v.Z * units.Length(s)}
}

// Div divides v component-wise by w.
func (v Vector) Div(w Vector) Vector {
	return Vector{v.X / w.X, v.Y / w.Y, v.Z / w.Z}
}

// Mul multiplies v component-wise by w.
func (v Vector) Mul(w Vector) Vector {
	return Vector{v.X * w.X, v.Y * w.Y, v.Z * w.Z}
}

// AddV adds w to v component-wise.
func (v Vector) AddV(w Vector) Vector {
	return Vector{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub subtracts w from v component-wise.
func (v Vector) Sub(w Vector) Vector {
	return Vector{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Negate returns a copy of p with component i sign-flipped.
func (p Point) Negate(i int) Point {
	switch i {
	case 0:
		p.X = -p.X
	case 1:
		p.Y = -p.Y
	default:
		p.Z = -p.Z
	}
	return p
}

// Dot is the scalar product of v and w, expressed in mm^2.
func (v Vector) Dot(w Vector) float64 {
	return float64(v.X*w.X + v.Y*w.Y + v.Z*w.Z)
}

// Floor applies math.Floor to every component and returns it as a
// Vector whose components happen to be integral.
func (v Vector) Floor() Vector {
	return Vector{
		units.Length(math.Floor(float64(v.X))),
		units.Length(math.Floor(float64(v.Y))),
		units.Length(math.Floor(float64(v.Z))),
	}
}

// ArgMin returns the index and value of the smallest component of v.
func (v Vector) ArgMin() (int, units.Length) {
	idx, val := 0, v.X
	if v.Y < val {
		idx, val = 1, v.Y
	}
	if v.Z < val {
		idx, val = 2, v.Z
	}
	return idx, val
}

// PointFromVector reinterprets a Vector as a Point (used once box
// coordinates have been translated to the voxel-grid origin).
func PointFromVector(v Vector) Point { return Point{v.X, v.Y, v.Z} }

// VectorFromPoint reinterprets a Point as a Vector relative to the origin.
func VectorFromPoint(p Point) Vector { return Vector{p.X, p.Y, p.Z} }

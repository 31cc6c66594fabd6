package content

import "math"

// Matrix represents a 2D transformation matrix [a b c d e f]. Points are
// row vectors, so m.Multiply(n) applies m first and then n.
type Matrix struct {
	A, B, C, D, E, F float64
}

// IdentityMatrix returns an identity matrix
func IdentityMatrix() Matrix {
	return Matrix{A: 1, B: 0, C: 0, D: 1, E: 0, F: 0}
}

// NewMatrix creates a matrix from its six components
func NewMatrix(a, b, c, d, e, f float64) Matrix {
	return Matrix{A: a, B: b, C: c, D: d, E: e, F: f}
}

// Multiply multiplies two matrices
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.C,
		B: m.A*other.B + m.B*other.D,
		C: m.C*other.A + m.D*other.C,
		D: m.C*other.B + m.D*other.D,
		E: m.E*other.A + m.F*other.C + other.E,
		F: m.E*other.B + m.F*other.D + other.F,
	}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(x, y float64) (float64, float64) {
	newX := m.A*x + m.C*y + m.E
	newY := m.B*x + m.D*y + m.F
	return newX, newY
}

// Determinant returns ad - bc
func (m Matrix) Determinant() float64 {
	return m.A*m.D - m.B*m.C
}

// Scale creates a scaling matrix
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, B: 0, C: 0, D: sy, E: 0, F: 0}
}

// Translate creates a translation matrix
func Translate(tx, ty float64) Matrix {
	return Matrix{A: 1, B: 0, C: 0, D: 1, E: tx, F: ty}
}

// Vector is a point (x, y, 1) in homogeneous coordinates
type Vector struct {
	X, Y float64
}

// Transform maps the point through m, translation included
func (v Vector) Transform(m Matrix) Vector {
	x, y := m.Transform(v.X, v.Y)
	return Vector{X: x, Y: y}
}

// Subtract returns v - o
func (v Vector) Subtract(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Add returns v + o
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Cross returns the z component of the cross product v × o
func (v Vector) Cross(o Vector) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Dot returns the dot product
func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Length returns the Euclidean length
func (v Vector) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns the squared length
func (v Vector) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector in the direction of v. The zero vector
// normalizes to itself.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vector{X: v.X / l, Y: v.Y / l}
}

// LineSegment is a directed segment in user space
type LineSegment struct {
	Start, End Vector
}

// Length returns the segment length
func (s LineSegment) Length() float64 {
	return s.End.Subtract(s.Start).Length()
}

// Direction returns the unit direction from Start to End
func (s LineSegment) Direction() Vector {
	return s.End.Subtract(s.Start).Normalize()
}

package scene

import (
	"math"
	"strconv"
)

// WorldRight, WorldUp and WorldBack are unit vectors along the global +X, +Y and +Z axes.
var (
	WorldRight = NewVector(1, 0, 0)
	WorldUp    = NewVector(0, 1, 0)
	WorldBack  = NewVector(0, 0, 1)
)

// Vector represents a 3D Vector, used for positions, scales and Euler rotations.
// The fourth component, W, is only used when a Vector holds a row of a Matrix4.
// Any Vector functions that modify the calling Vector return copies of the modified Vector, so method-chaining is easy.
type Vector struct {
	X float64 // The X (1st) component of the Vector
	Y float64 // The Y (2nd) component of the Vector
	Z float64 // The Z (3rd) component of the Vector
	W float64 // The w (4th) component of the Vector; not used for most Vector functions
}

// NewVector creates a new Vector with the specified x, y, and z components.
func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// NewVectorFromArray creates a new Vector out of a [3]float64, as glTF and the group inserter store vectors.
func NewVectorFromArray(v [3]float64) Vector {
	return Vector{X: v[0], Y: v[1], Z: v[2]}
}

// Array returns the X, Y and Z components of the Vector as a [3]float64.
func (vec Vector) Array() [3]float64 {
	return [3]float64{vec.X, vec.Y, vec.Z}
}

// Add returns a copy of the calling vector, added together with the other Vector provided (ignoring the W component).
func (vec Vector) Add(other Vector) Vector {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Cross returns a new Vector, indicating the cross product of the calling Vector and the provided Other Vector.
func (vec Vector) Cross(other Vector) Vector {

	ogVecY := vec.Y
	ogVecZ := vec.Z

	vec.Z = vec.X*other.Y - other.X*vec.Y
	vec.Y = ogVecZ*other.X - other.Z*vec.X
	vec.X = ogVecY*other.Z - other.Y*ogVecZ

	return vec

}

// Invert returns a copy of the Vector with all components negated.
func (vec Vector) Invert() Vector {
	vec.X = -vec.X
	vec.Y = -vec.Y
	vec.Z = -vec.Z
	vec.W = -vec.W
	return vec
}

// Magnitude returns the length of the Vector (ignoring the Vector's W component).
func (vec Vector) Magnitude() float64 {
	return math.Sqrt(vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z)
}

// Unit returns a copy of the Vector, normalized (set to be of unit length).
// It does not alter the W component of the Vector.
func (vec Vector) Unit() Vector {
	l := vec.Magnitude()
	if l < 1e-8 {
		// If it's 0, then don't modify the vector
		return vec
	}
	vec.X, vec.Y, vec.Z = vec.X/l, vec.Y/l, vec.Z/l
	return vec
}

// Scale scales a Vector by the given scalar (ignoring the W component).
func (vec Vector) Scale(scalar float64) Vector {
	vec.X *= scalar
	vec.Y *= scalar
	vec.Z *= scalar
	return vec
}

// Dot returns the dot product of a Vector and another Vector (ignoring the W component).
func (vec Vector) Dot(other Vector) float64 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// Equals returns true if the two Vectors are close enough in all values (excluding W).
func (vec Vector) Equals(other Vector) bool {

	eps := 1e-6

	if math.Abs(vec.X-other.X) > eps || math.Abs(vec.Y-other.Y) > eps || math.Abs(vec.Z-other.Z) > eps {
		return false
	}

	return true

}

// IsZero returns true if the values in the Vector are extremely close to 0 (excluding W).
func (vec Vector) IsZero() bool {
	return vec.Equals(Vector{})
}

func (vec Vector) String() string {
	floatTruncation := 2
	return "[" + strconv.FormatFloat(vec.X, 'f', floatTruncation, 64) + ", " + strconv.FormatFloat(vec.Y, 'f', floatTruncation, 64) + ", " + strconv.FormatFloat(vec.Z, 'f', floatTruncation, 64) + "]"
}

package scene

import "math"

// Quaternion represents a rotation, stored the way glTF stores node rotations ([x, y, z, w]).
type Quaternion struct {
	X, Y, Z, W float64
}

// NewQuaternion returns a new Quaternion with the given components.
func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{x, y, z, w}
}

// NewQuaternionFromArray returns a new Quaternion from a glTF-ordered [x, y, z, w] array.
func NewQuaternionFromArray(q [4]float64) Quaternion {
	return Quaternion{q[0], q[1], q[2], q[3]}
}

// Array returns the Quaternion as a glTF-ordered [x, y, z, w] array.
func (quat Quaternion) Array() [4]float64 {
	return [4]float64{quat.X, quat.Y, quat.Z, quat.W}
}

// Dot returns the dot product of the Quaternion and another Quaternion.
func (quat Quaternion) Dot(other Quaternion) float64 {
	return quat.X*other.X + quat.Y*other.Y + quat.Z*other.Z + quat.W*other.W
}

// Unit returns a normalized copy of the Quaternion. A zero Quaternion becomes the identity rotation.
func (quat Quaternion) Unit() Quaternion {
	l := math.Sqrt(quat.Dot(quat))
	if l < 1e-8 {
		return NewQuaternion(0, 0, 0, 1)
	}
	return NewQuaternion(quat.X/l, quat.Y/l, quat.Z/l, quat.W/l)
}

// ToMatrix4 returns a rotation Matrix4 representing the Quaternion's rotation.
func (quat Quaternion) ToMatrix4() Matrix4 {

	q := quat.Unit()
	x, y, z, w := q.X, q.Y, q.Z, q.W

	mat := NewMatrix4()

	mat[0][0] = 1 - 2*(y*y+z*z)
	mat[0][1] = 2 * (x*y + z*w)
	mat[0][2] = 2 * (x*z - y*w)

	mat[1][0] = 2 * (x*y - z*w)
	mat[1][1] = 1 - 2*(x*x+z*z)
	mat[1][2] = 2 * (y*z + x*w)

	mat[2][0] = 2 * (x*z + y*w)
	mat[2][1] = 2 * (y*z - x*w)
	mat[2][2] = 1 - 2*(x*x+y*y)

	return mat

}

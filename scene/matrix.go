package scene

import (
	"math"
	"strconv"
)

// Matrix4 represents a 4x4 matrix for translation, scale, and rotation. A Matrix4 is row-major (i.e. the X axis is matrix[0]),
// and vectors are multiplied as rows, so a Node's world transform is Scale * Rotation * Translation * ParentTransform.
type Matrix4 [4][4]float64

// NewMatrix4 returns a new identity Matrix4.
func NewMatrix4() Matrix4 {

	mat := Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	return mat

}

// Clone clones the Matrix4, returning a new copy.
func (matrix Matrix4) Clone() Matrix4 {
	return matrix
}

// Set allows you to set the Matrix4 to the same values as another Matrix4.
func (matrix *Matrix4) Set(other Matrix4) {
	for y := 0; y < len(matrix); y++ {
		for x := 0; x < len(matrix[y]); x++ {
			matrix[y][x] = other[y][x]
		}
	}
}

// NewMatrix4Translate returns a new identity Matrix4, but with the x, y, and z translation components set as provided.
func NewMatrix4Translate(x, y, z float64) Matrix4 {
	mat := NewMatrix4()
	mat[3][0] = x
	mat[3][1] = y
	mat[3][2] = z
	return mat
}

// NewMatrix4Scale returns a new identity Matrix4, but with the scale components set as provided. 1, 1, 1 is the default.
func NewMatrix4Scale(x, y, z float64) Matrix4 {
	mat := NewMatrix4()
	mat[0][0] = x
	mat[1][1] = y
	mat[2][2] = z
	return mat
}

// NewMatrix4Rotate returns a new Matrix4 designed to rotate by the angle given (in radians) along the axis given [x, y, z].
// This rotation works as though you pierced the object utilizing the matrix through by the axis, and then rotated it
// counter-clockwise by the angle in radians.
func NewMatrix4Rotate(x, y, z, angle float64) Matrix4 {

	// Default to spinning on +Y axis if there is no valid axis
	if x == 0 && y == 0 && z == 0 {
		y = 1
	}

	mat := NewMatrix4()
	vector := Vector{X: x, Y: y, Z: z}.Unit()
	s := math.Sin(angle)
	c := math.Cos(angle)
	m := 1 - c

	mat[0][0] = m*vector.X*vector.X + c
	mat[0][1] = m*vector.X*vector.Y + vector.Z*s
	mat[0][2] = m*vector.Z*vector.X - vector.Y*s

	mat[1][0] = m*vector.X*vector.Y - vector.Z*s
	mat[1][1] = m*vector.Y*vector.Y + c
	mat[1][2] = m*vector.Y*vector.Z + vector.X*s

	mat[2][0] = m*vector.Z*vector.X + vector.Y*s
	mat[2][1] = m*vector.Y*vector.Z - vector.X*s
	mat[2][2] = m*vector.Z*vector.Z + c

	return mat

}

// NewMatrix4RotateFromEuler creates a rotation Matrix4 from the euler values (in radians) contained within the
// Vector. The rotation order is XYZ: the X rotation is applied first, then Y, then Z.
func NewMatrix4RotateFromEuler(euler Vector) Matrix4 {
	return NewMatrix4Rotate(1, 0, 0, euler.X).Mult(NewMatrix4Rotate(0, 1, 0, euler.Y)).Mult(NewMatrix4Rotate(0, 0, 1, euler.Z))
}

// NewMatrix4Compose builds a transform Matrix4 out of the position, scale, and rotation provided (the inverse of Decompose).
func NewMatrix4Compose(position, scale Vector, rotation Matrix4) Matrix4 {
	transform := NewMatrix4Scale(scale.X, scale.Y, scale.Z)
	transform = transform.Mult(rotation)
	return transform.Mult(NewMatrix4Translate(position.X, position.Y, position.Z))
}

// ToEuler converts the rotation portion of the Matrix to XYZ euler values (in radians), returned in the form of a Vector.
// It is the inverse of NewMatrix4RotateFromEuler.
func (matrix Matrix4) ToEuler() Vector {

	vec := Vector{}

	sy := -matrix[0][2]
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}
	vec.Y = math.Asin(sy)

	if math.Abs(math.Cos(vec.Y)) > 1e-6 {
		vec.X = math.Atan2(matrix[1][2], matrix[2][2])
		vec.Z = math.Atan2(matrix[0][1], matrix[0][0])
	} else {
		// Gimbal lock; fold the Z rotation into X
		vec.X = math.Atan2(-matrix[2][1], matrix[1][1])
		vec.Z = 0
	}

	return vec

}

// ToQuaternion returns a Quaternion representative of the Matrix4's rotation (assuming it is just a purely rotational Matrix4).
func (matrix Matrix4) ToQuaternion() Quaternion {

	m := matrix
	trace := m[0][0] + m[1][1] + m[2][2]

	if trace > 0 {
		s := math.Sqrt(trace+1) * 2
		return NewQuaternion(
			(m[1][2]-m[2][1])/s,
			(m[2][0]-m[0][2])/s,
			(m[0][1]-m[1][0])/s,
			s/4,
		)
	} else if m[0][0] > m[1][1] && m[0][0] > m[2][2] {
		s := math.Sqrt(1+m[0][0]-m[1][1]-m[2][2]) * 2
		return NewQuaternion(
			s/4,
			(m[1][0]+m[0][1])/s,
			(m[2][0]+m[0][2])/s,
			(m[1][2]-m[2][1])/s,
		)
	} else if m[1][1] > m[2][2] {
		s := math.Sqrt(1+m[1][1]-m[0][0]-m[2][2]) * 2
		return NewQuaternion(
			(m[1][0]+m[0][1])/s,
			s/4,
			(m[2][1]+m[1][2])/s,
			(m[2][0]-m[0][2])/s,
		)
	}

	s := math.Sqrt(1+m[2][2]-m[0][0]-m[1][1]) * 2
	return NewQuaternion(
		(m[2][0]+m[0][2])/s,
		(m[2][1]+m[1][2])/s,
		s/4,
		(m[0][1]-m[1][0])/s,
	)

}

// Decompose decomposes the Matrix4 and returns three components - the position (a 3D Vector), scale (another 3D Vector), and rotation (a Matrix4)
// indicated by the Matrix4. Sheared matrices don't decompose exactly. A mirrored matrix (negative determinant) is
// decomposed with a negative X scale, so the returned rotation is always a proper rotation.
func (matrix Matrix4) Decompose() (Vector, Vector, Matrix4) {

	position := Vector{X: matrix[3][0], Y: matrix[3][1], Z: matrix[3][2]}

	right := Vector{X: matrix[0][0], Y: matrix[0][1], Z: matrix[0][2]}
	up := Vector{X: matrix[1][0], Y: matrix[1][1], Z: matrix[1][2]}
	forward := Vector{X: matrix[2][0], Y: matrix[2][1], Z: matrix[2][2]}

	scale := Vector{X: right.Magnitude(), Y: up.Magnitude(), Z: forward.Magnitude()}

	if right.Cross(up).Dot(forward) < 0 {
		scale.X = -scale.X
		right = right.Invert()
	}

	rotation := NewMatrix4()
	rotation.SetRow(0, right.Unit())
	rotation.SetRow(1, up.Unit())
	rotation.SetRow(2, forward.Unit())

	return position, scale, rotation

}

// Inverted returns an inverted version of the Matrix4. A singular Matrix4 (i.e. one with a zero scale) has no inverse,
// so an identity Matrix4 is returned instead.
func (matrix Matrix4) Inverted() Matrix4 {
	// Adapted from https://stackoverflow.com/questions/1148309/inverting-a-4x4-matrix

	var A2323 = matrix[2][2]*matrix[3][3] - matrix[2][3]*matrix[3][2]
	var A1323 = matrix[2][1]*matrix[3][3] - matrix[2][3]*matrix[3][1]
	var A1223 = matrix[2][1]*matrix[3][2] - matrix[2][2]*matrix[3][1]
	var A0323 = matrix[2][0]*matrix[3][3] - matrix[2][3]*matrix[3][0]
	var A0223 = matrix[2][0]*matrix[3][2] - matrix[2][2]*matrix[3][0]
	var A0123 = matrix[2][0]*matrix[3][1] - matrix[2][1]*matrix[3][0]
	var A2313 = matrix[1][2]*matrix[3][3] - matrix[1][3]*matrix[3][2]
	var A1313 = matrix[1][1]*matrix[3][3] - matrix[1][3]*matrix[3][1]
	var A1213 = matrix[1][1]*matrix[3][2] - matrix[1][2]*matrix[3][1]
	var A2312 = matrix[1][2]*matrix[2][3] - matrix[1][3]*matrix[2][2]
	var A1312 = matrix[1][1]*matrix[2][3] - matrix[1][3]*matrix[2][1]
	var A1212 = matrix[1][1]*matrix[2][2] - matrix[1][2]*matrix[2][1]
	var A0313 = matrix[1][0]*matrix[3][3] - matrix[1][3]*matrix[3][0]
	var A0213 = matrix[1][0]*matrix[3][2] - matrix[1][2]*matrix[3][0]
	var A0312 = matrix[1][0]*matrix[2][3] - matrix[1][3]*matrix[2][0]
	var A0212 = matrix[1][0]*matrix[2][2] - matrix[1][2]*matrix[2][0]
	var A0113 = matrix[1][0]*matrix[3][1] - matrix[1][1]*matrix[3][0]
	var A0112 = matrix[1][0]*matrix[2][1] - matrix[1][1]*matrix[2][0]

	var det = matrix[0][0]*(matrix[1][1]*A2323-matrix[1][2]*A1323+matrix[1][3]*A1223) -
		matrix[0][1]*(matrix[1][0]*A2323-matrix[1][2]*A0323+matrix[1][3]*A0223) +
		matrix[0][2]*(matrix[1][0]*A1323-matrix[1][1]*A0323+matrix[1][3]*A0123) -
		matrix[0][3]*(matrix[1][0]*A1223-matrix[1][1]*A0223+matrix[1][2]*A0123)

	if det == 0 {
		return NewMatrix4()
	}

	det = 1 / det

	m := NewMatrix4()

	m[0][0] = det * (matrix[1][1]*A2323 - matrix[1][2]*A1323 + matrix[1][3]*A1223)
	m[0][1] = det * -(matrix[0][1]*A2323 - matrix[0][2]*A1323 + matrix[0][3]*A1223)
	m[0][2] = det * (matrix[0][1]*A2313 - matrix[0][2]*A1313 + matrix[0][3]*A1213)
	m[0][3] = det * -(matrix[0][1]*A2312 - matrix[0][2]*A1312 + matrix[0][3]*A1212)
	m[1][0] = det * -(matrix[1][0]*A2323 - matrix[1][2]*A0323 + matrix[1][3]*A0223)
	m[1][1] = det * (matrix[0][0]*A2323 - matrix[0][2]*A0323 + matrix[0][3]*A0223)
	m[1][2] = det * -(matrix[0][0]*A2313 - matrix[0][2]*A0313 + matrix[0][3]*A0213)
	m[1][3] = det * (matrix[0][0]*A2312 - matrix[0][2]*A0312 + matrix[0][3]*A0212)
	m[2][0] = det * (matrix[1][0]*A1323 - matrix[1][1]*A0323 + matrix[1][3]*A0123)
	m[2][1] = det * -(matrix[0][0]*A1323 - matrix[0][1]*A0323 + matrix[0][3]*A0123)
	m[2][2] = det * (matrix[0][0]*A1313 - matrix[0][1]*A0313 + matrix[0][3]*A0113)
	m[2][3] = det * -(matrix[0][0]*A1312 - matrix[0][1]*A0312 + matrix[0][3]*A0112)
	m[3][0] = det * -(matrix[1][0]*A1223 - matrix[1][1]*A0223 + matrix[1][2]*A0123)
	m[3][1] = det * (matrix[0][0]*A1223 - matrix[0][1]*A0223 + matrix[0][2]*A0123)
	m[3][2] = det * -(matrix[0][0]*A1213 - matrix[0][1]*A0213 + matrix[0][2]*A0113)
	m[3][3] = det * (matrix[0][0]*A1212 - matrix[0][1]*A0212 + matrix[0][2]*A0112)

	return m

}

// Equals returns true if the matrix equals the same values in the provided Other Matrix4.
func (matrix Matrix4) Equals(other Matrix4) bool {

	eps := 0.0001 // epsilon floating point error value
	for i := 0; i < len(matrix); i++ {
		for j := 0; j < len(matrix[i]); j++ {
			if math.Abs(matrix[i][j]-other[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

var identityMatrix = NewMatrix4()

// IsIdentity returns true if the matrix is an unmodified identity matrix.
func (matrix Matrix4) IsIdentity() bool {
	return matrix.Equals(identityMatrix)
}

// IsZero returns true if every element of the Matrix4 is zero.
func (matrix Matrix4) IsZero() bool {
	return matrix == Matrix4{}
}

// Row returns the indiced row from the Matrix4 as a Vector (including W).
func (matrix Matrix4) Row(rowIndex int) Vector {
	vec := Vector{
		X: matrix[rowIndex][0],
		Y: matrix[rowIndex][1],
		Z: matrix[rowIndex][2],
		W: matrix[rowIndex][3],
	}
	return vec
}

// SetRow sets the Matrix4 with the row in rowIndex set to the 4D vector passed.
func (matrix *Matrix4) SetRow(rowIndex int, vec Vector) {
	matrix[rowIndex][0] = vec.X
	matrix[rowIndex][1] = vec.Y
	matrix[rowIndex][2] = vec.Z
	matrix[rowIndex][3] = vec.W
}

// MultVec multiplies the vector provided by the Matrix4, giving a vector that has been rotated, scaled, or translated as desired.
func (matrix Matrix4) MultVec(vect Vector) Vector {

	return Vector{
		X: matrix[0][0]*vect.X + matrix[1][0]*vect.Y + matrix[2][0]*vect.Z + matrix[3][0],
		Y: matrix[0][1]*vect.X + matrix[1][1]*vect.Y + matrix[2][1]*vect.Z + matrix[3][1],
		Z: matrix[0][2]*vect.X + matrix[1][2]*vect.Y + matrix[2][2]*vect.Z + matrix[3][2],
	}

}

// Mult multiplies a Matrix4 by another provided Matrix4 - this effectively combines them.
func (matrix Matrix4) Mult(other Matrix4) Matrix4 {

	newMat := Matrix4{}

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			newMat[i][j] = matrix[i][0]*other[0][j] + matrix[i][1]*other[1][j] + matrix[i][2]*other[2][j] + matrix[i][3]*other[3][j]
		}
	}

	return newMat

}

// ToFloats returns the Matrix4 as a flat, column-major array, as glTF stores node matrices.
func (matrix Matrix4) ToFloats() [16]float64 {
	out := [16]float64{}
	for r := range matrix {
		for c := range matrix[r] {
			out[r*4+c] = matrix[r][c]
		}
	}
	return out
}

// NewMatrix4FromFloats creates a Matrix4 out of a flat array laid out the way ToFloats returns it.
func NewMatrix4FromFloats(floats [16]float64) Matrix4 {
	mat := Matrix4{}
	for i, f := range floats {
		mat[i/4][i%4] = f
	}
	return mat
}

func (matrix Matrix4) String() string {
	s := "{"
	for i, y := range matrix {
		for _, x := range y {
			s += strconv.FormatFloat(x, 'f', -1, 64) + ", "
		}
		if i < len(matrix)-1 {
			s += "\n"
		}
	}
	s += "}"
	return s
}

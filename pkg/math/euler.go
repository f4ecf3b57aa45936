package math

// Euler holds rotation as euler angles in radians, one per axis.
type Euler struct {
	X, Y, Z float32
}

// Matrix returns the rotation matrix for these angles.
// Rotations are applied in Z, then X, then Y order.
func (e Euler) Matrix() Mat4 {
	return RotateY(e.Y).Mul(RotateX(e.X)).Mul(RotateZ(e.Z))
}

// Add returns e + other, component-wise.
func (e Euler) Add(other Euler) Euler {
	return Euler{e.X + other.X, e.Y + other.Y, e.Z + other.Z}
}

// IsZero reports whether all angles are zero.
func (e Euler) IsZero() bool {
	return e.X == 0 && e.Y == 0 && e.Z == 0
}

package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatToMat4(t *testing.T) {
	// Identity quaternion should produce identity matrix
	m := QuatIdentity().ToMat4()

	if !m.ApproxEqual(Identity(), 0.0001) {
		t.Errorf("Identity quat should produce identity matrix, got %v", m)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis, axis given unnormalized
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 5, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatMulComposesAngles(t *testing.T) {
	z := Vec3{Z: 1}
	a := QuatFromAxisAngle(z, float32(math.Pi/2))
	b := QuatFromAxisAngle(z, float32(math.Pi/2))

	got := a.Mul(b).Normalize()
	if math.Abs(float64(got.Angle())-math.Pi) > 0.001 {
		t.Errorf("90 + 90 degrees should give 180, got %v rad", got.Angle())
	}
}

func TestQuatMatchesRotateZ(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{Z: 1}, 0.6)

	if !q.ToMat4().ApproxEqual(RotateZ(0.6), 0.0001) {
		t.Errorf("quaternion matrix %v differs from RotateZ %v", q.ToMat4(), RotateZ(0.6))
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2))
	got := q.Rotate(Vec3{X: 1})

	if !got.ApproxEqual(Vec3{Z: -1}, 0.001) {
		t.Errorf("Rotate (1,0,0) 90 degrees about Y: got %v, want (0,0,-1)", got)
	}
}

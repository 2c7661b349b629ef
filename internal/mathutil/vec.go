package mathutil

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Number is any integer or floating point kind a vector can hold.
type Number interface {
	constraints.Integer | constraints.Float
}

// Vec2 is a 2-component vector (value type).
type Vec2[T Number] struct {
	X, Y T
}

// Vec3 is a 3-component vector (value type).
type Vec3[T Number] struct {
	X, Y, Z T
}

type (
	Vec2i = Vec2[int]
	Vec2f = Vec2[float64]
	Vec3i = Vec3[int]
	Vec3f = Vec3[float64]
)

func (a Vec2[T]) Add(b Vec2[T]) Vec2[T] {
	return Vec2[T]{a.X + b.X, a.Y + b.Y}
}

func (a Vec2[T]) Sub(b Vec2[T]) Vec2[T] {
	return Vec2[T]{a.X - b.X, a.Y - b.Y}
}

// Scale multiplies in float64 and converts back to T by truncation.
func (v Vec2[T]) Scale(s float64) Vec2[T] {
	return Vec2[T]{T(float64(v.X) * s), T(float64(v.Y) * s)}
}

func (a Vec3[T]) Add(b Vec3[T]) Vec3[T] {
	return Vec3[T]{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Vec3[T]) Sub(b Vec3[T]) Vec3[T] {
	return Vec3[T]{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale multiplies in float64 and converts back to T by truncation.
func (v Vec3[T]) Scale(s float64) Vec3[T] {
	return Vec3[T]{T(float64(v.X) * s), T(float64(v.Y) * s), T(float64(v.Z) * s)}
}

func (a Vec3[T]) Dot(b Vec3[T]) T {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func (a Vec3[T]) Cross(b Vec3[T]) Vec3[T] {
	return Vec3[T]{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Norm is the Euclidean length.
func (v Vec3[T]) Norm() float64 {
	x, y, z := float64(v.X), float64(v.Y), float64(v.Z)
	return math.Sqrt(x*x + y*y + z*z)
}

// Normalize returns the unit vector in float64. The zero vector stays zero.
func (v Vec3[T]) Normalize() Vec3f {
	l := v.Norm()
	if l < 1e-12 {
		return Vec3f{}
	}
	return Vec3f{float64(v.X) / l, float64(v.Y) / l, float64(v.Z) / l}
}

// XY drops the Z component.
func (v Vec3[T]) XY() Vec2[T] {
	return Vec2[T]{v.X, v.Y}
}

// ToFloat3 widens v to float64 components.
func ToFloat3[T Number](v Vec3[T]) Vec3f {
	return Vec3f{float64(v.X), float64(v.Y), float64(v.Z)}
}

// Round narrows a float to int by adding 0.5 and truncating.
func Round(f float64) int {
	return int(f + 0.5)
}

// Round2 applies Round to each component.
func Round2(v Vec2f) Vec2i {
	return Vec2i{Round(v.X), Round(v.Y)}
}

// Round3 applies Round to each component.
func Round3(v Vec3f) Vec3i {
	return Vec3i{Round(v.X), Round(v.Y), Round(v.Z)}
}

// Lerp3 returns a + (b-a)*t in float64.
func Lerp3(a, b Vec3f, t float64) Vec3f {
	return a.Add(b.Sub(a).Scale(t))
}

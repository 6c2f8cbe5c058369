// Copyright 2024 The quilt Authors. All rights reserved.

package quilt

import "math"

// PointLike is anything with an x and y coordinate.
type PointLike interface {
	XY() (x, y float64)
}

// Vec is a free 2D vector or point.
type Vec struct {
	X, Y float64
}

func (v Vec) XY() (float64, float64) { return v.X, v.Y }

// Distance returns the Euclidean distance between a and b.
func Distance(a, b PointLike) float64 {
	ax, ay := a.XY()
	bx, by := b.XY()
	return math.Hypot(ax-bx, ay-by)
}

// Sub returns a - b.
func Sub(a, b PointLike) Vec {
	ax, ay := a.XY()
	bx, by := b.XY()
	return Vec{ax - bx, ay - by}
}

// Add returns a + b.
func Add(a, b PointLike) Vec {
	ax, ay := a.XY()
	bx, by := b.XY()
	return Vec{ax + bx, ay + by}
}

// Scale returns v * s.
func Scale(v PointLike, s float64) Vec {
	x, y := v.XY()
	return Vec{x * s, y * s}
}

// Unit returns v / |v|. v must have non-zero length; the components of the
// unit vector of a zero vector are NaN.
func Unit(v PointLike) Vec {
	return Scale(v, 1/Distance(Vec{}, v))
}

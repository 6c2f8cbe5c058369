// Copyright 2024 The quilt Authors. All rights reserved.

// Homogeneous matrices applied to a quilt, including SVG style transform
// lists.
// https://developer.mozilla.org/en-US/docs/Web/SVG/Attribute/transform

package quilt

import (
	"math"
	"strings"

	"github.com/duncpro/linear-image-transformer/matrix"
)

// Affine is the matrix
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Affine struct {
	A, B, C, D, E, F float64
}

var Identity = Affine{1, 0, 0, 1, 0, 0}

// Mult returns a*b, the transform that applies b first.
func (a Affine) Mult(b Affine) Affine {
	return Affine{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F}
}

func (a Affine) Transform(x1, y1 float64) (x2, y2 float64) {
	x2 = x1*a.A + y1*a.C + a.E
	y2 = x1*a.B + y1*a.D + a.F
	return
}

func (a Affine) Scale(x, y float64) Affine {
	return a.Mult(Affine{A: x, D: y})
}

func (a Affine) Translate(x, y float64) Affine {
	return a.Mult(Affine{A: 1, D: 1, E: x, F: y})
}

// Rotate rotates by theta radians, clockwise on screen since y points down.
func (a Affine) Rotate(theta float64) Affine {
	sin, cos := math.Sincos(theta)
	return a.Mult(Affine{A: cos, B: sin, C: -sin, D: cos})
}

// Shear maps (x, y) to (x + kx*y, ky*x + y).
func (a Affine) Shear(kx, ky float64) Affine {
	return a.Mult(Affine{A: 1, B: ky, C: kx, D: 1})
}

func (a Affine) SkewX(theta float64) Affine { return a.Shear(math.Tan(theta), 0) }
func (a Affine) SkewY(theta float64) Affine { return a.Shear(0, math.Tan(theta)) }

// ReflectX mirrors across the x axis, negating y.
func (a Affine) ReflectX() Affine { return a.Scale(1, -1) }

// ReflectY mirrors across the y axis, negating x.
func (a Affine) ReflectY() Affine { return a.Scale(-1, 1) }

// Matrix returns the 3x3 homogeneous form of a.
func (a Affine) Matrix() *matrix.Matrix[float64] {
	return matrix.Literal([][]float64{
		{a.A, a.C, a.E},
		{a.B, a.D, a.F},
		{0, 0, 1},
	})
}

// AffineFromMatrix reads the first two rows of a 3x3 matrix.
func AffineFromMatrix(m *matrix.Matrix[float64]) (Affine, error) {
	if err := matrix.CheckShape(m, 3, 3); err != nil {
		return Identity, err
	}
	return Affine{
		A: m.At(0, 0), C: m.At(0, 1), E: m.At(0, 2),
		B: m.At(1, 0), D: m.At(1, 1), F: m.At(1, 2),
	}, nil
}

// NegativeColors returns the color matrix mapping every channel c to
// 255 - c.
func NegativeColors() *matrix.Matrix[int16] {
	return matrix.Literal([][]int16{
		{-1, 0, 0, 255},
		{0, -1, 0, 255},
		{0, 0, -1, 255},
		{0, 0, 0, 1},
	})
}

// ParseTransform parses an SVG transform list such as
// "translate(250 100) rotate(45)". The leftmost transform is applied last.
func ParseTransform(v string) (Affine, error) {
	var c pointCursor
	m1 := Identity
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, ErrParamMismatch // badly formed transformation
		}
		if err := c.getPoints(d[1]); err != nil {
			return m1, err
		}
		ln := len(c.points)
		switch strings.ToLower(strings.TrimSpace(d[0])) {
		case "rotate":
			if ln == 1 {
				m1 = m1.Rotate(c.points[0] * math.Pi / 180)
			} else if ln == 3 {
				m1 = m1.Translate(c.points[1], c.points[2]).
					Rotate(c.points[0]*math.Pi/180).
					Translate(-c.points[1], -c.points[2])
			} else {
				return m1, ErrParamMismatch
			}
		case "translate":
			if ln == 1 {
				m1 = m1.Translate(c.points[0], 0)
			} else if ln == 2 {
				m1 = m1.Translate(c.points[0], c.points[1])
			} else {
				return m1, ErrParamMismatch
			}
		case "skewx":
			if ln != 1 {
				return m1, ErrParamMismatch
			}
			m1 = m1.SkewX(c.points[0] * math.Pi / 180)
		case "skewy":
			if ln != 1 {
				return m1, ErrParamMismatch
			}
			m1 = m1.SkewY(c.points[0] * math.Pi / 180)
		case "shear":
			if ln != 2 {
				return m1, ErrParamMismatch
			}
			m1 = m1.Shear(c.points[0], c.points[1])
		case "scale":
			if ln == 1 {
				m1 = m1.Scale(c.points[0], c.points[0])
			} else if ln == 2 {
				m1 = m1.Scale(c.points[0], c.points[1])
			} else {
				return m1, ErrParamMismatch
			}
		case "matrix":
			if ln != 6 {
				return m1, ErrParamMismatch
			}
			m1 = m1.Mult(Affine{
				c.points[0],
				c.points[1],
				c.points[2],
				c.points[3],
				c.points[4],
				c.points[5]})
		default:
			return m1, ErrParamMismatch
		}
	}
	return m1, nil
}

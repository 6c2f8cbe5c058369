// Copyright 2024 The quilt Authors. All rights reserved.

package quilt

import "math"

// ViewBox is a rectangle in vertex coordinate space.
type ViewBox struct {
	MinX, MinY    float64
	Width, Height float64
}

// FitViewBox returns the bounding box of the four outer corners of q.
// Interior vertices are not examined, so the box only encloses the whole
// quilt when the transform keeps the corners on its convex hull, which
// holds for every affine transform.
func FitViewBox(q *Quilt) ViewBox {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range q.Corners() {
		x, y := c.XY()
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return ViewBox{MinX: minX, MinY: minY, Width: maxX - minX, Height: maxY - minY}
}

// Origin returns the top-left corner of the box.
func (vb ViewBox) Origin() Vec { return Vec{vb.MinX, vb.MinY} }

// contains reports whether the point (x, y), given relative to the origin,
// lies in [0, Width) x [0, Height).
func (vb ViewBox) contains(x, y float64) bool {
	return x >= 0 && x < vb.Width && y >= 0 && y < vb.Height
}

// Copyright 2024 The quilt Authors. All rights reserved.

// Package quilt applies linear transformations to raster images. An image
// is knit into a quilt: a mesh of (w+1)(h+1) vertices whose w*h tiles each
// carry the color of one source pixel. Transforming the vertex matrix moves
// the tiles; the quilt can then be rasterized back into pixels or written
// as SVG polygons.
//
//	p1 ------------ p2
//	|               |
//	|               |
//	p3 ------------ p4
package quilt

import (
	"errors"
	"fmt"

	"github.com/duncpro/linear-image-transformer/matrix"
	"github.com/duncpro/linear-image-transformer/raster"
)

// Quilt is an image represented as a grid of colored parallelograms.
//
// Locmat is 3 x (PWidth+1)(PHeight+1) and holds the homogeneous coordinates
// (x, y, 1) of every vertex, x varying fastest. Colmat is 4 x PWidth*PHeight
// and holds (red, green, blue, 1) of every tile in the same order.
type Quilt struct {
	Locmat  *matrix.Matrix[float64]
	Colmat  *matrix.Matrix[uint8]
	PWidth  int
	PHeight int
}

// Knit builds the quilt of img. Vertex (vx, vy) starts at coordinate (vx, vy).
func Knit(img *raster.Raster) *Quilt {
	w, h := img.Width, img.Height()
	locmat := matrix.New[float64](3, (w+1)*(h+1))
	colmat := matrix.New[uint8](4, w*h)

	vi := 0
	for vy := 0; vy <= h; vy++ {
		for vx := 0; vx <= w; vx++ {
			v := locmat.ColMut(vi)
			v[0], v[1], v[2] = float64(vx), float64(vy), 1
			vi++
		}
	}
	for pi, p := range img.Pixels {
		c := colmat.ColMut(pi)
		c[0], c[1], c[2], c[3] = p.Red, p.Green, p.Blue, 1
	}
	Logger().Debug("quilt: knit", "width", w, "height", h, "vertices", vi)
	return &Quilt{Locmat: locmat, Colmat: colmat, PWidth: w, PHeight: h}
}

// Transform replaces every vertex v with m*v. m must be 3x3.
func (q *Quilt) Transform(m *matrix.Matrix[float64]) {
	if m.Rows() != 3 || m.Cols() != 3 {
		panic(&matrix.ShapeError{Op: "Transform", Rows: m.Rows(), Cols: m.Cols()})
	}
	matrix.MatmulReplace(m, q.Locmat)
	Logger().Debug("quilt: transformed vertices", "matrix", m)
}

// ErrColorRange reports a color transform result outside 0..255.
var ErrColorRange = errors.New("quilt: color channel out of range")

// TransformColors replaces every tile color c with m*c. m must be 4x4. A
// result outside 0..255 panics.
func (q *Quilt) TransformColors(m *matrix.Matrix[int16]) {
	if err := q.TryTransformColors(m); err != nil {
		panic(err)
	}
}

// TryTransformColors is TransformColors for matrices from untrusted
// input: a result outside 0..255 is returned as ErrColorRange and q is
// left unchanged. m must still be 4x4.
func (q *Quilt) TryTransformColors(m *matrix.Matrix[int16]) error {
	if m.Rows() != 4 || m.Cols() != 4 {
		panic(&matrix.ShapeError{Op: "TransformColors", Rows: m.Rows(), Cols: m.Cols()})
	}
	// int32 holds any sum of four int16*uint8 products
	wide := matrix.Map(q.Colmat, func(b uint8) int32 { return int32(b) })
	matrix.MatmulReplace(matrix.Map(m, func(v int16) int32 { return int32(v) }), wide)
	for j := 0; j < wide.Cols(); j++ {
		for _, v := range wide.Col(j) {
			if v < 0 || v > 255 {
				return fmt.Errorf("%w: tile %d has %d", ErrColorRange, j, v)
			}
		}
	}
	q.Colmat = matrix.Map(wide, func(v int32) uint8 { return uint8(v) })
	Logger().Debug("quilt: transformed colors", "matrix", m)
	return nil
}

// P1 is the top-left vertex of the whole quilt.
func (q *Quilt) P1() Vertex { return Vertex{q, 0} }

// P2 is the top-right vertex.
func (q *Quilt) P2() Vertex { return Vertex{q, q.PWidth} }

// P3 is the bottom-left vertex.
func (q *Quilt) P3() Vertex { return Vertex{q, (q.PWidth + 1) * q.PHeight} }

// P4 is the bottom-right vertex.
func (q *Quilt) P4() Vertex { return Vertex{q, q.Locmat.Cols() - 1} }

// Corners returns P1, P2, P3 and P4.
func (q *Quilt) Corners() [4]Vertex {
	return [4]Vertex{q.P1(), q.P2(), q.P3(), q.P4()}
}

// Tiles starts a new traversal of the tiles in row-major order.
func (q *Quilt) Tiles() *TileIterator {
	return &TileIterator{tile: Tile{q: q}}
}

// Each calls f for every tile in row-major order until f returns false.
func (q *Quilt) Each(f func(Tile) bool) {
	it := q.Tiles()
	for t, ok := it.Next(); ok; t, ok = it.Next() {
		if !f(t) {
			return
		}
	}
}

// Vertex is a view of one column of a quilt's Locmat.
type Vertex struct {
	q *Quilt
	i int
}

// Index is the column of the vertex in Locmat.
func (v Vertex) Index() int { return v.i }
func (v Vertex) X() float64 { return v.q.Locmat.Col(v.i)[0] }
func (v Vertex) Y() float64 { return v.q.Locmat.Col(v.i)[1] }
func (v Vertex) XY() (float64, float64) {
	c := v.q.Locmat.Col(v.i)
	return c[0], c[1]
}

// TileColor is a view of one column of a quilt's Colmat.
type TileColor struct {
	q *Quilt
	i int
}

func (c TileColor) Red() uint8   { return c.q.Colmat.Col(c.i)[0] }
func (c TileColor) Green() uint8 { return c.q.Colmat.Col(c.i)[1] }
func (c TileColor) Blue() uint8  { return c.q.Colmat.Col(c.i)[2] }

// Pixel returns the color as a raster pixel.
func (c TileColor) Pixel() raster.Pixel {
	col := c.q.Colmat.Col(c.i)
	return raster.Pixel{Red: col[0], Green: col[1], Blue: col[2]}
}

// Tile is one cell of a quilt. pi indexes Colmat, uli is the Locmat column
// of the upper-left corner.
type Tile struct {
	q      *Quilt
	px, py int
	pi     int
	uli    int
}

// Pos returns the column and row of the source pixel.
func (t Tile) Pos() (px, py int) { return t.px, t.py }

func (t Tile) P1() Vertex { return Vertex{t.q, t.uli} }
func (t Tile) P2() Vertex { return Vertex{t.q, t.uli + 1} }
func (t Tile) P3() Vertex { return Vertex{t.q, t.uli + t.q.PWidth + 1} }
func (t Tile) P4() Vertex { return Vertex{t.q, t.uli + t.q.PWidth + 2} }

func (t Tile) Color() TileColor { return TileColor{t.q, t.pi} }

// TileIterator walks the tiles of a quilt. It has no effect on the quilt.
type TileIterator struct {
	tile Tile
}

// Next returns the next tile, or false when the traversal is over.
func (it *TileIterator) Next() (Tile, bool) {
	q := it.tile.q
	if it.tile.py >= q.PHeight || q.PWidth == 0 {
		return Tile{}, false
	}
	t := it.tile
	it.tile.px++
	it.tile.pi++
	it.tile.uli++
	if it.tile.px >= q.PWidth {
		it.tile.px = 0
		it.tile.py++
		it.tile.uli++ // skip the last vertex of the row
	}
	return t, true
}

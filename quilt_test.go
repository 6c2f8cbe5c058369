// Copyright 2024 The quilt Authors. All rights reserved.

package quilt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/duncpro/linear-image-transformer"
	"github.com/duncpro/linear-image-transformer/matrix"
	"github.com/duncpro/linear-image-transformer/raster"
)

// sample returns a w x h raster with a distinct color per pixel.
func sample(w, h int) *raster.Raster {
	r := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.SetPixel(x, y, raster.Pixel{Red: uint8(10 + x*30), Green: uint8(20 + y*30), Blue: uint8(x + y*w)})
		}
	}
	return r
}

func TestKnit(t *testing.T) {
	q := Knit(sample(2, 3))
	require.Equal(t, 2, q.PWidth)
	require.Equal(t, 3, q.PHeight)
	require.Equal(t, 3, q.Locmat.Rows())
	require.Equal(t, 12, q.Locmat.Cols())
	require.Equal(t, 4, q.Colmat.Rows())
	require.Equal(t, 6, q.Colmat.Cols())

	// x varies fastest
	assert.Equal(t, []float64{0, 0, 1}, q.Locmat.Col(0))
	assert.Equal(t, []float64{2, 0, 1}, q.Locmat.Col(2))
	assert.Equal(t, []float64{0, 1, 1}, q.Locmat.Col(3))
	assert.Equal(t, []float64{2, 3, 1}, q.Locmat.Col(11))

	assert.Equal(t, []uint8{40, 50, 3, 1}, q.Colmat.Col(3)) // pixel (1, 1)
}

func TestCorners(t *testing.T) {
	q := Knit(sample(4, 2))
	assert.Equal(t, 0, q.P1().Index())
	assert.Equal(t, 4, q.P2().Index())
	assert.Equal(t, 10, q.P3().Index())
	assert.Equal(t, 14, q.P4().Index())

	x, y := q.P4().XY()
	assert.Equal(t, 4.0, x)
	assert.Equal(t, 2.0, y)
}

func TestTileTraversal(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {2, 3}, {3, 2}, {5, 4}} {
		w, h := size[0], size[1]
		q := Knit(sample(w, h))
		src := sample(w, h)

		n := 0
		it := q.Tiles()
		for tile, ok := it.Next(); ok; tile, ok = it.Next() {
			px, py := tile.Pos()
			require.Equal(t, n%w, px, "row-major order")
			require.Equal(t, n/w, py, "row-major order")

			uli := py*(w+1) + px
			assert.Equal(t, uli, tile.P1().Index())
			assert.Equal(t, uli+1, tile.P2().Index())
			assert.Equal(t, uli+w+1, tile.P3().Index())
			assert.Equal(t, uli+w+2, tile.P4().Index())

			x, y := tile.P1().XY()
			assert.Equal(t, float64(px), x)
			assert.Equal(t, float64(py), y)
			assert.Equal(t, src.Pixel(px, py), tile.Color().Pixel())
			n++
		}
		assert.Equal(t, w*h, n)

		_, ok := it.Next()
		assert.False(t, ok, "exhausted iterator stays exhausted")
	}
}

func TestTilesIsRestartable(t *testing.T) {
	q := Knit(sample(3, 3))
	count := func() int {
		n := 0
		q.Each(func(Tile) bool { n++; return true })
		return n
	}
	assert.Equal(t, 9, count())
	assert.Equal(t, 9, count())

	n := 0
	q.Each(func(Tile) bool { n++; return n < 4 })
	assert.Equal(t, 4, n)
}

func TestEmptyQuilt(t *testing.T) {
	q := Knit(raster.New(0, 0))
	_, ok := q.Tiles().Next()
	assert.False(t, ok)
	assert.Equal(t, ViewBox{}, FitViewBox(q))
}

func TestTransform(t *testing.T) {
	q := Knit(sample(2, 3))
	q.Transform(Identity.Scale(3, 1).Matrix())
	assert.Equal(t, []float64{6, 3, 1}, q.Locmat.Col(11))
	assert.Panics(t, func() { q.Transform(matrix.Identity[float64](4)) })
}

func TestTransformColors(t *testing.T) {
	src := sample(3, 2)
	q := Knit(src)
	q.TransformColors(NegativeColors())
	it := q.Tiles()
	for tile, ok := it.Next(); ok; tile, ok = it.Next() {
		px, py := tile.Pos()
		p := src.Pixel(px, py)
		c := tile.Color()
		assert.Equal(t, 255-p.Red, c.Red())
		assert.Equal(t, 255-p.Green, c.Green())
		assert.Equal(t, 255-p.Blue, c.Blue())
	}
	assert.Equal(t, uint8(1), q.Colmat.At(3, 0))

	double := matrix.Literal([][]int16{
		{2, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	})
	bright := Knit(raster.Solid(raster.Pixel{Red: 200}, 1, 1))
	assert.Panics(t, func() { bright.TransformColors(double) })
}

func TestTransformColorsDoesNotWrap(t *testing.T) {
	// 256*255 + 300 overflows int16 and would wrap to 44
	big := matrix.Literal([][]int16{
		{256, 0, 0, 300},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	})
	q := Knit(raster.Solid(raster.Pixel{Red: 255, Green: 7}, 2, 1))
	err := q.TryTransformColors(big)
	assert.ErrorIs(t, err, ErrColorRange)
	assert.Equal(t, uint8(255), q.Colmat.At(0, 0), "failed transform leaves colors alone")
	assert.Panics(t, func() { q.TransformColors(big) })

	shift := matrix.Literal([][]int16{
		{1, 0, 0, -200},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	})
	require.NoError(t, q.TryTransformColors(shift))
	assert.Equal(t, []uint8{55, 7, 0, 1}, q.Colmat.Col(1))
}

// Copyright 2024 The quilt Authors. All rights reserved.

package quilt

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// viewAdder maps vertex coordinates into the pixel space of a view box
// before handing them to the wrapped rasterx.Adder.
type viewAdder struct {
	rasterx.Adder
	origin  Vec
	density float64
}

func (t *viewAdder) toFixed(p PointLike) fixed.Point26_6 {
	x, y := Sub(p, t.origin).XY()
	return fixed.Point26_6{
		X: fixed.Int26_6(x * t.density * 64),
		Y: fixed.Int26_6(y * t.density * 64)}
}

// polygon adds a closed path through pts.
func (t *viewAdder) polygon(pts ...PointLike) {
	if len(pts) < 3 {
		return
	}
	t.Adder.Start(t.toFixed(pts[0]))
	for _, p := range pts[1:] {
		t.Adder.Line(t.toFixed(p))
	}
	t.Adder.Stop(true)
}

// vectorFiller fills polygons one at a time into a destination image.
type vectorFiller struct {
	filler *rasterx.Filler
	adder  viewAdder
}

func newVectorFiller(dst draw.Image, vb ViewBox, density float64) *vectorFiller {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	f := &vectorFiller{filler: rasterx.NewFiller(b.Dx(), b.Dy(), scanner)}
	f.adder = viewAdder{Adder: f.filler, origin: vb.Origin(), density: density}
	return f
}

func (f *vectorFiller) fill(c color.Color, pts ...PointLike) {
	f.filler.Clear()
	f.adder.polygon(pts...)
	f.filler.SetColor(c)
	f.filler.Draw()
}

// DrawVector fills every tile of q as an anti-aliased polygon into dst,
// mapping vb onto dst at density pixels per unit. Unlike Rasterize, shared
// tile edges are blended and no pixel inside the quilt is left unpainted.
func DrawVector(dst draw.Image, q *Quilt, vb ViewBox, density float64) {
	f := newVectorFiller(dst, vb, density)
	it := q.Tiles()
	for t, ok := it.Next(); ok; t, ok = it.Next() {
		p := t.Color().Pixel()
		f.fill(color.RGBA{p.Red, p.Green, p.Blue, 0xff}, t.P1(), t.P3(), t.P4(), t.P2())
	}
}

// DrawDocument fills the polygons of doc into dst, mapping the document
// view box onto dst at density pixels per unit. Polygons without a fill
// are skipped.
func DrawDocument(dst draw.Image, doc *Document, density float64) {
	f := newVectorFiller(dst, doc.ViewBox, density)
	for _, p := range doc.Polygons {
		if p.Fill == nil {
			continue
		}
		pts := make([]PointLike, len(p.Points))
		for i, v := range p.Points {
			pts[i] = v
		}
		f.fill(p.Fill, pts...)
	}
}

// NewCanvas allocates an RGBA image covering vb at density pixels per
// unit, filled with bg.
func NewCanvas(vb ViewBox, density float64, bg color.Color) *image.RGBA {
	w := int(math.Ceil(vb.Width * density))
	h := int(math.Ceil(vb.Height * density))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return img
}

// RenderVector draws q on a black canvas covering vb.
func RenderVector(q *Quilt, vb ViewBox, density float64) *image.RGBA {
	img := NewCanvas(vb, density, color.Black)
	DrawVector(img, q, vb, density)
	return img
}

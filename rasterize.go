// Copyright 2024 The quilt Authors. All rights reserved.

package quilt

import (
	"math"

	"github.com/duncpro/linear-image-transformer/raster"
)

// RasterizeAutofitAutoConfig rasterizes all of q at one pixel per unit on
// a black background.
func RasterizeAutofitAutoConfig(q *Quilt) *raster.Raster {
	return RasterizeAutoConfig(q, FitViewBox(q))
}

// RasterizeAutoConfig rasterizes the part of q inside vb at one pixel per
// unit, sampling every pixel, on a black background.
func RasterizeAutoConfig(q *Quilt, vb ViewBox) *raster.Raster {
	return Rasterize(q, vb, raster.Black(), 1, 1)
}

// Rasterize paints the part of q inside vb into a new raster of
// ceil(vb.Width*density) x ceil(vb.Height*density) pixels. Space not
// covered by a tile keeps the color bg.
//
// Each tile is walked along its two edges from p1 in steps of scanPx
// pixels; every sample inside the view box stamps the tile color onto the
// pixel it falls in. Later tiles overwrite earlier ones. A tile shrunk
// below one step may leave pixels unpainted.
func Rasterize(q *Quilt, vb ViewBox, bg raster.Pixel, scanPx, density float64) *raster.Raster {
	w, h := math.Ceil(vb.Width*density), math.Ceil(vb.Height*density)
	if !(w >= 0) || !(h >= 0) || w > math.MaxInt32 || h > math.MaxInt32 || !(scanPx > 0) || !(density > 0) {
		panic("quilt: rasterize parameters out of range")
	}
	img := raster.Solid(bg, int(w), int(h))
	Logger().Debug("quilt: rasterize", "width", img.Width, "height", img.Height(),
		"scan", scanPx, "density", density)

	scan := scanPx / density
	it := q.Tiles()
	for t, ok := it.Next(); ok; t, ok = it.Next() {
		rasterizeTile(img, vb, t, scan, density)
	}
	return img
}

func rasterizeTile(img *raster.Raster, vb ViewBox, t Tile, scan, density float64) {
	d1 := Distance(t.P1(), t.P2())
	d2 := Distance(t.P1(), t.P3())
	if d1 == 0 || d2 == 0 {
		return
	}
	v1 := Unit(Sub(t.P2(), t.P1()))
	v2 := Unit(Sub(t.P3(), t.P1()))
	p1 := Sub(t.P1(), vb.Origin())
	color := t.Color().Pixel()

	for pos1 := 0.0; pos1 < d1; pos1 += scan {
		for pos2 := 0.0; pos2 < d2; pos2 += scan {
			x, y := Add(p1, Add(Scale(v1, pos1), Scale(v2, pos2))).XY()
			if !vb.contains(x, y) {
				continue
			}
			px, py := int(x*density), int(y*density)
			if px < img.Width && py < img.Height() {
				img.SetPixel(px, py, color)
			}
		}
	}
}

// Copyright 2024 The quilt Authors. All rights reserved.

// Package raster holds 24-bit RGB pixel buffers and reads and writes them
// as uncompressed BMP files.
package raster

import (
	"fmt"
	"image"
	"image/color"
)

// Pixel is one 24-bit color.
type Pixel struct {
	Red, Green, Blue uint8
}

// Black returns the zero intensity pixel.
func Black() Pixel { return Pixel{} }

// RGBA implements color.Color. Pixels are always opaque.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.RGBA{p.Red, p.Green, p.Blue, 0xff}.RGBA()
}

// PixelFromColor drops the alpha channel of c after un-premultiplying it.
func PixelFromColor(c color.Color) Pixel {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{n.R, n.G, n.B}
}

// Raster is a row-major grid of pixels. The height is implied by
// len(Pixels) / Width.
type Raster struct {
	Pixels []Pixel
	Width  int
}

// New allocates a black raster.
func New(width, height int) *Raster {
	return Solid(Black(), width, height)
}

// Solid allocates a raster filled with c.
func Solid(c Pixel, width, height int) *Raster {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("raster: negative dimensions %dx%d", width, height))
	}
	pixels := make([]Pixel, width*height)
	for i := range pixels {
		pixels[i] = c
	}
	return &Raster{Pixels: pixels, Width: width}
}

// Height returns the number of rows.
func (r *Raster) Height() int {
	if r.Width == 0 {
		return 0
	}
	return len(r.Pixels) / r.Width
}

func (r *Raster) index(x, y int) int {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height() {
		panic(fmt.Sprintf("raster: pixel (%d, %d) outside %dx%d", x, y, r.Width, r.Height()))
	}
	return y*r.Width + x
}

// Pixel returns the pixel at column x, row y.
func (r *Raster) Pixel(x, y int) Pixel {
	return r.Pixels[r.index(x, y)]
}

// SetPixel stores p at column x, row y.
func (r *Raster) SetPixel(x, y int, p Pixel) {
	r.Pixels[r.index(x, y)] = p
}

// ColorModel implements image.Image.
func (r *Raster) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (r *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.Width, r.Height()) }

// At implements image.Image. Points outside the raster are transparent.
func (r *Raster) At(x, y int) color.Color {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height() {
		return color.RGBA{}
	}
	return r.Pixels[y*r.Width+x]
}

// Opaque reports that every pixel is fully opaque.
func (r *Raster) Opaque() bool { return true }

// FromImage copies any image into a new raster, discarding alpha.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	r := New(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r.Pixels[y*r.Width+x] = PixelFromColor(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return r
}

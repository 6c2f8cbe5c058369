// Copyright 2024 The quilt Authors. All rights reserved.

package raster_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/duncpro/linear-image-transformer/raster"
)

func TestSolid(t *testing.T) {
	r := Solid(Pixel{1, 2, 3}, 4, 2)
	assert.Equal(t, 4, r.Width)
	assert.Equal(t, 2, r.Height())
	assert.Equal(t, Pixel{1, 2, 3}, r.Pixel(3, 1))
	assert.Equal(t, 0, New(0, 5).Height())
}

func TestSetPixelOutOfRangePanics(t *testing.T) {
	r := New(2, 2)
	assert.Panics(t, func() { r.SetPixel(2, 0, Black()) })
	assert.Panics(t, func() { r.Pixel(0, -1) })
}

func TestImageInterface(t *testing.T) {
	r := New(3, 2)
	r.SetPixel(1, 1, Pixel{Red: 200, Green: 100, Blue: 50})
	var img image.Image = r
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.RGBA{200, 100, 50, 255}, color.RGBAModel.Convert(img.At(1, 1)))
	assert.Equal(t, color.RGBA{}, img.At(5, 5))

	back := FromImage(img)
	assert.Equal(t, r.Pixels, back.Pixels)
}

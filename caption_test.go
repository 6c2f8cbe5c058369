// Copyright 2024 The quilt Authors. All rights reserved.

package quilt_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/duncpro/linear-image-transformer"
)

// inkColumns returns the leftmost and rightmost columns holding a
// non-black pixel, or -1, -1 for a blank image.
func inkColumns(img *image.RGBA) (int, int) {
	left, right := -1, -1
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			if img.RGBAAt(x, y) != (color.RGBA{A: 0xff}) {
				if left < 0 {
					left = x
				}
				right = x
				break
			}
		}
	}
	return left, right
}

func blackCanvas(w, h int) *image.RGBA {
	return NewCanvas(ViewBox{Width: float64(w), Height: float64(h)}, 1, color.Black)
}

func TestCaptionFace(t *testing.T) {
	small, err := CaptionFace("")
	require.NoError(t, err)
	big, err := CaptionFace("italic bold 24px sans-serif")
	require.NoError(t, err)
	assert.Greater(t, int(big.Metrics().Height), int(small.Metrics().Height))
}

func TestDrawCaption(t *testing.T) {
	img := blackCanvas(120, 30)
	require.NoError(t, DrawCaption(img, Caption{Text: "quilt", X: 2, Y: 20}))
	left, right := inkColumns(img)
	require.GreaterOrEqual(t, left, 2)
	assert.Less(t, right, 60)

	centered := blackCanvas(120, 30)
	require.NoError(t, DrawCaption(centered, Caption{Text: "quilt", X: 60, Y: 20, Anchor: "middle"}))
	cl, cr := inkColumns(centered)
	assert.Less(t, cl, 60)
	assert.Greater(t, cr, 60)

	ended := blackCanvas(120, 30)
	require.NoError(t, DrawCaption(ended, Caption{Text: "quilt", X: 118, Y: 20, Anchor: "end", Fill: color.RGBA{R: 255, A: 255}}))
	el, er := inkColumns(ended)
	assert.Greater(t, el, 60)
	assert.LessOrEqual(t, er, 118)
}

func TestDrawCaptionBadAnchor(t *testing.T) {
	err := DrawCaption(blackCanvas(10, 10), Caption{Text: "x", Anchor: "left"})
	assert.ErrorIs(t, err, ErrParamMismatch)
}

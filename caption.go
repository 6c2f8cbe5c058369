// Copyright 2024 The quilt Authors. All rights reserved.

package quilt

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
	"golang.org/x/image/math/fixed"

	cfp "github.com/raykov/css-font-parser"
)

var fontSizeRegexp = regexp.MustCompile(`[^0-9.]+`)

// DefaultCaptionSize is the point size used when a caption font names
// no size.
const DefaultCaptionSize = 10.0

// Caption is a line of text drawn over a preview image.
type Caption struct {
	Text string
	// Font is a CSS font shorthand, e.g. "italic bold 12px serif". Size,
	// style, weight and variant pick one of the Go fonts; the family is
	// ignored.
	Font string
	// Fill defaults to white.
	Fill color.Color
	// X, Y is the baseline start of the text in pixels.
	X, Y float64
	// Anchor is "start", "middle" or "end".
	Anchor string
}

func goFontTTF(style, weight, variant string) []byte {
	italic := style == "italic" || style == "oblique"
	switch {
	case variant == "small-caps" && italic:
		return gosmallcapsitalic.TTF
	case variant == "small-caps":
		return gosmallcaps.TTF
	case italic && isBold(weight):
		return gobolditalic.TTF
	case italic:
		return goitalic.TTF
	case isBold(weight):
		return gobold.TTF
	}
	return goregular.TTF
}

func isBold(weight string) bool {
	switch weight {
	case "bold", "bolder":
		return true
	}
	w, err := strconv.Atoi(weight)
	return err == nil && w >= 600
}

// CaptionFace returns the font face described by a CSS font shorthand.
func CaptionFace(shorthand string) (font.Face, error) {
	size := DefaultCaptionSize
	var style, weight, variant string
	if strings.TrimSpace(shorthand) != "" {
		f := cfp.Parse(shorthand)
		if s, err := strconv.ParseFloat(fontSizeRegexp.ReplaceAllString(f.Size, ""), 64); err == nil && s > 0 {
			size = s
		}
		style, weight, variant = f.Style, f.Weight, f.Variant
	}
	ttf, err := truetype.Parse(goFontTTF(style, weight, variant))
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(ttf, &truetype.Options{Size: size}), nil
}

// DrawCaption draws c onto img.
func DrawCaption(img draw.Image, c Caption) error {
	face, err := CaptionFace(c.Font)
	if err != nil {
		return err
	}
	defer face.Close()

	var fill color.Color = color.White
	if c.Fill != nil {
		fill = c.Fill
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fill),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(c.X * 64), Y: fixed.Int26_6(c.Y * 64)},
	}
	switch c.Anchor {
	case "", "start":
	case "middle":
		d.Dot.X -= d.MeasureString(c.Text) / 2
	case "end":
		d.Dot.X -= d.MeasureString(c.Text)
	default:
		return fmt.Errorf("caption anchor %q: %w", c.Anchor, ErrParamMismatch)
	}
	Logger().Debug("quilt: caption", "text", c.Text, "x", c.X, "y", c.Y)
	d.DrawString(c.Text)
	return nil
}

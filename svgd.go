// Copyright 2024 The quilt Authors. All rights reserved.

package quilt

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/net/html/charset"
)

// RenderSVGAutofit writes q framed by its fitted view box.
func RenderSVGAutofit(w io.Writer, q *Quilt) error {
	return RenderSVG(w, q, FitViewBox(q))
}

// RenderSVG writes q as one polygon per tile with corners in the order
// p1, p3, p4, p2. The display size equals the view box size so that a
// transform that doubles the quilt also doubles the picture.
func RenderSVG(w io.Writer, q *Quilt, vb ViewBox) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" `,
		ftoa(vb.MinX), ftoa(vb.MinY), ftoa(vb.Width), ftoa(vb.Height))
	fmt.Fprintf(bw, `width="%s" height="%s" >`, ftoa(vb.Width), ftoa(vb.Height))

	it := q.Tiles()
	for t, ok := it.Next(); ok; t, ok = it.Next() {
		bw.WriteString(`<polygon points="`)
		for i, v := range [4]Vertex{t.P1(), t.P3(), t.P4(), t.P2()} {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(ftoa(v.X()))
			bw.WriteByte(',')
			bw.WriteString(ftoa(v.Y()))
		}
		c := t.Color()
		fmt.Fprintf(bw, `" fill="rgb(%d, %d, %d)" stroke="none" />`, c.Red(), c.Green(), c.Blue())
	}
	bw.WriteString("</svg>")
	return bw.Flush()
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseColorNum reads a hex color such as #FBD9BD or #FB9.
func ParseColorNum(colorStr string) (r, g, b uint8, err error) {
	colorStr = strings.TrimPrefix(colorStr, "#")
	switch len(colorStr) {
	case 6:
	case 3:
		// duplicate each digit of a 3 digit hex number
		colorStr = string([]byte{colorStr[0], colorStr[0],
			colorStr[1], colorStr[1], colorStr[2], colorStr[2]})
	default:
		return 0, 0, 0, ErrParamMismatch
	}
	for _, v := range []struct {
		c *uint8
		s string
	}{
		{&r, colorStr[0:2]},
		{&g, colorStr[2:4]},
		{&b, colorStr[4:6]}} {
		var t uint64
		t, err = strconv.ParseUint(v.s, 16, 8)
		if err != nil {
			return
		}
		*v.c = uint8(t)
	}
	return
}

// ParseColor parses an SVG color: a color name, #rgb, #rrggbb or
// rgb(r, g, b) with integer or percentage components. "none" returns a
// nil color and no error.
func ParseColor(colorStr string) (color.Color, error) {
	colorStr = strings.TrimSpace(colorStr)
	v := strings.ToLower(colorStr)
	if v == "none" {
		return nil, nil
	}
	if cn, ok := colornames.Map[v]; ok {
		return color.NRGBA{cn.R, cn.G, cn.B, cn.A}, nil
	}
	if cStr := strings.TrimPrefix(v, "rgb("); cStr != v {
		vals := strings.Split(strings.TrimSuffix(cStr, ")"), ",")
		if len(vals) != 3 {
			return nil, ErrParamMismatch
		}
		var cvals [3]uint8
		for i := range cvals {
			var err error
			if cvals[i], err = parseColorValue(vals[i]); err != nil {
				return nil, err
			}
		}
		return color.NRGBA{cvals[0], cvals[1], cvals[2], 0xFF}, nil
	}
	if strings.HasPrefix(colorStr, "#") {
		r, g, b, err := ParseColorNum(colorStr)
		if err != nil {
			return nil, err
		}
		return color.NRGBA{r, g, b, 0xFF}, nil
	}
	return nil, fmt.Errorf("%w: color %q", ErrParamMismatch, colorStr)
}

func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		n, err := strconv.Atoi(strings.TrimSpace(v[:len(v)-1]))
		if err != nil {
			return 0, err
		}
		return uint8(clamp(n, 0, 100) * 0xFF / 100), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	return uint8(clamp(n, 0, 255)), nil
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// svgReader keeps the fill inherited from enclosing elements.
type svgReader struct {
	pointCursor
	doc       *Document
	fillStack []color.Color
	errMode   ErrorMode
}

func (c *svgReader) pushFill(se xml.StartElement) error {
	fill := c.fillStack[len(c.fillStack)-1]
	var pairs []string
	for _, attr := range se.Attr {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		case "fill":
			pairs = append(pairs, "fill:"+attr.Value)
		}
	}
	for _, pair := range pairs {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 || strings.ToLower(strings.TrimSpace(kv[0])) != "fill" {
			continue
		}
		col, err := ParseColor(kv[1])
		if err != nil {
			return err
		}
		fill = col
	}
	c.fillStack = append(c.fillStack, fill)
	return nil
}

func (c *svgReader) readSvg(se xml.StartElement) (err error) {
	var haveViewBox bool
	for _, attr := range se.Attr {
		switch attr.Name.Local {
		case "viewBox":
			if err = c.getPoints(attr.Value); err != nil {
				return err
			}
			if len(c.points) != 4 {
				return ErrParamMismatch
			}
			haveViewBox = true
			c.doc.ViewBox = ViewBox{c.points[0], c.points[1], c.points[2], c.points[3]}
		case "width":
			c.doc.Width, err = strconv.ParseFloat(strings.TrimSuffix(attr.Value, "px"), 64)
		case "height":
			c.doc.Height, err = strconv.ParseFloat(strings.TrimSuffix(attr.Value, "px"), 64)
		}
		if err != nil {
			return err
		}
	}
	if !haveViewBox {
		if c.doc.Width == 0 || c.doc.Height == 0 {
			return ErrNoViewBox
		}
		c.doc.ViewBox = ViewBox{Width: c.doc.Width, Height: c.doc.Height}
	}
	return nil
}

func (c *svgReader) readPolygon(se xml.StartElement) error {
	for _, attr := range se.Attr {
		if attr.Name.Local != "points" {
			continue
		}
		if err := c.getPoints(attr.Value); err != nil {
			return err
		}
		if len(c.points)%2 != 0 {
			return ErrOddPoints
		}
		p := Polygon{Fill: c.fillStack[len(c.fillStack)-1]}
		for i := 0; i < len(c.points); i += 2 {
			p.Points = append(p.Points, Vec{c.points[i], c.points[i+1]})
		}
		c.doc.Polygons = append(c.doc.Polygons, p)
	}
	return nil
}

// ReadSVG reads the view box and polygons of an SVG stream such as the
// output of RenderSVG. If errMode is provided, the first value decides
// whether elements other than svg, g, polygon, title and desc are ignored,
// logged as a warning or rejected.
func ReadSVG(stream io.Reader, errMode ...ErrorMode) (*Document, error) {
	c := &svgReader{doc: &Document{}, fillStack: []color.Color{color.Black}}
	if len(errMode) > 0 {
		c.errMode = errMode[0]
	}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return c.doc, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			if err = c.pushFill(se); err != nil {
				return c.doc, err
			}
			switch se.Name.Local {
			case "svg":
				err = c.readSvg(se)
			case "polygon":
				err = c.readPolygon(se)
			case "g", "title", "desc":
			default:
				errStr := "cannot process svg element " + se.Name.Local
				if c.errMode == StrictErrorMode {
					err = errors.New(errStr)
				} else if c.errMode == WarnErrorMode {
					Logger().Warn("quilt: " + errStr)
				}
			}
			if err != nil {
				return c.doc, err
			}
		case xml.EndElement:
			c.fillStack = c.fillStack[:len(c.fillStack)-1]
		}
	}
	return c.doc, nil
}

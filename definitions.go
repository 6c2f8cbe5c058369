// Copyright 2024 The quilt Authors. All rights reserved.

package quilt

import "image/color"

type (
	// Polygon is a filled shape read from an SVG document.
	Polygon struct {
		Points []Vec
		Fill   color.Color // nil when the fill is "none"
	}

	// Document is the part of an SVG file that quilt renders and reads:
	// its frame and its polygons in document order.
	Document struct {
		ViewBox       ViewBox
		Width, Height float64
		Polygons      []Polygon
	}
)

// Copyright 2024 The quilt Authors. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/BurntSushi/toml"

	quilt "github.com/duncpro/linear-image-transformer"
	"github.com/duncpro/linear-image-transformer/matrix"
	"github.com/duncpro/linear-image-transformer/raster"
)

var (
	errNoSteps     = errors.New("job has no steps")
	errStepName    = errors.New("step needs a unique name")
	errTwoMatrices = errors.New("step sets both transform and matrix")
	errColors      = errors.New("unknown color preset")
	errSampling    = errors.New("scan_step and pixels_per_unit must be positive")
	errFrame       = errors.New("frame does not fit the transformed image")
)

// job is the TOML job file. Steps run in order, each on a fresh quilt of
// the input image.
type job struct {
	Input  string
	Output string
	Steps  []step `toml:"step"`
}

type step struct {
	Name string
	// Transform is an SVG transform list, e.g. "translate(250 100)".
	Transform string
	// Matrix is a 3x3 vertex matrix written row by row.
	Matrix [][]float64
	// Colors names a color preset; only "negative" exists.
	Colors string
	// ColorMatrix is a 4x4 matrix applied to (r, g, b, 1).
	ColorMatrix [][]int16 `toml:"color_matrix"`
	// FixedOrigin keeps (0, 0) at the top-left of the frame instead of
	// fitting the frame to the transformed quilt.
	FixedOrigin   bool    `toml:"fixed_origin"`
	Background    string  `toml:"background"`
	ScanStep      float64 `toml:"scan_step"`
	PixelsPerUnit float64 `toml:"pixels_per_unit"`
	// Caption is drawn at the bottom of the PNG preview.
	Caption     string
	CaptionFont string `toml:"caption_font"`
}

// plan is a validated step.
type plan struct {
	name        string
	vertices    *matrix.Matrix[float64]
	colors      *matrix.Matrix[int16]
	fixedOrigin bool
	background  raster.Pixel
	scan        float64
	density     float64
	caption     quilt.Caption
}

func loadJob(name string) (*job, error) {
	var j job
	md, err := toml.DecodeFile(name, &j)
	if err != nil {
		return nil, fmt.Errorf("reading job %s: %w", name, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("reading job %s: unknown keys %v", name, undecoded)
	}
	return &j, nil
}

func (j *job) plans() ([]plan, error) {
	if len(j.Steps) == 0 {
		return nil, errNoSteps
	}
	seen := make(map[string]bool)
	plans := make([]plan, 0, len(j.Steps))
	for i, s := range j.Steps {
		if s.Name == "" || seen[s.Name] {
			return nil, fmt.Errorf("step %d: %w", i, errStepName)
		}
		seen[s.Name] = true
		p, err := s.plan()
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", s.Name, err)
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func (s step) plan() (plan, error) {
	p := plan{
		name:        s.Name,
		fixedOrigin: s.FixedOrigin,
		scan:        1,
		density:     1,
		caption:     quilt.Caption{Text: s.Caption, Font: s.CaptionFont},
	}
	switch {
	case s.Transform != "" && s.Matrix != nil:
		return p, errTwoMatrices
	case s.Transform != "":
		a, err := quilt.ParseTransform(s.Transform)
		if err != nil {
			return p, fmt.Errorf("transform %q: %w", s.Transform, err)
		}
		p.vertices = a.Matrix()
	case s.Matrix != nil:
		m, err := matrix.LiteralChecked(s.Matrix)
		if err == nil {
			err = matrix.CheckShape(m, 3, 3)
		}
		if err != nil {
			return p, fmt.Errorf("matrix: %w", err)
		}
		p.vertices = m
	}

	switch {
	case s.Colors != "" && s.ColorMatrix != nil:
		return p, errTwoMatrices
	case s.Colors == "negative":
		p.colors = quilt.NegativeColors()
	case s.Colors != "":
		return p, fmt.Errorf("%w: %q", errColors, s.Colors)
	case s.ColorMatrix != nil:
		m, err := matrix.LiteralChecked(s.ColorMatrix)
		if err == nil {
			err = matrix.CheckShape(m, 4, 4)
		}
		if err != nil {
			return p, fmt.Errorf("color_matrix: %w", err)
		}
		p.colors = m
	}

	if s.Background != "" {
		c, err := quilt.ParseColor(s.Background)
		if err != nil {
			return p, fmt.Errorf("background: %w", err)
		}
		if c == nil {
			c = color.Black
		}
		p.background = raster.PixelFromColor(c)
	}
	if s.ScanStep != 0 {
		p.scan = s.ScanStep
	}
	if s.PixelsPerUnit != 0 {
		p.density = s.PixelsPerUnit
	}
	if s.CaptionFont != "" {
		if _, err := quilt.CaptionFace(s.CaptionFont); err != nil {
			return p, fmt.Errorf("caption_font: %w", err)
		}
	}
	if !(p.scan > 0) || !(p.density > 0) || math.IsInf(p.scan, 0) || math.IsInf(p.density, 0) {
		return p, errSampling
	}
	return p, nil
}

// defaultJob is the set of examples the tool runs without a job file.
func defaultJob() *job {
	return &job{
		Input:  "input.bmp",
		Output: "transformed_images",
		Steps: []step{
			{Name: "part1_identity", Transform: "matrix(1 0 0 1 0 0)"},
			{Name: "part2_translating", Transform: "translate(250 100)", FixedOrigin: true},
			{Name: "part3_scaling", Transform: "scale(3 1)"},
			{Name: "part4_rotating", Transform: "rotate(45)"},
			{Name: "part5_reflecting", Transform: "scale(1 -1)"},
			{Name: "part6_colortransform", Colors: "negative"},
			{Name: "part7_stretching", Matrix: [][]float64{
				{1, 0, 0},
				{-1, 1, 0},
				{0, 0, 1},
			}},
		},
	}
}

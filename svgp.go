// Copyright 2024 The quilt Authors. All rights reserved.

package quilt

import (
	"errors"
	"strconv"
	"unicode"
)

type (
	ErrorMode   uint8
	pointCursor struct {
		points []float64
	}
)

var (
	ErrParamMismatch = errors.New("quilt: param mismatch")
	ErrOddPoints     = errors.New("quilt: polygon has odd number of coordinates")
	ErrNoViewBox     = errors.New("quilt: svg has no viewBox")
)

const (
	IgnoreErrorMode ErrorMode = iota
	WarnErrorMode
	StrictErrorMode
)

func (c *pointCursor) readFloat(numStr string) error {
	f, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return err
	}
	c.points = append(c.points, f)
	return nil
}

// getPoints reads the numbers of an SVG number list, separated by commas,
// whitespace or a leading minus sign, into the cursor's points slice.
func (c *pointCursor) getPoints(dataPoints string) error {
	lastIndex := -1
	c.points = c.points[0:0]
	lr := ' '
	for i, r := range dataPoints {
		if !unicode.IsNumber(r) && r != '.' && !((r == '-' || r == '+') && lr == 'e') && r != 'e' {
			if lastIndex != -1 {
				if err := c.readFloat(dataPoints[lastIndex:i]); err != nil {
					return err
				}
			}
			if r == '-' || r == '+' {
				lastIndex = i
			} else {
				lastIndex = -1
			}
		} else if lastIndex == -1 {
			lastIndex = i
		}
		lr = r
	}
	if lastIndex != -1 && lastIndex != len(dataPoints) {
		if err := c.readFloat(dataPoints[lastIndex:]); err != nil {
			return err
		}
	}
	return nil
}

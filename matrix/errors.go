// Copyright 2024 The quilt Authors. All rights reserved.

package matrix

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned by the Check functions when operand
// shapes are incompatible.
var ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

// ShapeError is the panic value for shape and index violations.
type ShapeError struct {
	Op         string
	Rows, Cols int
	Index      int
	Other      [2]int
}

func (e *ShapeError) Error() string {
	switch e.Op {
	case "Col", "At", "Set":
		return fmt.Sprintf("matrix: %s index %d out of range for %dx%d", e.Op, e.Index, e.Rows, e.Cols)
	case "Matmul", "Matmul(out)":
		return fmt.Sprintf("matrix: %s shape %dx%d incompatible with %dx%d", e.Op, e.Rows, e.Cols, e.Other[0], e.Other[1])
	}
	return fmt.Sprintf("matrix: %s invalid shape %dx%d", e.Op, e.Rows, e.Cols)
}

func (e *ShapeError) Unwrap() error { return ErrDimensionMismatch }

// CheckMatmul reports whether left*right is defined.
func CheckMatmul[T any](left, right *Matrix[T]) error {
	if left.Cols() != right.Rows() {
		return fmt.Errorf("%dx%d times %dx%d: %w", left.Rows(), left.Cols(), right.Rows(), right.Cols(), ErrDimensionMismatch)
	}
	return nil
}

// CheckShape reports whether m is rows x cols.
func CheckShape[T any](m *Matrix[T], rows, cols int) error {
	if m.Rows() != rows || m.Cols() != cols {
		return fmt.Errorf("want %dx%d, got %dx%d: %w", rows, cols, m.Rows(), m.Cols(), ErrDimensionMismatch)
	}
	return nil
}

// LiteralChecked is Literal for untrusted input: ragged or empty rows are
// reported as ErrDimensionMismatch instead of panicking.
func LiteralChecked[T any](lit [][]T) (*Matrix[T], error) {
	if len(lit) == 0 || len(lit[0]) == 0 {
		return nil, fmt.Errorf("empty literal: %w", ErrDimensionMismatch)
	}
	for i, row := range lit {
		if len(row) != len(lit[0]) {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), len(lit[0]), ErrDimensionMismatch)
		}
	}
	return Literal(lit), nil
}

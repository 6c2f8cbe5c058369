// Copyright 2024 The quilt Authors. All rights reserved.

// Package matrix implements a column-major dense matrix with a generic
// element type. Shape violations are programmer errors and panic with a
// *ShapeError; use the Check functions at boundaries that must recover.
package matrix

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Numeric is the element constraint for operations that add and multiply.
// The zero value of every Numeric type is its additive identity.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// Matrix is a heap allocated matrix whose columns are stored contiguously.
// len(data) == rows*cols always holds; operations that change the shape
// produce a new Matrix.
type Matrix[T any] struct {
	data []T
	rows int
}

// NewUniform allocates a rows x cols matrix with every cell set to v.
func NewUniform[T any](rows, cols int, v T) *Matrix[T] {
	if rows <= 0 || cols < 0 {
		panic(&ShapeError{Op: "NewUniform", Rows: rows, Cols: cols})
	}
	data := make([]T, rows*cols)
	for i := range data {
		data[i] = v
	}
	return &Matrix[T]{data: data, rows: rows}
}

// New allocates a rows x cols matrix of zero values.
func New[T any](rows, cols int) *Matrix[T] {
	var zero T
	return NewUniform(rows, cols, zero)
}

// Literal builds a matrix from rows written the way matrices are printed:
// lit[i][j] is the element in row i, column j.
func Literal[T any](lit [][]T) *Matrix[T] {
	if len(lit) == 0 {
		panic(&ShapeError{Op: "Literal"})
	}
	rows, cols := len(lit), len(lit[0])
	for _, row := range lit {
		if len(row) != cols {
			panic(&ShapeError{Op: "Literal", Rows: rows, Cols: len(row)})
		}
	}
	data := make([]T, 0, rows*cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			data = append(data, lit[i][j])
		}
	}
	return &Matrix[T]{data: data, rows: rows}
}

// FromColumns wraps column-major data. The slice is owned by the result.
func FromColumns[T any](rows int, data []T) *Matrix[T] {
	if rows <= 0 || len(data)%rows != 0 {
		panic(&ShapeError{Op: "FromColumns", Rows: rows, Cols: len(data)})
	}
	return &Matrix[T]{data: data, rows: rows}
}

// Identity returns the n x n identity matrix.
func Identity[T Numeric](n int) *Matrix[T] {
	m := New[T](n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

func (m *Matrix[T]) Rows() int { return m.rows }
func (m *Matrix[T]) Cols() int { return len(m.data) / m.rows }

// Len is the number of cells.
func (m *Matrix[T]) Len() int { return len(m.data) }

// Transpose returns a new matrix with rows and columns swapped. Every cell
// of the destination is written exactly once from the source; m is left
// unchanged.
func (m *Matrix[T]) Transpose() *Matrix[T] {
	srcRows, srcCols := m.rows, m.Cols()
	dstRows := srcCols
	data := make([]T, len(m.data))
	for i, v := range m.data {
		row, col := i%srcRows, i/srcRows
		data[row*dstRows+col] = v
	}
	return &Matrix[T]{data: data, rows: dstRows}
}

// Col returns column i. The slice aliases the matrix storage.
func (m *Matrix[T]) Col(i int) []T {
	if i < 0 || i >= m.Cols() {
		panic(&ShapeError{Op: "Col", Rows: m.rows, Cols: m.Cols(), Index: i})
	}
	begin := m.rows * i
	return m.data[begin : begin+m.rows : begin+m.rows]
}

// ColMut is Col for callers that intend to write through the view.
func (m *Matrix[T]) ColMut(i int) []T { return m.Col(i) }

// At returns the element at row i, column j.
func (m *Matrix[T]) At(i, j int) T {
	if i < 0 || i >= m.rows {
		panic(&ShapeError{Op: "At", Rows: m.rows, Cols: m.Cols(), Index: i})
	}
	return m.Col(j)[i]
}

// Set stores v at row i, column j.
func (m *Matrix[T]) Set(i, j int, v T) {
	if i < 0 || i >= m.rows {
		panic(&ShapeError{Op: "Set", Rows: m.rows, Cols: m.Cols(), Index: i})
	}
	m.Col(j)[i] = v
}

// Clone returns a deep copy of m.
func (m *Matrix[T]) Clone() *Matrix[T] {
	data := make([]T, len(m.data))
	copy(data, m.data)
	return &Matrix[T]{data: data, rows: m.rows}
}

// Rows2D returns the matrix as row-major nested slices, the inverse of Literal.
func (m *Matrix[T]) Rows2D() [][]T {
	out := make([][]T, m.rows)
	cols := m.Cols()
	for i := range out {
		out[i] = make([]T, cols)
		for j := 0; j < cols; j++ {
			out[i][j] = m.data[j*m.rows+i]
		}
	}
	return out
}

func (m *Matrix[T]) String() string {
	return fmt.Sprintf("%dx%d%v", m.rows, m.Cols(), m.Rows2D())
}

// Equal reports whether a and b have the same shape and elements.
func Equal[T comparable](a, b *Matrix[T]) bool {
	if a.rows != b.rows || len(a.data) != len(b.data) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

// Map applies f to every element, preserving the shape.
func Map[T, U any](m *Matrix[T], f func(T) U) *Matrix[U] {
	data := make([]U, len(m.data))
	for i, v := range m.data {
		data[i] = f(v)
	}
	return &Matrix[U]{data: data, rows: m.rows}
}

// Dot returns the sum of a[i]*b[i]. The slices must have equal length.
func Dot[T Numeric](a, b []T) T {
	if len(a) != len(b) {
		panic(&ShapeError{Op: "Dot", Rows: len(a), Cols: len(b)})
	}
	var dp T
	for i := range a {
		dp += a[i] * b[i]
	}
	return dp
}

// Matmul computes left*right into out, which must be left.Rows() x
// right.Cols(). left is transposed first so both operands are read
// column by column.
func Matmul[T Numeric](left, right, out *Matrix[T]) {
	if left.Cols() != right.rows {
		panic(&ShapeError{Op: "Matmul", Rows: left.rows, Cols: left.Cols(), Other: [2]int{right.rows, right.Cols()}})
	}
	if out.rows != left.rows || out.Cols() != right.Cols() {
		panic(&ShapeError{Op: "Matmul(out)", Rows: out.rows, Cols: out.Cols(), Other: [2]int{left.rows, right.Cols()}})
	}
	leftT := left.Transpose()
	for i := 0; i < left.rows; i++ {
		row := leftT.Col(i)
		for j := 0; j < right.Cols(); j++ {
			out.data[j*out.rows+i] = Dot(row, right.Col(j))
		}
	}
}

// Mul returns left*right in a freshly allocated matrix.
func Mul[T Numeric](left, right *Matrix[T]) *Matrix[T] {
	out := New[T](left.rows, right.Cols())
	Matmul(left, right, out)
	return out
}

// MatmulReplace replaces the contents of right with left*right.
func MatmulReplace[T Numeric](left, right *Matrix[T]) {
	*right = *Mul(left, right)
}

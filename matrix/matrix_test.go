// Copyright 2024 The quilt Authors. All rights reserved.

package matrix_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	. "github.com/duncpro/linear-image-transformer/matrix"
)

func TestLiteralIsColumnMajor(t *testing.T) {
	m := Literal([][]int{
		{1, 2, 3},
		{4, 5, 6},
	})
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())
	assert.Equal(t, []int{1, 4}, m.Col(0))
	assert.Equal(t, []int{2, 5}, m.Col(1))
	assert.Equal(t, []int{3, 6}, m.Col(2))
	assert.Equal(t, 6, m.At(1, 2))
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}}, m.Rows2D())
}

func TestNewUniform(t *testing.T) {
	m := NewUniform(3, 4, 7.5)
	require.Equal(t, 12, m.Len())
	for j := 0; j < m.Cols(); j++ {
		for _, v := range m.Col(j) {
			assert.Equal(t, 7.5, v)
		}
	}
	z := New[uint8](4, 2)
	assert.Equal(t, []uint8{0, 0, 0, 0}, z.Col(1))
}

func TestTranspose(t *testing.T) {
	m := Literal([][]int{
		{1, 2, 3},
		{4, 5, 6},
	})
	mt := m.Transpose()
	require.Equal(t, 3, mt.Rows())
	require.Equal(t, 2, mt.Cols())
	assert.Equal(t, [][]int{{1, 4}, {2, 5}, {3, 6}}, mt.Rows2D())
	assert.True(t, Equal(m, mt.Transpose()))
}

func TestTransposeTwiceIsIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, shape := range [][2]int{{1, 1}, {1, 7}, {7, 1}, {3, 5}, {4, 4}, {9, 2}} {
		m := New[float64](shape[0], shape[1])
		for j := 0; j < m.Cols(); j++ {
			for i := range m.ColMut(j) {
				m.ColMut(j)[i] = r.Float64()
			}
		}
		assert.True(t, Equal(m, m.Transpose().Transpose()), "shape %v", shape)
	}
}

func TestColOutOfRangePanics(t *testing.T) {
	m := New[int](2, 2)
	assert.Panics(t, func() { m.Col(2) })
	assert.Panics(t, func() { m.Col(-1) })
	assert.Panics(t, func() { m.At(2, 0) })
}

func TestMap(t *testing.T) {
	m := Literal([][]uint8{{1, 2}, {3, 255}})
	w := Map(m, func(v uint8) int16 { return int16(v) * 2 })
	assert.Equal(t, [][]int16{{2, 4}, {6, 510}}, w.Rows2D())
}

func TestDot(t *testing.T) {
	assert.Equal(t, 32, Dot([]int{1, 2, 3}, []int{4, 5, 6}))
	assert.Equal(t, 0.0, Dot([]float64{}, []float64{}))
	assert.Panics(t, func() { Dot([]int{1}, []int{1, 2}) })
}

func TestMatmulIdentity(t *testing.T) {
	m := Literal([][]float64{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
	})
	assert.True(t, Equal(m, Mul(Identity[float64](3), m)))
	assert.True(t, Equal(m, Mul(m, Identity[float64](4))))
}

func TestMatmulAgainstGonum(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, dims := range [][3]int{{3, 3, 10}, {2, 5, 4}, {4, 1, 6}, {1, 3, 1}} {
		a, b := randomLiteral(r, dims[0], dims[1]), randomLiteral(r, dims[1], dims[2])
		got := Mul(Literal(a), Literal(b))

		var want mat.Dense
		want.Mul(toDense(a), toDense(b))
		for i := 0; i < dims[0]; i++ {
			for j := 0; j < dims[2]; j++ {
				assert.InDelta(t, want.At(i, j), got.At(i, j), 1e-9)
			}
		}
	}
}

func TestMatmulShapeMismatchPanics(t *testing.T) {
	a := New[int](2, 3)
	b := New[int](2, 3)
	assert.Panics(t, func() { Mul(a, b) })
	assert.Panics(t, func() { Matmul(a, a.Transpose(), New[int](3, 3)) })

	defer func() {
		v := recover()
		err, ok := v.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrDimensionMismatch))
	}()
	MatmulReplace(a, b)
}

func TestMatmulReplace(t *testing.T) {
	scale := Literal([][]float64{
		{2, 0, 0},
		{0, 3, 0},
		{0, 0, 1},
	})
	pts := Literal([][]float64{
		{0, 1, 2},
		{0, 1, 2},
		{1, 1, 1},
	})
	handle := pts
	MatmulReplace(scale, pts)
	assert.Equal(t, [][]float64{{0, 2, 4}, {0, 3, 6}, {1, 1, 1}}, handle.Rows2D())

	// the product may change the shape of right
	row := Literal([][]float64{{1, 1, 1}})
	MatmulReplace(row, pts)
	assert.Equal(t, [][]float64{{1, 6, 11}}, handle.Rows2D())
}

func TestChecks(t *testing.T) {
	assert.NoError(t, CheckMatmul(New[int](2, 3), New[int](3, 1)))
	assert.ErrorIs(t, CheckMatmul(New[int](2, 3), New[int](2, 1)), ErrDimensionMismatch)
	assert.ErrorIs(t, CheckShape(New[int](2, 3), 3, 3), ErrDimensionMismatch)

	_, err := LiteralChecked([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = LiteralChecked[float64](nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	m, err := LiteralChecked([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, 3.0, m.At(1, 0))
	assert.Panics(t, func() { Literal([][]int{{1, 2}, {3}}) })
}

func randomLiteral(r *rand.Rand, rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := range out[i] {
			out[i][j] = r.Float64()*20 - 10
		}
	}
	return out
}

func toDense(lit [][]float64) *mat.Dense {
	flat := make([]float64, 0, len(lit)*len(lit[0]))
	for _, row := range lit {
		flat = append(flat, row...)
	}
	return mat.NewDense(len(lit), len(lit[0]), flat)
}

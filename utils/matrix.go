package utils

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a thin column oriented wrapper over a dense gonum matrix.
type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	return Matrix{M: m}
}

// NewMatrixFromColumns stacks equal length columns side by side.
func NewMatrixFromColumns(cols ...[]float64) (R Matrix) {
	var nr int
	if len(cols) != 0 {
		nr = len(cols[0])
	}
	R = NewMatrix(nr, len(cols))
	for j, col := range cols {
		R.SetCol(j, col)
	}
	return
}

func (m Matrix) Dims() (r, c int)    { return m.M.Dims() }
func (m Matrix) At(i, j int) float64 { return m.M.At(i, j) }

func (m Matrix) SetCol(j int, data []float64) Matrix { // Changes receiver
	nr, _ := m.Dims()
	if len(data) != nr {
		panic(fmt.Errorf("column length %d does not match %d rows", len(data), nr))
	}
	m.M.SetCol(j, data)
	return m
}

func (m Matrix) Col(j int) (c []float64) {
	nr, _ := m.Dims()
	c = make([]float64, nr)
	mat.Col(c, j, m.M)
	return
}

func (m Matrix) Row(i int) (r []float64) {
	_, nc := m.Dims()
	r = make([]float64, nc)
	mat.Row(r, i, m.M)
	return
}

func (m Matrix) ColMax(j int) float64 { return floats.Max(m.Col(j)) }
func (m Matrix) ColMin(j int) float64 { return floats.Min(m.Col(j)) }

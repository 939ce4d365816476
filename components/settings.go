package components

import "fmt"

// Matrix is a square interaction matrix stored row-major.
// Get(i, j) is the attraction particles of type i feel towards type j.
type Matrix struct {
	size   int
	values []float64
}

// NewMatrix creates a zero matrix of the given size (minimum 1).
func NewMatrix(size int) *Matrix {
	if size < 1 {
		size = 1
	}
	return &Matrix{
		size:   size,
		values: make([]float64, size*size),
	}
}

// Size returns the number of types the matrix covers.
func (m *Matrix) Size() int {
	return m.size
}

// Get returns the value at row i, column j.
func (m *Matrix) Get(i, j int) float64 {
	return m.values[i*m.size+j]
}

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v float64) {
	m.values[i*m.size+j] = v
}

// InRange reports whether (i, j) addresses a cell of the matrix.
func (m *Matrix) InRange(i, j int) bool {
	return i >= 0 && j >= 0 && i < m.size && j < m.size
}

// Clone returns an independent copy.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{size: m.size, values: make([]float64, len(m.values))}
	copy(c.values, m.values)
	return c
}

// CopyOverlap copies the cells shared by m and src (the top-left min(size) block).
func (m *Matrix) CopyOverlap(src *Matrix) {
	n := min(m.size, src.size)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Set(i, j, src.Get(i, j))
		}
	}
}

// Rows returns the matrix as nested slices, e.g. for serialization.
func (m *Matrix) Rows() [][]float64 {
	rows := make([][]float64, m.size)
	for i := range rows {
		rows[i] = make([]float64, m.size)
		copy(rows[i], m.values[i*m.size:(i+1)*m.size])
	}
	return rows
}

// MatrixFromRows builds a matrix from nested slices. Rows must form a square.
func MatrixFromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("matrix has no rows")
	}
	m := NewMatrix(len(rows))
	for i, row := range rows {
		if len(row) != len(rows) {
			return nil, fmt.Errorf("matrix row %d has %d values, want %d", i, len(row), len(rows))
		}
		copy(m.values[i*m.size:], row)
	}
	return m, nil
}

// Settings holds the scalar simulation parameters and the interaction matrix.
type Settings struct {
	DT       float64 // time step used when auto dt is off
	RMax     float64 // interaction radius
	Friction float64 // velocity retained per reference step (0..1)
	Force    float64 // global force scale
	Wrap     bool    // toroidal boundary
	Matrix   *Matrix
}

// DeepCopy returns a copy that shares no memory with s.
func (s Settings) DeepCopy() Settings {
	c := s
	if s.Matrix != nil {
		c.Matrix = s.Matrix.Clone()
	}
	return c
}

// MatrixSize returns the matrix size, or 0 if no matrix is set.
func (s Settings) MatrixSize() int {
	if s.Matrix == nil {
		return 0
	}
	return s.Matrix.Size()
}

package core

import "fmt"

// Lattice stores a fixed rows×cols grid of cells in row-major order. Edges are
// hard boundaries; there is no wraparound.
type Lattice[C any] struct {
	rows, cols int
	data       []C
}

// NewLattice allocates a lattice with every cell set to fill.
func NewLattice[C any](rows, cols int, fill C) (*Lattice[C], error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("lattice %dx%d: %w", rows, cols, ErrInvalidConfig)
	}
	l := &Lattice[C]{rows: rows, cols: cols, data: make([]C, rows*cols)}
	l.Fill(fill)
	return l, nil
}

// Rows returns the number of rows.
func (l *Lattice[C]) Rows() int { return l.rows }

// Cols returns the number of columns.
func (l *Lattice[C]) Cols() int { return l.cols }

// Size reports the lattice dimensions as a render size (W = cols, H = rows).
func (l *Lattice[C]) Size() Size { return Size{W: l.cols, H: l.rows} }

// Cells exposes the backing slice so rules can read/write values directly.
func (l *Lattice[C]) Cells() []C { return l.data }

// Index returns the linear slice index for coordinates (i, j).
func (l *Lattice[C]) Index(i, j int) int { return i*l.cols + j }

// Coord converts a linear index back to (row, col).
func (l *Lattice[C]) Coord(idx int) Coord { return Coord{Row: idx / l.cols, Col: idx % l.cols} }

// InBounds reports whether (i, j) lies inside the lattice.
func (l *Lattice[C]) InBounds(i, j int) bool {
	return i >= 0 && i < l.rows && j >= 0 && j < l.cols
}

// Get returns the cell at (i, j).
func (l *Lattice[C]) Get(i, j int) (C, error) {
	if !l.InBounds(i, j) {
		var zero C
		return zero, l.rangeError(i, j)
	}
	return l.data[l.Index(i, j)], nil
}

// Set stores v at (i, j).
func (l *Lattice[C]) Set(i, j int, v C) error {
	if !l.InBounds(i, j) {
		return l.rangeError(i, j)
	}
	l.data[l.Index(i, j)] = v
	return nil
}

// Fill sets every cell to v.
func (l *Lattice[C]) Fill(v C) {
	for i := range l.data {
		l.data[i] = v
	}
}

// Clone returns an independent copy of the lattice.
func (l *Lattice[C]) Clone() *Lattice[C] {
	out := &Lattice[C]{rows: l.rows, cols: l.cols, data: make([]C, len(l.data))}
	copy(out.data, l.data)
	return out
}

// CloneEmpty returns a lattice of the same shape holding zero-valued cells.
func (l *Lattice[C]) CloneEmpty() *Lattice[C] {
	return &Lattice[C]{rows: l.rows, cols: l.cols, data: make([]C, len(l.data))}
}

func (l *Lattice[C]) rangeError(i, j int) error {
	return &RangeError{Row: i, Col: j, Rows: l.rows, Cols: l.cols}
}

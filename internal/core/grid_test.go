package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLatticeRejectsNonPositiveDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 4}} {
		_, err := NewLattice(dims[0], dims[1], 0.0)
		require.ErrorIs(t, err, ErrInvalidConfig, "dims %v", dims)
	}
}

func TestLatticeGetSetOutOfRange(t *testing.T) {
	l, err := NewLattice(3, 4, 0.0)
	require.NoError(t, err)

	outside := [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 4}, {3, 4}, {-5, 10}}
	for _, ij := range outside {
		_, err := l.Get(ij[0], ij[1])
		require.ErrorIs(t, err, ErrOutOfRange, "Get%v", ij)
		require.ErrorIs(t, l.Set(ij[0], ij[1], 1), ErrOutOfRange, "Set%v", ij)

		var re *RangeError
		require.True(t, errors.As(err, &re))
		require.Equal(t, ij[0], re.Row)
		require.Equal(t, ij[1], re.Col)
	}

	require.NoError(t, l.Set(2, 3, 7.5))
	v, err := l.Get(2, 3)
	require.NoError(t, err)
	require.Equal(t, 7.5, v)
	require.Equal(t, 7.5, l.Cells()[l.Index(2, 3)])
	require.Equal(t, Coord{Row: 2, Col: 3}, l.Coord(l.Index(2, 3)))
}

func TestLatticeClonesDoNotAlias(t *testing.T) {
	l, err := NewLattice(2, 2, 3.0)
	require.NoError(t, err)

	c := l.Clone()
	e := l.CloneEmpty()
	require.Equal(t, l.Cells(), c.Cells())
	require.Equal(t, []float64{0, 0, 0, 0}, e.Cells())

	c.Cells()[0] = 9
	e.Cells()[1] = 9
	require.Equal(t, []float64{3, 3, 3, 3}, l.Cells())
	require.Equal(t, Size{W: 2, H: 2}, e.Size())
}

package core

import (
	"fmt"
	"strings"
)

// Pattern selects which neighbouring cells are considered adjacent.
type Pattern uint8

const (
	// Four is the von Neumann neighbourhood: N, S, W, E.
	Four Pattern = iota
	// Eight is the Moore neighbourhood.
	Eight
	// DownwardFan covers S, SW and SE; used for gravity-biased movement.
	DownwardFan
	// DownOnly covers S only; used for heavy particles.
	DownOnly
)

// Coord addresses a lattice cell. Row 0 is the top of the grid.
type Coord struct {
	Row, Col int
}

// Neighbor pairs an in-bounds coordinate with the cell stored there.
type Neighbor[C any] struct {
	Coord
	Cell C
}

var patternOffsets = [...][]Coord{
	Four:        {{-1, 0}, {1, 0}, {0, -1}, {0, 1}},
	Eight:       {{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}},
	DownwardFan: {{1, 0}, {1, -1}, {1, 1}},
	DownOnly:    {{1, 0}},
}

var patternNames = [...]string{
	Four:        "four",
	Eight:       "eight",
	DownwardFan: "fan",
	DownOnly:    "down",
}

// Offsets returns the pattern's direction list in its fixed order.
func (p Pattern) Offsets() []Coord {
	if int(p) >= len(patternOffsets) {
		return nil
	}
	return patternOffsets[p]
}

func (p Pattern) String() string {
	if int(p) >= len(patternNames) {
		return fmt.Sprintf("pattern(%d)", uint8(p))
	}
	return patternNames[p]
}

// ParsePattern resolves a pattern name as produced by String.
func ParsePattern(s string) (Pattern, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "four", "4":
		return Four, nil
	case "eight", "8", "moore":
		return Eight, nil
	case "fan", "downward_fan":
		return DownwardFan, nil
	case "down", "down_only":
		return DownOnly, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownPattern)
}

// Neighbors returns the in-bounds neighbours of (i, j) under p. Out-of-bounds
// candidates are dropped silently.
func Neighbors[C any](l *Lattice[C], i, j int, p Pattern) []Neighbor[C] {
	offsets := p.Offsets()
	out := make([]Neighbor[C], 0, len(offsets))
	for _, d := range offsets {
		ni, nj := i+d.Row, j+d.Col
		if !l.InBounds(ni, nj) {
			continue
		}
		out = append(out, Neighbor[C]{Coord: Coord{Row: ni, Col: nj}, Cell: l.data[l.Index(ni, nj)]})
	}
	return out
}

// AppendNeighborCoords appends the in-bounds neighbour coordinates of (i, j)
// to dst. Rules reuse dst across cells to keep the step loop allocation-free.
func AppendNeighborCoords[C any](dst []Coord, l *Lattice[C], i, j int, p Pattern) []Coord {
	for _, d := range p.Offsets() {
		ni, nj := i+d.Row, j+d.Col
		if l.InBounds(ni, nj) {
			dst = append(dst, Coord{Row: ni, Col: nj})
		}
	}
	return dst
}

// AnyNeighbor reports whether some in-bounds neighbour of (i, j) satisfies pred.
func AnyNeighbor[C any](l *Lattice[C], i, j int, p Pattern, pred func(C) bool) bool {
	for _, d := range p.Offsets() {
		ni, nj := i+d.Row, j+d.Col
		if l.InBounds(ni, nj) && pred(l.data[l.Index(ni, nj)]) {
			return true
		}
	}
	return false
}

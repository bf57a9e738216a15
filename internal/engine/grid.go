// Package engine implements the headless tile-sliding puzzle engine:
// an N×N grid of numeric and blocker tiles, directional move resolution
// with compaction and merging, probabilistic tile spawning, a powerup
// system, and Classic/Time Attack/Scenic mode rules. The engine performs
// no I/O; every command consumes a State and returns a new one plus a
// list of events describing what changed.
package engine

// DefaultGridSize is the default board dimension.
const DefaultGridSize = 4

// CellKind discriminates the contents of a grid cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellNumeric
	CellBlocker
)

// MaxBlockerStrength is the strength at which a blocker becomes
// immovable and stops merging with other blockers.
const MaxBlockerStrength = 3

// Cell is the content of a single grid coordinate. Exactly one variant
// is populated: empty cells are the zero value, numeric cells carry
// Value and ID, blocker cells carry Strength and ID.
type Cell struct {
	Kind     CellKind `json:"kind"`
	Value    int      `json:"value,omitempty"`
	ID       uint64   `json:"id,omitempty"`
	Strength int      `json:"strength,omitempty"`
}

// IsEmpty reports whether the cell holds nothing.
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// IsNumeric reports whether the cell holds a numeric tile.
func (c Cell) IsNumeric() bool { return c.Kind == CellNumeric }

// IsBlocker reports whether the cell holds a blocker tile.
func (c Cell) IsBlocker() bool { return c.Kind == CellBlocker }

// Numeric builds a numeric tile cell.
func Numeric(value int, id uint64) Cell {
	return Cell{Kind: CellNumeric, Value: value, ID: id}
}

// Blocker builds a blocker tile cell.
func Blocker(strength int, id uint64) Cell {
	return Cell{Kind: CellBlocker, Strength: strength, ID: id}
}

// Coord addresses a grid cell by row and column.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Grid is a square matrix of cells stored row-major. It is a pure data
// container: bounds are checked, game rules are not.
type Grid struct {
	Size  int    `json:"size"`
	Cells []Cell `json:"cells"`
}

// NewGrid creates an empty size×size grid.
func NewGrid(size int) Grid {
	if size <= 0 {
		size = DefaultGridSize
	}
	return Grid{Size: size, Cells: make([]Cell, size*size)}
}

// InBounds reports whether (row, col) addresses a valid cell.
func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Size && col >= 0 && col < g.Size
}

// At returns the cell at (row, col). Out-of-bounds reads return an
// empty cell.
func (g Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Cell{}
	}
	return g.Cells[row*g.Size+col]
}

// Set writes the cell at (row, col). Out-of-bounds writes are ignored.
func (g *Grid) Set(row, col int, c Cell) {
	if !g.InBounds(row, col) {
		return
	}
	g.Cells[row*g.Size+col] = c
}

// EmptyCells returns the coordinates of all empty cells in row-major
// order, snapshotted at call time.
func (g Grid) EmptyCells() []Coord {
	var cells []Coord
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			if g.At(row, col).IsEmpty() {
				cells = append(cells, Coord{Row: row, Col: col})
			}
		}
	}
	return cells
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := Grid{Size: g.Size, Cells: make([]Cell, len(g.Cells))}
	copy(out.Cells, g.Cells)
	return out
}

// Equal reports whether two grids hold identical cells, including tile
// identities.
func (g Grid) Equal(other Grid) bool {
	if g.Size != other.Size || len(g.Cells) != len(other.Cells) {
		return false
	}
	for i := range g.Cells {
		if g.Cells[i] != other.Cells[i] {
			return false
		}
	}
	return true
}

// MaxNumeric returns the highest numeric tile value on the grid, or 0
// if no numeric tile exists.
func (g Grid) MaxNumeric() int {
	maxVal := 0
	for _, c := range g.Cells {
		if c.IsNumeric() && c.Value > maxVal {
			maxVal = c.Value
		}
	}
	return maxVal
}

package engine

// TargetKind discriminates the shape of a powerup target.
type TargetKind int

const (
	TargetCell TargetKind = iota
	TargetRow
	TargetColumn
	TargetValue
	TargetCorner
)

// Corner identifies a grid corner for Corner Gather.
type Corner int

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// Target is the follow-up selection for a targeted powerup: a cell, a
// whole row or column, a tile value, or a corner, depending on the
// powerup awaiting it.
type Target struct {
	Kind   TargetKind
	Cell   Coord
	Index  int // row or column index
	Value  int
	Corner Corner
}

// CellTarget selects a single cell.
func CellTarget(row, col int) Target {
	return Target{Kind: TargetCell, Cell: Coord{Row: row, Col: col}}
}

// RowTarget selects an entire row.
func RowTarget(row int) Target {
	return Target{Kind: TargetRow, Index: row}
}

// ColumnTarget selects an entire column.
func ColumnTarget(col int) Target {
	return Target{Kind: TargetColumn, Index: col}
}

// ValueTarget selects every tile of the given value.
func ValueTarget(value int) Target {
	return Target{Kind: TargetValue, Value: value}
}

// CornerTarget selects a corner of the grid.
func CornerTarget(c Corner) Target {
	return Target{Kind: TargetCorner, Corner: c}
}

// accepts reports whether the target shape fits the powerup.
func (p PowerupType) accepts(t Target) bool {
	switch p {
	case PowerupTileDestroyer, PowerupValueUpgrade, PowerupTileShrink, PowerupLockTile:
		return t.Kind == TargetCell
	case PowerupLineClear:
		return t.Kind == TargetRow || t.Kind == TargetColumn
	case PowerupValueTarget, PowerupValueFinder:
		return t.Kind == TargetValue
	case PowerupCornerGather:
		return t.Kind == TargetCorner
	default:
		return false
	}
}

package engine

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Directions lists all four move directions.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// moveRules captures everything the resolver needs to know beyond the
// grid itself: the numeric base and any active powerup modifiers.
type moveRules struct {
	base        int
	mergeBoost  bool                 // merge any two adjacent numerics, result max(a, b)
	doubleScore bool                 // merges score double
	noMerge     bool                 // compact only (Corner Gather)
	locked      map[Coord]struct{}   // move-immune cells
}

// idAllocator hands out tile identifiers from the session's monotone
// counter. Simulated moves copy the allocator so they never consume
// real ids.
type idAllocator struct {
	next uint64
}

func (a *idAllocator) alloc() uint64 {
	a.next++
	return a.next
}

// isWall reports whether a cell never moves during resolution: locked
// tiles and blockers at maximum strength hold their coordinate and
// split the line into independent segments.
func (r moveRules) isWall(at Coord, c Cell) bool {
	if c.IsBlocker() && c.Strength >= MaxBlockerStrength {
		return true
	}
	_, lockedHere := r.locked[at]
	return lockedHere && !c.IsEmpty()
}

// lineCoords returns each line of the grid ordered from the direction's
// leading edge to its trailing edge.
func lineCoords(size int, dir Direction) [][]Coord {
	lines := make([][]Coord, size)
	for i := 0; i < size; i++ {
		line := make([]Coord, size)
		for j := 0; j < size; j++ {
			switch dir {
			case DirLeft:
				line[j] = Coord{Row: i, Col: j}
			case DirRight:
				line[j] = Coord{Row: i, Col: size - 1 - j}
			case DirUp:
				line[j] = Coord{Row: j, Col: i}
			case DirDown:
				line[j] = Coord{Row: size - 1 - j, Col: i}
			}
		}
		lines[i] = line
	}
	return lines
}

// mergedCell holds a compacted cell together with merge bookkeeping for
// a single segment pass.
type mergedCell struct {
	cell     Cell
	from     Coord     // original coordinate when not merged
	merged   bool      // resulted from a merge this pass; cannot merge again
	consumed [2]uint64 // source tile ids when merged
}

// resolve compacts and merges the grid toward dir. It returns the new
// grid, the score gained, whether any cell changed (position or
// identity), and merge events. The input grid is not modified.
func resolve(g Grid, dir Direction, rules moveRules, ids *idAllocator) (Grid, uint64, bool, []Event) {
	if rules.base < 2 {
		rules.base = 2
	}

	out := g.Clone()
	var delta uint64
	var events []Event

	for _, line := range lineCoords(g.Size, dir) {
		segStart := 0
		for idx := 0; idx <= len(line); idx++ {
			atWall := idx == len(line)
			if !atWall {
				atWall = rules.isWall(line[idx], g.At(line[idx].Row, line[idx].Col))
			}
			if !atWall {
				continue
			}
			segDelta, segEvents := resolveSegment(g, &out, line[segStart:idx], rules, ids)
			delta += segDelta
			events = append(events, segEvents...)
			segStart = idx + 1
		}
	}

	changed := !out.Equal(g)
	return out, delta, changed, events
}

// resolveSegment compacts one wall-free stretch of a line toward its
// leading end, merging adjacent pairs at most once each.
func resolveSegment(g Grid, out *Grid, coords []Coord, rules moveRules, ids *idAllocator) (uint64, []Event) {
	if len(coords) == 0 {
		return 0, nil
	}

	// Ordered non-empty cells along the segment.
	var cells []mergedCell
	for _, at := range coords {
		if c := g.At(at.Row, at.Col); !c.IsEmpty() {
			cells = append(cells, mergedCell{cell: c, from: at})
		}
	}

	var delta uint64
	result := make([]mergedCell, 0, len(cells))

	for _, c := range cells {
		if rules.noMerge || len(result) == 0 {
			result = append(result, c)
			continue
		}
		prev := &result[len(result)-1]
		merged, score := tryMerge(prev.cell, c.cell, rules)
		if prev.merged || merged.IsEmpty() {
			result = append(result, c)
			continue
		}
		consumed := [2]uint64{prev.cell.ID, c.cell.ID}
		merged.ID = ids.alloc()
		*prev = mergedCell{cell: merged, merged: true, consumed: consumed}
		delta += score
	}

	// Rebuild the segment: compacted cells at the leading end, empties
	// behind them.
	var events []Event
	for i, at := range coords {
		if i < len(result) {
			out.Set(at.Row, at.Col, result[i].cell)
			switch {
			case result[i].merged:
				events = append(events, TilesMergedEvent{
					At:       at,
					Cell:     result[i].cell,
					Consumed: result[i].consumed,
				})
			case result[i].from != at:
				events = append(events, TileMovedEvent{
					From: result[i].from,
					To:   at,
					Cell: result[i].cell,
				})
			}
		} else {
			out.Set(at.Row, at.Col, Cell{})
		}
	}
	return delta, events
}

// tryMerge combines two adjacent cells if the rules allow. It returns
// the merged cell (without an id) and the score gained, or an empty
// cell if the pair does not merge.
func tryMerge(a, b Cell, rules moveRules) (Cell, uint64) {
	switch {
	case a.IsNumeric() && b.IsNumeric():
		var value int
		switch {
		case a.Value == b.Value:
			value = a.Value * rules.base
		case rules.mergeBoost:
			value = max(a.Value, b.Value)
		default:
			return Cell{}, 0
		}
		score := uint64(value)
		if rules.doubleScore {
			score *= 2
		}
		return Cell{Kind: CellNumeric, Value: value}, score

	case a.IsBlocker() && b.IsBlocker():
		strength := max(a.Strength, b.Strength) + 1
		if strength > MaxBlockerStrength {
			strength = MaxBlockerStrength
		}
		return Cell{Kind: CellBlocker, Strength: strength}, 0

	default:
		// Blockers never merge with numeric tiles.
		return Cell{}, 0
	}
}

package match3

// MinRun is the shortest run of equal tiles that counts as a match.
const MinRun = 3

// Match is a maximal run of at least MinRun equal tiles in one row or column.
// Positions are contiguous and ordered by increasing column (rows) or
// increasing row (columns).
type Match[T comparable] struct {
	Value     T          `json:"value"`
	Positions []Position `json:"positions"`
}

// Len returns the number of tiles in the match.
func (m Match[T]) Len() int {
	return len(m.Positions)
}

// Horizontal reports whether the match lies in a single row.
func (m Match[T]) Horizontal() bool {
	return len(m.Positions) > 1 && m.Positions[0].Row == m.Positions[1].Row
}

// FindMatches scans every row and then every column and returns each run of
// MinRun or more equal tiles. A tile in both a horizontal and a vertical run
// appears in two matches. Empty cells never belong to a run.
//
// FindMatches does not modify the board.
func (b *Board[T]) FindMatches() []Match[T] {
	var matches []Match[T]
	for row := range b.height {
		matches = b.scanLine(matches, Pos(row, 0), 0, 1, b.width)
	}
	for col := range b.width {
		matches = b.scanLine(matches, Pos(0, col), 1, 0, b.height)
	}
	return matches
}

// scanLine walks n cells from start in steps of (dRow, dCol), appending every
// closed run of at least MinRun to dst.
func (b *Board[T]) scanLine(dst []Match[T], start Position, dRow, dCol, n int) []Match[T] {
	var run Match[T]
	for i := range n {
		p := Pos(start.Row+i*dRow, start.Col+i*dCol)
		c := b.cells[b.index(p)]

		switch {
		case !c.Filled:
			dst = closeRun(dst, run)
			run = Match[T]{}
		case len(run.Positions) > 0 && c.Value == run.Value:
			run.Positions = append(run.Positions, p)
		default:
			dst = closeRun(dst, run)
			run = Match[T]{Value: c.Value, Positions: []Position{p}}
		}
	}
	return closeRun(dst, run)
}

func closeRun[T comparable](dst []Match[T], run Match[T]) []Match[T] {
	if len(run.Positions) >= MinRun {
		dst = append(dst, run)
	}
	return dst
}

// matchesAt reports whether the tile at p is part of a horizontal or
// vertical run of at least MinRun.
func (b *Board[T]) matchesAt(p Position) bool {
	return b.runLength(p, 0, 1) >= MinRun || b.runLength(p, 1, 0) >= MinRun
}

// runLength counts equal filled tiles through p along one axis.
func (b *Board[T]) runLength(p Position, dRow, dCol int) int {
	c := b.cells[b.index(p)]
	if !c.Filled {
		return 0
	}

	n := 1
	for _, sign := range [2]int{-1, 1} {
		q := Pos(p.Row+sign*dRow, p.Col+sign*dCol)
		for b.InBounds(q) {
			other := b.cells[b.index(q)]
			if !other.Filled || other.Value != c.Value {
				break
			}
			n++
			q = Pos(q.Row+sign*dRow, q.Col+sign*dCol)
		}
	}
	return n
}

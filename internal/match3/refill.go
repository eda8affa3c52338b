package match3

// remove empties every position covered by matches and returns the number of
// distinct cells cleared. Positions shared by two matches are counted once.
func (b *Board[T]) remove(matches []Match[T]) int {
	cleared := 0
	for _, m := range matches {
		for _, p := range m.Positions {
			if b.clear(p) {
				cleared++
			}
		}
	}
	return cleared
}

// Refill applies gravity and refills the board, column by column.
//
// Each column is scanned from the bottom up while counting the empty cells
// seen so far; a tile found above that many gaps drops by that count. The
// emptied cells at the top of the column are then filled from the source,
// top row first. Surviving tiles keep their relative order.
//
// Refill returns the number of cells filled from the source.
func (b *Board[T]) Refill() int {
	filled := 0
	for col := range b.width {
		empty := 0
		for row := b.height - 1; row >= 0; row-- {
			i := b.index(Pos(row, col))
			if !b.cells[i].Filled {
				empty++
				continue
			}
			if empty > 0 {
				b.cells[b.index(Pos(row+empty, col))] = b.cells[i]
				b.cells[i] = Cell[T]{}
			}
		}

		for row := range empty {
			b.cells[b.index(Pos(row, col))] = Occupied(b.source.Next())
		}
		filled += empty
	}
	return filled
}

package match3

// MoveResult describes what a Move or Settle did to the board.
type MoveResult[T comparable] struct {
	// Legal is false when the move was rejected; nothing else is set then.
	Legal bool

	// Effects lists every event in emission order: the MatchEvents of a
	// pass followed by its RefillEvent, pass after pass.
	Effects []Event[T]

	// Cascades is the number of settle passes that found matches.
	Cascades int

	// Cleared is the number of distinct cells removed over all passes.
	Cleared int

	// Truncated is set when the settle loop hit the cascade limit while
	// matches were still present.
	Truncated bool
}

// Matches returns the match events of the result in order.
func (r MoveResult[T]) Matches() []MatchEvent[T] {
	var out []MatchEvent[T]
	for _, ev := range r.Effects {
		if m, ok := ev.(MatchEvent[T]); ok {
			out = append(out, m)
		}
	}
	return out
}

// Swap is a candidate move between two positions.
type Swap struct {
	From Position `json:"from" yaml:"from"`
	To   Position `json:"to" yaml:"to"`
}

// CanMove reports whether swapping a and b is a legal move.
//
// Both positions must be in bounds and share exactly one of row or column,
// the tiles must differ, and the swap must create a run of at least MinRun
// through a or b. The swap is probed and undone; the board and listeners are
// left untouched.
func (b *Board[T]) CanMove(p, q Position) bool {
	if !b.InBounds(p) || !b.InBounds(q) {
		return false
	}
	if (p.Row == q.Row) == (p.Col == q.Col) {
		return false
	}
	if b.opts.adjacentOnly && p.Manhattan(q) != 1 {
		return false
	}
	if b.cells[b.index(p)] == b.cells[b.index(q)] {
		return false
	}

	b.swap(p, q)
	ok := b.matchesAt(p) || b.matchesAt(q)
	b.swap(p, q)
	return ok
}

// Move performs the swap of a and b if it is legal and settles the board.
// An illegal move leaves the board unchanged and returns a result with
// Legal false and no effects.
//
// Listeners receive the effects after the board has settled and before Move
// returns.
func (b *Board[T]) Move(p, q Position) MoveResult[T] {
	if !b.CanMove(p, q) {
		return MoveResult[T]{}
	}

	b.swap(p, q)
	res := b.settle()
	res.Legal = true
	b.dispatch(res.Effects)
	return res
}

// Settle removes any matches already on the board, cascading until stable.
// It is used to clean up a freshly generated board. Legal is always true.
func (b *Board[T]) Settle() MoveResult[T] {
	res := b.settle()
	res.Legal = true
	b.dispatch(res.Effects)
	return res
}

// settle runs detect, remove, refill until a detection pass finds nothing.
func (b *Board[T]) settle() MoveResult[T] {
	var res MoveResult[T]
	for {
		matches := b.FindMatches()
		if len(matches) == 0 {
			return res
		}
		if b.opts.maxCascades > 0 && res.Cascades >= b.opts.maxCascades {
			res.Truncated = true
			return res
		}

		res.Cascades++
		for _, m := range matches {
			res.Effects = append(res.Effects, MatchEvent[T]{Match: m, Pass: res.Cascades})
		}
		res.Cleared += b.remove(matches)
		b.Refill()
		res.Effects = append(res.Effects, RefillEvent[T]{Pass: res.Cascades, Board: b.Snapshot()})
	}
}

// FindMoves lists every legal swap between orthogonal neighbours, scanning
// row-major and trying the right neighbour before the one below.
func (b *Board[T]) FindMoves() []Swap {
	var moves []Swap
	for row := range b.height {
		for col := range b.width {
			p := Pos(row, col)
			for _, q := range [2]Position{Pos(row, col+1), Pos(row+1, col)} {
				if b.CanMove(p, q) {
					moves = append(moves, Swap{From: p, To: q})
				}
			}
		}
	}
	return moves
}

// HasMoves reports whether at least one neighbour swap is legal.
func (b *Board[T]) HasMoves() bool {
	for row := range b.height {
		for col := range b.width {
			p := Pos(row, col)
			if b.CanMove(p, Pos(row, col+1)) || b.CanMove(p, Pos(row+1, col)) {
				return true
			}
		}
	}
	return false
}

// Package match3 implements a match-three board engine.
//
// A Board holds a rectangular grid of comparable tile values. It validates
// swap moves, detects runs of three or more equal tiles on both axes, clears
// them, lets the surviving tiles fall and refills the gaps from a Source,
// repeating until the board is stable. Every match and refill is returned to
// the caller as an Event and also delivered to registered listeners.
//
// The package contains no rendering, scoring or persistence. Games build those
// on top of the events it produces.
package match3

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when a board is created with a width or
	// height that is not positive.
	ErrInvalidDimension = errors.New("match3: invalid board dimension")

	// ErrOutOfBounds is the panic value (wrapped) raised when Set or Swap
	// receives a position outside the board.
	ErrOutOfBounds = errors.New("match3: position out of bounds")

	// ErrNilSource is returned when a board is created without a tile source.
	ErrNilSource = errors.New("match3: nil tile source")

	// ErrRaggedRows is returned by FromRows when rows differ in length.
	ErrRaggedRows = errors.New("match3: rows have different lengths")
)

// DefaultMaxCascades bounds the settle loop unless overridden with
// WithMaxCascades.
const DefaultMaxCascades = 1000

// Position identifies one cell of the board.
// Row 0 is the top row, Col 0 the leftmost column.
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Pos is a convenience constructor for Position.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Manhattan returns the Manhattan distance to another position.
func (p Position) Manhattan(other Position) int {
	dr := p.Row - other.Row
	dc := p.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Cell is the content of one board position: either an occupied tile or
// empty. Empty only appears between removal and refill inside a settle pass.
type Cell[T comparable] struct {
	Value  T
	Filled bool
}

// Occupied returns a filled cell holding v.
func Occupied[T comparable](v T) Cell[T] {
	return Cell[T]{Value: v, Filled: true}
}

// Option configures a Board.
type Option func(*options)

type options struct {
	maxCascades  int
	adjacentOnly bool
}

// WithMaxCascades limits the number of settle passes per move. A value of
// zero or less removes the limit.
func WithMaxCascades(n int) Option {
	return func(o *options) {
		o.maxCascades = n
	}
}

// WithAdjacentOnly restricts legal swaps to orthogonal neighbours.
// Without it any two cells in the same row or column may be swapped.
func WithAdjacentOnly() Option {
	return func(o *options) {
		o.adjacentOnly = true
	}
}

// Board is a match-three grid. Cells are stored in row-major order:
// index = row*width + col.
//
// A Board is not safe for concurrent use; hosts that share one across
// goroutines must serialize access.
type Board[T comparable] struct {
	width  int
	height int
	cells  []Cell[T]
	source Source[T]
	opts   options

	listeners    []listenerEntry[T]
	nextListener int
}

// New creates a width x height board and fills it by calling source once per
// cell in row-major order.
func New[T comparable](source Source[T], width, height int, opts ...Option) (*Board[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	if source == nil {
		return nil, ErrNilSource
	}

	b := newBoard(source, width, height, opts)
	for i := range b.cells {
		b.cells[i] = Occupied(source.Next())
	}
	return b, nil
}

// FromRows creates a board with the given initial tiles. rows[0] is the top
// row. The source is only consulted when cells are refilled.
func FromRows[T comparable](source Source[T], rows [][]T, opts ...Option) (*Board[T], error) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	if source == nil {
		return nil, ErrNilSource
	}

	b := newBoard(source, width, height, opts)
	for row, line := range rows {
		if len(line) != width {
			return nil, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrRaggedRows, row, len(line), width)
		}
		for col, v := range line {
			b.cells[row*width+col] = Occupied(v)
		}
	}
	return b, nil
}

func newBoard[T comparable](source Source[T], width, height int, opts []Option) *Board[T] {
	o := options{maxCascades: DefaultMaxCascades}
	for _, opt := range opts {
		opt(&o)
	}
	return &Board[T]{
		width:  width,
		height: height,
		cells:  make([]Cell[T], width*height),
		source: source,
		opts:   o,
	}
}

// Width returns the number of columns.
func (b *Board[T]) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board[T]) Height() int {
	return b.height
}

// InBounds reports whether p lies on the board.
func (b *Board[T]) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.height && p.Col >= 0 && p.Col < b.width
}

func (b *Board[T]) index(p Position) int {
	return p.Row*b.width + p.Col
}

// Positions returns every position of the board in row-major order.
func (b *Board[T]) Positions() []Position {
	positions := make([]Position, 0, b.width*b.height)
	for row := range b.height {
		for col := range b.width {
			positions = append(positions, Pos(row, col))
		}
	}
	return positions
}

// Get returns the tile at p. The second result is false when p is outside
// the board (or, transiently, when the cell is empty).
func (b *Board[T]) Get(p Position) (T, bool) {
	if !b.InBounds(p) {
		var zero T
		return zero, false
	}
	c := b.cells[b.index(p)]
	return c.Value, c.Filled
}

// Set places value at p. p must be in bounds; an out-of-bounds position is a
// programming error and panics.
func (b *Board[T]) Set(p Position, value T) {
	b.mustInBounds(p)
	b.cells[b.index(p)] = Occupied(value)
}

// Swap exchanges the tiles at a and b without any legality check.
// Both positions must be in bounds.
func (b *Board[T]) Swap(p, q Position) {
	b.mustInBounds(p)
	b.mustInBounds(q)
	b.swap(p, q)
}

func (b *Board[T]) swap(p, q Position) {
	i, j := b.index(p), b.index(q)
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
}

func (b *Board[T]) clear(p Position) bool {
	i := b.index(p)
	if !b.cells[i].Filled {
		return false
	}
	b.cells[i] = Cell[T]{}
	return true
}

func (b *Board[T]) mustInBounds(p Position) {
	if !b.InBounds(p) {
		panic(fmt.Errorf("%w: %v on %dx%d board", ErrOutOfBounds, p, b.width, b.height))
	}
}

// Snapshot returns a copy of the grid, rows first. Empty cells hold the zero
// value of T.
func (b *Board[T]) Snapshot() [][]T {
	rows := make([][]T, b.height)
	for row := range b.height {
		rows[row] = make([]T, b.width)
		for col := range b.width {
			rows[row][col] = b.cells[row*b.width+col].Value
		}
	}
	return rows
}

// Full reports whether every cell holds a tile.
func (b *Board[T]) Full() bool {
	for _, c := range b.cells {
		if !c.Filled {
			return false
		}
	}
	return true
}

// SetSource replaces the tile source used for future refills.
func (b *Board[T]) SetSource(source Source[T]) {
	if source != nil {
		b.source = source
	}
}

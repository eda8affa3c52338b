package match3

import (
	"errors"
	"reflect"
	"testing"
)

// grid converts string rows to a rune grid, one rune per tile.
func grid(rows ...string) [][]rune {
	out := make([][]rune, len(rows))
	for i, r := range rows {
		out[i] = []rune(r)
	}
	return out
}

// rows renders the board back to strings. Empty cells render as '.'.
func rows(b *Board[rune]) []string {
	out := make([]string, b.Height())
	for row := range b.Height() {
		line := make([]rune, b.Width())
		for col := range b.Width() {
			v, ok := b.Get(Pos(row, col))
			if !ok {
				v = '.'
			}
			line[col] = v
		}
		out[row] = string(line)
	}
	return out
}

func mustBoard(t *testing.T, source Source[rune], lines ...string) *Board[rune] {
	t.Helper()
	b, err := FromRows(source, grid(lines...))
	if err != nil {
		t.Fatalf("FromRows() failed: %v", err)
	}
	return b
}

func TestNewInvalidDimension(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 3},
		{"zero height", 3, 0},
		{"negative width", -1, 2},
		{"negative height", 2, -4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := New[rune](NewCycle('A'), tc.width, tc.height)
			if !errors.Is(err, ErrInvalidDimension) {
				t.Errorf("New(%d, %d) error = %v, want ErrInvalidDimension", tc.width, tc.height, err)
			}
			if b != nil {
				t.Error("New() should not return a board on error")
			}
		})
	}
}

func TestNewNilSource(t *testing.T) {
	if _, err := New[rune](nil, 3, 3); !errors.Is(err, ErrNilSource) {
		t.Errorf("New(nil) error = %v, want ErrNilSource", err)
	}
}

func TestNewFillsRowMajor(t *testing.T) {
	calls := 0
	letters := []rune("abcdef")
	source := SourceFunc[rune](func() rune {
		r := letters[calls]
		calls++
		return r
	})

	b, err := New[rune](source, 3, 2)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if calls != 6 {
		t.Errorf("source called %d times, want 6", calls)
	}
	want := []string{"abc", "def"}
	if got := rows(b); !reflect.DeepEqual(got, want) {
		t.Errorf("board = %v, want %v", got, want)
	}
	if b.Width() != 3 || b.Height() != 2 {
		t.Errorf("dimensions = %dx%d, want 3x2", b.Width(), b.Height())
	}
}

func TestFromRowsRagged(t *testing.T) {
	_, err := FromRows(NewCycle('A'), grid("ABC", "AB"))
	if !errors.Is(err, ErrRaggedRows) {
		t.Errorf("FromRows() error = %v, want ErrRaggedRows", err)
	}

	_, err = FromRows(NewCycle('A'), [][]rune{})
	if !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("FromRows(empty) error = %v, want ErrInvalidDimension", err)
	}
}

func TestGet(t *testing.T) {
	b := mustBoard(t, NewCycle('Z'), "AB", "CD")

	tests := []struct {
		pos  Position
		want rune
		ok   bool
	}{
		{Pos(0, 0), 'A', true},
		{Pos(0, 1), 'B', true},
		{Pos(1, 0), 'C', true},
		{Pos(1, 1), 'D', true},
		{Pos(-1, 0), 0, false},
		{Pos(0, -1), 0, false},
		{Pos(2, 0), 0, false},
		{Pos(0, 2), 0, false},
		{Pos(5, 5), 0, false},
	}

	for _, tc := range tests {
		got, ok := b.Get(tc.pos)
		if ok != tc.ok || got != tc.want {
			t.Errorf("Get(%v) = (%q, %v), want (%q, %v)", tc.pos, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSetAndSwap(t *testing.T) {
	b := mustBoard(t, NewCycle('Z'), "AB", "CD")

	b.Set(Pos(1, 1), 'X')
	b.Swap(Pos(0, 0), Pos(1, 1))

	want := []string{"XB", "CA"}
	if got := rows(b); !reflect.DeepEqual(got, want) {
		t.Errorf("board = %v, want %v", got, want)
	}
}

func TestSetOutOfBoundsPanics(t *testing.T) {
	b := mustBoard(t, NewCycle('Z'), "AB", "CD")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Set() out of bounds should panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("panic value = %v, want ErrOutOfBounds", r)
		}
	}()
	b.Set(Pos(2, 0), 'X')
}

func TestSwapOutOfBoundsPanics(t *testing.T) {
	b := mustBoard(t, NewCycle('Z'), "AB", "CD")

	defer func() {
		if recover() == nil {
			t.Fatal("Swap() out of bounds should panic")
		}
	}()
	b.Swap(Pos(0, 0), Pos(0, 2))
}

func TestPositions(t *testing.T) {
	b := mustBoard(t, NewCycle('Z'), "ABC", "DEF")

	want := []Position{
		Pos(0, 0), Pos(0, 1), Pos(0, 2),
		Pos(1, 0), Pos(1, 1), Pos(1, 2),
	}
	if got := b.Positions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Positions() = %v, want %v", got, want)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	b := mustBoard(t, NewCycle('Z'), "AB", "CD")

	snap := b.Snapshot()
	snap[0][0] = 'Q'

	if v, _ := b.Get(Pos(0, 0)); v != 'A' {
		t.Errorf("mutating snapshot changed board: got %q", v)
	}
}

func TestPositionManhattan(t *testing.T) {
	if d := Pos(0, 0).Manhattan(Pos(2, 3)); d != 5 {
		t.Errorf("Manhattan() = %d, want 5", d)
	}
	if d := Pos(4, 1).Manhattan(Pos(1, 1)); d != 3 {
		t.Errorf("Manhattan() = %d, want 3", d)
	}
}

package match3

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestRefillGravityColumn(t *testing.T) {
	b := mustBoard(t, NewCycle('x', 'y'), "A", "B", "C", "D", "E")
	b.clear(Pos(1, 0))
	b.clear(Pos(3, 0))

	filled := b.Refill()

	if filled != 2 {
		t.Errorf("Refill() filled %d cells, want 2", filled)
	}
	want := []string{"x", "y", "A", "C", "E"}
	if got := rows(b); !reflect.DeepEqual(got, want) {
		t.Errorf("column = %v, want %v", got, want)
	}
}

func TestRefillTopRowFirstPerColumn(t *testing.T) {
	b := mustBoard(t, NewCycle('1', '2', '3', '4'),
		"AB",
		"CD",
		"EF",
	)
	b.clear(Pos(0, 0))
	b.clear(Pos(1, 0))
	b.clear(Pos(2, 1))

	b.Refill()

	// Column 0 takes two values top first, then column 1 takes one.
	want := []string{"13", "2B", "ED"}
	if got := rows(b); !reflect.DeepEqual(got, want) {
		t.Errorf("board = %v, want %v", got, want)
	}
}

func TestRefillNoEmptyIsNoop(t *testing.T) {
	calls := 0
	source := SourceFunc[rune](func() rune {
		calls++
		return 'Z'
	})
	b := mustBoard(t, source, "AB", "CD")

	if filled := b.Refill(); filled != 0 {
		t.Errorf("Refill() filled %d cells, want 0", filled)
	}
	if calls != 0 {
		t.Errorf("source called %d times on a full board", calls)
	}
}

func TestRefillProperties(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		b, err := New[rune](NewRandom(seed, 'A', 'B', 'C', 'D', 'E'), 6, 7)
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}

		// Clear a random subset and remember each column's survivors top to bottom.
		survivors := make([][]rune, b.Width())
		for col := range b.Width() {
			for row := range b.Height() {
				p := Pos(row, col)
				if rng.Intn(3) == 0 {
					b.clear(p)
					continue
				}
				v, _ := b.Get(p)
				survivors[col] = append(survivors[col], v)
			}
		}

		b.Refill()

		if !b.Full() {
			t.Fatalf("seed %d: board has empty cells after Refill", seed)
		}

		for col := range b.Width() {
			offset := b.Height() - len(survivors[col])
			for i, want := range survivors[col] {
				got, _ := b.Get(Pos(offset+i, col))
				if got != want {
					t.Fatalf("seed %d col %d: row %d = %q, want %q (order not preserved)",
						seed, col, offset+i, got, want)
				}
			}
		}
	}
}

func TestRemoveCountsSharedCellsOnce(t *testing.T) {
	b := mustBoard(t, NewCycle('Z'),
		"AAA",
		"ABC",
		"ADE",
	)

	cleared := b.remove(b.FindMatches())

	if cleared != 5 {
		t.Errorf("remove() cleared %d cells, want 5", cleared)
	}
	want := []string{"...", ".BC", ".DE"}
	if got := rows(b); !reflect.DeepEqual(got, want) {
		t.Errorf("board = %v, want %v", got, want)
	}
}

func TestSetSourceSwitchesRefill(t *testing.T) {
	b := mustBoard(t, NewCycle('x'), "AB", "CD")
	b.SetSource(NewCycle('y'))
	b.clear(Pos(0, 0))

	b.Refill()

	if got, _ := b.Get(Pos(0, 0)); got != 'y' {
		t.Errorf("refilled %q, want value from the new source", got)
	}
}

package match3

import "math/rand"

// Source produces tile values on demand. The engine calls Next once per cell
// at creation and once per emptied cell during refill.
type Source[T any] interface {
	Next() T
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc[T any] func() T

// Next calls f.
func (f SourceFunc[T]) Next() T {
	return f()
}

// Cycle is a deterministic source that returns its values in order and
// starts over after the last one.
type Cycle[T any] struct {
	values []T
	next   int
}

// NewCycle creates a cycling source. It panics if values is empty.
func NewCycle[T any](values ...T) *Cycle[T] {
	if len(values) == 0 {
		panic("match3: NewCycle needs at least one value")
	}
	return &Cycle[T]{values: values}
}

// Next returns the next value in the cycle.
func (c *Cycle[T]) Next() T {
	v := c.values[c.next]
	c.next = (c.next + 1) % len(c.values)
	return v
}

// Random picks uniformly among a set of kinds using a seeded RNG, so a board
// built from the same seed is reproducible.
type Random[T any] struct {
	kinds []T
	rng   *rand.Rand
}

// NewRandom creates a random source over kinds. It panics if kinds is empty.
func NewRandom[T any](seed int64, kinds ...T) *Random[T] {
	if len(kinds) == 0 {
		panic("match3: NewRandom needs at least one kind")
	}
	return &Random[T]{
		kinds: kinds,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Next returns a random kind.
func (r *Random[T]) Next() T {
	return r.kinds[r.rng.Intn(len(r.kinds))]
}

// SetKinds changes the alphabet for subsequent draws. Empty input is ignored.
func (r *Random[T]) SetKinds(kinds ...T) {
	if len(kinds) > 0 {
		r.kinds = kinds
	}
}

// Kinds returns the current alphabet.
func (r *Random[T]) Kinds() []T {
	return r.kinds
}

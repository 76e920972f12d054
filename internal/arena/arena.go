// Package arena implements the three-tier bump allocator the engine is
// built on. An Arena hands out 4-byte-aligned slices of a fixed byte
// region; freeing is wholesale via Reset or Restore. There is no
// per-allocation free and memory is never zeroed on reset, which keeps
// every operation O(1) and frame timing deterministic.
package arena

// Mark is an opaque snapshot of an arena's bump pointer.
type Mark int

// Arena is a (base, current, end) bump allocator over a byte region.
type Arena struct {
	buf     []byte
	current int
}

// Init points the arena at buf. Any previous allocations are forgotten.
func (a *Arena) Init(buf []byte) {
	a.buf = buf
	a.current = 0
}

// New allocates a backing region of the given size and returns an
// initialized arena.
func New(size int) *Arena {
	a := &Arena{}
	a.Init(make([]byte, size))
	return a
}

// Alloc returns a slice of exactly size bytes, or nil if the arena is
// exhausted. The start offset is rounded up to a 4-byte boundary. A
// failed allocation leaves the arena unchanged.
func (a *Arena) Alloc(size int) []byte {
	if size < 0 {
		return nil
	}
	aligned := (a.current + 3) &^ 3
	next := aligned + size
	if next > len(a.buf) {
		return nil
	}
	a.current = next
	return a.buf[aligned:next:next]
}

// Reset rewinds the arena to empty. Existing slices become dead;
// contents are not zeroed.
func (a *Arena) Reset() {
	a.current = 0
}

// Save snapshots the bump pointer.
func (a *Arena) Save() Mark {
	return Mark(a.current)
}

// Restore rewinds to a mark previously returned by Save on this arena.
func (a *Arena) Restore(m Mark) {
	if m < 0 || int(m) > len(a.buf) {
		return
	}
	a.current = int(m)
}

// Used returns the number of bytes consumed, including alignment padding.
func (a *Arena) Used() int {
	return a.current
}

// Remaining returns the bytes still available.
func (a *Arena) Remaining() int {
	return len(a.buf) - a.current
}

// Cap returns the total capacity.
func (a *Arena) Cap() int {
	return len(a.buf)
}

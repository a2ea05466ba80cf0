// Package array provides the growable buffer that backs every dynamic
// collection in Ember: chunk code bytes, line numbers, and constant pools.
package array

// growThreshold is the smallest capacity allocated when a zero-capacity
// array first grows.
const growThreshold = 8

// Array is an owned, contiguous buffer of T with explicit count and
// capacity bookkeeping. When an append exceeds the current capacity, the
// capacity doubles (starting at growThreshold), giving amortized O(1)
// appends with a predictable capacity progression.
//
// The buffer is owned exclusively by the Array: it is never aliased and
// no element at an index >= Count() is ever read.
type Array[T any] struct {
	items []T
	count int
}

// Append copies v into the next free slot, growing the buffer if needed.
func (a *Array[T]) Append(v T) {
	if a.count == cap(a.items) {
		a.grow()
	}
	a.items = a.items[:a.count+1]
	a.items[a.count] = v
	a.count++
}

func (a *Array[T]) grow() {
	newCap := 2 * cap(a.items)
	if newCap < growThreshold {
		newCap = growThreshold
	}
	next := make([]T, a.count, newCap)
	copy(next, a.items)
	a.items = next
}

// Get returns the element at index i. Indexing at or beyond Count is a
// caller bug and panics rather than exposing stale slots.
func (a *Array[T]) Get(i int) T {
	if i < 0 || i >= a.count {
		panic("array: index out of range")
	}
	return a.items[i]
}

// Set replaces the element at index i, which must be < Count.
func (a *Array[T]) Set(i int, v T) {
	if i < 0 || i >= a.count {
		panic("array: index out of range")
	}
	a.items[i] = v
}

// Count returns the number of elements in use.
func (a *Array[T]) Count() int {
	return a.count
}

// Capacity returns the number of allocated slots. Capacity >= Count always.
func (a *Array[T]) Capacity() int {
	return cap(a.items)
}

// Free releases the buffer and resets the array to empty. It is a no-op
// on an already-freed array.
func (a *Array[T]) Free() {
	a.items = nil
	a.count = 0
}

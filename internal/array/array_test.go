package array

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestAppendAndGet(t *testing.T) {
	var a Array[int]
	require.Equal(t, 0, a.Count())
	require.Equal(t, 0, a.Capacity())

	for i := 0; i < 10; i++ {
		a.Append(i * 2)
	}
	require.Equal(t, 10, a.Count())
	for i := 0; i < 10; i++ {
		require.Equal(t, i*2, a.Get(i))
	}
}

func TestCapacityProgression(t *testing.T) {
	var a Array[byte]

	// Capacity doubles starting at 8: 0, 8, 16, 32, ...
	expected := []struct {
		appends  int
		capacity int
	}{
		{1, 8},
		{8, 8},
		{9, 16},
		{16, 16},
		{17, 32},
		{64, 64},
		{65, 128},
	}
	for _, tt := range expected {
		a.Free()
		for i := 0; i < tt.appends; i++ {
			a.Append(0)
		}
		require.Equal(t, tt.capacity, a.Capacity(),
			"capacity after %d appends", tt.appends)
		require.Equal(t, tt.appends, a.Count())
	}
}

func TestSet(t *testing.T) {
	var a Array[string]
	a.Append("x")
	a.Append("y")
	a.Set(1, "z")
	require.Equal(t, "x", a.Get(0))
	require.Equal(t, "z", a.Get(1))
}

func TestOutOfRangePanics(t *testing.T) {
	var a Array[int]
	a.Append(1)
	require.Panics(t, func() { a.Get(1) })
	require.Panics(t, func() { a.Get(-1) })
	require.Panics(t, func() { a.Set(1, 0) })
}

func TestFreeIsIdempotent(t *testing.T) {
	var a Array[float64]
	a.Free() // freeing an empty array is a no-op
	require.Equal(t, 0, a.Count())

	for i := 0; i < 20; i++ {
		a.Append(float64(i))
	}
	a.Free()
	require.Equal(t, 0, a.Count())
	require.Equal(t, 0, a.Capacity())

	a.Free()
	require.Equal(t, 0, a.Capacity())

	// The array remains usable after Free
	a.Append(1.5)
	require.Equal(t, 1, a.Count())
	require.Equal(t, 8, a.Capacity())
}

func TestGrowthInvariantProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("capacity is a power of two >= max(8, count)", prop.ForAll(
		func(n int) bool {
			var a Array[int]
			for i := 0; i < n; i++ {
				a.Append(i)
			}
			if a.Count() != n {
				return false
			}
			c := a.Capacity()
			if c < n {
				return false
			}
			if n == 0 {
				return c == 0
			}
			if c < 8 {
				return false
			}
			// power of two check
			return c&(c-1) == 0
		},
		gen.IntRange(0, 600),
	))

	properties.Property("elements read back in append order", prop.ForAll(
		func(values []int) bool {
			var a Array[int]
			for _, v := range values {
				a.Append(v)
			}
			for i, v := range values {
				if a.Get(i) != v {
					return false
				}
			}
			return a.Count() == len(values)
		},
		gen.SliceOf(gen.Int()),
	))

	properties.TestingRun(t)
}

package morph

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocator_NewAllocator(t *testing.T) {
	a := NewAllocator()
	assert.Equal(t, ID(0), a.Peek(), "new allocator should start at 0")
}

func TestAllocator_NewAllocatorAt(t *testing.T) {
	a := NewAllocatorAt(100)
	assert.Equal(t, ID(100), a.Next())
	assert.Equal(t, ID(101), a.Peek())
}

func TestAllocator_Next_ReturnsPreIncrement(t *testing.T) {
	a := NewAllocator()

	assert.Equal(t, ID(0), a.Next())
	assert.Equal(t, ID(1), a.Next())
	assert.Equal(t, ID(2), a.Next())
	assert.Equal(t, ID(3), a.Peek())
}

func TestAllocator_Next_StrictlyIncreasing(t *testing.T) {
	a := NewAllocator()
	last := a.Next()
	for i := 0; i < 1000; i++ {
		id := a.Next()
		require.Greater(t, id, last)
		last = id
	}
}

func TestAllocator_ThreadSafe(t *testing.T) {
	a := NewAllocator()
	const goroutines = 50
	const callsPerGoroutine = 100

	var wg sync.WaitGroup
	ids := make(chan ID, goroutines*callsPerGoroutine)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				ids <- a.Next()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[ID]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, goroutines*callsPerGoroutine)
}

func TestAllocator_Exhaustion(t *testing.T) {
	a := NewAllocatorAt(math.MaxUint64 - 1)
	assert.Equal(t, ID(math.MaxUint64-1), a.Next())

	defer func() {
		r := recover()
		require.NotNil(t, r, "exhausted allocator must panic")
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, IsAllocatorExhausted(err))
		assert.Equal(t, ID(math.MaxUint64), a.Peek(), "counter must not wrap")
	}()
	a.Next()
}

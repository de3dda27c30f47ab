package morph

import (
	"math"
	"sync/atomic"
)

// ID is the opaque identity of one displayed letter instance.
type ID uint64

// Allocator issues strictly increasing letter IDs.
//
// Each Morpher owns exactly one Allocator. IDs from different allocators may
// collide, which is fine as long as their renderers are isolated.
//
// Thread-safety: Next is atomic, but the single-writer design means only the
// goroutine running a transition calls it.
type Allocator struct {
	next atomic.Uint64
}

// NewAllocator creates an allocator whose first ID is 0.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// NewAllocatorAt creates an allocator whose first ID is start.
func NewAllocatorAt(start ID) *Allocator {
	a := &Allocator{}
	a.next.Store(uint64(start))
	return a
}

// Next returns the next ID and advances the counter.
//
// Panics with an ALLOCATOR_EXHAUSTED *Error once the counter reaches
// math.MaxUint64. IDs never wrap.
func (a *Allocator) Next() ID {
	for {
		cur := a.next.Load()
		if cur == math.MaxUint64 {
			panic(&Error{
				Code:    ErrCodeAllocatorExhausted,
				Message: "letter id counter overflowed",
			})
		}
		if a.next.CompareAndSwap(cur, cur+1) {
			return ID(cur)
		}
	}
}

// Peek returns the ID the next call to Next would issue.
func (a *Allocator) Peek() ID {
	return ID(a.next.Load())
}

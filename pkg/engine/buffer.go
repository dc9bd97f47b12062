package engine

import (
	"errors"
	"sync/atomic"
)

var ErrRingFull = errors.New("ring is full")

// Ring is a fixed-size circular queue of raw datagram payloads, safe for one
// pushing goroutine (the listener) and one popping goroutine (the pipeline
// worker). When the ring is full, new payloads are tail-dropped; UDP gives no
// delivery guarantee anyway and malformed background traffic is expected.
type Ring struct {
	slots [][]byte
	head  uint64
	tail  uint64
	mask  uint64
	size  uint64

	dropped atomic.Uint64
}

// NewRing creates a ring with the given capacity, which must be a power of 2
// so index wrapping stays a mask.
func NewRing(size uint64) (*Ring, error) {
	if size == 0 || size&(size-1) != 0 {
		return nil, errors.New("ring size must be a power of 2")
	}
	return &Ring{
		slots: make([][]byte, size),
		mask:  size - 1,
		size:  size,
	}, nil
}

// Push queues a payload, or drops it and returns ErrRingFull.
func (r *Ring) Push(payload []byte) error {
	head := atomic.LoadUint64(&r.head)
	tail := atomic.LoadUint64(&r.tail)

	if head-tail >= r.size {
		r.dropped.Add(1)
		return ErrRingFull
	}

	r.slots[head&r.mask] = payload
	atomic.StoreUint64(&r.head, head+1)
	return nil
}

// Pop dequeues the oldest payload, or returns nil when the ring is empty.
func (r *Ring) Pop() []byte {
	tail := r.tail
	head := atomic.LoadUint64(&r.head)

	if tail == head {
		return nil
	}

	payload := r.slots[tail&r.mask]
	r.slots[tail&r.mask] = nil
	atomic.StoreUint64(&r.tail, tail+1)
	return payload
}

// Dropped returns how many payloads were tail-dropped.
func (r *Ring) Dropped() uint64 {
	return r.dropped.Load()
}

// Len returns how many payloads are queued.
func (r *Ring) Len() uint64 {
	return atomic.LoadUint64(&r.head) - atomic.LoadUint64(&r.tail)
}

package netspeed

import "sync"

// ringBuffer is a thread-safe, fixed-capacity circular buffer with strict
// oldest-first eviction.
type ringBuffer[T any] struct {
	mu    sync.RWMutex
	items []T
	head  int
	count int
	cap   int
}

func newRingBuffer[T any](capacity int) *ringBuffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &ringBuffer[T]{
		items: make([]T, capacity),
		cap:   capacity,
	}
}

// add inserts an item, overwriting the oldest if the buffer is full.
func (r *ringBuffer[T]) add(item T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[r.head] = item
	r.head = (r.head + 1) % r.cap
	if r.count < r.cap {
		r.count++
	}
}

func (r *ringBuffer[T]) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// all returns the contents in insertion order, oldest first.
func (r *ringBuffer[T]) all() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]T, r.count)
	start := 0
	if r.count == r.cap {
		start = r.head
	}
	for i := 0; i < r.count; i++ {
		result[i] = r.items[(start+i)%r.cap]
	}
	return result
}

// clear empties the buffer without resizing it.
func (r *ringBuffer[T]) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	for i := range r.items {
		r.items[i] = zero
	}
	r.head = 0
	r.count = 0
}

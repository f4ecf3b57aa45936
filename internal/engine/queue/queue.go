// Package queue implements the unbounded FIFO queue that carries handle
// lifecycle messages to the registry owner.
package queue

import "sync"

// Queue is an unbounded multi-producer, single-consumer FIFO queue.
// Push never blocks. Drain hands every pending item to the consumer in
// insertion order and returns immediately when nothing is queued.
type Queue[T any] struct {
	mu      sync.Mutex
	pending []T
	spare   []T
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Push appends an item to the queue.
func (q *Queue[T]) Push(item T) {
	q.mu.Lock()
	q.pending = append(q.pending, item)
	q.mu.Unlock()
}

// Drain removes everything queued so far and applies fn to each item in
// FIFO order. Items pushed while fn runs are left for the next drain.
func (q *Queue[T]) Drain(fn func(T)) {
	q.mu.Lock()
	batch := q.pending
	q.pending = q.spare[:0]
	q.mu.Unlock()

	for i := range batch {
		fn(batch[i])
	}

	// Hand the drained backing array back for reuse.
	q.mu.Lock()
	q.spare = batch[:0]
	q.mu.Unlock()
}

// Len returns the number of pending items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

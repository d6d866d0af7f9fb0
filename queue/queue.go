package queue

import (
	"sync"

	"github.com/benpate/derp"
)

// BlockingQueue is a thread-safe FIFO queue. Pop suspends the calling
// goroutine (no spinning) until an item is available, so any number of
// workers can share one queue instance.
//
// A queue that is never closed blocks its consumers forever; Close is the
// only way to release them once the queue is empty.
type BlockingQueue[T any] struct {
	mutex  sync.Mutex
	notify *sync.Cond
	items  []T
	closed bool
}

// NewBlockingQueue returns a fully initialized BlockingQueue
func NewBlockingQueue[T any]() *BlockingQueue[T] {
	result := BlockingQueue[T]{
		items: make([]T, 0),
	}
	result.notify = sync.NewCond(&result.mutex)
	return &result
}

// Push appends an item to the tail of the queue and wakes one blocked
// consumer. It only fails if the queue has been closed.
func (queue *BlockingQueue[T]) Push(item T) error {

	const location = "queue.BlockingQueue.Push"

	queue.mutex.Lock()
	defer queue.mutex.Unlock()

	if queue.closed {
		return derp.InternalError(location, "Queue is closed")
	}

	queue.items = append(queue.items, item)

	// One item, one waiter.
	queue.notify.Signal()
	return nil
}

// Pop removes and returns the head of the queue, blocking while the queue is
// empty. There is no timeout and no cancellation; the second return value is
// FALSE only when the queue has been closed and fully drained.
func (queue *BlockingQueue[T]) Pop() (T, bool) {

	queue.mutex.Lock()
	defer queue.mutex.Unlock()

	for len(queue.items) == 0 {

		if queue.closed {
			var zero T
			return zero, false
		}

		queue.notify.Wait()
	}

	item := queue.items[0]
	queue.items = queue.items[1:]
	return item, true
}

// Length returns the number of items currently waiting in the queue
func (queue *BlockingQueue[T]) Length() int {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()
	return len(queue.items)
}

// Close marks the queue as closed and wakes every blocked consumer. Items
// already queued can still be popped; once the queue is empty, Pop returns
// immediately with FALSE.
func (queue *BlockingQueue[T]) Close() {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()

	queue.closed = true
	queue.notify.Broadcast()
}

// Clear discards every item currently waiting in the queue, and returns the
// number of items that were discarded.
func (queue *BlockingQueue[T]) Clear() int {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()

	discarded := len(queue.items)
	queue.items = queue.items[:0]
	return discarded
}

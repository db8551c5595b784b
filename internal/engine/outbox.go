package engine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/stack/internal/model"
)

// opKind distinguishes the remote operations the outbox carries.
type opKind string

const (
	opUpsert opKind = "upsert"
	opDelete opKind = "delete"
)

// remoteOp is one queued remote call. onFailure, when set, is the rollback
// applied if the call fails; it runs with the engine state lock held.
type remoteOp struct {
	kind       opKind
	assignment model.Assignment // upsert payload
	id         uuid.UUID        // delete target
	onFailure  func()
}

// targetID returns the assignment id the operation acts on.
func (op remoteOp) targetID() uuid.UUID {
	if op.kind == opDelete {
		return op.id
	}
	return op.assignment.ID
}

// outbox is a thread-safe FIFO queue of remote operations.
//
// The queue is unbounded: local mutations must never block on network
// backpressure. Thread-safety covers enqueuing from any caller while the
// engine's single worker dequeues. A buffered signal channel of size 1
// coalesces wakeups and lets the worker wait without spinning.
type outbox struct {
	mu     sync.Mutex
	ops    []remoteOp
	closed bool
	signal chan struct{}
}

func newOutbox() *outbox {
	return &outbox{
		ops:    make([]remoteOp, 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue adds an operation to the back of the queue.
// Returns false if the outbox is closed.
func (q *outbox) Enqueue(op remoteOp) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.ops = append(q.ops, op)

	// Non-blocking send: a pending token already covers this wakeup.
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// TryDequeue removes and returns the front operation without blocking.
func (q *outbox) TryDequeue() (remoteOp, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.ops) == 0 {
		return remoteOp{}, false
	}

	op := q.ops[0]
	// Zero the slot so the backing array does not retain the closure.
	q.ops[0] = remoteOp{}
	if len(q.ops) == 1 {
		q.ops = q.ops[:0]
	} else {
		q.ops = q.ops[1:]
	}
	return op, true
}

// Wait returns a channel that fires when operations may be available.
// The channel is closed when the outbox closes, waking the worker for its
// final drain.
func (q *outbox) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the number of queued operations.
func (q *outbox) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ops)
}

// Closed reports whether Close has been called.
func (q *outbox) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Close rejects further enqueues and wakes any blocked waiter.
func (q *outbox) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}

package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutbox_FIFO(t *testing.T) {
	q := newOutbox()

	first := remoteOp{kind: opDelete, id: uuid.New()}
	second := remoteOp{kind: opDelete, id: uuid.New()}
	require.True(t, q.Enqueue(first))
	require.True(t, q.Enqueue(second))
	assert.Equal(t, 2, q.Len())

	got, ok := q.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, first.id, got.id)

	got, ok = q.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, second.id, got.id)

	_, ok = q.TryDequeue()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestOutbox_SignalCoalesces(t *testing.T) {
	q := newOutbox()

	require.True(t, q.Enqueue(remoteOp{kind: opUpsert}))
	require.True(t, q.Enqueue(remoteOp{kind: opUpsert}))
	require.True(t, q.Enqueue(remoteOp{kind: opUpsert}))

	// Many enqueues leave at most one pending token; the consumer drains the
	// queue rather than counting wakeups.
	<-q.Wait()
	select {
	case <-q.Wait():
		t.Fatal("signal channel must hold at most one token")
	default:
	}
	assert.Equal(t, 3, q.Len())
}

func TestOutbox_Close(t *testing.T) {
	q := newOutbox()
	require.True(t, q.Enqueue(remoteOp{kind: opUpsert}))

	q.Close()
	assert.True(t, q.Closed())
	assert.False(t, q.Enqueue(remoteOp{kind: opUpsert}), "enqueue after close is rejected")
	assert.Equal(t, 1, q.Len(), "close does not drop queued operations")

	// A closed outbox keeps waking the consumer so it can finish draining.
	<-q.Wait()
	<-q.Wait()

	q.Close() // idempotent
}

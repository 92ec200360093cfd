// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"errors"
	"sync"
)

// ErrQueueClosed is returned by a read pump whose consumer (the
// matching write pump) has already exited.
var ErrQueueClosed = errors.New("relay queue consumer has exited")

// errStopped is returned by a pump that exited because the supervisor
// asked it to.
var errStopped = errors.New("pump stopped by supervisor")

// queue is a bounded single-producer single-consumer FIFO of frame
// payloads. The producer closes items when it is done; the consumer
// closes consumerGone when it is done, so a producer blocked on a full
// queue notices a dead consumer instead of blocking forever.
type queue struct {
	items        chan []byte
	consumerGone chan struct{}

	closeOnce sync.Once
	goneOnce  sync.Once
}

func newQueue(capacity int) *queue {
	return &queue{
		items:        make(chan []byte, capacity),
		consumerGone: make(chan struct{}),
	}
}

// send enqueues payload, blocking while the queue is full.
func (q *queue) send(payload []byte, stop <-chan struct{}) error {
	select {
	case <-q.consumerGone:
		return ErrQueueClosed
	default:
	}
	select {
	case q.items <- payload:
		return nil
	case <-q.consumerGone:
		return ErrQueueClosed
	case <-stop:
		return errStopped
	}
}

// close marks the producer side finished. The consumer drains what is
// already queued and then sees the channel closed.
func (q *queue) close() {
	q.closeOnce.Do(func() { close(q.items) })
}

// markConsumerGone releases a producer blocked in send.
func (q *queue) markConsumerGone() {
	q.goneOnce.Do(func() { close(q.consumerGone) })
}

package main

import (
	"io"

	"github.com/lightningnetwork/lnd/queue"
)

// queuedWriter decouples frame production from the actual blocking
// write to stdout, the same queueHandler/writeHandler split lnd's
// peer.go uses for its outgoing wire messages: one goroutine accepts
// frames as fast as the ceremony produces them, a second drains them
// onto the underlying writer in order. Backed by lnd/queue's
// ConcurrentQueue, an unbounded FIFO safe for one producer and one
// consumer goroutine.
type queuedWriter struct {
	q    *queue.ConcurrentQueue
	w    io.Writer
	done chan struct{}
	errs chan error
}

// newQueuedWriter starts the drain goroutine and returns a ready writer.
func newQueuedWriter(w io.Writer) *queuedWriter {
	qw := &queuedWriter{
		q:    queue.NewConcurrentQueue(outgoingQueueLen),
		w:    w,
		done: make(chan struct{}),
		errs: make(chan error, 1),
	}
	qw.q.Start()
	go qw.writeHandler()
	return qw
}

// outgoingQueueLen mirrors peer.go's outgoingQueueLen: generous enough
// that the ceremony's handful of messages never blocks on it.
const outgoingQueueLen = 50

// Write satisfies io.Writer by handing p to the queue; the actual
// syscall happens asynchronously on writeHandler. A copy is queued
// since the caller may reuse p's backing array once Write returns.
func (qw *queuedWriter) Write(p []byte) (int, error) {
	cp := make([]byte, len(p))
	copy(cp, p)
	qw.q.ChanIn() <- cp
	return len(p), nil
}

// writeHandler drains frames in order, exactly as peer.go's writeHandler
// pulls from the queue a queueHandler goroutine fills.
func (qw *queuedWriter) writeHandler() {
	for {
		select {
		case item, ok := <-qw.q.ChanOut():
			if !ok {
				return
			}
			if _, err := qw.w.Write(item.([]byte)); err != nil {
				select {
				case qw.errs <- err:
				default:
				}
			}
		case <-qw.done:
			return
		}
	}
}

// Close stops the underlying queue and the drain goroutine, returning
// the first write error observed, if any.
func (qw *queuedWriter) Close() error {
	qw.q.Stop()
	close(qw.done)
	select {
	case err := <-qw.errs:
		return err
	default:
		return nil
	}
}

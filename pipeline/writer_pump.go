package pipeline

import "sync"

// WriterPump serializes writes from many concurrent producers onto a single
// consumer goroutine's single-writer pattern: pass 2 of the
// edge-based factory has one goroutine per node-id range discovering turns
// concurrently, but the original-edge-data sidecar and the edge-based-edge
// stream must each be written in a single, consistent order, so producers
// hand items to the pump instead of writing directly.
type WriterPump[T any] struct {
	queue chan T
	done  chan struct{}
	err   error
	mu    sync.Mutex
}

// NewWriterPump starts the consumer goroutine, which calls drain(item) for
// every item sent via Send, in the order they are received, until Close is
// called and the queue drains. capacity bounds how far producers can run
// ahead of the consumer.
func NewWriterPump[T any](capacity int, drain func(T) error) *WriterPump[T] {
	p := &WriterPump[T]{
		queue: make(chan T, capacity),
		done:  make(chan struct{}),
	}

	go func() {
		defer close(p.done)
		for item := range p.queue {
			if p.firstErr() != nil {
				continue
			}
			if err := drain(item); err != nil {
				p.setErr(err)
			}
		}
	}()

	return p
}

func (p *WriterPump[T]) firstErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *WriterPump[T]) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err == nil {
		p.err = err
	}
}

// Send hands item to the writer goroutine. It may block if the queue is
// full, applying backpressure to the caller's producer.
func (p *WriterPump[T]) Send(item T) {
	p.queue <- item
}

// Close signals no more items will be sent, waits for the writer goroutine
// to drain the queue, and returns the first error seen by drain, if any.
func (p *WriterPump[T]) Close() error {
	close(p.queue)
	<-p.done
	return p.firstErr()
}

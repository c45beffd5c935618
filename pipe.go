// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyio

import (
	"io"
	"math/bits"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// pipe is the bounded handoff channel shared by one Writer and one Reader.
// Chunks travel through a lock-free SPSC queue. queued counts reserved
// slots, so the bound is exactly capacity even when the ring is larger.
//
// readable and writable are one-slot wakeup signals: a token means the
// peer made progress (or closed) since the waiter last looked.
type pipe struct {
	chunks   lfq.SPSC[[]byte]
	queued   atomix.Uint32
	capacity uint32

	writerClosed atomix.Uint32
	readerClosed atomix.Uint32

	readable chan struct{}
	writable chan struct{}

	// pending is the unread tail of a chunk partially consumed by Read.
	// Only the consumer's read path touches it; Close may run on another
	// goroutine and leaves it alone.
	pending []byte

	serial   Serial
	observer Observer
}

// New creates a connected Writer/Reader pair whose pipe holds at most
// capacity chunks. New panics if capacity is not positive.
//
// Closing the Writer is the only end-of-stream signal for the Reader.
// Closing the Reader makes every later write fail with ErrBrokenPipe.
// Go has no deterministic destruction: a handle that is never closed
// leaves its peer waiting indefinitely.
func New(capacity int, opts ...Option) (*Writer, *Reader) {
	if capacity <= 0 {
		panic("bodyio: capacity must be positive")
	}
	if uint64(capacity) > 1<<31 {
		panic("bodyio: capacity too large")
	}
	o := options{observer: nopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}

	p := &pipe{
		capacity: uint32(capacity),
		readable: make(chan struct{}, 1),
		writable: make(chan struct{}, 1),
		serial:   nextSerial(),
		observer: o.observer,
	}
	p.chunks.Init(ringSize(uint32(capacity)))

	w := &Writer{end: end{p: p, side: WriteSide}}
	r := &Reader{end: end{p: p, side: ReadSide}}
	return w, r
}

// ringSize rounds capacity up to a power of two, at least 2 as lfq requires.
func ringSize(capacity uint32) int {
	return max(2, 1<<bits.Len32(capacity-1))
}

// notify leaves a wakeup token in ch unless one is already pending.
func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// put enqueues chunk without blocking.
// Returns iox.ErrWouldBlock when capacity chunks are already held.
func (p *pipe) put(chunk []byte) error {
	if p.writerClosed.Load() != 0 {
		return io.ErrClosedPipe
	}
	if p.readerClosed.Load() != 0 {
		return ErrBrokenPipe
	}
	if p.queued.Add(1) > p.capacity {
		p.queued.Add(^uint32(0))
		return iox.ErrWouldBlock
	}
	if err := p.chunks.Enqueue(&chunk); err != nil {
		p.queued.Add(^uint32(0))
		return err
	}
	p.observer.ChunkWritten(p.serial, len(chunk))
	notify(p.readable)
	return nil
}

// take dequeues the next chunk without blocking.
// Returns iox.ErrWouldBlock while the queue is empty and the writer is open,
// and io.EOF once it is empty and the writer has closed.
func (p *pipe) take() ([]byte, error) {
	if p.readerClosed.Load() != 0 {
		return nil, io.ErrClosedPipe
	}
	if len(p.pending) > 0 {
		b := p.pending
		p.pending = nil
		return b, nil
	}
	b, err := p.chunks.Dequeue()
	if err != nil {
		if !iox.IsWouldBlock(err) {
			return nil, err
		}
		if p.writerClosed.Load() == 0 {
			return nil, iox.ErrWouldBlock
		}
		// The last chunk may have landed between Dequeue and the flag load.
		if b, err = p.chunks.Dequeue(); err != nil {
			return nil, io.EOF
		}
	}
	p.queued.Add(^uint32(0))
	p.observer.ChunkRead(p.serial, len(b))
	notify(p.writable)
	return b, nil
}

func (p *pipe) closeWrite() {
	if p.writerClosed.Add(1) != 1 {
		return
	}
	p.observer.Closed(p.serial, WriteSide)
	notify(p.readable)
	notify(p.writable)
}

func (p *pipe) closeRead() {
	if p.readerClosed.Add(1) != 1 {
		return
	}
	p.observer.Closed(p.serial, ReadSide)
	notify(p.readable)
	notify(p.writable)
}

// end is the state shared by Writer and Reader: the pipe and which side
// of it the handle owns.
type end struct {
	p    *pipe
	side Side
}

func (e *end) endpoint() *end { return e }

// Serial returns the serial number of the pair this end belongs to.
func (e *end) Serial() Serial { return e.p.serial }

// Side reports which side of the pipe this end owns.
func (e *end) Side() Side { return e.side }

// signal returns the wakeup channel this end parks on when blocked.
func (e *end) signal() <-chan struct{} {
	if e.side == WriteSide {
		return e.p.writable
	}
	return e.p.readable
}

func (e *end) close() {
	if e.side == WriteSide {
		e.p.closeWrite()
		return
	}
	e.p.closeRead()
}

// Endpoint is either end of a pipe: *Writer or *Reader.
type Endpoint interface {
	Serial() Serial
	Side() Side
	endpoint() *end
}

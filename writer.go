// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyio

import (
	"bytes"
	"context"
	"io"

	"code.hybscloud.com/iox"
)

var (
	_ io.WriteCloser = (*Writer)(nil)
	_ io.ReaderFrom  = (*Writer)(nil)
	_ Endpoint       = (*Writer)(nil)
)

// readFromBufferSize bounds the size of each chunk produced by ReadFrom.
const readFromBufferSize = 32 * 1024

// Writer is the producing end of a body pipe.
//
// Every accepted write becomes exactly one chunk, visible to the Reader as
// one Frame. A Writer has a single user at a time; concurrent writes are not
// ordered.
type Writer struct {
	end
}

// Write implements io.Writer for goroutines that cannot park on a context.
// When the pipe is full it retries with iox.Backoff (spin, yield, then sleep)
// until space frees up. This spends CPU under sustained backpressure and has
// no upper bound; use WriteContext for a bounded or scheduler-friendly wait.
//
// Write returns len(p) on success. It fails with ErrBrokenPipe once the
// Reader is closed and with io.ErrClosedPipe after Close.
func (w *Writer) Write(p []byte) (int, error) {
	chunk := bytes.Clone(p)
	var bo iox.Backoff
	for stalled := false; ; stalled = true {
		err := w.p.put(chunk)
		if err == nil {
			return len(p), nil
		}
		if !iox.IsWouldBlock(err) {
			return 0, err
		}
		if !stalled {
			w.p.observer.Backpressure(w.p.serial)
		}
		bo.Wait()
	}
}

// TryWrite enqueues p as one chunk without waiting.
// Returns iox.ErrWouldBlock when the pipe is full.
func (w *Writer) TryWrite(p []byte) (int, error) {
	if err := w.p.put(bytes.Clone(p)); err != nil {
		if iox.IsWouldBlock(err) {
			w.p.observer.Backpressure(w.p.serial)
		}
		return 0, err
	}
	return len(p), nil
}

// WriteContext enqueues p as one chunk, parking the calling goroutine while
// the pipe is full. It returns ctx.Err() if ctx ends first, in which case
// nothing was enqueued.
func (w *Writer) WriteContext(ctx context.Context, p []byte) (int, error) {
	chunk := bytes.Clone(p)
	for stalled := false; ; stalled = true {
		err := w.p.put(chunk)
		if err == nil {
			return len(p), nil
		}
		if !iox.IsWouldBlock(err) {
			return 0, err
		}
		if !stalled {
			w.p.observer.Backpressure(w.p.serial)
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-w.p.writable:
		}
	}
}

// ReadFrom implements io.ReaderFrom. Each successful read from r is written
// as one chunk with the same waiting policy as Write.
func (w *Writer) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, readFromBufferSize)
	var total int64
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return total, err
			}
			total += int64(n)
		}
		if rerr == io.EOF {
			return total, nil
		}
		if rerr != nil {
			return total, rerr
		}
	}
}

// Flush is a no-op: an accepted write is already visible to the Reader.
func (w *Writer) Flush() error { return nil }

// Close ends the stream. The Reader drains whatever is queued and then
// observes io.EOF. Close is idempotent.
func (w *Writer) Close() error {
	w.p.closeWrite()
	return nil
}

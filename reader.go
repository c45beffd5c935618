// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyio

import (
	"context"
	"io"
	"iter"

	"code.hybscloud.com/iox"
)

var (
	_ io.ReadCloser = (*Reader)(nil)
	_ io.WriterTo   = (*Reader)(nil)
	_ Endpoint      = (*Reader)(nil)
)

// Reader is the consuming end of a body pipe.
//
// Frames arrive in exactly the order they were written. After the Writer is
// closed the Reader still drains every queued frame before reporting io.EOF.
type Reader struct {
	end
}

// TryNext returns the next frame without waiting.
// Returns iox.ErrWouldBlock when nothing is queued and the Writer is open,
// and io.EOF at end-of-stream.
func (r *Reader) TryNext() (Frame, error) {
	b, err := r.p.take()
	if err != nil {
		return Frame{}, err
	}
	return Frame{data: b}, nil
}

// Next returns the next frame, parking the calling goroutine until one
// arrives, the stream ends (io.EOF) or ctx ends (ctx.Err()).
func (r *Reader) Next(ctx context.Context) (Frame, error) {
	for {
		f, err := r.TryNext()
		if !iox.IsWouldBlock(err) {
			return f, err
		}
		select {
		case <-ctx.Done():
			return Frame{}, ctx.Err()
		case <-r.p.readable:
		}
	}
}

// Frames returns the remaining frames as a lazy sequence. Each step may park
// the caller. The sequence stops after the last frame once the Writer is
// closed; if ctx ends or the Reader is closed it yields one final error.
//
// The sequence is not restartable: frames consumed by one iteration are gone,
// and iterating again after end-of-stream yields nothing.
func (r *Reader) Frames(ctx context.Context) iter.Seq2[Frame, error] {
	return func(yield func(Frame, error) bool) {
		for {
			f, err := r.Next(ctx)
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Frame{}, err)
				return
			}
			if !yield(f, nil) {
				return
			}
		}
	}
}

// ReadContext copies the next bytes of the stream into p, parking while the
// pipe is empty. A chunk longer than p is delivered over successive calls.
// Zero-length chunks carry no bytes and are skipped. End-of-stream is
// reported as (0, io.EOF); after Close, reads fail with io.ErrClosedPipe
// and any unread tail is discarded.
func (r *Reader) ReadContext(ctx context.Context, p []byte) (int, error) {
	if r.p.readerClosed.Load() != 0 {
		return 0, io.ErrClosedPipe
	}
	if len(p) == 0 {
		return 0, nil
	}
	for len(r.p.pending) == 0 {
		f, err := r.Next(ctx)
		if err != nil {
			return 0, err
		}
		r.p.pending = f.data
	}
	n := copy(p, r.p.pending)
	r.p.pending = r.p.pending[n:]
	return n, nil
}

// Read implements io.Reader. It is ReadContext without a deadline.
func (r *Reader) Read(p []byte) (int, error) {
	return r.ReadContext(context.Background(), p)
}

// WriteTo implements io.WriterTo by writing every remaining frame to w,
// in order, until end-of-stream.
func (r *Reader) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for f, err := range r.Frames(context.Background()) {
		if err != nil {
			return total, err
		}
		if f.Len() == 0 {
			continue
		}
		n, err := w.Write(f.data)
		total += int64(n)
		if err != nil {
			return total, err
		}
		if n != f.Len() {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}

// Close abandons the stream. Queued frames are discarded, and the Writer's
// current and future writes fail with ErrBrokenPipe. Close is idempotent
// and may be called from a goroutine other than the one reading, as
// net/http does with request bodies.
func (r *Reader) Close() error {
	r.p.closeRead()
	return nil
}

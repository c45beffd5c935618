// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyio

// Side identifies one end of a body pipe.
type Side uint8

const (
	WriteSide Side = iota + 1
	ReadSide
)

func (s Side) String() string {
	switch s {
	case WriteSide:
		return "write"
	case ReadSide:
		return "read"
	default:
		return "unknown"
	}
}

// Observer receives transfer events of a pipe. Methods are called
// synchronously on the goroutine performing the operation and must not block.
type Observer interface {
	ChunkWritten(serial Serial, n int)
	ChunkRead(serial Serial, n int)
	// Backpressure is reported once per write that found the pipe full.
	Backpressure(serial Serial)
	Closed(serial Serial, side Side)
}

type nopObserver struct{}

func (nopObserver) ChunkWritten(Serial, int) {}
func (nopObserver) ChunkRead(Serial, int)    {}
func (nopObserver) Backpressure(Serial)      {}
func (nopObserver) Closed(Serial, Side)      {}

// Option configures a pipe created by New.
type Option func(*options)

type options struct {
	observer Observer
}

// WithObserver installs o as the pipe's event observer.
// A nil o keeps the default no-op observer.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		if o != nil {
			opts.observer = o
		}
	}
}

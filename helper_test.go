// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyio_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/bodyio"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// execExpr drives a protocol to completion on e via a Step+Advance loop,
// retrying on iox.ErrWouldBlock. Any other error is returned.
func execExpr[R any](e bodyio.Endpoint, protocol kont.Expr[R]) (R, error) {
	result, susp := bodyio.Step[R](protocol)
	for susp != nil {
		next, s, err := bodyio.Advance(e, susp)
		if err == nil {
			result, susp = next, s
			continue
		}
		if iox.IsWouldBlock(err) {
			continue
		}
		susp.Discard()
		var zero R
		return zero, err
	}
	return result, nil
}

// collect drains r through the frame sequence and returns each payload.
func collect(t *testing.T, r *bodyio.Reader) [][]byte {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var out [][]byte
	for f, err := range r.Frames(ctx) {
		if err != nil {
			t.Fatalf("Frames: %v", err)
		}
		out = append(out, f.Data())
	}
	return out
}

// recorder is an Observer that records every event.
type recorder struct {
	mu           sync.Mutex
	written      []int
	read         []int
	backpressure int
	closed       []bodyio.Side
}

func (r *recorder) ChunkWritten(_ bodyio.Serial, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.written = append(r.written, n)
}

func (r *recorder) ChunkRead(_ bodyio.Serial, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.read = append(r.read, n)
}

func (r *recorder) Backpressure(bodyio.Serial) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backpressure++
}

func (r *recorder) Closed(_ bodyio.Serial, side bodyio.Side) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = append(r.closed, side)
}

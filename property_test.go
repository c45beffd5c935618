// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyio_test

import (
	"bytes"
	"context"
	"testing"
	"testing/quick"

	"code.hybscloud.com/bodyio"
)

// TestPropertyFIFO checks that for any sequence of writes and any capacity,
// the reader observes exactly the written chunks, in order, without loss,
// duplication or merging, while producer and consumer run concurrently.
func TestPropertyFIFO(t *testing.T) {
	skipRace(t)

	property := func(payload [][]byte, capacity uint8) bool {
		w, r := bodyio.New(int(capacity%8) + 1)
		go func() {
			defer w.Close()
			for _, c := range payload {
				if _, err := w.Write(c); err != nil {
					return
				}
			}
		}()

		var got [][]byte
		for f, err := range r.Frames(context.Background()) {
			if err != nil {
				return false
			}
			got = append(got, f.Data())
		}
		if len(got) != len(payload) {
			return false
		}
		for i := range payload {
			if !bytes.Equal(got[i], payload[i]) {
				return false
			}
		}
		return true
	}

	if err := quick.Check(property, &quick.Config{MaxCount: 200}); err != nil {
		t.Fatalf("FIFO property violated: %v", err)
	}
}

// TestPropertyBound checks that TryWrite accepts exactly capacity chunks
// before reporting backpressure.
func TestPropertyBound(t *testing.T) {
	property := func(capacity uint8) bool {
		c := int(capacity) + 1
		w, _ := bodyio.New(c)
		accepted := 0
		for range c + 5 {
			if _, err := w.TryWrite([]byte{1}); err != nil {
				break
			}
			accepted++
		}
		return accepted == c
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatalf("bound property violated: %v", err)
	}
}

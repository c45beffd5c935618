// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyio

// Frame is the consumer-facing form of one chunk. Its bytes are exactly the
// bytes of a single accepted write, never split or merged with a neighbour,
// except for the unread tail of a chunk cut short by Reader.Read.
type Frame struct {
	data []byte
}

// Data returns the frame payload. The slice is owned by the caller.
func (f Frame) Data() []byte { return f.data }

// Len returns the payload length. Zero-length frames are legal.
func (f Frame) Len() int { return len(f.data) }

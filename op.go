// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyio

import (
	"bytes"
	"io"

	"code.hybscloud.com/kont"
)

// bodyDispatcher is the structural interface for body operations.
// DispatchBody is non-blocking: it returns iox.ErrWouldBlock when the
// pipe cannot make progress, or a terminal error such as ErrBrokenPipe.
type bodyDispatcher interface {
	DispatchBody(e *end) (kont.Resumed, error)
}

// Put is the effect operation for writing one chunk.
// Perform(Put{Data: b}) resumes with len(b) once the chunk is queued.
// Data is copied at dispatch; the caller may reuse it afterwards.
type Put struct {
	kont.Phantom[int]
	Data []byte
}

// DispatchBody handles Put on the write end.
func (o Put) DispatchBody(e *end) (kont.Resumed, error) {
	if e.side != WriteSide {
		panic("bodyio: Put dispatched on a read end")
	}
	if err := e.p.put(bytes.Clone(o.Data)); err != nil {
		return nil, err
	}
	return len(o.Data), nil
}

// Take is the effect operation for receiving the next frame.
// Perform(Take{}) resumes with Right(frame), or Left at end-of-stream.
type Take struct {
	kont.Phantom[kont.Either[struct{}, Frame]]
}

// endOfStream is the pre-boxed Left resumption for Take.
var endOfStream kont.Resumed = kont.Left[struct{}, Frame](struct{}{})

// DispatchBody handles Take on the read end.
func (Take) DispatchBody(e *end) (kont.Resumed, error) {
	if e.side != ReadSide {
		panic("bodyio: Take dispatched on a write end")
	}
	b, err := e.p.take()
	if err == io.EOF {
		return endOfStream, nil
	}
	if err != nil {
		return nil, err
	}
	return kont.Right[struct{}](Frame{data: b}), nil
}

// Done is the effect operation for closing the dispatching end.
// On the write end it signals end-of-stream; on the read end it abandons
// the stream. Never blocks.
type Done struct {
	kont.Phantom[struct{}]
}

// DispatchBody handles Done on either end.
func (Done) DispatchBody(e *end) (kont.Resumed, error) {
	e.close()
	return struct{}{}, nil
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bodyio bridges a blocking byte producer and a frame-oriented,
// non-blocking body consumer, such as an HTTP stack streaming a request or
// response payload.
//
// [New] creates a connected [Writer] and [Reader] over a bounded pipe of
// chunks. Every accepted write is one chunk; every chunk surfaces as one
// [Frame], in write order. Closing the Writer ends the stream; closing the
// Reader breaks the pipe and later writes fail with [ErrBrokenPipe].
//
// # Architecture
//
//   - Transport: lock-free bounded SPSC queue via [code.hybscloud.com/lfq], with an exact occupancy bound.
//   - Non-blocking: [Writer.TryWrite], [Reader.TryNext] and [Advance] return [code.hybscloud.com/iox.ErrWouldBlock] on backpressure.
//   - Blocking: [Writer.Write] waits with adaptive backoff, for goroutines that cannot park on a context.
//   - Parking: [Writer.WriteContext], [Reader.Next], [Reader.ReadContext] and [Reader.Frames] park on the peer's progress.
//   - Effects: [Put], [Take] and [Done] express body protocols on [code.hybscloud.com/kont].
//
// # Scheduling Combinations
//
// Producer and consumer may sit on either side of the blocking/cooperative
// divide. A goroutine writing with [Writer.Write] can feed a consumer ranging
// over [Reader.Frames]; an event loop can step a producer protocol with
// [Step] and [Advance] while another goroutine reads with [Reader.Read]; or
// [Run] can interleave both protocols on one goroutine.
//
// # Example
//
//	w, r := bodyio.New(10)
//	go func() {
//		defer w.Close()
//		w.Write([]byte("Hello, "))
//	}()
//	for f, err := range r.Frames(ctx) {
//		if err != nil {
//			return err
//		}
//		body = append(body, f.Data()...)
//	}
package bodyio

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyio

import (
	"code.hybscloud.com/kont"
)

// PutThen writes data as one chunk and then continues with next.
// Fuses Perform(Put{Data: data}) + Then.
func PutThen[B any](data []byte, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Put{Data: data}), next)
}

// PutAll writes each element of chunks in order and then continues with next.
func PutAll[B any](chunks [][]byte, next kont.Eff[B]) kont.Eff[B] {
	for i := len(chunks) - 1; i >= 0; i-- {
		next = PutThen(chunks[i], next)
	}
	return next
}

// TakeBranch receives the next frame and calls onFrame,
// or calls onEnd at end-of-stream.
// Fuses Perform(Take{}) + Bind + Either branch.
func TakeBranch[A any](onFrame func(Frame) kont.Eff[A], onEnd func() kont.Eff[A]) kont.Eff[A] {
	return kont.Bind(kont.Perform(Take{}), func(e kont.Either[struct{}, Frame]) kont.Eff[A] {
		if f, ok := e.GetRight(); ok {
			return onFrame(f)
		}
		return onEnd()
	})
}

// DoneWith closes the dispatching end and returns a.
// Fuses Perform(Done{}) + Then + Pure.
func DoneWith[A any](a A) kont.Eff[A] {
	return kont.Then(kont.Perform(Done{}), kont.Pure(a))
}

// Drain folds every remaining frame into an accumulator, starting from
// initial, and returns the result at end-of-stream.
func Drain[S any](initial S, f func(S, Frame) S) kont.Eff[S] {
	return TakeBranch(
		func(fr Frame) kont.Eff[S] { return Drain(f(initial, fr), f) },
		func() kont.Eff[S] { return kont.Pure(initial) },
	)
}

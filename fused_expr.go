// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyio

import (
	"code.hybscloud.com/kont"
)

// Pre-boxed operations and frames shared by the Expr-world constructors.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprTake        kont.Erased = Take{}
	exprDone        kont.Erased = Done{}
)

func identityResume(v kont.Erased) kont.Erased { return v }

// ExprPutThen writes data as one chunk and then continues with next.
// Fuses ExprPerform(Put{Data: data}) + ExprThen.
func ExprPutThen[B any](data []byte, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Put{Data: data}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprPutAll writes each element of chunks in order and then continues with next.
func ExprPutAll[B any](chunks [][]byte, next kont.Expr[B]) kont.Expr[B] {
	for i := len(chunks) - 1; i >= 0; i-- {
		next = ExprPutThen(chunks[i], next)
	}
	return next
}

func takeBranchUnwind[A any](data, data2, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	onFrame := data.(func(Frame) kont.Expr[A])
	onEnd := data2.(func() kont.Expr[A])
	e := current.(kont.Either[struct{}, Frame])
	var result kont.Expr[A]
	if f, ok := e.GetRight(); ok {
		result = onFrame(f)
	} else {
		result = onEnd()
	}
	return kont.Erased(result.Value), result.Frame
}

// ExprTakeBranch receives the next frame and calls onFrame,
// or calls onEnd at end-of-stream.
// Fuses ExprPerform(Take{}) + ExprBind + Either branch.
func ExprTakeBranch[A any](onFrame func(Frame) kont.Expr[A], onEnd func() kont.Expr[A]) kont.Expr[A] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = onFrame
	bf.Data2 = onEnd
	bf.Unwind = takeBranchUnwind[A]
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprTake
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[A](ef)
}

// ExprDoneWith closes the dispatching end and returns a.
// Fuses ExprPerform(Done{}) + ExprThen + ExprReturn.
func ExprDoneWith[A any](a A) kont.Expr[A] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(a), Frame: exprReturnFrame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprDone
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[A](ef)
}

// ExprDrain folds every remaining frame into an accumulator, starting from
// initial, and returns the result at end-of-stream.
func ExprDrain[S any](initial S, f func(S, Frame) S) kont.Expr[S] {
	return ExprTakeBranch(
		func(fr Frame) kont.Expr[S] { return ExprDrain(f(initial, fr), f) },
		func() kont.Expr[S] { return kont.ExprReturn(initial) },
	)
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyio

import (
	"code.hybscloud.com/kont"
)

// Reify converts a Cont-world body protocol to Expr-world, so it can be
// stepped with Step and Advance.
func Reify[A any](m kont.Eff[A]) kont.Expr[A] {
	return kont.Reify(m)
}

// Reflect converts an Expr-world body protocol to Cont-world.
func Reflect[A any](m kont.Expr[A]) kont.Eff[A] {
	return kont.Reflect(m)
}

// Step evaluates a body protocol until its first effect.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance dispatches the suspended body operation on e once, without
// blocking. It is the boundary an event loop drives.
//
// On success (nil error) the suspension is consumed and the protocol
// advances to its next effect or completes.
// On iox.ErrWouldBlock the suspension is returned unconsumed; retry it after
// the peer makes progress. Any other error (ErrBrokenPipe, io.ErrClosedPipe)
// is terminal and the suspension is also returned unconsumed for the caller
// to Discard.
func Advance[R any](e Endpoint, susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	bop, ok := susp.Op().(bodyDispatcher)
	if !ok {
		panic("bodyio: unhandled effect in Advance")
	}
	v, err := bop.DispatchBody(e.endpoint())
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}

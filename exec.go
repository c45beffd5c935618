// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyio

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// bodyHandler implements kont.Handler for body effects on one end.
// It parks on the end's wakeup signal while dispatch reports
// iox.ErrWouldBlock and short-circuits with Left on a terminal error.
type bodyHandler[R any] struct {
	e *end
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h bodyHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	bop, ok := op.(bodyDispatcher)
	if !ok {
		panic("bodyio: unhandled effect in bodyHandler")
	}
	for {
		v, err := bop.DispatchBody(h.e)
		if err == nil {
			return v, true
		}
		if !iox.IsWouldBlock(err) {
			return kont.Left[error, R](err), false
		}
		<-h.e.signal()
	}
}

// Exec runs a Cont-world body protocol on e, parking the calling goroutine
// whenever the pipe cannot make progress. A terminal error such as
// ErrBrokenPipe stops the protocol and is returned.
//
// Exec does not close e when the protocol completes; end it with DoneWith
// or call Close.
func Exec[R any](e Endpoint, protocol kont.Eff[R]) (R, error) {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[error, R]](protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	h := bodyHandler[R]{e: e.endpoint()}
	return unwrap(kont.Handle(wrapped, h))
}

// ExecExpr runs an Expr-world body protocol on e. See Exec.
func ExecExpr[R any](e Endpoint, protocol kont.Expr[R]) (R, error) {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	h := bodyHandler[R]{e: e.endpoint()}
	return unwrap(kont.HandleExpr(wrapped, h))
}

func unwrap[R any](res kont.Either[error, R]) (R, error) {
	if err, ok := res.GetLeft(); ok {
		var zero R
		return zero, err
	}
	r, _ := res.GetRight()
	return r, nil
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyio

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Run creates a pipe of the given capacity, runs the producer protocol on
// its Writer and the consumer protocol on its Reader, and returns both
// results. See RunExpr.
func Run[A, B any](capacity int, producer kont.Eff[A], consumer kont.Eff[B], opts ...Option) (kont.Either[error, A], kont.Either[error, B]) {
	return RunExpr(capacity, Reify(producer), Reify(consumer), opts...)
}

// RunExpr creates a pipe of the given capacity and interleaves the producer
// and consumer Expr-world protocols on the calling goroutine, backing off
// with iox.Backoff when neither can make progress. Does not spawn goroutines.
//
// Each end is closed as soon as its protocol completes or fails, so a
// finished producer ends the stream and a finished consumer breaks the pipe.
// A side that hits a terminal error reports it as Left.
func RunExpr[A, B any](capacity int, producer kont.Expr[A], consumer kont.Expr[B], opts ...Option) (kont.Either[error, A], kont.Either[error, B]) {
	w, r := New(capacity, opts...)
	pa := stepper[A]{e: &w.end}
	pb := stepper[B]{e: &r.end}
	pa.start(producer)
	pb.start(consumer)

	var bo iox.Backoff
	for pa.pending() || pb.pending() {
		progress := pa.advance()
		if pb.advance() {
			progress = true
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return pa.out, pb.out
}

// stepper drives one protocol on one end of a RunExpr pipe.
type stepper[T any] struct {
	e    *end
	susp *kont.Suspension[T]
	out  kont.Either[error, T]
}

func (s *stepper[T]) start(protocol kont.Expr[T]) {
	v, susp := Step[T](protocol)
	if susp == nil {
		s.finish(kont.Right[error, T](v))
		return
	}
	s.susp = susp
}

func (s *stepper[T]) pending() bool { return s.susp != nil }

// advance reports whether the protocol made progress.
func (s *stepper[T]) advance() bool {
	if s.susp == nil {
		return false
	}
	v, next, err := Advance(s.e, s.susp)
	switch {
	case err == nil:
		s.susp = next
		if next == nil {
			s.finish(kont.Right[error, T](v))
		}
		return true
	case iox.IsWouldBlock(err):
		return false
	default:
		s.susp.Discard()
		s.susp = nil
		s.finish(kont.Left[error, T](err))
		return true
	}
}

func (s *stepper[T]) finish(out kont.Either[error, T]) {
	s.out = out
	s.e.close()
}

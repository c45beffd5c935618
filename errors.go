// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bodyio

import "syscall"

// ErrBrokenPipe is returned to the write side once the Reader has been closed.
// It is terminal: every later write on the same Writer fails with it.
// errors.Is(ErrBrokenPipe, syscall.EPIPE) reports true.
var ErrBrokenPipe error = brokenPipeError{}

type brokenPipeError struct{}

func (brokenPipeError) Error() string { return "bodyio: broken pipe" }

func (brokenPipeError) Is(target error) bool { return target == syscall.EPIPE }

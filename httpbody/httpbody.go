// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package httpbody streams bodyio pipes through net/http.
//
// [Handler] runs application code that writes with ordinary blocking writes
// and streams its output as the response body, one flush per frame.
// [NewRequest] sends a Reader as an outgoing request body.
package httpbody

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"code.hybscloud.com/bodyio"
)

// DefaultCapacity is the pipe capacity used by Handler unless WithCapacity
// overrides it.
const DefaultCapacity = 16

// ProduceFunc writes a response body to w. It runs on its own goroutine;
// ctx is the request context. w is closed when ProduceFunc returns.
type ProduceFunc func(ctx context.Context, w *bodyio.Writer) error

// Option configures Handler.
type Option func(*config)

type config struct {
	capacity    int
	logger      *zap.Logger
	contentType string
	observer    bodyio.Observer
}

// WithCapacity sets the pipe capacity in chunks. Non-positive values panic
// when the handler is built.
func WithCapacity(n int) Option {
	return func(c *config) { c.capacity = n }
}

// WithLogger sets the logger for producer failures and interrupted streams.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithContentType sets the response Content-Type header.
func WithContentType(ct string) Option {
	return func(c *config) { c.contentType = ct }
}

// WithObserver attaches o to every pipe the handler creates.
func WithObserver(o bodyio.Observer) Option {
	return func(c *config) { c.observer = o }
}

// Handler returns an http.Handler that streams the output of produce.
//
// If the client goes away the Reader is closed and produce sees
// bodyio.ErrBrokenPipe on its next write. If produce fails after the
// response has started, the response is aborted with http.ErrAbortHandler
// so the client observes a truncated body rather than a clean end.
func Handler(produce ProduceFunc, opts ...Option) http.Handler {
	cfg := config{capacity: DefaultCapacity, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.capacity <= 0 {
		panic("httpbody: capacity must be positive")
	}

	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		w, r := bodyio.New(cfg.capacity, bodyio.WithObserver(cfg.observer))
		defer r.Close()
		log := cfg.logger.With(zap.Stringer("pipe", w.Serial()), zap.String("path", req.URL.Path))

		if cfg.contentType != "" {
			rw.Header().Set("Content-Type", cfg.contentType)
		}

		ctx := req.Context()
		errc := make(chan error, 1)
		go func() {
			defer w.Close()
			errc <- produce(ctx, w)
		}()

		n, err := Copy(ctx, rw, r)
		if err != nil {
			r.Close()
			log.Warn("body stream interrupted", zap.Int64("bytes", n), zap.Error(err))
			return
		}
		if err := <-errc; err != nil {
			if errors.Is(err, bodyio.ErrBrokenPipe) {
				log.Debug("client went away", zap.Int64("bytes", n))
				return
			}
			log.Error("body producer failed", zap.Int64("bytes", n), zap.Error(err))
			panic(http.ErrAbortHandler)
		}
		log.Debug("body streamed", zap.Int64("bytes", n))
	})
}

// Copy writes every frame of r to rw, flushing after each one, until
// end-of-stream. Zero-length frames are skipped. ResponseWriters that cannot
// flush are written without flushing.
func Copy(ctx context.Context, rw http.ResponseWriter, r *bodyio.Reader) (int64, error) {
	rc := http.NewResponseController(rw)
	var total int64
	for f, err := range r.Frames(ctx) {
		if err != nil {
			return total, err
		}
		if f.Len() == 0 {
			continue
		}
		n, err := rw.Write(f.Data())
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("httpbody: write response: %w", err)
		}
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			return total, fmt.Errorf("httpbody: flush response: %w", err)
		}
	}
	return total, nil
}

// NewRequest returns an outgoing request whose body streams from r.
// The length is unknown, so HTTP/1.1 transports use chunked encoding.
// The transport closes r when it is done with the body.
func NewRequest(ctx context.Context, method, url string, r *bodyio.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return nil, fmt.Errorf("httpbody: new request: %w", err)
	}
	return req, nil
}

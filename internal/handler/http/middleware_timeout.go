package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"
)

// withTimeout bounds the rest of the chain by cfg.RequestTimeout.
//
// The downstream handler runs in its own goroutine against a buffered
// timeoutWriter. If it finishes first, the buffered response is copied out.
// If the deadline fires first, respondError answers with ErrRequestTimeout
// immediately and the handler is left to finish on its own; its later writes
// fail with http.ErrHandlerTimeout.
func (h *Handler) withTimeout(next http.Handler) http.Handler {
	timeout := h.cfg.RequestTimeout
	if timeout <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeoutCause(r.Context(), timeout, ErrRequestTimeout)
		defer cancel()
		r = r.WithContext(ctx)

		done := make(chan struct{})
		panicChan := make(chan any, 1)
		tw := &timeoutWriter{h: make(http.Header)}

		go func() {
			defer func() {
				if p := recover(); p != nil {
					panicChan <- p
				}
			}()
			next.ServeHTTP(tw, r)
			close(done)
		}()

		select {
		case p := <-panicChan:
			panic(p)
		case <-done:
			tw.mu.Lock()
			defer tw.mu.Unlock()

			dst := w.Header()
			for k, vv := range tw.h {
				dst[k] = vv
			}
			if !tw.wroteHeader {
				tw.code = http.StatusOK
			}
			w.WriteHeader(tw.code)
			_, _ = w.Write(tw.wbuf.Bytes())
		case <-ctx.Done():
			tw.mu.Lock()
			defer tw.mu.Unlock()

			tw.err = http.ErrHandlerTimeout
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				h.respondError(w, r, context.Cause(ctx))
				return
			}

			// the client went away and there is no one to answer
			if rw, ok := w.(*responseWriter); ok {
				rw.markStatus(statusClientClosedRequest)
			}
		}
	})
}

// timeoutWriter buffers a response until withTimeout decides whether it
// reaches the client.
type timeoutWriter struct {
	h    http.Header
	wbuf bytes.Buffer

	mu          sync.Mutex
	err         error
	wroteHeader bool
	code        int
}

func (tw *timeoutWriter) Header() http.Header { return tw.h }

func (tw *timeoutWriter) Write(p []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.err != nil {
		return 0, tw.err
	}
	if !tw.wroteHeader {
		tw.writeHeaderLocked(http.StatusOK)
	}
	return tw.wbuf.Write(p)
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.writeHeaderLocked(code)
}

func (tw *timeoutWriter) writeHeaderLocked(code int) {
	if tw.err != nil || tw.wroteHeader {
		return
	}
	tw.wroteHeader = true
	tw.code = code
}

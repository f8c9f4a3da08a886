package http

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/anonballot/internal/signature"
)

// RequestLogger writes one access log line per request. Bodies and headers
// are never logged.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				logger.Info("request handled",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// Signed rejects requests whose signature headers do not authenticate the
// method, path and body. The body is read once, at most maxBodyBytes, and
// handed on unchanged.
func Signed(verifier *signature.Verifier, maxBodyBytes int64, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
			r.Body.Close()
			if err != nil {
				logger.Warn("failed to read request body", zap.String("request_id", middleware.GetReqID(r.Context())), zap.Error(err))
				writeError(w, http.StatusBadRequest, codeInvalidRequest)
				return
			}
			if int64(len(body)) > maxBodyBytes {
				logger.Warn("request rejected", zap.String("request_id", middleware.GetReqID(r.Context())), zap.String("reason", "body too large"))
				writeError(w, http.StatusForbidden, codeSignatureInvalid)
				return
			}

			if err := verifier.Verify(r.Method, r.URL.Path, r.Header, body); err != nil {
				logger.Warn("request rejected", zap.String("request_id", middleware.GetReqID(r.Context())), zap.Error(err))
				writeError(w, http.StatusForbidden, codeSignatureInvalid)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			r.ContentLength = int64(len(body))
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/vfg2006/competitor-intel-api/internal/metrics"
	"github.com/vfg2006/competitor-intel-api/pkg/apiErrors"
	"github.com/vfg2006/competitor-intel-api/pkg/log"
)

// CorrelationIDHeader devolve ao cliente o ID usado nos logs da requisição
const CorrelationIDHeader = "X-Correlation-ID"

// DataSourceHeader é preenchido pelos handlers de leitura com a origem do dado servido
const DataSourceHeader = "X-Data-Source"

const slowRequestThreshold = 500 * time.Millisecond

// LoggingMiddleware registra cada requisição com o ID de correlação e a origem
// do dado, e alimenta o histograma de duração das requisições.
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context(), r.Header.Get(CorrelationIDHeader))
			r = r.WithContext(ctx)
			w.Header().Set(CorrelationIDHeader, correlationID)

			recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			started := time.Now()

			next.ServeHTTP(recorder, r)

			elapsed := time.Since(started)
			metrics.ObserveRequest(r.Method, recorder.statusCode, elapsed)

			fields := log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": recorder.statusCode,
				"duration_ms": elapsed.Milliseconds(),
			}
			if source := w.Header().Get(DataSourceHeader); source != "" {
				fields["source"] = source
			}
			logger := log.ForContext(ctx).WithFields(fields)

			message := fmt.Sprintf("%s %s %d", r.Method, r.URL.Path, recorder.statusCode)
			switch {
			case recorder.statusCode >= http.StatusInternalServerError:
				logger.Error(message)
			case recorder.statusCode >= http.StatusBadRequest:
				logger.Warn(message)
			case elapsed > slowRequestThreshold:
				logger.Warnf("%s (lenta)", message)
			default:
				logger.Info(message)
			}
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.written {
		s.statusCode = code
		s.written = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.written = true
	return s.ResponseWriter.Write(b)
}

// LogPanicMiddleware transforma panics dos handlers em SRV_001 com o stack trace no log
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]

				logger := log.ForContext(r.Context()).WithFields(log.Fields{
					"panic":  recovered,
					"method": r.Method,
					"path":   r.URL.Path,
				})

				if log.IsDevelopment() {
					logger.Error("panic no handler")
					fmt.Fprintf(os.Stderr, "\n=== STACK TRACE ===\n%s\n", stack)
				} else {
					logger.WithField("stack_trace", string(stack)).Error("panic no handler")
				}

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

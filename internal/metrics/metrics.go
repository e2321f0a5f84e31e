// Package metrics expõe os contadores Prometheus da camada de acesso a dados.
// Leituras servidas pelo fallback, falhas do banco e disponibilidade ficam
// visíveis em /metrics sem depender dos logs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vfg2006/competitor-intel-api/internal/domain"
)

var (
	// ReadsTotal conta leituras por operação e origem do dado (store ou fallback)
	ReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intel_reads_total",
			Help: "Total number of dashboard reads by operation and data source",
		},
		[]string{"operation", "source"},
	)

	// StoreErrorsTotal conta consultas e gravações que falharam no banco
	StoreErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intel_store_errors_total",
			Help: "Total number of failed store round trips",
		},
		[]string{"operation"},
	)

	// QueryDuration mede a duração de cada ida ao banco
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intel_store_query_duration_seconds",
			Help:    "Duration of store round trips in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	// HTTPRequestDuration mede as requisições da API por método e classe de status
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intel_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status_class"},
	)

	// StoreAvailable é 1 quando a última verificação agendada conseguiu falar com o banco
	StoreAvailable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "intel_store_available",
			Help: "Whether the last scheduled probe reached the store (1) or not (0)",
		},
	)
)

func RecordRead(operation string, source domain.DataSource) {
	ReadsTotal.WithLabelValues(operation, string(source)).Inc()
}

func RecordStoreError(operation string) {
	StoreErrorsTotal.WithLabelValues(operation).Inc()
}

func ObserveQuery(operation string, started time.Time) {
	QueryDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func ObserveRequest(method string, statusCode int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, fmt.Sprintf("%dxx", statusCode/100)).Observe(duration.Seconds())
}

func SetStoreAvailable(available bool) {
	if available {
		StoreAvailable.Set(1)
		return
	}
	StoreAvailable.Set(0)
}

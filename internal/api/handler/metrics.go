package handler

import (
	"net/http"

	"github.com/vfg2006/competitor-intel-api/internal/usecases/insighting"
	"github.com/vfg2006/competitor-intel-api/pkg/apiErrors"
	"github.com/vfg2006/competitor-intel-api/pkg/log"
	"github.com/vfg2006/competitor-intel-api/pkg/utils"
)

func GetSummaryMetrics(service insighting.MetricsReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		summary, status := service.FetchSummaryMetrics(r.Context())
		logger.WithFields(log.Fields{
			"operation": insighting.OperationFetchSummary,
			"source":    status.Source,
		}).Debug("metrics: summary served")

		writeRead(w, r, summary, status)
	})
}

func GetDailyMetrics(service insighting.MetricsReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		date := r.URL.Query().Get("date")
		if _, err := utils.ParseDate(date); err != nil {
			logger.WithFields(log.Fields{
				"date":  date,
				"error": err.Error(),
			}).Warn("metrics: invalid date parameter")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "date deve estar no formato YYYY-MM-DD", nil)
			return
		}

		daily, status := service.FetchDailyMetrics(r.Context(), date)
		logger.WithFields(log.Fields{
			"operation": insighting.OperationFetchDaily,
			"source":    status.Source,
			"cards":     len(daily),
		}).Debug("metrics: daily metrics served")

		writeRead(w, r, daily, status)
	})
}

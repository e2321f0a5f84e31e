package insighting

import (
	"strings"

	"github.com/vfg2006/competitor-intel-api/infrastructure/store"
	"github.com/vfg2006/competitor-intel-api/internal/domain"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/fallback"
)

func mapSummaryRow(row store.Row) (domain.SummaryMetrics, error) {
	var summary domain.SummaryMetrics
	if err := fallback.DecodeRow(row, &summary); err != nil {
		return domain.SummaryMetrics{}, err
	}

	return summary, nil
}

func mapDailyRow(row store.Row) (domain.DailyMetric, error) {
	var metric domain.DailyMetric
	if err := fallback.DecodeRow(row, &metric); err != nil {
		return domain.DailyMetric{}, err
	}

	// O join com competitors pode não encontrar o concorrente
	if strings.TrimSpace(metric.CompetitorName) == "" {
		metric.CompetitorName = domain.UnknownCompetitor
	}

	metric.Status = domain.ParseAdStatus(string(metric.Status))

	// Colunas date chegam como "2025-03-14", timestamps como "2025-03-14T00:00:00"
	if len(metric.Date) > len("2006-01-02") {
		metric.Date = metric.Date[:len("2006-01-02")]
	}

	return metric, nil
}

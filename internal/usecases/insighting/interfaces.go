package insighting

import (
	"context"

	"github.com/vfg2006/competitor-intel-api/internal/domain"
)

// MetricsReader define a leitura das métricas agregadas e diárias do dashboard.
// Todas as leituras retornam um valor renderizável, vindo do banco ou do fallback.
type MetricsReader interface {
	// FetchSummaryMetrics obtém o snapshot agregado mais recente
	FetchSummaryMetrics(ctx context.Context) (domain.SummaryMetrics, domain.ReadStatus)

	// FetchDailyMetrics obtém os cards de anúncio de uma data (vazio = hoje), no máximo 10, por gasto decrescente
	FetchDailyMetrics(ctx context.Context, date string) ([]domain.DailyMetric, domain.ReadStatus)

	// TestDatabaseConnection conta as linhas das tabelas de métricas sem lançar erro
	TestDatabaseConnection(ctx context.Context) domain.MetricsConnectionReport
}

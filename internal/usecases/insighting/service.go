package insighting

import (
	"context"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/competitor-intel-api/infrastructure/store"
	"github.com/vfg2006/competitor-intel-api/internal/domain"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/fallback"
	"github.com/vfg2006/competitor-intel-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const (
	summaryMetricsTable = "summary_metrics"
	dailyMetricsTable   = "daily_metrics"

	// DailyMetricsLimit é a quantidade máxima de cards retornados por dia
	DailyMetricsLimit = 10
)

// Nomes das operações usados em logs e métricas
const (
	OperationFetchSummary = "fetch_summary_metrics"
	OperationFetchDaily   = "fetch_daily_metrics"
)

var dailyMetricsColumns = []string{
	"d.id",
	"d.date",
	"c.name AS competitor_name",
	"d.platform",
	"d.status",
	"d.daily_spend",
	"d.daily_impressions",
	"d.daily_ctr",
}

// Service implementa MetricsReader sobre o gateway do banco
type Service struct {
	gateway store.Gateway
	summary *fallback.Reader[domain.SummaryMetrics]
	daily   *fallback.Reader[domain.DailyMetric]
	now     func() time.Time
}

// NewService cria o leitor de métricas. Com o gateway indisponível todas as leituras servem o fallback.
func NewService(gateway store.Gateway) MetricsReader {
	return newService(gateway, time.Now)
}

func newService(gateway store.Gateway, now func() time.Time) *Service {
	return &Service{
		gateway: gateway,
		summary: fallback.NewReader(gateway, summaryMetricsTable, mapSummaryRow),
		daily:   fallback.NewReader(gateway, dailyMetricsTable, mapDailyRow),
		now:     now,
	}
}

func (s *Service) FetchSummaryMetrics(ctx context.Context) (domain.SummaryMetrics, domain.ReadStatus) {
	query := store.Query{
		Table: summaryMetricsTable,
		Order: store.Order{Column: "created_at", Desc: true},
		Limit: 1,
	}

	return s.summary.One(ctx, OperationFetchSummary, query, domain.FallbackSummaryMetrics)
}

func (s *Service) FetchDailyMetrics(ctx context.Context, date string) ([]domain.DailyMetric, domain.ReadStatus) {
	if date == "" {
		date = utils.FormatDate(s.now())
	}

	query := store.Query{
		Table:   dailyMetricsTable + " d",
		Columns: dailyMetricsColumns,
		Joins:   []string{"competitors c ON c.id = d.competitor_id"},
		Filter:  squirrel.Eq{"d.date": date},
		Order:   store.Order{Column: "d.daily_spend", Desc: true},
		Limit:   DailyMetricsLimit,
	}

	metrics, status := s.daily.Many(ctx, OperationFetchDaily, query,
		func() []domain.DailyMetric { return domain.FallbackDailyMetrics(date) },
		func() []domain.DailyMetric { return []domain.DailyMetric{} },
	)

	return topBySpend(metrics, DailyMetricsLimit), status
}

func (s *Service) TestDatabaseConnection(ctx context.Context) domain.MetricsConnectionReport {
	if !s.gateway.IsAvailable() {
		return domain.MetricsConnectionReport{Connected: false, Error: domain.NotConnectedMessage}
	}

	var (
		summaryCount int64
		dailyCount   int64
		g            errgroup.Group
	)

	// Consultas independentes: a falha de uma não cancela a outra
	g.Go(func() error {
		count, err := s.gateway.Count(ctx, summaryMetricsTable)
		summaryCount = count
		return err
	})

	g.Go(func() error {
		count, err := s.gateway.Count(ctx, dailyMetricsTable)
		dailyCount = count
		return err
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("Erro ao testar conexão com as tabelas de métricas")
		return domain.MetricsConnectionReport{Connected: false, Error: err.Error()}
	}

	return domain.MetricsConnectionReport{
		Connected:    true,
		SummaryCount: summaryCount,
		DailyCount:   dailyCount,
	}
}

// topBySpend ordena por gasto decrescente e corta no limite, mesmo que o banco ignore a ordenação
func topBySpend(metrics []domain.DailyMetric, limit int) []domain.DailyMetric {
	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].DailySpend > metrics[j].DailySpend
	})

	if len(metrics) > limit {
		metrics = metrics[:limit]
	}

	return metrics
}

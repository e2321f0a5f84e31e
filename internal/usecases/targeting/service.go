package targeting

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/competitor-intel-api/infrastructure/store"
	"github.com/vfg2006/competitor-intel-api/internal/domain"
	"github.com/vfg2006/competitor-intel-api/internal/metrics"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/fallback"
	"github.com/vfg2006/competitor-intel-api/pkg/utils"
)

const targetingIntelTable = "targeting_intel"

// Nomes das operações usados em logs e métricas
const (
	OperationFetchAll    = "fetch_targeting_all"
	OperationFetchByID   = "fetch_targeting_by_competitor_id"
	OperationFetchByName = "fetch_targeting_by_competitor_name"
	OperationFetchLatest = "fetch_targeting_latest"
	OperationCreate      = "create_targeting"
	OperationProbeLatest = "probe_targeting_latest"
)

var newestFirst = store.Order{Column: "created_at", Desc: true}

type Service struct {
	gateway store.Gateway
	reader  *fallback.Reader[domain.TargetingIntel]
	now     func() time.Time
}

func NewService(gateway store.Gateway) IntelReader {
	return newService(gateway, time.Now)
}

func newService(gateway store.Gateway, now func() time.Time) *Service {
	return &Service{
		gateway: gateway,
		reader:  fallback.NewReader(gateway, targetingIntelTable, mapTargetingRow),
		now:     now,
	}
}

func (s *Service) FetchAll(ctx context.Context) ([]domain.TargetingIntel, domain.ReadStatus) {
	query := store.Query{
		Table: targetingIntelTable,
		Order: newestFirst,
	}

	fallbackList := func() []domain.TargetingIntel {
		return []domain.TargetingIntel{domain.FallbackTargetingIntel()}
	}

	return s.reader.Many(ctx, OperationFetchAll, query, fallbackList, fallbackList)
}

func (s *Service) FetchByCompetitorID(ctx context.Context, competitorID string) (*domain.TargetingIntel, domain.ReadStatus) {
	query := store.Query{
		Table:  targetingIntelTable,
		Filter: squirrel.Eq{"competitor_id": competitorID},
		Order:  newestFirst,
		Limit:  1,
	}

	return s.reader.Find(ctx, OperationFetchByID, query, fallbackIntel)
}

func (s *Service) FetchByCompetitorName(ctx context.Context, name string) (*domain.TargetingIntel, domain.ReadStatus) {
	query := store.Query{
		Table:  targetingIntelTable,
		Filter: squirrel.ILike{"competitor_name": likePattern(name)},
		Order:  newestFirst,
		Limit:  1,
	}

	// Em modo degradado o fallback só é servido se o próprio nome dele corresponder à busca
	degraded := func() *domain.TargetingIntel {
		intel := domain.FallbackTargetingIntel()
		if !strings.Contains(strings.ToLower(intel.CompetitorName), strings.ToLower(name)) {
			return nil
		}
		return &intel
	}

	return s.reader.Find(ctx, OperationFetchByName, query, degraded)
}

func (s *Service) FetchLatest(ctx context.Context) (domain.TargetingIntel, domain.ReadStatus) {
	query := store.Query{
		Table: targetingIntelTable,
		Order: newestFirst,
		Limit: 1,
	}

	return s.reader.One(ctx, OperationFetchLatest, query, domain.FallbackTargetingIntel)
}

func (s *Service) Create(ctx context.Context, intel *domain.TargetingIntel) (*domain.TargetingIntel, error) {
	if !s.gateway.IsAvailable() {
		logrus.WithField("operation", OperationCreate).Warn("Gravação recusada: banco não configurado")
		return nil, ErrStoreUnavailable
	}

	if err := validateIntel(intel); err != nil {
		return nil, err
	}

	record := *intel
	if record.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, errors.Wrap(err, "erro ao gerar id")
		}
		record.ID = id
	}

	now := s.now().UTC().Format(time.RFC3339)
	record.CreatedAt = now
	record.UpdatedAt = now
	completeBiddingStrategy(&record)

	started := time.Now()
	row, err := s.gateway.Insert(ctx, targetingIntelTable, targetingIntelToRow(record))
	metrics.ObserveQuery(OperationCreate, started)
	if err != nil {
		metrics.RecordStoreError(OperationCreate)
		return nil, errors.Wrapf(err, "erro ao gravar inteligência de segmentação do concorrente %s", record.CompetitorID)
	}

	created, err := mapTargetingRow(row)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao mapear registro gravado")
	}

	return &created, nil
}

func (s *Service) TestTargetingIntelConnection(ctx context.Context) domain.TargetingConnectionReport {
	if !s.gateway.IsAvailable() {
		return domain.TargetingConnectionReport{Connected: false, Error: domain.NotConnectedMessage}
	}

	count, err := s.gateway.Count(ctx, targetingIntelTable)
	if err != nil {
		logrus.WithError(err).Error("Erro ao contar inteligência de segmentação")
		return domain.TargetingConnectionReport{Connected: false, Error: err.Error()}
	}

	rows, err := s.gateway.Query(ctx, store.Query{
		Table:   targetingIntelTable,
		Columns: []string{"competitor_name", "created_at"},
		Order:   newestFirst,
		Limit:   1,
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar o registro mais recente de inteligência de segmentação")
		return domain.TargetingConnectionReport{Connected: false, Error: err.Error()}
	}

	report := domain.TargetingConnectionReport{Connected: true, Count: count}
	if len(rows) > 0 {
		if name, ok := rows[0]["competitor_name"].(string); ok {
			report.LatestCompetitor = name
		}
	}

	return report
}

func fallbackIntel() *domain.TargetingIntel {
	intel := domain.FallbackTargetingIntel()
	return &intel
}

func validateIntel(intel *domain.TargetingIntel) error {
	if intel == nil {
		return errors.Wrap(ErrInvalidIntel, "registro ausente")
	}

	if strings.TrimSpace(intel.CompetitorID) == "" {
		return errors.Wrap(ErrInvalidIntel, "competitor_id é obrigatório")
	}

	if intel.ConfidenceScore < 0 || intel.ConfidenceScore > 1 {
		return errors.Wrapf(ErrInvalidIntel, "confidence_score deve estar entre 0 e 1, recebido %.2f", intel.ConfidenceScore)
	}

	for _, bid := range intel.BiddingStrategy.HourlyBids {
		if bid.Hour < 0 || bid.Hour > 23 {
			return errors.Wrapf(ErrInvalidIntel, "hora de lance inválida: %d", bid.Hour)
		}
	}

	return nil
}

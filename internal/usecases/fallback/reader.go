// Package fallback concentra o contrato de leitura com degradação: verificar a
// disponibilidade do banco, executar uma única consulta, mapear as linhas e
// substituir pelo dado estático quando o banco não responde.
package fallback

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/competitor-intel-api/infrastructure/store"
	"github.com/vfg2006/competitor-intel-api/internal/domain"
	"github.com/vfg2006/competitor-intel-api/internal/metrics"
)

// Mensagens de ReadStatus.Detail
const (
	DetailNotConfigured = "store not configured"
	DetailNoRows        = "no rows"
)

// MapFunc converte uma linha do banco na entidade. Erro significa linha indecifrável.
type MapFunc[T any] func(row store.Row) (T, error)

// Reader aplica o contrato de leitura para uma entidade
type Reader[T any] struct {
	gateway store.Gateway
	entity  string
	mapRow  MapFunc[T]
}

func NewReader[T any](gateway store.Gateway, entity string, mapRow MapFunc[T]) *Reader[T] {
	return &Reader[T]{
		gateway: gateway,
		entity:  entity,
		mapRow:  mapRow,
	}
}

// Many retorna todas as linhas mapeadas. degraded é usado com o banco indisponível
// ou em erro; onEmpty quando a consulta não retorna linhas.
func (r *Reader[T]) Many(ctx context.Context, operation string, q store.Query, degraded, onEmpty func() []T) ([]T, domain.ReadStatus) {
	items, status, ok := r.fetch(ctx, operation, q)
	if !ok {
		return degraded(), status
	}

	if len(items) == 0 {
		return r.empty(operation, onEmpty())
	}

	metrics.RecordRead(operation, domain.SourceStore)
	return items, status
}

// One retorna a primeira linha mapeada ou o substituto, nunca um valor vazio
func (r *Reader[T]) One(ctx context.Context, operation string, q store.Query, substitute func() T) (T, domain.ReadStatus) {
	items, status, ok := r.fetch(ctx, operation, q)
	if !ok {
		return substitute(), status
	}

	if len(items) == 0 {
		metrics.RecordRead(operation, domain.SourceFallback)
		return substitute(), domain.ReadStatus{Available: true, Source: domain.SourceFallback, Detail: DetailNoRows}
	}

	metrics.RecordRead(operation, domain.SourceStore)
	return items[0], status
}

// Find busca um único registro. Sem linhas retorna nil; degraded decide o que
// servir quando o banco não responde e também pode retornar nil.
func (r *Reader[T]) Find(ctx context.Context, operation string, q store.Query, degraded func() *T) (*T, domain.ReadStatus) {
	items, status, ok := r.fetch(ctx, operation, q)
	if !ok {
		return degraded(), status
	}

	metrics.RecordRead(operation, domain.SourceStore)
	if len(items) == 0 {
		return nil, domain.ReadStatus{Available: true, Source: domain.SourceStore, Detail: DetailNoRows}
	}

	return &items[0], status
}

func (r *Reader[T]) empty(operation string, items []T) ([]T, domain.ReadStatus) {
	if len(items) == 0 {
		metrics.RecordRead(operation, domain.SourceStore)
		return items, domain.ReadStatus{Available: true, Source: domain.SourceStore, Detail: DetailNoRows}
	}

	metrics.RecordRead(operation, domain.SourceFallback)
	return items, domain.ReadStatus{Available: true, Source: domain.SourceFallback, Detail: DetailNoRows}
}

// fetch executa a consulta. ok=false indica que o chamador deve servir o dado degradado.
func (r *Reader[T]) fetch(ctx context.Context, operation string, q store.Query) ([]T, domain.ReadStatus, bool) {
	logger := logrus.WithFields(logrus.Fields{
		"operation": operation,
		"entity":    r.entity,
	})

	if !r.gateway.IsAvailable() {
		logger.Debug("Banco não configurado, servindo dados de fallback")
		metrics.RecordRead(operation, domain.SourceFallback)
		return nil, domain.ReadStatus{Available: false, Source: domain.SourceFallback, Detail: DetailNotConfigured}, false
	}

	started := time.Now()
	rows, err := r.gateway.Query(ctx, q)
	metrics.ObserveQuery(operation, started)
	if err != nil {
		logger.WithError(err).Error("Erro ao consultar o banco, servindo dados de fallback")
		metrics.RecordStoreError(operation)
		metrics.RecordRead(operation, domain.SourceFallback)
		return nil, domain.ReadStatus{Available: false, Source: domain.SourceFallback, Detail: err.Error()}, false
	}

	items := make([]T, 0, len(rows))
	for i, row := range rows {
		item, err := r.mapRow(row)
		if err != nil {
			logger.WithError(err).WithField("row", i).Warn("Linha ignorada: não foi possível mapear")
			continue
		}
		items = append(items, item)
	}

	return items, domain.ReadStatus{Available: true, Source: domain.SourceStore}, true
}

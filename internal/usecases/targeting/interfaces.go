package targeting

import (
	"context"

	"github.com/vfg2006/competitor-intel-api/internal/domain"
)

// IntelReader define o acesso aos perfis de segmentação dos concorrentes
type IntelReader interface {
	// FetchAll lista todos os perfis, do mais recente ao mais antigo. Nunca retorna lista vazia.
	FetchAll(ctx context.Context) ([]domain.TargetingIntel, domain.ReadStatus)

	// FetchByCompetitorID retorna o perfil mais recente do concorrente ou nil quando não existe
	FetchByCompetitorID(ctx context.Context, competitorID string) (*domain.TargetingIntel, domain.ReadStatus)

	// FetchByCompetitorName busca por nome sem diferenciar maiúsculas (correspondência parcial)
	FetchByCompetitorName(ctx context.Context, name string) (*domain.TargetingIntel, domain.ReadStatus)

	// FetchLatest retorna o perfil mais recente de qualquer concorrente
	FetchLatest(ctx context.Context) (domain.TargetingIntel, domain.ReadStatus)

	// Create grava um novo perfil. Exige banco configurado.
	Create(ctx context.Context, intel *domain.TargetingIntel) (*domain.TargetingIntel, error)

	// TestTargetingIntelConnection conta os perfis e lê o concorrente do mais recente
	TestTargetingIntelConnection(ctx context.Context) domain.TargetingConnectionReport
}

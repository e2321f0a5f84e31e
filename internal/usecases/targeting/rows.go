package targeting

import (
	"strings"

	"github.com/vfg2006/competitor-intel-api/infrastructure/store"
	"github.com/vfg2006/competitor-intel-api/internal/domain"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/fallback"
)

func mapTargetingRow(row store.Row) (domain.TargetingIntel, error) {
	var intel domain.TargetingIntel
	if err := fallback.DecodeRow(row, &intel); err != nil {
		return domain.TargetingIntel{}, err
	}

	if strings.TrimSpace(intel.CompetitorName) == "" {
		intel.CompetitorName = domain.UnknownCompetitor
	}

	completeBiddingStrategy(&intel)

	return intel, nil
}

// completeBiddingStrategy deriva médias, pico e janela quando a linha traz apenas a série horária
func completeBiddingStrategy(intel *domain.TargetingIntel) {
	strategy := intel.BiddingStrategy
	if len(strategy.HourlyBids) == 0 {
		return
	}

	if strategy.AverageCPC != 0 && strategy.AverageCPM != 0 && strategy.BestTimeWindow != "" {
		return
	}

	intel.BiddingStrategy = domain.DeriveBiddingStrategy(strategy.HourlyBids)
}

func targetingIntelToRow(intel domain.TargetingIntel) store.Row {
	return store.Row{
		"id":                  intel.ID,
		"competitor_id":       intel.CompetitorID,
		"competitor_name":     intel.CompetitorName,
		"age_distribution":    intel.AgeDistribution,
		"gender_distribution": intel.GenderDistribution,
		"geographic_spend":    intel.GeographicSpend,
		"interest_clusters":   intel.InterestClusters,
		"funnel_stages":       intel.FunnelStages,
		"bidding_strategy":    intel.BiddingStrategy,
		"advanced_targeting":  intel.AdvancedTargeting,
		"data_source":         intel.DataSource,
		"confidence_score":    intel.ConfidenceScore,
		"created_at":          intel.CreatedAt,
		"updated_at":          intel.UpdatedAt,
	}
}

// likePattern monta o padrão de busca parcial escapando os curingas do ILIKE
func likePattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(term) + "%"
}

package domain

import "strings"

// UnknownCompetitor é usado quando o join com a tabela de concorrentes não encontra o registro
const UnknownCompetitor = "Unknown"

// SummaryMetrics representa o snapshot agregado produzido pelo job de agregação
type SummaryMetrics struct {
	ID                   string             `json:"id"`
	TotalSpend           float64            `json:"total_spend"`
	ActiveCampaigns      int                `json:"active_campaigns"`
	TotalImpressions     int64              `json:"total_impressions"`
	AverageCTR           float64            `json:"avg_ctr"`
	PlatformDistribution map[string]float64 `json:"platform_distribution"`
	TopPerformers        []map[string]any   `json:"top_performers"`
	IndustrySpend        map[string]float64 `json:"industry_spend"`
	CreatedAt            string             `json:"created_at"`
	UpdatedAt            string             `json:"updated_at"`
}

type AdStatus string

const (
	AdStatusActive  AdStatus = "ACTIVE"
	AdStatusPaused  AdStatus = "PAUSED"
	AdStatusEnded   AdStatus = "ENDED"
	AdStatusUnknown AdStatus = "UNKNOWN"
)

// ParseAdStatus normaliza o status vindo do banco; valores fora do enum viram UNKNOWN
func ParseAdStatus(raw string) AdStatus {
	switch AdStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case AdStatusActive:
		return AdStatusActive
	case AdStatusPaused:
		return AdStatusPaused
	case AdStatusEnded:
		return AdStatusEnded
	default:
		return AdStatusUnknown
	}
}

// DailyMetric representa o card de anúncio de um concorrente em um dia
type DailyMetric struct {
	ID               string   `json:"id"`
	Date             string   `json:"date"`
	CompetitorName   string   `json:"competitor_name"`
	Platform         string   `json:"platform"`
	Status           AdStatus `json:"status"`
	DailySpend       float64  `json:"daily_spend"`
	DailyImpressions int64    `json:"daily_impressions"`
	DailyCTR         float64  `json:"daily_ctr"`
}

package domain

// Dados de fallback servidos quando o banco não está configurado, falha ou não retorna linhas.
// Cada função monta um valor novo para que nenhum chamador altere o dado compartilhado.

const (
	FallbackSummaryID    = "fallback-summary"
	FallbackTargetingID  = "fallback-targeting"
	FallbackCompetitorID = "fallback-competitor"
	FallbackDataSource   = "fallback"
	fallbackTimestamp    = "2025-01-01T00:00:00Z"
)

// FallbackSummaryMetrics retorna o snapshot agregado de fallback
func FallbackSummaryMetrics() SummaryMetrics {
	return SummaryMetrics{
		ID:               FallbackSummaryID,
		TotalSpend:       2847500,
		ActiveCampaigns:  156,
		TotalImpressions: 45200000,
		AverageCTR:       0.0285,
		PlatformDistribution: map[string]float64{
			"Facebook":  35,
			"Instagram": 28,
			"Google":    22,
			"TikTok":    10,
			"LinkedIn":  5,
		},
		TopPerformers: []map[string]any{
			{"competitor": "Nike", "spend": 485000.0, "ctr": 0.034},
			{"competitor": "Adidas", "spend": 392000.0, "ctr": 0.031},
			{"competitor": "Puma", "spend": 218000.0, "ctr": 0.027},
		},
		IndustrySpend: map[string]float64{
			"Sportswear": 1250000,
			"Retail":     840000,
			"Technology": 512500,
			"Beauty":     245000,
		},
		CreatedAt: fallbackTimestamp,
		UpdatedAt: fallbackTimestamp,
	}
}

// FallbackDailyMetrics retorna os cards de anúncio de fallback para a data informada,
// já ordenados por gasto decrescente
func FallbackDailyMetrics(date string) []DailyMetric {
	return []DailyMetric{
		{ID: "fallback-daily-1", Date: date, CompetitorName: "Nike", Platform: "Facebook", Status: AdStatusActive, DailySpend: 15420, DailyImpressions: 892000, DailyCTR: 0.034},
		{ID: "fallback-daily-2", Date: date, CompetitorName: "Adidas", Platform: "Instagram", Status: AdStatusActive, DailySpend: 12850, DailyImpressions: 745000, DailyCTR: 0.031},
		{ID: "fallback-daily-3", Date: date, CompetitorName: "Puma", Platform: "Google", Status: AdStatusPaused, DailySpend: 8930, DailyImpressions: 521000, DailyCTR: 0.027},
		{ID: "fallback-daily-4", Date: date, CompetitorName: "Under Armour", Platform: "TikTok", Status: AdStatusActive, DailySpend: 6210, DailyImpressions: 410000, DailyCTR: 0.029},
		{ID: "fallback-daily-5", Date: date, CompetitorName: "Reebok", Platform: "Facebook", Status: AdStatusEnded, DailySpend: 3150, DailyImpressions: 198000, DailyCTR: 0.022},
	}
}

// FallbackTargetingIntel retorna o perfil de segmentação de fallback
func FallbackTargetingIntel() TargetingIntel {
	return TargetingIntel{
		ID:             FallbackTargetingID,
		CompetitorID:   FallbackCompetitorID,
		CompetitorName: "Nike",
		AgeDistribution: map[string]float64{
			"18-24": 0.28,
			"25-34": 0.35,
			"35-44": 0.22,
			"45-54": 0.10,
			"55+":   0.05,
		},
		GenderDistribution: map[string]float64{
			"male":   0.52,
			"female": 0.46,
			"other":  0.02,
		},
		GeographicSpend: map[string]GeoSpend{
			"US": {Spend: 185000, Percentage: 45},
			"UK": {Spend: 61500, Percentage: 15},
			"DE": {Spend: 49200, Percentage: 12},
			"BR": {Spend: 41000, Percentage: 10},
			"JP": {Spend: 73800, Percentage: 18},
		},
		InterestClusters: []InterestCluster{
			{Interest: "Running", Affinity: 0.92, Reach: 2400000},
			{Interest: "Fitness", Affinity: 0.87, Reach: 3100000},
			{Interest: "Basketball", Affinity: 0.78, Reach: 1800000},
			{Interest: "Streetwear", Affinity: 0.71, Reach: 1500000},
		},
		FunnelStages: FunnelStages{
			Awareness:     FunnelStage{Label: "Awareness", Percentage: 45, Reach: 5200000},
			Consideration: FunnelStage{Label: "Consideration", Percentage: 30, Reach: 3400000},
			Conversion:    FunnelStage{Label: "Conversion", Percentage: 18, Reach: 2000000},
			Retention:     FunnelStage{Label: "Retention", Percentage: 7, Reach: 800000},
		},
		BiddingStrategy: DeriveBiddingStrategy(fallbackHourlyBids()),
		AdvancedTargeting: AdvancedTargeting{
			PurchaseIntent: PurchaseIntent{Level: "high", Confidence: 0.84},
			Recommendation: "Concentrar lances no início da manhã, quando o CPC do concorrente é mais baixo, e reforçar públicos de corrida e fitness.",
			DevicePreference: map[string]float64{
				"mobile":  0.68,
				"desktop": 0.24,
				"tablet":  0.08,
			},
			CompetitorOverlap: CompetitorOverlap{
				Count:       3,
				Description: "Audiência compartilhada com Adidas, Puma e Under Armour",
			},
		},
		DataSource:      FallbackDataSource,
		ConfidenceScore: 0.75,
		CreatedAt:       fallbackTimestamp,
		UpdatedAt:       fallbackTimestamp,
	}
}

func fallbackHourlyBids() []HourlyBid {
	cpc := [24]float64{
		0.82, 0.78, 0.71, 0.65, 0.62, 0.68, 0.85, 1.05,
		1.21, 1.32, 1.38, 1.42, 1.47, 1.44, 1.39, 1.35,
		1.41, 1.52, 1.64, 1.71, 1.68, 1.49, 1.18, 0.95,
	}
	cpm := [24]float64{
		6.4, 5.9, 5.2, 4.8, 4.6, 5.1, 6.8, 8.9,
		10.2, 11.1, 11.6, 12.0, 12.4, 12.1, 11.7, 11.3,
		11.9, 12.8, 13.9, 14.6, 14.2, 12.5, 9.8, 7.6,
	}

	bids := make([]HourlyBid, 0, len(cpc))
	for hour := range cpc {
		bids = append(bids, HourlyBid{Hour: hour, CPC: cpc[hour], CPM: cpm[hour]})
	}
	return bids
}

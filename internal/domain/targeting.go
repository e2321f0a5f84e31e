package domain

import (
	"fmt"
	"sort"

	"github.com/vfg2006/competitor-intel-api/pkg/utils"
)

// bestWindowHours é o tamanho da janela usada para sugerir o melhor horário de lance
const bestWindowHours = 3

// TargetingIntel é o perfil de segmentação modelado para um concorrente
type TargetingIntel struct {
	ID                 string              `json:"id"`
	CompetitorID       string              `json:"competitor_id"`
	CompetitorName     string              `json:"competitor_name"`
	AgeDistribution    map[string]float64  `json:"age_distribution"`
	GenderDistribution map[string]float64  `json:"gender_distribution"`
	GeographicSpend    map[string]GeoSpend `json:"geographic_spend"`
	InterestClusters   []InterestCluster   `json:"interest_clusters"`
	FunnelStages       FunnelStages        `json:"funnel_stages"`
	BiddingStrategy    BiddingStrategy     `json:"bidding_strategy"`
	AdvancedTargeting  AdvancedTargeting   `json:"advanced_targeting"`
	DataSource         string              `json:"data_source"`
	ConfidenceScore    float64             `json:"confidence_score"`
	CreatedAt          string              `json:"created_at"`
	UpdatedAt          string              `json:"updated_at"`
}

type GeoSpend struct {
	Spend      float64 `json:"spend"`
	Percentage float64 `json:"percentage"`
}

type InterestCluster struct {
	Interest string  `json:"interest"`
	Affinity float64 `json:"affinity"`
	Reach    int64   `json:"reach"`
}

type FunnelStage struct {
	Label      string  `json:"label"`
	Percentage float64 `json:"percentage"`
	Reach      int64   `json:"reach"`
}

// FunnelStages contém os quatro estágios fixos da previsão de funil
type FunnelStages struct {
	Awareness     FunnelStage `json:"awareness"`
	Consideration FunnelStage `json:"consideration"`
	Conversion    FunnelStage `json:"conversion"`
	Retention     FunnelStage `json:"retention"`
}

type HourlyBid struct {
	Hour int     `json:"hour"`
	CPC  float64 `json:"cpc"`
	CPM  float64 `json:"cpm"`
}

type BiddingStrategy struct {
	HourlyBids     []HourlyBid `json:"hourly_bids"`
	AverageCPC     float64     `json:"avg_cpc"`
	AverageCPM     float64     `json:"avg_cpm"`
	PeakHour       int         `json:"peak_hour"`
	BestTimeWindow string      `json:"best_time_window"`
}

type PurchaseIntent struct {
	Level      string  `json:"level"`
	Confidence float64 `json:"confidence"`
}

type CompetitorOverlap struct {
	Count       int    `json:"count"`
	Description string `json:"description"`
}

type AdvancedTargeting struct {
	PurchaseIntent    PurchaseIntent     `json:"purchase_intent"`
	Recommendation    string             `json:"recommendation"`
	DevicePreference  map[string]float64 `json:"device_preference"`
	CompetitorOverlap CompetitorOverlap  `json:"competitor_overlap"`
}

// DeriveBiddingStrategy calcula médias, hora de pico (maior CPM) e a janela de
// três horas consecutivas com menor CPC a partir da série horária
func DeriveBiddingStrategy(bids []HourlyBid) BiddingStrategy {
	strategy := BiddingStrategy{HourlyBids: bids}
	if len(bids) == 0 {
		return strategy
	}

	sorted := make([]HourlyBid, len(bids))
	copy(sorted, bids)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Hour < sorted[j].Hour
	})

	var totalCPC, totalCPM float64
	peak := sorted[0]
	for _, bid := range sorted {
		totalCPC += bid.CPC
		totalCPM += bid.CPM
		if bid.CPM > peak.CPM {
			peak = bid
		}
	}

	strategy.AverageCPC = utils.RoundWithTwoDecimalPlace(totalCPC / float64(len(sorted)))
	strategy.AverageCPM = utils.RoundWithTwoDecimalPlace(totalCPM / float64(len(sorted)))
	strategy.PeakHour = peak.Hour
	strategy.BestTimeWindow = bestTimeWindow(sorted)

	return strategy
}

// bestTimeWindow procura a janela de horas realmente consecutivas (inclusive
// atravessando a meia-noite) com menor CPC somado. Sem três horas seguidas na
// série, a janela encolhe até o maior trecho contínuo disponível.
func bestTimeWindow(sorted []HourlyBid) string {
	cpcByHour := make(map[int]float64, len(sorted))
	hours := make([]int, 0, len(sorted))
	for _, bid := range sorted {
		hour := ((bid.Hour % 24) + 24) % 24
		if _, seen := cpcByHour[hour]; !seen {
			hours = append(hours, hour)
		}
		cpcByHour[hour] = bid.CPC
	}
	sort.Ints(hours)

	for size := min(bestWindowHours, len(hours)); size > 0; size-- {
		bestStart := -1
		bestCost := 0.0
		for _, start := range hours {
			cost, ok := windowCost(cpcByHour, start, size)
			if ok && (bestStart < 0 || cost < bestCost) {
				bestStart = start
				bestCost = cost
			}
		}

		if bestStart >= 0 {
			return fmt.Sprintf("%02d:00-%02d:00", bestStart, (bestStart+size)%24)
		}
	}

	return ""
}

func windowCost(cpcByHour map[int]float64, start, size int) (float64, bool) {
	cost := 0.0
	for offset := 0; offset < size; offset++ {
		cpc, ok := cpcByHour[(start+offset)%24]
		if !ok {
			return 0, false
		}
		cost += cpc
	}
	return cost, true
}

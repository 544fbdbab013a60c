package filter

import (
	"math"
	"sort"

	"github.com/water-iq/monitor/internal/model"
)

type TrendDirection string

const (
	TrendIncrease TrendDirection = "increase"
	TrendDecrease TrendDirection = "decrease"
	TrendFlat     TrendDirection = "flat"
)

type PurposeShare struct {
	Purpose    string  `json:"purpose"`
	Volume     float64 `json:"volume"`
	Percentage int     `json:"percentage"`
}

type Trend struct {
	Direction      TrendDirection `json:"direction"`
	Percentage     int            `json:"percentage"`
	FirstHalfMean  float64        `json:"first_half_mean"`
	SecondHalfMean float64        `json:"second_half_mean"`
}

type UsageSummary struct {
	Total        float64        `json:"total"`
	AverageDaily int            `json:"average_daily"`
	ByPurpose    []PurposeShare `json:"by_purpose"`
	Trend        Trend          `json:"trend"`
}

// Usage aggregates usage records in the order given. Every ratio guards
// its denominator, so an empty input yields zeros and a flat trend.
func Usage(records []model.UsageRecord) UsageSummary {
	summary := UsageSummary{Trend: Trend{Direction: TrendFlat}}
	if len(records) == 0 {
		summary.ByPurpose = purposeShares(map[string]float64{}, 0)
		return summary
	}

	byPurpose := map[string]float64{}
	for _, record := range records {
		summary.Total += record.Volume
		if record.Purpose != "" {
			byPurpose[record.Purpose] += record.Volume
		}
	}
	summary.AverageDaily = int(math.Round(summary.Total / float64(len(records))))
	summary.ByPurpose = purposeShares(byPurpose, summary.Total)
	summary.Trend = usageTrend(records)
	return summary
}

func purposeShares(byPurpose map[string]float64, total float64) []PurposeShare {
	for _, purpose := range []string{model.PurposeDomestic, model.PurposeIrrigation} {
		if _, ok := byPurpose[purpose]; !ok {
			byPurpose[purpose] = 0
		}
	}
	out := make([]PurposeShare, 0, len(byPurpose))
	for purpose, volume := range byPurpose {
		out = append(out, PurposeShare{Purpose: purpose, Volume: volume, Percentage: percentOf(volume, total)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Purpose < out[j].Purpose })
	return out
}

func usageTrend(records []model.UsageRecord) Trend {
	mid := len(records) / 2
	first, second := records[:mid], records[mid:]
	trend := Trend{Direction: TrendFlat}
	if len(first) == 0 || len(second) == 0 {
		return trend
	}
	trend.FirstHalfMean = meanVolume(first)
	trend.SecondHalfMean = meanVolume(second)
	if trend.FirstHalfMean == 0 {
		return trend
	}

	diff := trend.SecondHalfMean - trend.FirstHalfMean
	if diff >= 0 {
		trend.Direction = TrendIncrease
	} else {
		trend.Direction = TrendDecrease
	}
	trend.Percentage = int(math.Abs(math.Round(diff / trend.FirstHalfMean * 100)))
	return trend
}

func meanVolume(records []model.UsageRecord) float64 {
	var sum float64
	for _, record := range records {
		sum += record.Volume
	}
	return sum / float64(len(records))
}

func percentOf(part, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(part / total * 100))
}

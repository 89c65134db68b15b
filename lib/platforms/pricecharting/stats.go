package pricecharting

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GradeStats is the comparable-sales summary for one condition grade.
type GradeStats struct {
	Count      int     `json:"count"`
	Median     float64 `json:"median"`
	Mean       float64 `json:"mean"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	LatestSale float64 `json:"latest_sale"`
}

// AggregateComps groups sales by grade and computes summary statistics
// per group. empty input yields an empty map, a group only exists once
// it received at least one sale.
func AggregateComps(sales []Sale) map[string]GradeStats {
	summary := map[string]GradeStats{}
	if len(sales) == 0 {
		return summary
	}

	groups := map[string][]Sale{}
	for _, sale := range sales {
		groups[sale.Grade] = append(groups[sale.Grade], sale)
	}

	for grade, items := range groups {
		prices := make([]float64, len(items))
		latest := items[0]
		for i, item := range items {
			prices[i] = item.Price
			// strictly-after comparison keeps the first scanned
			// record on same-date ties
			if item.Date.After(latest.Date) {
				latest = item
			}
		}

		summary[grade] = GradeStats{
			Count:      len(prices),
			Median:     round2(median(prices)),
			Mean:       round2(stat.Mean(prices, nil)),
			Min:        floats.Min(prices),
			Max:        floats.Max(prices),
			LatestSale: latest.Price,
		}
	}

	return summary
}

func median(prices []float64) float64 {
	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// sim/metrics_utils.go
package sim

import (
	"math"
	"sort"
)

// Distribution summarizes the spread of one per-job metric across a run.
type Distribution struct {
	Min int64   `json:"min" yaml:"min"`
	P50 float64 `json:"p50" yaml:"p50"`
	P95 float64 `json:"p95" yaml:"p95"`
	Max int64   `json:"max" yaml:"max"`
}

// CalculatePercentile returns the p-th percentile of sorted data using linear
// interpolation between closest ranks. Returns 0 for empty data.
func CalculatePercentile(data []int64, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))
	if upperIdx >= n {
		return float64(data[n-1])
	}
	if lowerIdx == upperIdx {
		return float64(data[lowerIdx])
	}
	lowerVal, upperVal := data[lowerIdx], data[upperIdx]
	return float64(lowerVal) + float64(upperVal-lowerVal)*(rank-float64(lowerIdx))
}

// NewDistribution summarizes values. The input is not modified.
func NewDistribution(values []int64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := append([]int64(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return Distribution{
		Min: sorted[0],
		P50: CalculatePercentile(sorted, 50),
		P95: CalculatePercentile(sorted, 95),
		Max: sorted[len(sorted)-1],
	}
}

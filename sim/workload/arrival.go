package workload

import (
	"fmt"
	"math/rand"
)

// ArrivalSampler generates inter-arrival gaps between consecutive jobs.
type ArrivalSampler interface {
	// SampleGap returns the ticks between the previous arrival and the next.
	// Always returns a non-negative value.
	SampleGap(rng *rand.Rand) int64
}

// PoissonSampler generates exponentially-distributed gaps with the given mean.
// Gaps of zero are allowed: several jobs may arrive at the same tick.
type PoissonSampler struct {
	meanGap float64
}

func (s *PoissonSampler) SampleGap(rng *rand.Rand) int64 {
	return int64(rng.ExpFloat64() * s.meanGap)
}

// UniformSampler generates gaps uniformly in [0, maxGap].
type UniformSampler struct {
	maxGap int64
}

func (s *UniformSampler) SampleGap(rng *rand.Rand) int64 {
	if s.maxGap <= 0 {
		return 0
	}
	return rng.Int63n(s.maxGap + 1)
}

// BatchSampler releases every job at tick 0.
type BatchSampler struct{}

func (s *BatchSampler) SampleGap(_ *rand.Rand) int64 { return 0 }

// NewArrivalSampler creates an ArrivalSampler from an ArrivalSpec.
func NewArrivalSampler(spec ArrivalSpec) (ArrivalSampler, error) {
	switch spec.Process {
	case "", "poisson":
		return &PoissonSampler{meanGap: spec.MeanGap}, nil
	case "uniform":
		return &UniformSampler{maxGap: int64(spec.MaxGap)}, nil
	case "batch":
		return &BatchSampler{}, nil
	default:
		return nil, fmt.Errorf("unknown arrival process %q", spec.Process)
	}
}

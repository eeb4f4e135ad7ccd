package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// BurstSampler generates CPU burst lengths.
type BurstSampler interface {
	// Sample returns a positive burst length (>= 1).
	Sample(rng *rand.Rand) int64
}

// UniformBurstSampler draws bursts uniformly in [min, max].
type UniformBurstSampler struct {
	min, max int64
}

func (s *UniformBurstSampler) Sample(rng *rand.Rand) int64 {
	if s.min == s.max {
		return s.min
	}
	return s.min + rng.Int63n(s.max-s.min+1)
}

// GaussianBurstSampler produces clamped Gaussian burst lengths.
type GaussianBurstSampler struct {
	mean, stdDev float64
	min, max     int64
}

func (s *GaussianBurstSampler) Sample(rng *rand.Rand) int64 {
	if s.min == s.max {
		return s.min
	}
	val := rng.NormFloat64()*s.stdDev + s.mean
	clamped := math.Min(float64(s.max), math.Max(float64(s.min), val))
	return max(int64(math.Round(clamped)), 1)
}

// ExponentialBurstSampler produces exponentially-distributed bursts clamped to [min, max].
// Mostly short jobs with an occasional long one, the classic CPU-bound mix.
type ExponentialBurstSampler struct {
	mean     float64
	min, max int64
}

func (s *ExponentialBurstSampler) Sample(rng *rand.Rand) int64 {
	val := int64(math.Round(rng.ExpFloat64() * s.mean))
	return min(max(val, s.min), s.max)
}

// NewBurstSampler creates a BurstSampler from a BurstSpec.
func NewBurstSampler(spec BurstSpec) (BurstSampler, error) {
	lo, hi := spec.Min, spec.Max
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		return nil, fmt.Errorf("burst max %d is below min %d", hi, lo)
	}
	switch spec.Type {
	case "", "uniform":
		return &UniformBurstSampler{min: lo, max: hi}, nil
	case "gaussian":
		return &GaussianBurstSampler{mean: spec.Mean, stdDev: spec.StdDev, min: lo, max: hi}, nil
	case "exponential":
		if spec.Mean <= 0 {
			return nil, fmt.Errorf("exponential burst mean must be positive, got %f", spec.Mean)
		}
		return &ExponentialBurstSampler{mean: spec.Mean, min: lo, max: hi}, nil
	default:
		return nil, fmt.Errorf("unknown burst distribution %q", spec.Type)
	}
}

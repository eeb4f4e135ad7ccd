package workload

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/procsched/procsched/sim"
)

// JobSetFile is the on-disk form of a job set.
type JobSetFile struct {
	Jobs []sim.Job `yaml:"jobs"`
}

// LoadJobSet reads a YAML job-set file. Unknown fields are errors.
// Job invariants are left to sim.Simulate.
func LoadJobSet(path string) ([]sim.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job set: %w", err)
	}
	return ParseJobSet(data)
}

// ParseJobSet decodes a YAML job set with strict field checking.
// An empty document yields an empty job set.
func ParseJobSet(data []byte) ([]sim.Job, error) {
	var f JobSetFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing job set: %w", err)
	}
	return f.Jobs, nil
}

// WriteJobSet encodes jobs as a YAML job-set document.
func WriteJobSet(w io.Writer, jobs []sim.Job) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(JobSetFile{Jobs: jobs}); err != nil {
		return fmt.Errorf("encoding job set: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding job set: %w", err)
	}
	return nil
}

// GeneratorSpec configures random job-set generation.
type GeneratorSpec struct {
	Seed     int64       `yaml:"seed"`
	Count    int         `yaml:"count"`
	IDPrefix string      `yaml:"id_prefix,omitempty"` // default "P"
	Arrival  ArrivalSpec `yaml:"arrival"`
	Burst    BurstSpec   `yaml:"burst"`
	// MaxPriority bounds the reserved priority field; 0 leaves every priority at 0.
	MaxPriority int64 `yaml:"max_priority,omitempty"`
}

// ArrivalSpec selects the inter-arrival process.
type ArrivalSpec struct {
	Process string  `yaml:"process"`            // poisson (default), uniform, batch
	MeanGap float64 `yaml:"mean_gap,omitempty"` // poisson
	MaxGap  int     `yaml:"max_gap,omitempty"`  // uniform
}

// BurstSpec selects the burst-length distribution.
type BurstSpec struct {
	Type   string  `yaml:"type"` // uniform (default), gaussian, exponential
	Min    int64   `yaml:"min"`
	Max    int64   `yaml:"max"`
	Mean   float64 `yaml:"mean,omitempty"`
	StdDev float64 `yaml:"std_dev,omitempty"`
}

// LoadGeneratorSpec reads a YAML generator spec. Unknown fields are errors.
func LoadGeneratorSpec(path string) (*GeneratorSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading generator spec: %w", err)
	}
	var spec GeneratorSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing generator spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that all generator fields are in range.
func (s *GeneratorSpec) Validate() error {
	if s.Count < 0 || s.Count > sim.MaxJobCount {
		return fmt.Errorf("count must be in [0, %d], got %d", sim.MaxJobCount, s.Count)
	}
	if s.MaxPriority < 0 {
		return fmt.Errorf("max_priority must be non-negative, got %d", s.MaxPriority)
	}
	switch s.Arrival.Process {
	case "", "poisson":
		if s.Arrival.MeanGap < 0 {
			return fmt.Errorf("arrival mean_gap must be non-negative, got %f", s.Arrival.MeanGap)
		}
	case "uniform":
		if s.Arrival.MaxGap < 0 {
			return fmt.Errorf("arrival max_gap must be non-negative, got %d", s.Arrival.MaxGap)
		}
	case "batch":
	default:
		return fmt.Errorf("unknown arrival process %q; valid: poisson, uniform, batch", s.Arrival.Process)
	}
	if s.Burst.Max < 1 {
		return fmt.Errorf("burst max must be positive, got %d", s.Burst.Max)
	}
	if s.Burst.Min > s.Burst.Max {
		return fmt.Errorf("burst min %d exceeds max %d", s.Burst.Min, s.Burst.Max)
	}
	return nil
}

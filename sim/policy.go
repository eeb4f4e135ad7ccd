package sim

import (
	"fmt"
	"strings"
)

// PolicyKind tags the scheduling policy variant.
type PolicyKind string

const (
	FCFS       PolicyKind = "fcfs"
	SJN        PolicyKind = "sjn"
	SRT        PolicyKind = "srt"
	RoundRobin PolicyKind = "rr"
)

// Display names offered by the policy menu, in menu order.
const (
	NameFCFS       = "First Come First Serve (FCFS)"
	NameSJN        = "Shortest Job Next (SJN)"
	NameSRT        = "Shortest Remaining Time (SRN)"
	NameRoundRobin = "Round Robin"
)

// PolicyConfig selects a scheduling policy. Quantum is only read for RoundRobin.
type PolicyConfig struct {
	Kind    PolicyKind `json:"kind" yaml:"kind"`
	Quantum int64      `json:"quantum,omitempty" yaml:"quantum,omitempty"`
}

// policyAliases maps accepted policy strings (lower-cased) to kinds.
// "srn" is the menu's spelling of shortest remaining time.
var policyAliases = map[string]PolicyKind{
	strings.ToLower(NameFCFS):       FCFS,
	strings.ToLower(NameSJN):        SJN,
	strings.ToLower(NameSRT):        SRT,
	strings.ToLower(NameRoundRobin): RoundRobin,
	"fcfs":                          FCFS,
	"sjn":                           SJN,
	"srt":                           SRT,
	"srn":                           SRT,
	"rr":                            RoundRobin,
}

// PolicyNames returns the menu names of the supported policies in menu order.
func PolicyNames() []string {
	return []string{NameFCFS, NameSJN, NameSRT, NameRoundRobin}
}

// IsValidPolicy returns true if name resolves to a supported policy.
func IsValidPolicy(name string) bool {
	_, ok := policyAliases[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// ParsePolicy resolves a menu name or short identifier into a PolicyConfig.
// Free-form text outside the known names is rejected with ErrInvalidConfig.
// The quantum is validated for RoundRobin and dropped for the other kinds.
func ParsePolicy(name string, quantum int64) (PolicyConfig, error) {
	kind, ok := policyAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return PolicyConfig{}, invalidConfigf("unknown policy %q", name)
	}
	cfg := PolicyConfig{Kind: kind}
	if kind == RoundRobin {
		cfg.Quantum = quantum
	}
	if err := cfg.Validate(); err != nil {
		return PolicyConfig{}, err
	}
	return cfg, nil
}

// Validate checks the policy parameters.
func (p PolicyConfig) Validate() error {
	switch p.Kind {
	case FCFS, SJN, SRT:
		return nil
	case RoundRobin:
		if p.Quantum < 1 {
			return invalidConfigf("round robin quantum must be >= 1, got %d", p.Quantum)
		}
		return nil
	default:
		return invalidConfigf("unknown policy kind %q", string(p.Kind))
	}
}

// Preemptive reports whether arrivals may displace the running job.
func (p PolicyConfig) Preemptive() bool {
	return p.Kind == SRT
}

// DisplayName returns the menu name of the policy.
func (p PolicyConfig) DisplayName() string {
	switch p.Kind {
	case FCFS:
		return NameFCFS
	case SJN:
		return NameSJN
	case SRT:
		return NameSRT
	case RoundRobin:
		return NameRoundRobin
	default:
		return string(p.Kind)
	}
}

func (p PolicyConfig) String() string {
	if p.Kind == RoundRobin {
		return fmt.Sprintf("%s (quantum=%d)", p.DisplayName(), p.Quantum)
	}
	return p.DisplayName()
}

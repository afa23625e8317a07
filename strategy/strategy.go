// Package strategy implements driver-level pruning policies. A
// strategy only observes the plant through the read-only PlantView
// interface and decides, per step, whether to prune and at what ratio;
// the engine itself knows nothing about policy.
package strategy

import (
	"fmt"

	"github.com/pthm-cable/bramble/config"
)

// PlantView is the read-only slice of the plant a strategy may consult.
type PlantView interface {
	TotalBranches() int
	CountOvercrowdedBranches() int
	AreaUsed() float64
	TotalArea() float64
}

// Strategy decides when and how hard to prune.
type Strategy interface {
	Name() string
	// Ratio returns the prune ratio for the given step and whether to
	// prune at all this step.
	Ratio(step int, p PlantView) (float64, bool)
}

// Names lists the recognized strategy names.
func Names() []string {
	return []string{"none", "fixed", "adaptive", "progressive", "interval", "space"}
}

// FromConfig builds the named strategy from configuration.
func FromConfig(name string, cfg *config.Config) (Strategy, error) {
	switch name {
	case "", "none":
		return None{}, nil
	case "fixed":
		return Fixed{Steps: cfg.Strategy.Fixed.Steps, R: cfg.Strategy.Fixed.Ratio}, nil
	case "adaptive":
		return Adaptive{Threshold: cfg.Strategy.Adaptive.OvercrowdThreshold, R: cfg.Strategy.Adaptive.Ratio}, nil
	case "progressive":
		return Progressive{Schedule: cfg.Strategy.Progressive.Schedule}, nil
	case "interval":
		c := cfg.Strategy.Interval
		return Interval{
			Every:         c.Every,
			Base:          c.BaseRatio,
			MidThreshold:  c.MidThreshold,
			Mid:           c.MidRatio,
			HighThreshold: c.HighThreshold,
			High:          c.HighRatio,
		}, nil
	case "space":
		c := cfg.Strategy.Space
		return Space{
			Every:    c.Every,
			MidUtil:  c.MidUtilization,
			Mid:      c.MidRatio,
			HighUtil: c.HighUtilization,
			High:     c.HighRatio,
		}, nil
	default:
		return nil, fmt.Errorf("strategy: unknown strategy %q", name)
	}
}

// None never prunes.
type None struct{}

func (None) Name() string { return "none" }

func (None) Ratio(int, PlantView) (float64, bool) { return 0, false }

// Fixed prunes at an explicit list of steps with a constant ratio.
type Fixed struct {
	Steps []int
	R     float64
}

func (Fixed) Name() string { return "fixed" }

func (s Fixed) Ratio(step int, _ PlantView) (float64, bool) {
	for _, t := range s.Steps {
		if step == t {
			return s.R, true
		}
	}
	return 0, false
}

// Adaptive prunes whenever the overcrowded-branch count exceeds a
// threshold.
type Adaptive struct {
	Threshold int
	R         float64
}

func (Adaptive) Name() string { return "adaptive" }

func (s Adaptive) Ratio(_ int, p PlantView) (float64, bool) {
	if p.CountOvercrowdedBranches() > s.Threshold {
		return s.R, true
	}
	return 0, false
}

// Progressive prunes on a step-to-ratio schedule.
type Progressive struct {
	Schedule map[int]float64
}

func (Progressive) Name() string { return "progressive" }

func (s Progressive) Ratio(step int, _ PlantView) (float64, bool) {
	r, ok := s.Schedule[step]
	return r, ok
}

// Interval prunes periodically, scaling the ratio by how many branches
// are currently overcrowded.
type Interval struct {
	Every         int
	Base          float64
	MidThreshold  int
	Mid           float64
	HighThreshold int
	High          float64
}

func (Interval) Name() string { return "interval" }

func (s Interval) Ratio(step int, p PlantView) (float64, bool) {
	if s.Every <= 0 || step == 0 || step%s.Every != 0 {
		return 0, false
	}
	overcrowded := p.CountOvercrowdedBranches()
	switch {
	case overcrowded > s.HighThreshold:
		return s.High, true
	case overcrowded > s.MidThreshold:
		return s.Mid, true
	default:
		return s.Base, true
	}
}

// Space prunes periodically when area utilization is high, harder the
// closer the plant is to its budget.
type Space struct {
	Every    int
	MidUtil  float64
	Mid      float64
	HighUtil float64
	High     float64
}

func (Space) Name() string { return "space" }

func (s Space) Ratio(step int, p PlantView) (float64, bool) {
	if s.Every <= 0 || step%s.Every != 0 {
		return 0, false
	}
	utilization := 0.0
	if total := p.TotalArea(); total > 0 {
		utilization = p.AreaUsed() / total
	}
	switch {
	case utilization > s.HighUtil:
		return s.High, true
	case utilization > s.MidUtil:
		return s.Mid, true
	default:
		return 0, false
	}
}

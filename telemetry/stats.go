// Package telemetry records per-step simulation statistics and writes
// experiment output.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// StepStats holds the aggregate state of the plant after one step.
type StepStats struct {
	Step           int     `csv:"step"`
	Photosynthesis float64 `csv:"photosynthesis"`

	TotalBranches int     `csv:"branches"`
	RootBranches  int     `csv:"roots"`
	TotalNodes    int     `csv:"nodes"`
	AverageAge    float64 `csv:"avg_age"`

	// Per-status branch counts
	Growing         int `csv:"growing"`
	MaxLength       int `csv:"max_length"`
	SpaceConstraint int `csv:"space_constraint"`
	MaxGeneration   int `csv:"max_generation"`
	Overcrowded     int `csv:"overcrowded"`

	// Pruning activity this step (zero when no prune ran)
	Pruned  int `csv:"pruned"`
	Removed int `csv:"removed"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s StepStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("step", s.Step),
		slog.Float64("photosynthesis", s.Photosynthesis),
		slog.Int("branches", s.TotalBranches),
		slog.Int("roots", s.RootBranches),
		slog.Int("nodes", s.TotalNodes),
		slog.Float64("avg_age", s.AverageAge),
		slog.Int("growing", s.Growing),
		slog.Int("max_length", s.MaxLength),
		slog.Int("space_constraint", s.SpaceConstraint),
		slog.Int("max_generation", s.MaxGeneration),
		slog.Int("overcrowded", s.Overcrowded),
		slog.Int("pruned", s.Pruned),
		slog.Int("removed", s.Removed),
	)
}

// Summary describes a full run's photosynthesis time series.
type Summary struct {
	Steps int     `csv:"steps"`
	Mean  float64 `csv:"mean"`
	Std   float64 `csv:"std"`
	Min   float64 `csv:"min"`
	Max   float64 `csv:"max"`
	Final float64 `csv:"final"`
}

// Summarize computes a run summary from a photosynthesis history.
// An empty history yields a zero summary.
func Summarize(history []float64) Summary {
	n := len(history)
	if n == 0 {
		return Summary{}
	}

	s := Summary{
		Steps: n,
		Mean:  stat.Mean(history, nil),
		Min:   history[0],
		Max:   history[0],
		Final: history[n-1],
	}
	if n > 1 {
		s.Std = stat.StdDev(history, nil)
	}
	for _, v := range history[1:] {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	return s
}

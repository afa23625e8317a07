package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{1, 2, 3, 4})

	if s.Steps != 4 {
		t.Errorf("Steps = %d, want 4", s.Steps)
	}
	if math.Abs(s.Mean-2.5) > 1e-9 {
		t.Errorf("Mean = %v, want 2.5", s.Mean)
	}
	// Sample standard deviation of {1,2,3,4} is sqrt(5/3).
	if want := math.Sqrt(5.0 / 3.0); math.Abs(s.Std-want) > 1e-9 {
		t.Errorf("Std = %v, want %v", s.Std, want)
	}
	if s.Min != 1 || s.Max != 4 || s.Final != 4 {
		t.Errorf("Min/Max/Final = %v/%v/%v, want 1/4/4", s.Min, s.Max, s.Final)
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("empty history summary = %+v, want zero value", s)
	}

	s := Summarize([]float64{7})
	if s.Steps != 1 || s.Mean != 7 || s.Std != 0 || s.Min != 7 || s.Max != 7 || s.Final != 7 {
		t.Errorf("single-sample summary = %+v", s)
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector()

	if _, ok := c.Last(); ok {
		t.Error("Last on empty collector reported a record")
	}

	c.Record(StepStats{Step: 0, Photosynthesis: 10, Pruned: 2})
	c.Record(StepStats{Step: 1, Photosynthesis: 12, Pruned: 3})

	if got := len(c.Steps()); got != 2 {
		t.Fatalf("Steps length = %d, want 2", got)
	}
	last, ok := c.Last()
	if !ok || last.Step != 1 {
		t.Errorf("Last = (%+v, %v), want step 1", last, ok)
	}
	if got := c.TotalPruned(); got != 5 {
		t.Errorf("TotalPruned = %d, want 5", got)
	}

	history := c.History()
	if len(history) != 2 || history[0] != 10 || history[1] != 12 {
		t.Errorf("History = %v, want [10 12]", history)
	}
}

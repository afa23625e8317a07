package strategy

import (
	"testing"

	"github.com/pthm-cable/bramble/config"
)

// stubView is a canned PlantView for driving the policies.
type stubView struct {
	branches    int
	overcrowded int
	areaUsed    float64
	areaTotal   float64
}

func (s stubView) TotalBranches() int            { return s.branches }
func (s stubView) CountOvercrowdedBranches() int { return s.overcrowded }
func (s stubView) AreaUsed() float64             { return s.areaUsed }
func (s stubView) TotalArea() float64            { return s.areaTotal }

func TestFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}

	for _, name := range Names() {
		s, err := FromConfig(name, cfg)
		if err != nil {
			t.Errorf("FromConfig(%q): %v", name, err)
			continue
		}
		if s.Name() != name {
			t.Errorf("FromConfig(%q).Name() = %q", name, s.Name())
		}
	}

	if s, err := FromConfig("", cfg); err != nil || s.Name() != "none" {
		t.Errorf("empty name: strategy = %v, err = %v, want none", s, err)
	}
	if _, err := FromConfig("bogus", cfg); err == nil {
		t.Error("FromConfig(bogus) succeeded, want error")
	}
}

func TestNone(t *testing.T) {
	s := None{}
	for _, step := range []int{0, 1, 50, 1000} {
		if _, ok := s.Ratio(step, stubView{overcrowded: 100}); ok {
			t.Errorf("None pruned at step %d", step)
		}
	}
}

func TestFixed(t *testing.T) {
	s := Fixed{Steps: []int{50, 100, 150}, R: 0.2}
	tests := []struct {
		step  int
		want  float64
		prune bool
	}{
		{0, 0, false},
		{49, 0, false},
		{50, 0.2, true},
		{100, 0.2, true},
		{151, 0, false},
	}
	for _, tt := range tests {
		r, ok := s.Ratio(tt.step, stubView{})
		if ok != tt.prune || r != tt.want {
			t.Errorf("Fixed.Ratio(%d) = (%v, %v), want (%v, %v)", tt.step, r, ok, tt.want, tt.prune)
		}
	}
}

func TestAdaptive(t *testing.T) {
	s := Adaptive{Threshold: 10, R: 0.2}
	tests := []struct {
		overcrowded int
		prune       bool
	}{
		{0, false},
		{10, false},
		{11, true},
		{100, true},
	}
	for _, tt := range tests {
		_, ok := s.Ratio(5, stubView{overcrowded: tt.overcrowded})
		if ok != tt.prune {
			t.Errorf("Adaptive with %d overcrowded: prune = %v, want %v", tt.overcrowded, ok, tt.prune)
		}
	}
}

func TestProgressive(t *testing.T) {
	s := Progressive{Schedule: map[int]float64{50: 0.1, 100: 0.2}}
	if r, ok := s.Ratio(50, stubView{}); !ok || r != 0.1 {
		t.Errorf("Ratio(50) = (%v, %v), want (0.1, true)", r, ok)
	}
	if r, ok := s.Ratio(100, stubView{}); !ok || r != 0.2 {
		t.Errorf("Ratio(100) = (%v, %v), want (0.2, true)", r, ok)
	}
	if _, ok := s.Ratio(75, stubView{}); ok {
		t.Error("Ratio(75) pruned, want skip")
	}
}

func TestInterval(t *testing.T) {
	s := Interval{Every: 50, Base: 0.1, MidThreshold: 10, Mid: 0.2, HighThreshold: 20, High: 0.3}
	tests := []struct {
		name        string
		step        int
		overcrowded int
		want        float64
		prune       bool
	}{
		{"step zero never prunes", 0, 50, 0, false},
		{"off-interval step", 51, 50, 0, false},
		{"low crowding", 50, 5, 0.1, true},
		{"mid crowding", 50, 15, 0.2, true},
		{"high crowding", 100, 25, 0.3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := s.Ratio(tt.step, stubView{overcrowded: tt.overcrowded})
			if ok != tt.prune || r != tt.want {
				t.Errorf("Ratio = (%v, %v), want (%v, %v)", r, ok, tt.want, tt.prune)
			}
		})
	}
}

func TestSpace(t *testing.T) {
	s := Space{Every: 10, MidUtil: 0.6, Mid: 0.1, HighUtil: 0.8, High: 0.2}
	tests := []struct {
		name  string
		step  int
		used  float64
		want  float64
		prune bool
	}{
		{"off-interval step", 11, 3.0, 0, false},
		{"low utilization", 10, 1.0, 0, false},
		{"mid utilization", 10, 2.1, 0.1, true},
		{"high utilization", 20, 2.7, 0.2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := s.Ratio(tt.step, stubView{areaUsed: tt.used, areaTotal: 3.0})
			if ok != tt.prune || r != tt.want {
				t.Errorf("Ratio = (%v, %v), want (%v, %v)", r, ok, tt.want, tt.prune)
			}
		})
	}
}

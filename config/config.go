// Package config provides configuration loading and access for the simulator.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// AttenuationMode selects the input x fed to the Beer-Lambert term
// 1-exp(-k*x) of each leaf's light-gain formula.
type AttenuationMode string

const (
	// AttenuationUnit uses a constant 1, reproducing the reference
	// growth model.
	AttenuationUnit AttenuationMode = "unit"
	// AttenuationBranch uses the owning branch's summed leaf area.
	AttenuationBranch AttenuationMode = "branch"
	// AttenuationLeaf uses each leaf's own projected area.
	AttenuationLeaf AttenuationMode = "leaf"
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Plant     PlantConfig     `yaml:"plant"`
	Branch    BranchConfig    `yaml:"branch"`
	Leaf      LeafConfig      `yaml:"leaf"`
	Light     LightConfig     `yaml:"light"`
	Crowding  CrowdingConfig  `yaml:"crowding"`
	Pruning   PruningConfig   `yaml:"pruning"`
	Strategy  StrategyConfig  `yaml:"strategy"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PlantConfig holds whole-plant parameters.
type PlantConfig struct {
	Area              float64 `yaml:"area"`                // total available growth area (disc)
	BranchArea        float64 `yaml:"branch_area"`         // area cost per branch
	RootChance        float64 `yaml:"root_chance"`         // chance per step to attempt a new root
	RootTrials        int     `yaml:"root_trials"`         // placement attempts before giving up
	RootMinSeparation float64 `yaml:"root_min_separation"` // min angular gap between root directions
}

// BranchConfig holds per-branch biology parameters.
type BranchConfig struct {
	MaxLength          float64 `yaml:"max_length"`
	GrowthRate         float64 `yaml:"growth_rate"`  // length added per step (roots)
	GrowthDecay        float64 `yaml:"growth_decay"` // child growth rate multiplier
	MaxGeneration      int     `yaml:"max_generation"`
	BranchingThreshold float64 `yaml:"branching_threshold"` // min length before branching
	BranchChance       float64 `yaml:"branch_chance"`       // chance per step to attempt a child
	MinBranchSpacing   float64 `yaml:"min_branch_spacing"`  // growth required between spawns
	NodeSpacing        float64 `yaml:"node_spacing"`
	MaxLeavesPerNode   int     `yaml:"max_leaves_per_node"`
	ForkAngle          float64 `yaml:"fork_angle"`   // first-child angular offset
	AngleJitter        float64 `yaml:"angle_jitter"` // uniform perturbation on child angles
	ComplexityFloor    float64 `yaml:"complexity_floor"`
	ComplexityDecay    float64 `yaml:"complexity_decay"` // complexity lost per step of age
}

// LeafConfig holds per-leaf parameters.
type LeafConfig struct {
	Area       float64 `yaml:"area"`
	Efficiency float64 `yaml:"efficiency"`
	Reflection float64 `yaml:"reflection"`
	Offset     float64 `yaml:"offset"` // cosmetic distance from the branch axis
}

// LightConfig holds ambient light parameters.
type LightConfig struct {
	Incident        float64         `yaml:"incident"`
	Extinction      float64         `yaml:"extinction"`
	AttenuationMode AttenuationMode `yaml:"attenuation_mode"`
}

// CrowdingConfig holds the directional overcrowding heuristic parameters.
// A point is overcrowded when at least MinNeighbors tips lie within
// Radius and any one of the four angular sectors around the point
// holds SectorThreshold or more of them.
type CrowdingConfig struct {
	Radius          float64 `yaml:"radius"`
	MinNeighbors    int     `yaml:"min_neighbors"`
	SectorThreshold int     `yaml:"sector_threshold"`
}

// PruningConfig holds pruning selection parameters.
type PruningConfig struct {
	EfficiencyThreshold float64 `yaml:"efficiency_threshold"` // scores below this are removal candidates
	NeighborRadius      float64 `yaml:"neighbor_radius"`      // radius for the crowding term of the score
}

// StrategyConfig holds parameters for the driver-level pruning policies.
type StrategyConfig struct {
	Fixed       FixedStrategyConfig       `yaml:"fixed"`
	Adaptive    AdaptiveStrategyConfig    `yaml:"adaptive"`
	Progressive ProgressiveStrategyConfig `yaml:"progressive"`
	Interval    IntervalStrategyConfig    `yaml:"interval"`
	Space       SpaceStrategyConfig       `yaml:"space"`
}

// FixedStrategyConfig prunes at an explicit list of steps.
type FixedStrategyConfig struct {
	Steps []int   `yaml:"steps"`
	Ratio float64 `yaml:"ratio"`
}

// AdaptiveStrategyConfig prunes whenever overcrowding exceeds a threshold.
type AdaptiveStrategyConfig struct {
	OvercrowdThreshold int     `yaml:"overcrowd_threshold"`
	Ratio              float64 `yaml:"ratio"`
}

// ProgressiveStrategyConfig prunes on a step -> ratio schedule.
type ProgressiveStrategyConfig struct {
	Schedule map[int]float64 `yaml:"schedule"`
}

// IntervalStrategyConfig prunes periodically, scaling the ratio by the
// current overcrowded-branch count.
type IntervalStrategyConfig struct {
	Every         int     `yaml:"every"`
	BaseRatio     float64 `yaml:"base_ratio"`
	MidThreshold  int     `yaml:"mid_threshold"`
	MidRatio      float64 `yaml:"mid_ratio"`
	HighThreshold int     `yaml:"high_threshold"`
	HighRatio     float64 `yaml:"high_ratio"`
}

// SpaceStrategyConfig prunes periodically when area utilization is high.
type SpaceStrategyConfig struct {
	Every           int     `yaml:"every"`
	MidUtilization  float64 `yaml:"mid_utilization"`
	MidRatio        float64 `yaml:"mid_ratio"`
	HighUtilization float64 `yaml:"high_utilization"`
	HighRatio       float64 `yaml:"high_ratio"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogEvery int `yaml:"log_every"` // slog a stats line every N steps (0 = never)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	switch cfg.Light.AttenuationMode {
	case AttenuationUnit, AttenuationBranch, AttenuationLeaf:
	case "":
		cfg.Light.AttenuationMode = AttenuationUnit
	default:
		return nil, fmt.Errorf("unknown attenuation_mode %q", cfg.Light.AttenuationMode)
	}

	return cfg, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

package telemetry

// Collector accumulates per-step stats records for a single run.
type Collector struct {
	steps []StepStats
}

// NewCollector creates an empty stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record appends one step's stats.
func (c *Collector) Record(s StepStats) {
	c.steps = append(c.steps, s)
}

// Steps returns every recorded step in order.
func (c *Collector) Steps() []StepStats {
	return c.steps
}

// Last returns the most recent record, if any.
func (c *Collector) Last() (StepStats, bool) {
	if len(c.steps) == 0 {
		return StepStats{}, false
	}
	return c.steps[len(c.steps)-1], true
}

// History returns the photosynthesis value of every recorded step.
func (c *Collector) History() []float64 {
	out := make([]float64, len(c.steps))
	for i, s := range c.steps {
		out[i] = s.Photosynthesis
	}
	return out
}

// TotalPruned returns the number of branches pruned across the run.
func (c *Collector) TotalPruned() int {
	n := 0
	for _, s := range c.steps {
		n += s.Pruned
	}
	return n
}

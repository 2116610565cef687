package wordcloud

// Config holds the tunable knobs of a layout pass. The iteration caps trade
// layout density against worst-case latency.
type Config struct {
	// Font sizing.
	MinFont   int     `json:"min_font"`
	MaxFont   int     `json:"max_font"`
	FloorFont int     `json:"floor_font"`
	Exponent  float64 `json:"exponent"`
	SizeStep  int     `json:"size_step"`

	// Padding is added on every side of a measured text box.
	Padding float64 `json:"padding"`

	// Spiral search: angle = k*AngleStep, radius = SpiralA + SpiralB*angle.
	AngleStep      float64 `json:"angle_step"`
	SpiralA        float64 `json:"spiral_a"`
	SpiralB        float64 `json:"spiral_b"`
	MaxSpiralSteps int     `json:"max_spiral_steps"`

	// Centroid nudging after each placement.
	NudgeStep     float64 `json:"nudge_step"`
	MaxNudgeSteps int     `json:"max_nudge_steps"`

	// Global compaction: passes = clamp(CompactionBudget/n, Min, Max).
	// MaxCompactionPasses <= 0 disables the pass.
	CompactionBudget    int `json:"compaction_budget"`
	MinCompactionPasses int `json:"min_compaction_passes"`
	MaxCompactionPasses int `json:"max_compaction_passes"`
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() Config {
	return Config{
		MinFont:             12,
		MaxFont:             42,
		FloorFont:           10,
		Exponent:            1.15,
		SizeStep:            2,
		Padding:             1.5,
		AngleStep:           0.35,
		SpiralA:             2,
		SpiralB:             2,
		MaxSpiralSteps:      2500,
		NudgeStep:           1,
		MaxNudgeSteps:       120,
		CompactionBudget:    6000,
		MinCompactionPasses: 20,
		MaxCompactionPasses: 60,
	}
}

// Normalized returns a copy of c with out-of-range values replaced so that
// every loop in the engine is bounded and makes progress.
func (c Config) Normalized() Config {
	d := DefaultConfig()
	if c.MinFont <= 0 {
		c.MinFont = d.MinFont
	}
	if c.MaxFont <= 0 {
		c.MaxFont = d.MaxFont
	}
	if c.MaxFont < c.MinFont {
		c.MinFont, c.MaxFont = c.MaxFont, c.MinFont
	}
	if c.FloorFont <= 0 {
		c.FloorFont = 1
	}
	if c.Exponent <= 0 {
		c.Exponent = d.Exponent
	}
	if c.SizeStep <= 0 {
		c.SizeStep = 1
	}
	if c.Padding < 0 {
		c.Padding = 0
	}
	if c.AngleStep <= 0 {
		c.AngleStep = d.AngleStep
	}
	if c.SpiralA < 0 {
		c.SpiralA = 0
	}
	if c.SpiralB <= 0 {
		c.SpiralB = d.SpiralB
	}
	if c.MaxSpiralSteps < 0 {
		c.MaxSpiralSteps = 0
	}
	if c.NudgeStep <= 0 {
		c.NudgeStep = d.NudgeStep
	}
	if c.MaxNudgeSteps < 0 {
		c.MaxNudgeSteps = 0
	}
	if c.CompactionBudget < 0 {
		c.CompactionBudget = 0
	}
	if c.MinCompactionPasses < 0 {
		c.MinCompactionPasses = 0
	}
	return c
}

// CompactionPasses returns the number of global compaction passes to run for
// n placed words: more passes for small clouds, fewer for large ones, always
// within [MinCompactionPasses, MaxCompactionPasses].
func (c Config) CompactionPasses(n int) int {
	if n <= 0 || c.MaxCompactionPasses <= 0 {
		return 0
	}
	lo := min(c.MinCompactionPasses, c.MaxCompactionPasses)
	return max(lo, min(c.MaxCompactionPasses, c.CompactionBudget/n))
}

// Option configures a layout pass.
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option { return func(cfg *Config) { *cfg = c } }

// WithFontRange sets the scale's output range [lo, hi] in pixels.
func WithFontRange(lo, hi int) Option {
	return func(c *Config) { c.MinFont, c.MaxFont = lo, hi }
}

// WithFloorFont sets the smallest size a label may be drawn or shrunk to.
func WithFloorFont(px int) Option { return func(c *Config) { c.FloorFont = px } }

// WithExponent sets the power-scale exponent.
func WithExponent(e float64) Option { return func(c *Config) { c.Exponent = e } }

// WithPadding sets the gap added around every measured text box.
func WithPadding(px float64) Option { return func(c *Config) { c.Padding = px } }

// WithSpiral sets the spiral's angle step and radius coefficients.
func WithSpiral(angleStep, a, b float64) Option {
	return func(c *Config) { c.AngleStep, c.SpiralA, c.SpiralB = angleStep, a, b }
}

// WithMaxSpiralSteps caps the candidates tried per label and size.
func WithMaxSpiralSteps(n int) Option { return func(c *Config) { c.MaxSpiralSteps = n } }

// WithNudge sets the centroid nudge step and its per-placement cap.
func WithNudge(step float64, maxSteps int) Option {
	return func(c *Config) { c.NudgeStep, c.MaxNudgeSteps = step, maxSteps }
}

// WithCompaction sets the global compaction budget and pass bounds.
func WithCompaction(budget, minPasses, maxPasses int) Option {
	return func(c *Config) {
		c.CompactionBudget, c.MinCompactionPasses, c.MaxCompactionPasses = budget, minPasses, maxPasses
	}
}

// WithoutCompaction disables the global compaction pass.
func WithoutCompaction() Option {
	return func(c *Config) { c.MaxCompactionPasses = 0 }
}

func newConfig(opts ...Option) Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c.Normalized()
}

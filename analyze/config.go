// Run configuration for the analysis facade.
//
// The facade is configured from a small YAML document (or a Config literal in
// code). Zero-valued knobs fall back to the defaults of the underlying
// packages, so a minimal config needs only the mobile specie and time base:
//
//	specie: Li
//	time_step: 2.0
//	step_skip: 50

package analyze

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/kinisigo/bootstrap"
)

// Sentinel errors for configuration validation.
var (
	// ErrNoSpecie indicates a missing mobile-species label.
	ErrNoSpecie = errors.New("analyze: config must name a mobile specie")
	// ErrBadTimeBase indicates a non-positive time step or step skip.
	ErrBadTimeBase = errors.New("analyze: time_step and step_skip must be positive")
	// ErrBadDimension indicates a dimension string outside subsets of "xyz".
	ErrBadDimension = errors.New("analyze: dimension must be a non-empty subset of xyz")
)

// Config holds every knob of one analysis run.
type Config struct {
	// Specie is the mobile species label, e.g. "Li".
	Specie string `yaml:"specie"`
	// TimeStep is the MD integrator time step.
	TimeStep float64 `yaml:"time_step"`
	// StepSkip is the number of integrator steps between stored frames.
	StepSkip float64 `yaml:"step_skip"`

	// MinObs is the minimum observation count per interval (default 30).
	MinObs int `yaml:"min_obs"`
	// MaxPoints caps the sampled interval count (default 200).
	MaxPoints int `yaml:"max_points"`
	// MinTime is the real-time lower bound for intervals (default 1000).
	MinTime float64 `yaml:"min_time"`

	// Resamples is the bootstrap resample count (default 1000).
	Resamples int `yaml:"resamples"`
	// Confidence is the two-sided confidence level (default 0.95).
	Confidence float64 `yaml:"confidence"`
	// Dimension selects the displacement axes, a subset of "xyz" (default "xyz").
	Dimension string `yaml:"dimension"`
	// Seed drives every stochastic stage; 0 selects fixed defaults.
	Seed int64 `yaml:"seed"`
	// Workers bounds bootstrap parallelism (default sequential).
	Workers int `yaml:"workers"`

	// GradientBounds and InterceptBounds box the fit parameters
	// (defaults [0,100] and [-10,10]).
	GradientBounds  [2]float64 `yaml:"gradient_bounds"`
	InterceptBounds [2]float64 `yaml:"intercept_bounds"`
	// Walkers, BurnIn, and Steps tune the posterior sampler (package defaults
	// apply when zero).
	Walkers int `yaml:"walkers"`
	BurnIn  int `yaml:"burn_in"`
	Steps   int `yaml:"steps"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(raw)
}

// ParseConfig decodes and validates a YAML config document.
func ParseConfig(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("analyze: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the required fields and the dimension string. Optional
// knobs are validated downstream by the packages that consume them.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Specie) == "" {
		return ErrNoSpecie
	}
	if c.TimeStep <= 0 || c.StepSkip <= 0 {
		return ErrBadTimeBase
	}
	if _, err := c.axes(); err != nil {
		return err
	}
	return nil
}

// axes maps the dimension string onto a bootstrap axis mask.
// An empty string selects all three axes.
func (c *Config) axes() (bootstrap.Axes, error) {
	if c.Dimension == "" {
		return bootstrap.AxesXYZ, nil
	}
	var mask bootstrap.Axes
	for _, r := range strings.ToLower(c.Dimension) {
		switch r {
		case 'x':
			mask |= bootstrap.AxisX
		case 'y':
			mask |= bootstrap.AxisY
		case 'z':
			mask |= bootstrap.AxisZ
		default:
			return 0, ErrBadDimension
		}
	}
	if mask == 0 {
		return 0, ErrBadDimension
	}
	return mask, nil
}

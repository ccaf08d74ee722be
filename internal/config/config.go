// Package config handles YAML configuration parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"flicker/internal/core"
	"flicker/internal/dispatch"
	"flicker/internal/effect"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Seed    int64          `yaml:"seed"` // 0 = draw from entropy
	Tick    TickConfig     `yaml:"tick"`
	Stack   StackConfig    `yaml:"stack"`
	Catalog map[string]int `yaml:"catalog,omitempty"` // effect name -> weight
	Timing  TimingConfig   `yaml:"timing"`
	Output  OutputConfig   `yaml:"output"`
}

// TickConfig controls the host loop.
type TickConfig struct {
	Rate     int           `yaml:"rate"`     // ticks per second
	MaxTicks int           `yaml:"maxTicks"` // 0 = unlimited
	Duration time.Duration `yaml:"duration"` // 0 = until interrupted
}

// StackConfig sizes the dispatch stack, i.e. the length of one program.
type StackConfig struct {
	Capacity int `yaml:"capacity"`
}

// LevelRange is a half-open range of output levels.
type LevelRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// DurationRange is a half-open range of durations.
type DurationRange struct {
	Min time.Duration `yaml:"min"`
	Max time.Duration `yaml:"max"`
}

// TimingConfig mirrors effect.Timing with human-readable durations.
type TimingConfig struct {
	PartialOn      int           `yaml:"partialOn"`
	DropoutWait    time.Duration `yaml:"dropoutWait"`
	DropoutFlicker time.Duration `yaml:"dropoutFlicker"`
	DropoutDark    time.Duration `yaml:"dropoutDark"`
	BlipDelay      DurationRange `yaml:"blipDelay"`
	BlipLength     DurationRange `yaml:"blipLength"`
	BrownoutBand   LevelRange    `yaml:"brownoutBand"`

	RampIncrement int        `yaml:"rampIncrement"`
	RampThreshold int        `yaml:"rampThreshold"`
	BurstBand     LevelRange `yaml:"burstBand"`

	MostlyOnWait     DurationRange `yaml:"mostlyOnWait"`
	MostlyOnFlicker  DurationRange `yaml:"mostlyOnFlicker"`
	MostlyOffWait    DurationRange `yaml:"mostlyOffWait"`
	MostlyOffFlicker DurationRange `yaml:"mostlyOffFlicker"`
	FlickerBand      LevelRange    `yaml:"flickerBand"`
	Repeats          int           `yaml:"repeats"`

	BadWiringLength DurationRange `yaml:"badWiringLength"`
	BadWiringBand   LevelRange    `yaml:"badWiringBand"`

	FlashPulses int           `yaml:"flashPulses"`
	FlashPulse  time.Duration `yaml:"flashPulse"`
}

// OutputConfig selects the light sinks.
type OutputConfig struct {
	Log   bool       `yaml:"log"`   // log every write at debug level
	Trace string     `yaml:"trace"` // JSON-lines trace file
	OPC   *OPCConfig `yaml:"opc,omitempty"`
}

// OPCConfig addresses an Open Pixel Control server such as fadecandy.
type OPCConfig struct {
	Server  string `yaml:"server"`
	Channel uint8  `yaml:"channel"`
	Pixels  int    `yaml:"pixels"`
	Color   string `yaml:"color"` // lamp colour at full intensity, "#rrggbb"
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Tick:   TickConfig{Rate: 50},
		Stack:  StackConfig{Capacity: dispatch.DefaultCapacity},
		Timing: timingConfigFrom(effect.DefaultTiming()),
	}
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Weights resolves the catalog names. An empty catalog means the default one.
func (c *Config) Weights() (map[effect.Kind]int, error) {
	if len(c.Catalog) == 0 {
		return dispatch.DefaultWeights, nil
	}
	weights := make(map[effect.Kind]int, len(c.Catalog))
	var errs []error
	for name, w := range c.Catalog {
		k, err := effect.ParseKind(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("catalog: %w", err))
			continue
		}
		if w < 0 {
			errs = append(errs, fmt.Errorf("catalog: weight of %s must be >= 0, got %d", name, w))
			continue
		}
		weights[k] += w
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return weights, nil
}

// BuildCatalog expands the weights into a dispatch catalog.
func (c *Config) BuildCatalog() (*dispatch.Catalog, error) {
	weights, err := c.Weights()
	if err != nil {
		return nil, err
	}
	return dispatch.CatalogFromWeights(weights), nil
}

// Validate returns every problem found, joined.
func (c *Config) Validate() error {
	var errs []error

	if c.Tick.Rate < 1 {
		errs = append(errs, fmt.Errorf("tick.rate must be >= 1, got %d", c.Tick.Rate))
	}
	if c.Tick.MaxTicks < 0 {
		errs = append(errs, fmt.Errorf("tick.maxTicks must be >= 0, got %d", c.Tick.MaxTicks))
	}
	if c.Stack.Capacity < 1 {
		errs = append(errs, fmt.Errorf("stack.capacity must be >= 1, got %d", c.Stack.Capacity))
	}

	if catalog, err := c.BuildCatalog(); err != nil {
		errs = append(errs, err)
	} else if catalog.Len() == 0 {
		errs = append(errs, errors.New("catalog: every weight is zero"))
	}

	if c.Timing.PartialOn < 0 || c.Timing.PartialOn > 255 {
		errs = append(errs, fmt.Errorf("timing.partialOn must be within 0..255, got %d", c.Timing.PartialOn))
	}
	if err := c.Timing.Effect().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("timing: %w", err))
	}

	if opc := c.Output.OPC; opc != nil {
		if opc.Server == "" {
			errs = append(errs, errors.New("output.opc.server is required"))
		}
		if opc.Pixels < 1 {
			errs = append(errs, fmt.Errorf("output.opc.pixels must be >= 1, got %d", opc.Pixels))
		}
	}

	return errors.Join(errs...)
}

// Effect converts the timing section to effect parameters.
func (t TimingConfig) Effect() effect.Timing {
	return effect.Timing{
		PartialOn:      uint8(clamp(t.PartialOn, 0, 255)),
		DropoutWait:    core.ToMillis(t.DropoutWait),
		DropoutFlicker: core.ToMillis(t.DropoutFlicker),
		DropoutDark:    core.ToMillis(t.DropoutDark),
		BlipDelay:      t.BlipDelay.toRange(),
		BlipLength:     t.BlipLength.toRange(),
		BrownoutBand:   t.BrownoutBand.toRange(),

		RampIncrement: t.RampIncrement,
		RampThreshold: t.RampThreshold,
		BurstBand:     t.BurstBand.toRange(),

		MostlyOnWait:     t.MostlyOnWait.toRange(),
		MostlyOnFlicker:  t.MostlyOnFlicker.toRange(),
		MostlyOffWait:    t.MostlyOffWait.toRange(),
		MostlyOffFlicker: t.MostlyOffFlicker.toRange(),
		FlickerBand:      t.FlickerBand.toRange(),
		Repeats:          t.Repeats,

		BadWiringLength: t.BadWiringLength.toRange(),
		BadWiringBand:   t.BadWiringBand.toRange(),

		FlashPulses: t.FlashPulses,
		FlashPulse:  core.ToMillis(t.FlashPulse),
	}
}

func (r LevelRange) toRange() effect.Range {
	return effect.Range{Min: r.Min, Max: r.Max}
}

func (r DurationRange) toRange() effect.Range {
	return effect.Range{Min: int(r.Min / time.Millisecond), Max: int(r.Max / time.Millisecond)}
}

func timingConfigFrom(t effect.Timing) TimingConfig {
	levels := func(r effect.Range) LevelRange { return LevelRange{Min: r.Min, Max: r.Max} }
	durations := func(r effect.Range) DurationRange {
		return DurationRange{Min: time.Duration(r.Min) * time.Millisecond, Max: time.Duration(r.Max) * time.Millisecond}
	}
	return TimingConfig{
		PartialOn:      int(t.PartialOn),
		DropoutWait:    t.DropoutWait.Duration(),
		DropoutFlicker: t.DropoutFlicker.Duration(),
		DropoutDark:    t.DropoutDark.Duration(),
		BlipDelay:      durations(t.BlipDelay),
		BlipLength:     durations(t.BlipLength),
		BrownoutBand:   levels(t.BrownoutBand),

		RampIncrement: t.RampIncrement,
		RampThreshold: t.RampThreshold,
		BurstBand:     levels(t.BurstBand),

		MostlyOnWait:     durations(t.MostlyOnWait),
		MostlyOnFlicker:  durations(t.MostlyOnFlicker),
		MostlyOffWait:    durations(t.MostlyOffWait),
		MostlyOffFlicker: durations(t.MostlyOffFlicker),
		FlickerBand:      levels(t.FlickerBand),
		Repeats:          t.Repeats,

		BadWiringLength: durations(t.BadWiringLength),
		BadWiringBand:   levels(t.BadWiringBand),

		FlashPulses: t.FlashPulses,
		FlashPulse:  t.FlashPulse.Duration(),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Position setter, type setter and matrix generator names accepted in the
// simulation section.
var (
	PositionSetters  = []string{"uniform", "centered", "disk", "ring", "noise"}
	TypeSetters      = []string{"random", "slices", "layers"}
	MatrixGenerators = []string{"random", "symmetric", "chains", "zero"}
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Loop       LoopConfig       `yaml:"loop"`
	Workers    WorkersConfig    `yaml:"workers"`
	Watchdog   WatchdogConfig   `yaml:"watchdog"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TargetFPS  int `yaml:"target_fps"`
	PanelWidth int `yaml:"panel_width"` // Control panel width in pixels
}

// SimulationConfig holds the initial physics settings and collaborators.
type SimulationConfig struct {
	DT               float64 `yaml:"dt"`      // Fixed step used when auto_dt is off
	AutoDT           bool    `yaml:"auto_dt"` // Step with the real elapsed time
	RMax             float64 `yaml:"rmax"`
	Friction         float64 `yaml:"friction"`
	Force            float64 `yaml:"force"`
	Wrap             bool    `yaml:"wrap"`
	MatrixSize       int     `yaml:"matrix_size"`
	InitialParticles int     `yaml:"initial_particles"`
	PositionSetter   string  `yaml:"position_setter"`
	TypeSetter       string  `yaml:"type_setter"`
	MatrixGenerator  string  `yaml:"matrix_generator"`
	Seed             int64   `yaml:"seed"`
}

// LoopConfig holds simulation loop timing.
type LoopConfig struct {
	PauseSleep      time.Duration `yaml:"pause_sleep"`
	MinTickInterval time.Duration `yaml:"min_tick_interval"` // 0 = uncapped
	StopTimeout     time.Duration `yaml:"stop_timeout"`
	PerfWindow      int           `yaml:"perf_window"` // Ticks averaged by the loop's perf collector
}

// WorkersConfig holds worker pool sizes. Zero means runtime.NumCPU().
type WorkersConfig struct {
	PreferredThreads int           `yaml:"preferred_threads"`
	SnapshotThreads  int           `yaml:"snapshot_threads"`
	ShutdownTimeout  time.Duration `yaml:"shutdown_timeout"`
}

// WatchdogConfig holds the not-reacting detection threshold.
type WatchdogConfig struct {
	NotReactingThreshold time.Duration `yaml:"not_reacting_threshold"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogInterval time.Duration `yaml:"log_interval"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	PhysicsThreads  int     // Workers.PreferredThreads, resolved
	SnapshotThreads int     // Workers.SnapshotThreads, resolved
	ScreenW32       float32 // Screen.Width as float32
	ScreenH32       float32 // Screen.Height as float32
	ViewW32         float32 // Screen width left of the panel
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
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
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Defaults returns the embedded default configuration.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	s := c.Simulation

	if s.MatrixSize < 1 {
		errs = append(errs, fmt.Errorf("simulation.matrix_size must be >= 1, got %d", s.MatrixSize))
	}
	if s.InitialParticles < 0 {
		errs = append(errs, fmt.Errorf("simulation.initial_particles must be >= 0, got %d", s.InitialParticles))
	}
	if s.DT <= 0 {
		errs = append(errs, fmt.Errorf("simulation.dt must be > 0, got %v", s.DT))
	}
	if s.RMax <= 0 {
		errs = append(errs, fmt.Errorf("simulation.rmax must be > 0, got %v", s.RMax))
	}
	if s.Friction < 0 || s.Friction > 1 {
		errs = append(errs, fmt.Errorf("simulation.friction must be in [0, 1], got %v", s.Friction))
	}
	if !slices.Contains(PositionSetters, s.PositionSetter) {
		errs = append(errs, fmt.Errorf("simulation.position_setter %q unknown", s.PositionSetter))
	}
	if !slices.Contains(TypeSetters, s.TypeSetter) {
		errs = append(errs, fmt.Errorf("simulation.type_setter %q unknown", s.TypeSetter))
	}
	if !slices.Contains(MatrixGenerators, s.MatrixGenerator) {
		errs = append(errs, fmt.Errorf("simulation.matrix_generator %q unknown", s.MatrixGenerator))
	}
	if c.Loop.PauseSleep < 0 || c.Loop.MinTickInterval < 0 || c.Loop.StopTimeout < 0 {
		errs = append(errs, errors.New("loop durations must be >= 0"))
	}
	if c.Workers.PreferredThreads < 0 || c.Workers.SnapshotThreads < 0 {
		errs = append(errs, errors.New("workers thread counts must be >= 0"))
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.PhysicsThreads = resolveThreads(c.Workers.PreferredThreads)
	c.Derived.SnapshotThreads = resolveThreads(c.Workers.SnapshotThreads)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.ViewW32 = float32(max(c.Screen.Width-c.Screen.PanelWidth, 1))
}

func resolveThreads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
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

// Package config loads run settings from viper: an optional YAML file,
// BSEG_-prefixed environment variables and bound command-line flags.
package config

import (
	"fmt"
	"math"
	"runtime"
	"strings"

	"bregman-segmenter/internal/algorithms/splitbregman"
	"bregman-segmenter/internal/edges"
	"bregman-segmenter/internal/logger"
	"bregman-segmenter/internal/pipeline"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "BSEG"
	ConfigName     = ".bregman-segmenter"
	DefaultDB      = "bseg.sqlite"
	DefaultSuffix  = "seg"
	DefaultLogFmt  = "console"
	DefaultLogLvl  = "info"
	DefaultBackend = edges.BackendNative
)

type SolverConfig struct {
	Mu              float64 `mapstructure:"mu"`
	Lambda          float64 `mapstructure:"lambda"`
	Tolerance       float64 `mapstructure:"tolerance"`
	MinIterations   int     `mapstructure:"min_iterations"`
	MaxIterations   int     `mapstructure:"max_iterations"`
	InnerIterations int     `mapstructure:"inner_iterations"`
	RegionThreshold float64 `mapstructure:"region_threshold"`
	Workers         int     `mapstructure:"workers"`
	EmptyRegion     string  `mapstructure:"empty_region"`
}

type EdgesConfig struct {
	Backend string  `mapstructure:"backend"`
	Sigma   float64 `mapstructure:"sigma"`
	Beta    float64 `mapstructure:"beta"`
	Uniform bool    `mapstructure:"uniform"`
}

type OutputConfig struct {
	Binary bool   `mapstructure:"binary"`
	Dir    string `mapstructure:"dir"`
	Suffix string `mapstructure:"suffix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Algorithm string       `mapstructure:"algorithm"`
	Solver    SolverConfig `mapstructure:"solver"`
	Edges     EdgesConfig  `mapstructure:"edges"`
	Output    OutputConfig `mapstructure:"output"`
	Log       LogConfig    `mapstructure:"log"`
	DB        string       `mapstructure:"db"`
	Jobs      int          `mapstructure:"jobs"`
}

// SetDefaults registers every key with its default so environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	sb := splitbregman.DefaultOptions()
	ed := edges.DefaultOptions()

	v.SetDefault("algorithm", splitbregman.Name)
	v.SetDefault("solver.mu", splitbregman.DefaultMu)
	v.SetDefault("solver.lambda", sb.Lambda)
	v.SetDefault("solver.tolerance", sb.Tolerance)
	v.SetDefault("solver.min_iterations", sb.MinIterations)
	v.SetDefault("solver.max_iterations", sb.MaxIterations)
	v.SetDefault("solver.inner_iterations", sb.InnerIterations)
	v.SetDefault("solver.region_threshold", sb.RegionThreshold)
	v.SetDefault("solver.workers", sb.Workers)
	v.SetDefault("solver.empty_region", sb.EmptyRegion.String())
	v.SetDefault("edges.backend", DefaultBackend)
	v.SetDefault("edges.sigma", ed.Sigma)
	v.SetDefault("edges.beta", ed.Beta)
	v.SetDefault("edges.uniform", ed.Uniform)
	v.SetDefault("output.binary", false)
	v.SetDefault("output.dir", "")
	v.SetDefault("output.suffix", DefaultSuffix)
	v.SetDefault("log.level", DefaultLogLvl)
	v.SetDefault("log.format", DefaultLogFmt)
	v.SetDefault("db", DefaultDB)
	v.SetDefault("jobs", runtime.NumCPU())
}

// BindEnv makes BSEG_SOLVER_MU and friends override file values.
func BindEnv(v *viper.Viper) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(EnvPrefix)
}

// Load reads the settings held by v and validates them.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) Validate() error {
	if !(c.Solver.Mu > 0) || math.IsInf(c.Solver.Mu, 0) {
		return fmt.Errorf("solver.mu must be positive and finite, got %v", c.Solver.Mu)
	}
	opts, err := c.SolverOptions()
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("solver: %w", err)
	}
	if err := c.EdgeOptions().Validate(); err != nil {
		return fmt.Errorf("edges: %w", err)
	}
	if !c.Edges.Uniform && !knownBackend(c.Edges.Backend) {
		return fmt.Errorf("edges.backend %q is not available (registered: %v); the opencv backend needs the opencv build tag",
			c.Edges.Backend, edges.Backends())
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.Output.Suffix == "" && c.Output.Dir == "" {
		return fmt.Errorf("output.suffix must be set when output.dir is empty, or inputs would be overwritten")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

func knownBackend(name string) bool {
	for _, b := range edges.Backends() {
		if b == name {
			return true
		}
	}
	return false
}

// SolverOptions converts the solver section into solver options.
func (c *Config) SolverOptions() (splitbregman.Options, error) {
	policy, err := splitbregman.ParseEmptyRegionPolicy(c.Solver.EmptyRegion)
	if err != nil {
		return splitbregman.Options{}, fmt.Errorf("solver.empty_region: %w", err)
	}
	return splitbregman.Options{
		Lambda:          c.Solver.Lambda,
		Tolerance:       c.Solver.Tolerance,
		MinIterations:   c.Solver.MinIterations,
		MaxIterations:   c.Solver.MaxIterations,
		InnerIterations: c.Solver.InnerIterations,
		RegionThreshold: c.Solver.RegionThreshold,
		Workers:         c.Solver.Workers,
		EmptyRegion:     policy,
	}, nil
}

// SolverParams renders the solver section as algorithm parameters.
func (c *Config) SolverParams() map[string]interface{} {
	return map[string]interface{}{
		"mu":               c.Solver.Mu,
		"lambda":           c.Solver.Lambda,
		"tolerance":        c.Solver.Tolerance,
		"min_iterations":   c.Solver.MinIterations,
		"max_iterations":   c.Solver.MaxIterations,
		"inner_iterations": c.Solver.InnerIterations,
		"region_threshold": c.Solver.RegionThreshold,
		"workers":          c.Solver.Workers,
		"empty_region":     c.Solver.EmptyRegion,
	}
}

func (c *Config) EdgeOptions() edges.Options {
	return edges.Options{
		Sigma:   c.Edges.Sigma,
		Beta:    c.Edges.Beta,
		Uniform: c.Edges.Uniform,
	}
}

// PipelineSettings builds the per-run pipeline settings. Solver parameters
// only apply to the Split Bregman algorithm.
func (c *Config) PipelineSettings() pipeline.Settings {
	s := pipeline.Settings{
		EdgeBackend:  c.Edges.Backend,
		Edges:        c.EdgeOptions(),
		Algorithm:    c.Algorithm,
		Binary:       c.Output.Binary,
		OpenCVDecode: c.Edges.Backend == edges.BackendOpenCV,
	}
	if c.Algorithm == splitbregman.Name {
		s.Parameters = c.SolverParams()
	}
	return s
}

// LogLevel returns the parsed log level. Validate has already checked it.
func (c *Config) LogLevel() logger.LogLevel {
	level, _ := logger.ParseLevel(c.Log.Level)
	return level
}

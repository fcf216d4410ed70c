package coarsen

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config manages coarsening configuration using Viper
type Config struct {
	v *viper.Viper
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	v := viper.New()

	// Scoring parameters
	v.SetDefault("scoring.method", "spectral")
	v.SetDefault("scoring.tolerance", 1e-15)
	v.SetDefault("scoring.all_pairs", true)

	// Iterative eigensolver parameters
	v.SetDefault("solver.max_iterations", 1000)
	v.SetDefault("solver.tolerance", 1e-10)

	// Logging parameters
	v.SetDefault("logging.level", "info")

	return &Config{v: v}
}

// LoadFromFile loads configuration from file
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Getters for scoring parameters
func (c *Config) ScoringMethod() string { return c.v.GetString("scoring.method") }
func (c *Config) Tolerance() float64    { return c.v.GetFloat64("scoring.tolerance") }
func (c *Config) AllPairs() bool        { return c.v.GetBool("scoring.all_pairs") }

func (c *Config) SolverMaxIterations() int { return c.v.GetInt("solver.max_iterations") }
func (c *Config) SolverTolerance() float64 { return c.v.GetFloat64("solver.tolerance") }

func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }

// Set allows dynamic configuration changes
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// CreateLogger creates a zerolog logger based on config
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "coarsen").Logger()
}

// NewScorer builds the scorer selected by the configuration.
func NewScorer(config *Config) (Scorer, error) {
	switch config.ScoringMethod() {
	case "spectral", "coarsenet":
		return NewSpectralScorer(config), nil
	case "communicability", "coconut":
		return NewCommunicabilityScorer(config), nil
	default:
		return nil, fmt.Errorf("unknown scoring method %q", config.ScoringMethod())
	}
}

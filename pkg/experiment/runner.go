// Package experiment orchestrates coarsening runs over whole datasets:
// every network in a directory is reduced with every requested method and
// ratio, compared against its original, and the metric rows are written as
// result tables.
package experiment

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gdelgado/graph-reduction/pkg/analysis"
	"github.com/gdelgado/graph-reduction/pkg/coarsen"
	"github.com/gdelgado/graph-reduction/pkg/graphio"
	"github.com/gdelgado/graph-reduction/pkg/models"
)

// Config holds the experiment parameters.
type Config struct {
	InputDir     string    `json:"input_dir"`
	OutputDir    string    `json:"output_dir"`
	Ratios       []float64 `json:"ratios"`
	Methods      []string  `json:"methods"`
	OutputFormat string    `json:"output_format"` // "csv" or "json"
	SaveGraphs   bool      `json:"save_graphs"`
	SaveMatrices bool      `json:"save_matrices"`
	MaxNetworks  int       `json:"max_networks"` // 0 means no limit
	Tolerance    float64   `json:"tolerance"`
}

// DefaultConfig returns the default experiment configuration.
func DefaultConfig() Config {
	return Config{
		Ratios:       []float64{0.1},
		Methods:      []string{"spectral", "communicability"},
		OutputFormat: "csv",
		SaveGraphs:   true,
		Tolerance:    analysis.DefaultTolerance,
	}
}

// ResultRow is one metric comparison for one (network, method, ratio).
type ResultRow struct {
	Network      string  `json:"network"`
	Method       string  `json:"method"`
	Ratio        float64 `json:"ratio"`
	Metric       string  `json:"metric"`
	Original     float64 `json:"original"`
	Reduced      float64 `json:"reduced"`
	ReductionPct float64 `json:"reduction_pct"`
}

// Summary reports what a completed run did.
type Summary struct {
	RunID       string   `json:"run_id"`
	OutputDir   string   `json:"output_dir"`
	Networks    int      `json:"networks"`
	Experiments int      `json:"experiments"`
	ResultRows  int      `json:"result_rows"`
	Errors      []string `json:"errors,omitempty"`
	RuntimeMS   int64    `json:"runtime_ms"`
}

// Runner executes experiments.
type Runner struct {
	config Config
	logger zerolog.Logger
}

// NewRunner creates a runner.
func NewRunner(config Config, logger zerolog.Logger) *Runner {
	return &Runner{config: config, logger: logger}
}

// Run processes every network in the input directory and writes the result
// tables. Individual network failures are recorded and skipped; the run
// fails only when no network can be processed at all.
func (r *Runner) Run() (*Summary, error) {
	start := time.Now()

	runID := uuid.NewString()
	outputDir := filepath.Join(r.config.OutputDir, "run_"+runID)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	summary := &Summary{RunID: runID, OutputDir: outputDir}

	graphs, err := graphio.IterGraphFiles(r.config.InputDir)
	if err != nil {
		return nil, err
	}
	names := graphio.SortedNames(graphs)
	if len(names) == 0 {
		return nil, fmt.Errorf("no graph files found in %s", r.config.InputDir)
	}
	if r.config.MaxNetworks > 0 && len(names) > r.config.MaxNetworks {
		names = names[:r.config.MaxNetworks]
	}

	r.logger.Info().
		Int("networks", len(names)).
		Strs("methods", r.config.Methods).
		Floats64("ratios", r.config.Ratios).
		Str("run_id", runID).
		Msg("starting experiment")

	var rows []ResultRow
	for _, name := range names {
		original, err := graphio.LoadGraph(graphs[name])
		if err != nil {
			r.logger.Warn().Err(err).Str("network", name).Msg("failed to load network, skipping")
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		summary.Networks++
		r.logger.Info().
			Str("network", name).
			Int("nodes", original.NumNodes()).
			Int("edges", original.NumEdges()).
			Msg("processing network")

		for _, method := range r.config.Methods {
			methodRows, err := r.runMethod(outputDir, name, method, original)
			summary.Experiments++
			if err != nil {
				r.logger.Warn().Err(err).Str("network", name).Str("method", method).Msg("experiment failed")
				summary.Errors = append(summary.Errors, fmt.Sprintf("%s/%s: %v", name, method, err))
				continue
			}
			rows = append(rows, methodRows...)
		}
	}
	summary.ResultRows = len(rows)

	if len(rows) == 0 {
		return summary, fmt.Errorf("no results produced")
	}
	if err := r.writeResults(outputDir, rows); err != nil {
		return summary, err
	}
	summary.RuntimeMS = time.Since(start).Milliseconds()
	if err := writeSummary(filepath.Join(outputDir, "summary.txt"), r.config, summary); err != nil {
		return summary, err
	}

	r.logger.Info().
		Int("result_rows", len(rows)).
		Str("output_dir", outputDir).
		Msg("experiment complete")
	return summary, nil
}

// runMethod coarsens one network with one method across all ratios, using a
// single checkpointed pass, and compares each checkpoint to the original.
func (r *Runner) runMethod(outputDir, name, method string, original *models.Graph) ([]ResultRow, error) {
	cfg := coarsen.NewConfig()
	cfg.Set("scoring.method", method)
	cfg.Set("logging.level", "warn")
	engine, err := coarsen.NewEngineFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	result, err := engine.CoarsenWithCheckpoints(original, r.config.Ratios)
	if err != nil {
		return nil, err
	}
	for _, warning := range result.Warnings {
		r.logger.Warn().Str("network", name).Str("method", method).Msg(warning.String())
	}

	var rows []ResultRow
	for _, ratio := range r.config.Ratios {
		reduced, ok := result.Graphs[ratio]
		if !ok {
			continue
		}
		comparison, err := analysis.Compare(original, reduced, r.config.Tolerance)
		if err != nil {
			return nil, fmt.Errorf("metrics for ratio %v: %w", ratio, err)
		}
		for _, row := range comparison {
			rows = append(rows, ResultRow{
				Network:      name,
				Method:       method,
				Ratio:        ratio,
				Metric:       row.Metric,
				Original:     row.Original,
				Reduced:      row.Reduced,
				ReductionPct: row.ReductionPct,
			})
		}

		if r.config.SaveGraphs || r.config.SaveMatrices {
			networkDir := filepath.Join(outputDir, name)
			if err := os.MkdirAll(networkDir, 0755); err != nil {
				return nil, err
			}
			base := fmt.Sprintf("reduced_%s_%s_%.2f", method, name, ratio)
			if r.config.SaveGraphs {
				if err := graphio.SaveGraph(reduced, filepath.Join(networkDir, base+".gml"), graphio.FormatGML); err != nil {
					return nil, err
				}
			}
			if r.config.SaveMatrices {
				if err := graphio.SaveGraph(reduced, filepath.Join(networkDir, base+"_adj_matrix.txt"), graphio.FormatMatrix); err != nil {
					return nil, err
				}
			}
		}
	}
	return rows, nil
}

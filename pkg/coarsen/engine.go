package coarsen

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/gdelgado/graph-reduction/pkg/models"
)

// phase tracks the engine state machine: INIT -> SCORED -> CONTRACTING -> DONE.
type phase int

const (
	phaseInit phase = iota
	phaseScored
	phaseContracting
	phaseDone
)

// Statistics contains run performance metrics
type Statistics struct {
	NodesOriginal     int   `json:"nodes_original"`
	NodesFinal        int   `json:"nodes_final"`
	CandidatesScored  int   `json:"candidates_scored"`
	CandidatesDropped int   `json:"candidates_dropped"`
	ContractionsDone  int   `json:"contractions_done"`
	ScoringMS         int64 `json:"scoring_ms"`
	RuntimeMS         int64 `json:"runtime_ms"`
}

// Result represents the output of a checkpointed coarsening run.
type Result struct {
	// Graphs maps each requested ratio to its reduced graph. Every graph is
	// an independent copy: none aliases the caller's input or another
	// checkpoint taken at a different contraction count.
	Graphs map[float64]*models.Graph `json:"-"`

	// Partition is the final original-node -> supernode assignment. It is
	// read-only once the engine returns.
	Partition *Partition `json:"-"`

	// Warnings collects recoverable numeric diagnostics. An empty slice
	// means the run was numerically clean.
	Warnings []Warning `json:"warnings,omitempty"`

	Statistics Statistics `json:"statistics"`
}

// Engine performs greedy pairwise contraction driven by a one-shot scoring
// pass: the graph is sanitized once, all candidate pairs are scored once
// against the original topology, and the sorted candidate list is consumed
// while the working graph and partition are mutated in place. Requested
// ratios are served as deep-copy snapshots along the way, so one score pass
// yields every reduction level.
type Engine struct {
	scorer Scorer
	config *Config
	logger zerolog.Logger
	state  phase
}

// NewEngine creates an engine around an explicit scorer.
func NewEngine(scorer Scorer, config *Config) *Engine {
	return &Engine{
		scorer: scorer,
		config: config,
		logger: config.CreateLogger(),
		state:  phaseInit,
	}
}

// NewEngineFromConfig creates an engine with the scorer named in the
// configuration.
func NewEngineFromConfig(config *Config) (*Engine, error) {
	scorer, err := NewScorer(config)
	if err != nil {
		return nil, err
	}
	return NewEngine(scorer, config), nil
}

// Coarsen reduces the graph to a single target ratio. The ratio must lie
// strictly between 0 and 1.
func (e *Engine) Coarsen(g *models.Graph, ratio float64) (*models.Graph, error) {
	if ratio <= 0 || ratio >= 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRatio, ratio)
	}
	result, err := e.CoarsenWithCheckpoints(g, []float64{ratio})
	if err != nil {
		return nil, err
	}
	return result.Graphs[ratio], nil
}

// CoarsenWithCheckpoints reduces the graph to every requested ratio in a
// single pass. Out-of-range ratios are dropped with a warning; if none
// remain the call fails before any computation. Every surviving ratio is
// guaranteed an entry in the result, falling back to the final working
// graph when the candidate list runs out early.
func (e *Engine) CoarsenWithCheckpoints(g *models.Graph, ratios []float64) (*Result, error) {
	start := time.Now()
	e.state = phaseInit

	result := &Result{Graphs: make(map[float64]*models.Graph)}

	valid := make([]float64, 0, len(ratios))
	seen := make(map[float64]bool, len(ratios))
	for _, ratio := range ratios {
		if ratio <= 0 || ratio >= 1 {
			e.logger.Warn().Float64("ratio", ratio).Msg("ignoring out-of-range reduction ratio")
			result.Warnings = append(result.Warnings, Warning{
				Component: "engine",
				Message:   fmt.Sprintf("ignoring out-of-range reduction ratio %v", ratio),
			})
			continue
		}
		if !seen[ratio] {
			seen[ratio] = true
			valid = append(valid, ratio)
		}
	}
	if len(valid) == 0 {
		return nil, ErrNoValidRatios
	}
	sort.Float64s(valid)

	working := Sanitize(g)
	n := working.NumNodes()
	nodes := working.Nodes()
	result.Partition = NewPartition(nodes)
	result.Statistics.NodesOriginal = n

	finish := func() (*Result, error) {
		e.state = phaseDone
		result.Statistics.NodesFinal = working.NumNodes()
		result.Statistics.RuntimeMS = time.Since(start).Milliseconds()
		e.logger.Info().
			Int("nodes_original", n).
			Int("nodes_final", working.NumNodes()).
			Int("contractions", result.Statistics.ContractionsDone).
			Msg("coarsening complete")
		return result, nil
	}

	if n < 2 {
		// Nothing can be contracted; every ratio gets the sanitized copy.
		for _, ratio := range valid {
			result.Graphs[ratio] = working.Clone()
		}
		return finish()
	}

	scoringStart := time.Now()
	candidates, diagnostics, err := e.scorer.Scores(working, nodes)
	result.Statistics.ScoringMS = time.Since(scoringStart).Milliseconds()
	if diagnostics != nil {
		result.Warnings = append(result.Warnings, diagnostics.Warnings...)
		result.Statistics.CandidatesDropped = diagnostics.PairsDropped
	}
	if err != nil {
		// Solver failure degrades the whole run to "no contraction" rather
		// than propagating.
		e.logger.Warn().Err(err).Str("scorer", e.scorer.Name()).Msg("scoring failed, returning sanitized graph for all ratios")
		result.Warnings = append(result.Warnings, Warning{
			Component: e.scorer.Name(),
			Message:   fmt.Sprintf("scoring failed, no contraction performed: %v", err),
		})
		for _, ratio := range valid {
			result.Graphs[ratio] = working.Clone()
		}
		return finish()
	}
	result.Statistics.CandidatesScored = len(candidates)
	if len(candidates) == 0 {
		for _, ratio := range valid {
			result.Graphs[ratio] = working.Clone()
		}
		return finish()
	}
	e.state = phaseScored

	ascending := e.scorer.Direction() == Ascending
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			if ascending {
				return candidates[i].Score < candidates[j].Score
			}
			return candidates[i].Score > candidates[j].Score
		}
		// Deterministic tie-break on the canonical pair ordering.
		if candidates[i].A != candidates[j].A {
			return candidates[i].A < candidates[j].A
		}
		return candidates[i].B < candidates[j].B
	})

	// Map each required contraction count to the ratios it serves. Ratios
	// sharing a count share one snapshot.
	checkpoints := make(map[int][]float64, len(valid))
	maxContractions := 0
	for _, ratio := range valid {
		count := n - int(math.Round((1-ratio)*float64(n)))
		checkpoints[count] = append(checkpoints[count], ratio)
		if count > maxContractions {
			maxContractions = count
		}
	}
	if shared, ok := checkpoints[0]; ok {
		snapshot := working.Clone()
		for _, ratio := range shared {
			result.Graphs[ratio] = snapshot
		}
	}

	e.state = phaseContracting
	e.logger.Info().
		Int("nodes", n).
		Int("candidates", len(candidates)).
		Int("max_contractions", maxContractions).
		Str("scorer", e.scorer.Name()).
		Msg("starting coarsening")

	partition := result.Partition
	done := 0
	for _, candidate := range candidates {
		if done >= maxContractions {
			break
		}

		superA, _ := partition.Find(candidate.A)
		superB, _ := partition.Find(candidate.B)
		if superA == superB {
			// Already merged transitively through earlier contractions.
			continue
		}

		merged, err := partition.Union(superA, superB)
		if err != nil {
			return nil, fmt.Errorf("partition update failed: %w", err)
		}

		// Rewire: the merged supernode inherits the union of both neighbor
		// sets, minus the merged pair itself.
		neighborSet := make(map[string]bool)
		for _, nb := range working.Neighbors(superA) {
			neighborSet[nb] = true
		}
		for _, nb := range working.Neighbors(superB) {
			neighborSet[nb] = true
		}
		delete(neighborSet, superA)
		delete(neighborSet, superB)

		working.AddNode(merged)
		for nb := range neighborSet {
			working.AddEdge(merged, nb, 1.0)
		}
		working.RemoveNode(superA)
		working.RemoveNode(superB)

		done++
		if shared, ok := checkpoints[done]; ok {
			snapshot := working.Clone()
			for _, ratio := range shared {
				if _, exists := result.Graphs[ratio]; !exists {
					result.Graphs[ratio] = snapshot
				}
			}
			e.logger.Debug().
				Int("contractions", done).
				Int("nodes", snapshot.NumNodes()).
				Floats64("ratios", shared).
				Msg("checkpoint snapshot saved")
		}
	}
	result.Statistics.ContractionsDone = done

	// A small or sparse graph can exhaust viable candidates before every
	// checkpoint is reached; uncovered ratios fall back to the final graph.
	var final *models.Graph
	for _, ratio := range valid {
		if _, ok := result.Graphs[ratio]; !ok {
			if final == nil {
				final = working.Clone()
			}
			result.Graphs[ratio] = final
		}
	}

	return finish()
}

package coarsen

import "github.com/gdelgado/graph-reduction/pkg/models"

// Direction declares how candidate scores are prioritized.
type Direction int

const (
	// Ascending means lower scores are merged first (cost-style scores).
	Ascending Direction = iota
	// Descending means higher scores are merged first (similarity-style scores).
	Descending
)

// Candidate is an unordered pair of original nodes with its merge score.
// A < B lexicographically.
type Candidate struct {
	Score float64 `json:"score"`
	A     string  `json:"a"`
	B     string  `json:"b"`
}

// Diagnostics carries recoverable numeric findings from a scoring pass.
type Diagnostics struct {
	Lambda       float64   `json:"lambda,omitempty"`
	PairsDropped int       `json:"pairs_dropped"`
	Warnings     []Warning `json:"warnings,omitempty"`
}

// Scorer computes merge scores for node pairs of a sanitized graph. It is
// invoked exactly once per coarsening run, against the original topology:
// scores are never recomputed as the working graph shrinks.
//
// There are exactly two implementations: SpectralScorer (CoarseNet-style
// eigenvalue perturbation cost) and CommunicabilityScorer (CoCoNUT-style
// communicability similarity).
type Scorer interface {
	Name() string
	Direction() Direction
	Scores(g *models.Graph, nodes []string) ([]Candidate, *Diagnostics, error)
}

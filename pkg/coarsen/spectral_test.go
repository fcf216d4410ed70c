package coarsen

import (
	"math"
	"testing"

	"github.com/gdelgado/graph-reduction/pkg/generators"
	"github.com/gdelgado/graph-reduction/pkg/models"
)

func newTestConfig() *Config {
	config := NewConfig()
	config.Set("logging.level", "error")
	return config
}

func TestSpectralDominantEigenvalue(t *testing.T) {
	tests := []struct {
		name   string
		graph  *models.Graph
		lambda float64
	}{
		{name: "triangle", graph: generators.Cycle(3), lambda: 2.0},
		{name: "path of 5", graph: generators.Path(5), lambda: math.Sqrt(3)},
		{name: "star with 5 leaves", graph: generators.Star(5), lambda: math.Sqrt(5)},
		{name: "complete graph K4", graph: generators.Complete(4), lambda: 3.0},
		{name: "single edge", graph: generators.Path(2), lambda: 1.0},
	}

	scorer := NewSpectralScorer(newTestConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Sanitize(tt.graph)
			nodes := g.Nodes()
			index := make(map[string]int, len(nodes))
			for i, node := range nodes {
				index[node] = i
			}
			lambda, u, v, err := scorer.eigensystem(neighborIndexes(g, nodes, index), len(nodes))
			if err != nil {
				t.Fatalf("eigensystem failed: %v", err)
			}
			if math.Abs(lambda-tt.lambda) > 1e-6 {
				t.Errorf("Expected lambda %.6f, got %.6f", tt.lambda, lambda)
			}
			if len(u) != len(nodes) || len(v) != len(nodes) {
				t.Errorf("Eigenvector length mismatch: %d and %d for %d nodes", len(u), len(v), len(nodes))
			}
			// Perron eigenvector of a connected graph is strictly positive.
			for i, value := range u {
				if value <= 0 {
					t.Errorf("Eigenvector entry %d is %f, expected positive", i, value)
				}
			}
		})
	}
}

func TestSpectralScoresAllPairs(t *testing.T) {
	scorer := NewSpectralScorer(newTestConfig())
	g := Sanitize(generators.Path(5))

	candidates, diag, err := scorer.Scores(g, g.Nodes())
	if err != nil {
		t.Fatalf("Scores failed: %v", err)
	}

	if len(candidates)+diag.PairsDropped != 10 {
		t.Errorf("Expected all 10 unordered pairs covered, got %d scored + %d dropped", len(candidates), diag.PairsDropped)
	}
	for _, c := range candidates {
		if c.A >= c.B {
			t.Errorf("Candidate pair not canonically ordered: %q >= %q", c.A, c.B)
		}
		if c.Score < 0 {
			t.Errorf("Score should be an absolute value, got %f for %s-%s", c.Score, c.A, c.B)
		}
	}
}

func TestSpectralScoresEdgesOnlyLegacyMode(t *testing.T) {
	config := newTestConfig()
	config.Set("scoring.all_pairs", false)
	scorer := NewSpectralScorer(config)

	g := Sanitize(generators.Path(5))
	candidates, diag, err := scorer.Scores(g, g.Nodes())
	if err != nil {
		t.Fatalf("Scores failed: %v", err)
	}
	if len(candidates)+diag.PairsDropped != 4 {
		t.Errorf("Edges-only mode should cover the 4 path edges, got %d scored + %d dropped", len(candidates), diag.PairsDropped)
	}
	for _, c := range candidates {
		if !g.HasEdge(c.A, c.B) {
			t.Errorf("Edges-only candidate %s-%s is not an edge", c.A, c.B)
		}
	}
}

func TestSpectralScoresTinyGraphs(t *testing.T) {
	scorer := NewSpectralScorer(newTestConfig())

	// Below two nodes there are no pairs to score.
	single := models.NewGraph()
	single.AddNode("a")
	candidates, _, err := scorer.Scores(single, single.Nodes())
	if err != nil {
		t.Fatalf("Scores failed on single node: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("Single node graph should yield no candidates, got %d", len(candidates))
	}

	// Two nodes use the dense solver.
	pair := Sanitize(generators.Path(2))
	candidates, _, err = scorer.Scores(pair, pair.Nodes())
	if err != nil {
		t.Fatalf("Scores failed on two nodes: %v", err)
	}
	if len(candidates) != 1 {
		t.Errorf("Two-node graph should yield exactly one candidate, got %d", len(candidates))
	}
}

func TestSpectralScoreFormula(t *testing.T) {
	// Star with 2 leaves (path a-hub-b): lambda = sqrt(2), eigenvector
	// known in closed form, so the perturbation score can be checked
	// by hand for the leaf-leaf pair.
	g := models.NewGraph()
	g.AddEdge("hub", "a", 1.0)
	g.AddEdge("hub", "b", 1.0)

	scorer := NewSpectralScorer(newTestConfig())
	candidates, _, err := scorer.Scores(g, g.Nodes())
	if err != nil {
		t.Fatalf("Scores failed: %v", err)
	}

	lambda := math.Sqrt(2)
	// Normalized Perron eigenvector: hub = 1/sqrt(2), each leaf = 1/2.
	uLeaf := 0.5
	vDotU := 1.0
	uTco := 2 * (lambda*uLeaf - uLeaf)
	numerator := -lambda*(2*uLeaf*uLeaf) + uLeaf*uTco + 2*uLeaf*uLeaf
	denominator := vDotU - 2*uLeaf*uLeaf
	expected := math.Abs(numerator / denominator)

	found := false
	for _, c := range candidates {
		if c.A == "a" && c.B == "b" {
			found = true
			if math.Abs(c.Score-expected) > 1e-6 {
				t.Errorf("Leaf-leaf score %.8f, expected %.8f", c.Score, expected)
			}
		}
	}
	if !found {
		t.Errorf("Missing leaf-leaf candidate a-b")
	}
}

func TestSpectralDirection(t *testing.T) {
	scorer := NewSpectralScorer(newTestConfig())
	if scorer.Direction() != Ascending {
		t.Errorf("Spectral scorer is a cost: priority must be ascending")
	}
}

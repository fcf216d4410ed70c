package analysis

import (
	"math"
	"testing"

	"github.com/gdelgado/graph-reduction/pkg/generators"
	"github.com/gdelgado/graph-reduction/pkg/models"
)

func TestAnalyzeCompleteGraph(t *testing.T) {
	// K5: adjacency eigenvalues {4, -1 x4}, Laplacian eigenvalues {0, 5 x4}.
	props, err := AnalyzeGraph(generators.Complete(5), DefaultTolerance)
	if err != nil {
		t.Fatalf("AnalyzeGraph failed: %v", err)
	}

	checks := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"spectral radius of A", props.SpectralRadiusA, 4},
		{"spectral gap of A", props.SpectralGapA, 5},
		{"algebraic connectivity of L", props.AlgebraicConnectivityL, 5},
		{"spectral ratio of L", props.SpectralRatioL, 1},
		{"eigenratio", props.Eigenratio, 1},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.expected) > 1e-9 {
			t.Errorf("%s = %f, expected %f", c.name, c.got, c.expected)
		}
	}
}

func TestAnalyzeSingleEdge(t *testing.T) {
	// P2: adjacency eigenvalues {1, -1}, Laplacian eigenvalues {0, 2}.
	props, err := AnalyzeGraph(generators.Path(2), DefaultTolerance)
	if err != nil {
		t.Fatalf("AnalyzeGraph failed: %v", err)
	}

	if math.Abs(props.SpectralRadiusA-1) > 1e-9 {
		t.Errorf("Spectral radius = %f, expected 1", props.SpectralRadiusA)
	}
	if math.Abs(props.SpectralGapA-2) > 1e-9 {
		t.Errorf("Spectral gap = %f, expected 2", props.SpectralGapA)
	}
	if math.Abs(props.AlgebraicConnectivityL-2) > 1e-9 {
		t.Errorf("Algebraic connectivity = %f, expected 2", props.AlgebraicConnectivityL)
	}
}

func TestAnalyzeEmptyGraph(t *testing.T) {
	props, err := AnalyzeGraph(models.NewGraph(), DefaultTolerance)
	if err != nil {
		t.Fatalf("AnalyzeGraph failed: %v", err)
	}
	if props.NumNodes != 0 || props.SpectralRadiusA != 0 || props.AlgebraicConnectivityL != 0 {
		t.Errorf("Empty graph should yield all-zero metrics, got %+v", props)
	}
}

func TestAnalyzeDisconnectedGraph(t *testing.T) {
	// Two components: algebraic connectivity must be zero.
	g := models.NewGraph()
	g.AddEdge("a", "b", 1.0)
	g.AddEdge("c", "d", 1.0)

	props, err := AnalyzeGraph(g, DefaultTolerance)
	if err != nil {
		t.Fatalf("AnalyzeGraph failed: %v", err)
	}
	if props.AlgebraicConnectivityL != 0 {
		t.Errorf("Disconnected graph should have zero algebraic connectivity, got %f", props.AlgebraicConnectivityL)
	}
}

func TestCompareRows(t *testing.T) {
	original := generators.Complete(6)
	reduced := generators.Complete(3)

	rows, err := Compare(original, reduced, DefaultTolerance)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(rows) != 7 {
		t.Fatalf("Expected 7 metric rows, got %d", len(rows))
	}

	byMetric := make(map[string]MetricRow, len(rows))
	for _, row := range rows {
		byMetric[row.Metric] = row
	}

	nodes := byMetric["Number of Nodes"]
	if nodes.Original != 6 || nodes.Reduced != 3 {
		t.Errorf("Node row = %+v, expected 6 -> 3", nodes)
	}
	if math.Abs(nodes.ReductionPct-50) > 1e-9 {
		t.Errorf("Node reduction = %f%%, expected 50%%", nodes.ReductionPct)
	}
}

package coarsen

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gdelgado/graph-reduction/pkg/models"
)

// CommunicabilityScorer ranks node pairs by communicability similarity
// (CoCoNUT): a blend of communicability cosine proximity and closeness
// centrality proximity. Higher scores mean more similar nodes, so priority
// is descending.
type CommunicabilityScorer struct {
	allPairs bool
}

// NewCommunicabilityScorer creates a communicability scorer from
// configuration.
func NewCommunicabilityScorer(config *Config) *CommunicabilityScorer {
	return &CommunicabilityScorer{allPairs: config.AllPairs()}
}

func (s *CommunicabilityScorer) Name() string { return "communicability" }

func (s *CommunicabilityScorer) Direction() Direction { return Descending }

// Scores computes the similarity score for every candidate pair:
//
//	S_ij = 0.5*exp(-0.5*D_ij) + 0.5*exp(-|c_i - c_j|)
//
// where D is the communicability cosine distance and c the communicability
// closeness centrality, both derived from the matrix exponential of the
// adjacency matrix.
func (s *CommunicabilityScorer) Scores(g *models.Graph, nodes []string) ([]Candidate, *Diagnostics, error) {
	n := len(nodes)
	diag := &Diagnostics{}
	if n < 2 {
		return nil, diag, nil
	}

	index := make(map[string]int, n)
	for i, node := range nodes {
		index[node] = i
	}

	expA, err := matrixExponential(g, nodes, index)
	if err != nil {
		return nil, diag, err
	}

	// Communicability cosine distance, diagonal forced to zero. An
	// isolated denominator degrades to zero distance rather than NaN.
	distance := make([][]float64, n)
	for i := range distance {
		distance[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			denom := math.Sqrt(expA.At(i, i) * expA.At(j, j))
			d := 0.0
			if denom > 0 {
				d = 2 - 2*expA.At(i, j)/denom
			}
			distance[i][j] = d
			distance[j][i] = d
		}
	}

	// Communicability closeness centrality.
	centrality := make([]float64, n)
	for i := 0; i < n; i++ {
		rowSum := 0.0
		for j := 0; j < n; j++ {
			rowSum += distance[i][j]
		}
		if rowSum > 0 {
			centrality[i] = 1 / rowSum
		}
	}

	score := func(i, j int) float64 {
		return 0.5*math.Exp(-0.5*distance[i][j]) + 0.5*math.Exp(-math.Abs(centrality[i]-centrality[j]))
	}

	var candidates []Candidate
	if s.allPairs {
		candidates = make([]Candidate, 0, n*(n-1)/2)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				candidates = append(candidates, Candidate{Score: score(i, j), A: nodes[i], B: nodes[j]})
			}
		}
	} else {
		edges := g.Edges()
		candidates = make([]Candidate, 0, len(edges))
		for _, edge := range edges {
			i, j := index[edge.U], index[edge.V]
			if i > j {
				i, j = j, i
			}
			candidates = append(candidates, Candidate{Score: score(i, j), A: nodes[i], B: nodes[j]})
		}
	}

	return candidates, diag, nil
}

// matrixExponential computes exp(A) for the adjacency matrix. A is
// symmetric for a simple undirected graph, so exp(A) = Q*diag(e^li)*Q^T
// from the symmetric eigendecomposition, evaluated as B*B^T with
// B = Q*diag(e^(li/2)).
func matrixExponential(g *models.Graph, nodes []string, index map[string]int) (*mat.Dense, error) {
	n := len(nodes)
	sym := mat.NewSymDense(n, nil)
	for _, edge := range g.Edges() {
		i, j := index[edge.U], index[edge.V]
		if i <= j {
			sym.SetSym(i, j, 1)
		} else {
			sym.SetSym(j, i, 1)
		}
	}

	var eigen mat.EigenSym
	if !eigen.Factorize(sym, true) {
		return nil, fmt.Errorf("adjacency eigendecomposition failed")
	}
	values := eigen.Values(nil)
	var vectors mat.Dense
	eigen.VectorsTo(&vectors)

	scaled := mat.NewDense(n, n, nil)
	for k := 0; k < n; k++ {
		halfExp := math.Exp(values[k] / 2)
		for i := 0; i < n; i++ {
			scaled.Set(i, k, vectors.At(i, k)*halfExp)
		}
	}

	expA := mat.NewDense(n, n, nil)
	expA.Mul(scaled, scaled.T())
	return expA, nil
}

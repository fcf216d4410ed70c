// Package generators builds the sample networks used by the experiment
// harness: classic deterministic topologies plus seeded random models.
package generators

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/gdelgado/graph-reduction/pkg/models"
)

// Path returns the path graph 0-1-...-(n-1).
func Path(n int) *models.Graph {
	g := models.NewGraph()
	for i := 0; i < n; i++ {
		g.AddNode(strconv.Itoa(i))
	}
	for i := 0; i+1 < n; i++ {
		g.AddEdge(strconv.Itoa(i), strconv.Itoa(i+1), 1.0)
	}
	return g
}

// Cycle returns the cycle graph on n nodes.
func Cycle(n int) *models.Graph {
	g := Path(n)
	if n > 2 {
		g.AddEdge(strconv.Itoa(n-1), "0", 1.0)
	}
	return g
}

// Star returns a star with one hub ("0") and the given number of leaves.
func Star(leaves int) *models.Graph {
	g := models.NewGraph()
	g.AddNode("0")
	for i := 1; i <= leaves; i++ {
		g.AddEdge("0", strconv.Itoa(i), 1.0)
	}
	return g
}

// Complete returns the complete graph on n nodes.
func Complete(n int) *models.Graph {
	g := models.NewGraph()
	for i := 0; i < n; i++ {
		g.AddNode(strconv.Itoa(i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			g.AddEdge(strconv.Itoa(i), strconv.Itoa(j), 1.0)
		}
	}
	return g
}

// Grid2D returns the rows x cols grid graph with integer node labels in
// row-major order.
func Grid2D(rows, cols int) *models.Graph {
	g := models.NewGraph()
	id := func(r, c int) string { return strconv.Itoa(r*cols + c) }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.AddNode(id(r, c))
			if c+1 < cols {
				g.AddEdge(id(r, c), id(r, c+1), 1.0)
			}
			if r+1 < rows {
				g.AddEdge(id(r, c), id(r+1, c), 1.0)
			}
		}
	}
	return g
}

// ErdosRenyi returns a G(n, p) random graph. The same seed always produces
// the same graph.
func ErdosRenyi(n int, p float64, seed int64) *models.Graph {
	rng := rand.New(rand.NewSource(seed))
	g := models.NewGraph()
	for i := 0; i < n; i++ {
		g.AddNode(strconv.Itoa(i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				g.AddEdge(strconv.Itoa(i), strconv.Itoa(j), 1.0)
			}
		}
	}
	return g
}

// BarabasiAlbert returns a preferential-attachment graph: each new node
// attaches to m existing nodes chosen proportionally to degree.
func BarabasiAlbert(n, m int, seed int64) *models.Graph {
	if m < 1 || n <= m {
		return Complete(n)
	}
	rng := rand.New(rand.NewSource(seed))
	g := models.NewGraph()

	// Repeated targets make high-degree nodes proportionally likely.
	var repeated []int
	for i := 0; i < m; i++ {
		g.AddNode(strconv.Itoa(i))
	}
	for v := m; v < n; v++ {
		targets := make(map[int]bool, m)
		if v == m {
			for i := 0; i < m; i++ {
				targets[i] = true
			}
		} else {
			for len(targets) < m {
				targets[repeated[rng.Intn(len(repeated))]] = true
			}
		}
		picked := make([]int, 0, len(targets))
		for t := range targets {
			picked = append(picked, t)
		}
		sort.Ints(picked)
		for _, t := range picked {
			g.AddEdge(strconv.Itoa(v), strconv.Itoa(t), 1.0)
			repeated = append(repeated, t, v)
		}
	}
	return g
}

// WattsStrogatz returns a small-world graph: a ring lattice where each node
// connects to its k nearest neighbors, with each edge rewired with
// probability p.
func WattsStrogatz(n, k int, p float64, seed int64) *models.Graph {
	rng := rand.New(rand.NewSource(seed))
	g := models.NewGraph()
	for i := 0; i < n; i++ {
		g.AddNode(strconv.Itoa(i))
	}
	half := k / 2
	for i := 0; i < n; i++ {
		for d := 1; d <= half; d++ {
			j := (i + d) % n
			if rng.Float64() < p {
				// Rewire to a uniformly chosen node, avoiding loops and
				// duplicates; keep the lattice edge when no candidate fits.
				rewired := false
				for attempt := 0; attempt < n; attempt++ {
					target := rng.Intn(n)
					if target != i && !g.HasEdge(strconv.Itoa(i), strconv.Itoa(target)) {
						g.AddEdge(strconv.Itoa(i), strconv.Itoa(target), 1.0)
						rewired = true
						break
					}
				}
				if !rewired {
					g.AddEdge(strconv.Itoa(i), strconv.Itoa(j), 1.0)
				}
			} else {
				g.AddEdge(strconv.Itoa(i), strconv.Itoa(j), 1.0)
			}
		}
	}
	return g
}

// SampleNetworks returns the named sample set used for quick experiment
// tests.
func SampleNetworks() map[string]*models.Graph {
	return map[string]*models.Graph{
		"path_25":            Path(25),
		"cycle_20":           Cycle(20),
		"star_15":            Star(14),
		"complete_10":        Complete(10),
		"grid_5x5":           Grid2D(5, 5),
		"erdos_renyi_30":     ErdosRenyi(30, 0.15, 42),
		"barabasi_albert_25": BarabasiAlbert(25, 3, 42),
		"watts_strogatz_30":  WattsStrogatz(30, 4, 0.3, 42),
	}
}

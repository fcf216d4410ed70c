package models

import (
	"fmt"
	"sort"
)

// Graph represents an undirected weighted graph keyed by string node IDs.
// Node IDs are opaque: original nodes keep whatever ID the loader gave them,
// and merged supernodes get surrogate IDs assigned by the coarsening
// partition.
type Graph struct {
	adj map[string]map[string]float64
}

// Edge is an undirected edge. For non-loop edges U < V lexicographically.
type Edge struct {
	U      string  `json:"u"`
	V      string  `json:"v"`
	Weight float64 `json:"weight"`
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[string]map[string]float64)}
}

// AddNode adds an isolated node. Adding an existing node is a no-op.
func (g *Graph) AddNode(id string) {
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = make(map[string]float64)
	}
}

// AddEdge adds an undirected edge with the given weight, creating endpoints
// as needed. Re-adding an edge overwrites its weight. Self-loops are allowed
// here; the coarsening sanitizer strips them.
func (g *Graph) AddEdge(u, v string, weight float64) {
	g.AddNode(u)
	g.AddNode(v)
	g.adj[u][v] = weight
	g.adj[v][u] = weight
}

// RemoveNode removes a node and all its incident edges.
func (g *Graph) RemoveNode(id string) {
	neighbors, ok := g.adj[id]
	if !ok {
		return
	}
	for nb := range neighbors {
		if nb != id {
			delete(g.adj[nb], id)
		}
	}
	delete(g.adj, id)
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// HasEdge reports whether an edge between u and v exists.
func (g *Graph) HasEdge(u, v string) bool {
	if _, ok := g.adj[u]; !ok {
		return false
	}
	_, ok := g.adj[u][v]
	return ok
}

// EdgeWeight returns the weight of edge u-v, or 0 if the edge is absent.
func (g *Graph) EdgeWeight(u, v string) float64 {
	if _, ok := g.adj[u]; !ok {
		return 0
	}
	return g.adj[u][v]
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int {
	return len(g.adj)
}

// NumEdges returns the edge count. A self-loop counts as one edge.
func (g *Graph) NumEdges() int {
	count := 0
	for u, neighbors := range g.adj {
		for v := range neighbors {
			if u <= v {
				count++
			}
		}
	}
	return count
}

// Nodes returns all node IDs in sorted order. Sorting keeps every
// traversal over the graph deterministic across runs.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.adj))
	for id := range g.adj {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)
	return nodes
}

// Neighbors returns the sorted neighbor IDs of a node.
func (g *Graph) Neighbors(id string) []string {
	neighbors, ok := g.adj[id]
	if !ok {
		return nil
	}
	result := make([]string, 0, len(neighbors))
	for nb := range neighbors {
		result = append(result, nb)
	}
	sort.Strings(result)
	return result
}

// Degree returns the number of neighbors of a node (a self-loop counts once).
func (g *Graph) Degree(id string) int {
	return len(g.adj[id])
}

// Edges returns all edges sorted by (U, V).
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.NumEdges())
	for u, neighbors := range g.adj {
		for v, w := range neighbors {
			if u <= v {
				edges = append(edges, Edge{U: u, V: v, Weight: w})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].U != edges[j].U {
			return edges[i].U < edges[j].U
		}
		return edges[i].V < edges[j].V
	})
	return edges
}

// Clone creates a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	clone := NewGraph()
	for u, neighbors := range g.adj {
		clone.adj[u] = make(map[string]float64, len(neighbors))
		for v, w := range neighbors {
			clone.adj[u][v] = w
		}
	}
	return clone
}

// Connected reports whether the graph is connected. The empty graph and
// single nodes count as connected.
func (g *Graph) Connected() bool {
	if len(g.adj) <= 1 {
		return true
	}
	var start string
	for id := range g.adj {
		start = id
		break
	}
	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for nb := range g.adj[node] {
			if !visited[nb] {
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	return len(visited) == len(g.adj)
}

// Validate checks internal consistency of the adjacency structure.
func (g *Graph) Validate() error {
	for u, neighbors := range g.adj {
		for v, w := range neighbors {
			back, ok := g.adj[v]
			if !ok {
				return fmt.Errorf("edge %s-%s references missing node %s", u, v, v)
			}
			if bw, ok := back[u]; !ok || bw != w {
				return fmt.Errorf("asymmetric adjacency for edge %s-%s", u, v)
			}
		}
	}
	return nil
}

package coarsen

import "github.com/gdelgado/graph-reduction/pkg/models"

// Sanitize normalizes a graph into the canonical working representation:
// same node set, duplicate edges collapsed, self-loops removed, every edge
// weight forced to 1. The input graph is never modified.
func Sanitize(g *models.Graph) *models.Graph {
	clean := models.NewGraph()
	for _, node := range g.Nodes() {
		clean.AddNode(node)
	}
	for _, edge := range g.Edges() {
		if edge.U == edge.V {
			continue
		}
		clean.AddEdge(edge.U, edge.V, 1.0)
	}
	return clean
}

package graphio

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gdelgado/graph-reduction/pkg/models"
)

// ReadEdgeListFile parses a whitespace-separated edge list. Lines starting
// with '#' are comments; a line with a single token declares an isolated
// node; extra tokens after the first two are ignored (weights, attributes).
func ReadEdgeListFile(path string) (*models.Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	g := models.NewGraph()
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch {
		case len(fields) == 1:
			g.AddNode(fields[0])
		default:
			g.AddEdge(fields[0], fields[1], 1.0)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s at line %d: %w", path, lineNum, err)
	}
	return g, nil
}

// WriteEdgeListFile writes a graph as a whitespace-separated edge list.
// Isolated nodes are written as single-token lines so round-trips preserve
// the node set.
func WriteEdgeListFile(g *models.Graph, path string) error {
	var sb strings.Builder
	for _, edge := range g.Edges() {
		sb.WriteString(edge.U + " " + edge.V + "\n")
	}
	for _, node := range g.Nodes() {
		if g.Degree(node) == 0 {
			sb.WriteString(node + "\n")
		}
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

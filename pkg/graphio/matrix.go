package graphio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gdelgado/graph-reduction/pkg/models"
)

// ReadAdjacencyMatrixFile parses a dense adjacency matrix from text: one
// row per line, numeric entries separated by whitespace. Nodes are named
// by their row index. Any nonzero entry is an edge.
func ReadAdjacencyMatrixFile(path string) (*models.Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var rows [][]float64
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, field := range fields {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid matrix entry %q in %s: %w", field, path, err)
			}
			row[i] = value
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("empty adjacency matrix in %s", path)
	}
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("matrix in %s is not square: row %d has %d entries, expected %d", path, i, len(row), n)
		}
	}

	g := models.NewGraph()
	for i := 0; i < n; i++ {
		g.AddNode(strconv.Itoa(i))
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if rows[i][j] != 0 {
				g.AddEdge(strconv.Itoa(i), strconv.Itoa(j), rows[i][j])
			}
		}
	}
	return g, nil
}

// WriteAdjacencyMatrixFile writes the dense adjacency matrix of a graph,
// rows and columns in sorted node order.
func WriteAdjacencyMatrixFile(g *models.Graph, path string) error {
	nodes := g.Nodes()
	var sb strings.Builder
	for _, u := range nodes {
		for j, v := range nodes {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatFloat(g.EdgeWeight(u, v), 'g', -1, 64))
		}
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Package graphio loads and saves graphs in the formats used by the
// experiment datasets: GML, whitespace edge lists, and adjacency-matrix
// text files.
package graphio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gdelgado/graph-reduction/pkg/models"
)

// Format identifies a graph file format.
type Format string

const (
	FormatGML      Format = "gml"
	FormatEdgeList Format = "edgelist"
	FormatMatrix   Format = "txt"
)

// LoadGraph loads a graph, picking the format from the file extension.
// A .txt file is first tried as an adjacency matrix and falls back to an
// edge list.
func LoadGraph(path string) (*models.Graph, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gml":
		return ReadGMLFile(path)
	case ".edgelist":
		return ReadEdgeListFile(path)
	case ".txt":
		g, err := ReadAdjacencyMatrixFile(path)
		if err == nil {
			return g, nil
		}
		return ReadEdgeListFile(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
	}
}

// SaveGraph writes a graph in the requested format.
func SaveGraph(g *models.Graph, path string, format Format) error {
	switch format {
	case FormatGML:
		return WriteGMLFile(g, path)
	case FormatEdgeList:
		return WriteEdgeListFile(g, path)
	case FormatMatrix:
		return WriteAdjacencyMatrixFile(g, path)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// IterGraphFiles lists the graph files in a directory, keyed by their base
// name without extension.
func IterGraphFiles(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	supported := map[string]bool{".gml": true, ".edgelist": true, ".txt": true}
	graphs := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if supported[ext] {
			name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			graphs[name] = filepath.Join(dir, entry.Name())
		}
	}
	return graphs, nil
}

// SortedNames returns the graph names of IterGraphFiles output in sorted
// order, for deterministic iteration.
func SortedNames(graphs map[string]string) []string {
	names := make([]string, 0, len(graphs))
	for name := range graphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

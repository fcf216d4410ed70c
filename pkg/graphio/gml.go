package graphio

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/gdelgado/graph-reduction/pkg/models"
)

// ReadGMLFile parses the GML subset produced by common network tools:
// a top-level graph block with node blocks (id, optional label) and edge
// blocks (source, target). Other attributes are ignored.
func ReadGMLFile(path string) (*models.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	g, err := ParseGML(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return g, nil
}

// ParseGML parses GML text into a graph.
func ParseGML(text string) (*models.Graph, error) {
	tokens := tokenizeGML(text)
	g := models.NewGraph()
	idToName := make(map[string]string)

	type pendingEdge struct{ source, target string }
	var edges []pendingEdge

	i := 0
	next := func() (string, bool) {
		if i >= len(tokens) {
			return "", false
		}
		token := tokens[i]
		i++
		return token, true
	}

	// Collect the key-value fields of a [...] block, tolerating nested
	// blocks by skipping them.
	readBlock := func() (map[string]string, error) {
		fields := make(map[string]string)
		open, ok := next()
		if !ok || open != "[" {
			return nil, fmt.Errorf("expected '[', got %q", open)
		}
		depth := 1
		for depth > 0 {
			token, ok := next()
			if !ok {
				return nil, fmt.Errorf("unterminated block")
			}
			switch token {
			case "[":
				depth++
			case "]":
				depth--
			default:
				if depth == 1 {
					value, ok := next()
					if !ok {
						return nil, fmt.Errorf("key %q without value", token)
					}
					if value == "[" {
						depth++
						continue
					}
					fields[token] = value
				}
			}
		}
		return fields, nil
	}

	for {
		token, ok := next()
		if !ok {
			break
		}
		switch token {
		case "node":
			fields, err := readBlock()
			if err != nil {
				return nil, err
			}
			id, ok := fields["id"]
			if !ok {
				return nil, fmt.Errorf("node block without id")
			}
			name := id
			if label, ok := fields["label"]; ok {
				name = label
			}
			idToName[id] = name
			g.AddNode(name)
		case "edge":
			fields, err := readBlock()
			if err != nil {
				return nil, err
			}
			source, okS := fields["source"]
			target, okT := fields["target"]
			if !okS || !okT {
				return nil, fmt.Errorf("edge block without source/target")
			}
			edges = append(edges, pendingEdge{source: source, target: target})
		}
	}

	for _, edge := range edges {
		source, ok := idToName[edge.source]
		if !ok {
			return nil, fmt.Errorf("edge references unknown node id %s", edge.source)
		}
		target, ok := idToName[edge.target]
		if !ok {
			return nil, fmt.Errorf("edge references unknown node id %s", edge.target)
		}
		g.AddEdge(source, target, 1.0)
	}
	return g, nil
}

// WriteGMLFile writes a graph as GML. Nodes get sequential integer ids with
// the original identifier preserved as the label.
func WriteGMLFile(g *models.Graph, path string) error {
	var sb strings.Builder
	sb.WriteString("graph [\n")

	nodes := g.Nodes()
	index := make(map[string]int, len(nodes))
	for i, node := range nodes {
		index[node] = i
		sb.WriteString("  node [\n")
		sb.WriteString("    id " + strconv.Itoa(i) + "\n")
		sb.WriteString("    label " + strconv.Quote(node) + "\n")
		sb.WriteString("  ]\n")
	}
	for _, edge := range g.Edges() {
		sb.WriteString("  edge [\n")
		sb.WriteString("    source " + strconv.Itoa(index[edge.U]) + "\n")
		sb.WriteString("    target " + strconv.Itoa(index[edge.V]) + "\n")
		sb.WriteString("  ]\n")
	}
	sb.WriteString("]\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// tokenizeGML splits GML text into tokens: brackets, bare words, and
// quoted strings (quotes stripped).
func tokenizeGML(text string) []string {
	var tokens []string
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '[' || r == ']':
			tokens = append(tokens, string(r))
			i++
		case r == '"':
			i++
			start := i
			for i < len(runes) && runes[i] != '"' {
				i++
			}
			tokens = append(tokens, string(runes[start:i]))
			if i < len(runes) {
				i++
			}
		default:
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) && runes[i] != '[' && runes[i] != ']' && runes[i] != '"' {
				i++
			}
			tokens = append(tokens, string(runes[start:i]))
		}
	}
	return tokens
}

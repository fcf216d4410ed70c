package graphio

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gdelgado/graph-reduction/pkg/models"
)

func testGraph() *models.Graph {
	g := models.NewGraph()
	g.AddEdge("alpha", "beta", 1.0)
	g.AddEdge("beta", "gamma", 1.0)
	g.AddEdge("alpha", "gamma", 1.0)
	g.AddNode("delta")
	return g
}

func sameStructure(t *testing.T, got, expected *models.Graph) {
	t.Helper()
	if !reflect.DeepEqual(got.Nodes(), expected.Nodes()) {
		t.Errorf("Node sets differ: got %v, expected %v", got.Nodes(), expected.Nodes())
	}
	gotEdges, expectedEdges := got.Edges(), expected.Edges()
	if len(gotEdges) != len(expectedEdges) {
		t.Fatalf("Edge counts differ: got %d, expected %d", len(gotEdges), len(expectedEdges))
	}
	for i := range gotEdges {
		if gotEdges[i].U != expectedEdges[i].U || gotEdges[i].V != expectedEdges[i].V {
			t.Errorf("Edge %d differs: got %v, expected %v", i, gotEdges[i], expectedEdges[i])
		}
	}
}

func TestGMLRoundTrip(t *testing.T) {
	g := testGraph()
	path := filepath.Join(t.TempDir(), "test.gml")

	if err := WriteGMLFile(g, path); err != nil {
		t.Fatalf("WriteGMLFile failed: %v", err)
	}
	loaded, err := ReadGMLFile(path)
	if err != nil {
		t.Fatalf("ReadGMLFile failed: %v", err)
	}
	sameStructure(t, loaded, g)
}

func TestParseGMLHandcrafted(t *testing.T) {
	text := `graph [
  directed 0
  node [ id 0 label "a b" ]
  node [ id 1 ]
  edge [ source 0 target 1 weight 2 ]
]`
	g, err := ParseGML(text)
	if err != nil {
		t.Fatalf("ParseGML failed: %v", err)
	}
	if !g.HasNode("a b") {
		t.Errorf("Quoted label with space should become the node id")
	}
	if !g.HasNode("1") {
		t.Errorf("Node without label should use its id")
	}
	if !g.HasEdge("a b", "1") {
		t.Errorf("Edge a b - 1 missing")
	}
}

func TestEdgeListRoundTrip(t *testing.T) {
	g := testGraph()
	path := filepath.Join(t.TempDir(), "test.edgelist")

	if err := WriteEdgeListFile(g, path); err != nil {
		t.Fatalf("WriteEdgeListFile failed: %v", err)
	}
	loaded, err := ReadEdgeListFile(path)
	if err != nil {
		t.Fatalf("ReadEdgeListFile failed: %v", err)
	}
	sameStructure(t, loaded, g)
}

func TestEdgeListCommentsAndBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.edgelist")
	content := "# comment\n\na b\nb c extra tokens ignored\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	g, err := ReadEdgeListFile(path)
	if err != nil {
		t.Fatalf("ReadEdgeListFile failed: %v", err)
	}
	if g.NumNodes() != 3 || g.NumEdges() != 2 {
		t.Errorf("Expected 3 nodes and 2 edges, got %d and %d", g.NumNodes(), g.NumEdges())
	}
}

func TestAdjacencyMatrixRoundTrip(t *testing.T) {
	g := models.NewGraph()
	g.AddEdge("0", "1", 1.0)
	g.AddEdge("1", "2", 1.0)
	path := filepath.Join(t.TempDir(), "test.txt")

	if err := WriteAdjacencyMatrixFile(g, path); err != nil {
		t.Fatalf("WriteAdjacencyMatrixFile failed: %v", err)
	}
	loaded, err := ReadAdjacencyMatrixFile(path)
	if err != nil {
		t.Fatalf("ReadAdjacencyMatrixFile failed: %v", err)
	}
	sameStructure(t, loaded, g)
}

func TestReadAdjacencyMatrixRejectsRagged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte("0 1\n1 0 1\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := ReadAdjacencyMatrixFile(path); err == nil {
		t.Errorf("Non-square matrix should be rejected")
	}
}

func TestLoadGraphDispatch(t *testing.T) {
	dir := t.TempDir()
	g := testGraph()

	gmlPath := filepath.Join(dir, "g.gml")
	if err := SaveGraph(g, gmlPath, FormatGML); err != nil {
		t.Fatalf("SaveGraph gml failed: %v", err)
	}
	edgePath := filepath.Join(dir, "g.edgelist")
	if err := SaveGraph(g, edgePath, FormatEdgeList); err != nil {
		t.Fatalf("SaveGraph edgelist failed: %v", err)
	}

	for _, path := range []string{gmlPath, edgePath} {
		loaded, err := LoadGraph(path)
		if err != nil {
			t.Fatalf("LoadGraph(%s) failed: %v", path, err)
		}
		sameStructure(t, loaded, g)
	}

	if _, err := LoadGraph(filepath.Join(dir, "g.xyz")); err == nil {
		t.Errorf("Unknown extension should be rejected")
	}
}

func TestIterGraphFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.gml", "b.edgelist", "c.txt", "ignore.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(""), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	graphs, err := IterGraphFiles(dir)
	if err != nil {
		t.Fatalf("IterGraphFiles failed: %v", err)
	}
	if len(graphs) != 3 {
		t.Errorf("Expected 3 graph files, got %d", len(graphs))
	}
	if !reflect.DeepEqual(SortedNames(graphs), []string{"a", "b", "c"}) {
		t.Errorf("Unexpected names: %v", SortedNames(graphs))
	}
}

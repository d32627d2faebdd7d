package chunkgraph

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/loomlit/loom/pkg/literate"
)

func buildSession(t *testing.T) *literate.Session {
	t.Helper()
	s := literate.NewSession(nil)
	blocks := []*literate.Block{
		{Style: literate.StyleChunk, File: "out.c", Lines: []string{"<<main body>>"}},
		{Style: literate.StyleChunk, Title: "main body", Lines: []string{"<<helpers>>", "<<ghost>>"}},
		{Style: literate.StyleChunk, Title: "helpers", Lines: []string{"int id;"}},
	}
	if err := s.Collect(blocks); err != nil {
		t.Fatalf("Collect() unexpected error: %v", err)
	}
	return s
}

func TestBuildNodesAndEdges(t *testing.T) {
	g := Build(buildSession(t))

	kinds := make(map[string]NodeKind)
	for _, n := range g.Nodes {
		kinds[n.Title] = n.Kind
	}
	if len(kinds) != 4 {
		t.Fatalf("Build() nodes = %d, want 4 (%v)", len(kinds), kinds)
	}
	if kinds["out.c"] != KindRoot {
		t.Errorf("out.c kind = %v, want KindRoot", kinds["out.c"])
	}
	if kinds["main body"] != KindNamed || kinds["helpers"] != KindNamed {
		t.Errorf("named chunk kinds = %v, want KindNamed", kinds)
	}
	if kinds["ghost"] != KindUndefined {
		t.Errorf("ghost kind = %v, want KindUndefined", kinds["ghost"])
	}

	wantEdges := []Edge{
		{From: "main body", To: "ghost"},
		{From: "main body", To: "helpers"},
		{From: "out.c", To: "main body"},
	}
	if len(g.Edges) != len(wantEdges) {
		t.Fatalf("Build() edges = %v, want %v", g.Edges, wantEdges)
	}
	for i, want := range wantEdges {
		if g.Edges[i] != want {
			t.Errorf("edge %d = %v, want %v", i, g.Edges[i], want)
		}
	}
}

func TestToDOT(t *testing.T) {
	dot := Build(buildSession(t)).ToDOT()

	if !strings.HasPrefix(dot, "digraph chunks {") {
		t.Errorf("ToDOT() missing digraph header:\n%s", dot)
	}
	for _, want := range []string{
		`"out.c" -> "main body";`,
		`"main body" -> "helpers";`,
		`"main body" -> "ghost";`,
		"fillcolor=lightyellow", // root styling
		"dashed",                // undefined styling
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Build(buildSession(t)).WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() unexpected error: %v", err)
	}

	var decoded struct {
		Nodes []struct {
			Title string `json:"title"`
			Kind  string `json:"kind"`
		} `json:"nodes"`
		Edges []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("WriteJSON() produced invalid JSON: %v", err)
	}
	if len(decoded.Nodes) != 4 || len(decoded.Edges) != 3 {
		t.Errorf("WriteJSON() nodes/edges = %d/%d, want 4/3", len(decoded.Nodes), len(decoded.Edges))
	}
}

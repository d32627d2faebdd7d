// Package chunkgraph builds the chunk-reference graph of a collected
// document and exports it as DOT, SVG, PNG, or JSON. Nodes are chunk
// titles, edges are references; roots and undefined targets are styled
// distinctly so dangling references stand out before a tangle is run.
package chunkgraph

import (
	"sort"

	"github.com/loomlit/loom/pkg/literate"
)

// NodeKind distinguishes the three roles a title can play in the graph.
type NodeKind int

const (
	// KindNamed is a reusable named chunk.
	KindNamed NodeKind = iota
	// KindRoot is an output-bound root chunk.
	KindRoot
	// KindUndefined is a referenced title with no definition.
	KindUndefined
)

// Node is one chunk title in the reference graph.
type Node struct {
	Title string
	Kind  NodeKind
}

// Edge is a reference from one chunk's body to another chunk.
type Edge struct {
	From string
	To   string
}

// Graph is the chunk-reference graph of a single document.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Build derives the reference graph from a fully collected session.
// Abbreviated reference targets are resolved where possible; targets
// that fail to resolve keep their raw spelling and surface as undefined
// nodes rather than failing the export, since the graph is a diagnostic
// view, not a tangle.
func Build(s *literate.Session) *Graph {
	g := &Graph{}
	seen := make(map[string]int) // title -> index into g.Nodes

	addNode := func(title string, kind NodeKind) {
		if i, ok := seen[title]; ok {
			if g.Nodes[i].Kind == KindUndefined && kind != KindUndefined {
				g.Nodes[i].Kind = kind
			}
			return
		}
		seen[title] = len(g.Nodes)
		g.Nodes = append(g.Nodes, Node{Title: title, Kind: kind})
	}

	addRefs := func(from string, elems []literate.Element) {
		for _, el := range elems {
			ref, ok := el.(literate.Ref)
			if !ok {
				continue
			}
			target, err := literate.ResolveTitle(ref.Target, s.Names())
			if err != nil {
				target = ref.Target
			}
			if !s.Exists(target) {
				addNode(target, KindUndefined)
			} else {
				addNode(target, KindNamed)
			}
			g.Edges = append(g.Edges, Edge{From: from, To: target})
		}
	}

	for _, target := range s.Roots() {
		addNode(target, KindRoot)
	}
	for _, title := range s.Titles() {
		if s.Exists(title) {
			addNode(title, KindNamed)
		}
	}
	for _, target := range s.Roots() {
		addRefs(target, s.RootElements(target))
	}
	for _, title := range s.Titles() {
		if s.Exists(title) {
			addRefs(title, s.Elements(title))
		}
	}

	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].From != g.Edges[j].From {
			return g.Edges[i].From < g.Edges[j].From
		}
		return g.Edges[i].To < g.Edges[j].To
	})
	return g
}

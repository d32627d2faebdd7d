package chunkgraph

import (
	"encoding/json"
	"fmt"
	"io"
)

var kindToString = map[NodeKind]string{
	KindNamed:     "named",
	KindRoot:      "root",
	KindUndefined: "undefined",
}

type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

type jsonNode struct {
	Title string `json:"title"`
	Kind  string `json:"kind"`
}

type jsonEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WriteJSON encodes the reference graph as indented JSON.
func (g *Graph) WriteJSON(w io.Writer) error {
	out := jsonGraph{
		Nodes: make([]jsonNode, len(g.Nodes)),
		Edges: make([]jsonEdge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = jsonNode{Title: n.Title, Kind: kindToString[n.Kind]}
	}
	for i, e := range g.Edges {
		out.Edges[i] = jsonEdge{From: e.From, To: e.To}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

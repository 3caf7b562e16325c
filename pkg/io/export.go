package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/nifstream/pkg/nif"
)

type graph struct {
	Version     string `json:"version"`
	UserVersion uint32 `json:"user_version,omitempty"`
	Nodes       []node `json:"nodes"`
	Edges       []edge `json:"edges"`
}

type node struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Root bool   `json:"root,omitempty"`
	Hash string `json:"hash,omitempty"`
}

type edge struct {
	From int    `json:"from"`
	To   int    `json:"to"`
	Kind string `json:"kind,omitempty"`
}

// WriteJSON encodes a decoded graph as JSON and writes it to w. Nodes carry
// the block's stream position, type, first embedded string as a display
// name, and structural hash; edges distinguish owning from weak references.
func WriteJSON(g *nif.Graph, w io.Writer) error {
	c := nif.NewContext(g.Version, g.UserVersion)

	index := make(map[nif.Block]int, len(g.Blocks))
	for i, b := range g.Blocks {
		index[b] = i
	}
	rootSet := make(map[nif.Block]bool, len(g.Roots))
	for _, b := range g.Roots {
		rootSet[b] = true
	}

	out := graph{
		Version:     g.Version.String(),
		UserVersion: g.UserVersion,
		Nodes:       make([]node, len(g.Blocks)),
	}
	for i, b := range g.Blocks {
		nd := node{ID: i, Type: b.TypeName(), Root: rootSet[b]}
		if names := nif.BlockStrings(b, c); len(names) > 0 {
			nd.Name = names[0]
		}
		if h, ok := nif.HashBlock(b, c); ok {
			nd.Hash = fmt.Sprintf("%016x", h)
		}
		out.Nodes[i] = nd
		for _, child := range nif.OwnedChildren(b) {
			out.Edges = append(out.Edges, edge{From: i, To: index[child]})
		}
		for _, target := range nif.WeakTargets(b) {
			out.Edges = append(out.Edges, edge{From: i, To: index[target], Kind: "weak"})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a decoded graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *nif.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// Package render draws decoded block graphs as node-link diagrams.
//
// # Overview
//
// A decoded stream is a directed graph: blocks as nodes, references as
// edges. This package converts that graph to Graphviz DOT source and
// renders it to SVG in-process.
//
// # Usage
//
// Convert a graph to DOT, then render:
//
//	dot := render.ToDOT(g, render.Options{Detailed: true})
//	svg, err := render.SVG(dot)
//
// Owning references draw as solid arrows, weak references as dashed grey
// ones, and root blocks get a bold outline, so the ownership structure is
// readable at a glance.
//
// # Dependencies
//
// SVG rendering uses [github.com/goccy/go-graphviz], which embeds Graphviz
// via WebAssembly; no system Graphviz installation is needed.
package render

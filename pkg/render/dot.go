package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/nifstream/pkg/nif"
)

// Options configures diagram generation.
type Options struct {
	// Detailed includes the stream index and structural hash in node
	// labels. When false, labels show only type and name.
	Detailed bool
}

// ToDOT converts a decoded graph to Graphviz DOT source. The resulting
// string can be rendered with [SVG] or processed by external Graphviz
// tools.
func ToDOT(g *nif.Graph, opts Options) string {
	c := nif.NewContext(g.Version, g.UserVersion)

	index := make(map[nif.Block]int, len(g.Blocks))
	for i, b := range g.Blocks {
		index[b] = i
	}
	rootSet := make(map[nif.Block]bool, len(g.Roots))
	for _, b := range g.Roots {
		rootSet[b] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i, b := range g.Blocks {
		label := fmtLabel(b, i, c, opts.Detailed)
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if rootSet[b] {
			attrs = append(attrs, "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", i, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i, b := range g.Blocks {
		for _, child := range nif.OwnedChildren(b) {
			fmt.Fprintf(&buf, "  %d -> %d;\n", i, index[child])
		}
		for _, target := range nif.WeakTargets(b) {
			fmt.Fprintf(&buf, "  %d -> %d [style=dashed, color=grey];\n", i, index[target])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(b nif.Block, i int, c *nif.Context, detailed bool) string {
	label := b.TypeName()
	if names := nif.BlockStrings(b, c); len(names) > 0 && names[0] != "" {
		label += "\n" + names[0]
	}
	if !detailed {
		return label
	}
	parts := []string{fmt.Sprintf("index: %d", i)}
	if h, ok := nif.HashBlock(b, c); ok {
		parts = append(parts, fmt.Sprintf("hash: %08x", uint32(h)))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

// SVG renders DOT source to SVG using Graphviz.
func SVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

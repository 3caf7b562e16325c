package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/nifstream/pkg/nif"
	"github.com/matzehuels/nifstream/pkg/nif/schema"
	"github.com/matzehuels/nifstream/pkg/version"
)

func fixtureGraph(t *testing.T) *nif.Graph {
	t.Helper()
	root := schema.NewNiNode()
	root.Name = "Scene Root"
	child := schema.NewNiNode()
	child.Name = "new block"
	root.Children.Append(child)
	ctrl := schema.NewNiVisController()
	ctrl.Target.Set(root)
	root.Ctrl.Set(ctrl)

	var buf bytes.Buffer
	if err := nif.Encode(&buf, version.Parse("20.0.0.5"), nil, []nif.Block{root}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	g, err := nif.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(fixtureGraph(t), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("output does not start with digraph header")
	}
	if !strings.Contains(dot, "Scene Root") {
		t.Error("root label missing from DOT output")
	}
	if !strings.Contains(dot, "style=dashed") {
		t.Error("weak edge not rendered dashed")
	}
	if !strings.Contains(dot, "penwidth=2") {
		t.Error("root block not emphasized")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(fixtureGraph(t), Options{Detailed: true})
	if !strings.Contains(dot, "index: 0") {
		t.Error("detailed label missing stream index")
	}
	if !strings.Contains(dot, "hash: ") {
		t.Error("detailed label missing structural hash")
	}
}

package schema

import (
	"bytes"
	"testing"

	"github.com/matzehuels/nifstream/pkg/nif"
	"github.com/matzehuels/nifstream/pkg/version"
)

func TestSceneRoundTrip(t *testing.T) {
	root := NewNiNode()
	root.Name = "Scene Root"
	child := NewNiNode()
	child.Name = "new block"
	child.Scale = 2.4
	root.Children.Append(child)

	var buf bytes.Buffer
	if err := nif.Encode(&buf, version.Parse("20.0.0.5"), nil, []nif.Block{root}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	g, err := nif.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got, want := len(g.Roots), 1; got != want {
		t.Fatalf("root count = %d, want %d", got, want)
	}
	gotRoot, ok := g.Roots[0].(*NiNode)
	if !ok {
		t.Fatalf("root is %T, want *NiNode", g.Roots[0])
	}
	if gotRoot.Name != "Scene Root" {
		t.Errorf("root name = %q, want %q", gotRoot.Name, "Scene Root")
	}
	if got, want := gotRoot.Children.Len(), 1; got != want {
		t.Fatalf("child count = %d, want %d", got, want)
	}
	av, _ := gotRoot.Children.At(0)
	gotChild, ok := av.(*NiNode)
	if !ok {
		t.Fatalf("child is %T, want *NiNode", av)
	}
	if gotChild.Name != "new block" {
		t.Errorf("child name = %q, want %q", gotChild.Name, "new block")
	}
	if gotChild.Scale != 2.4 {
		t.Errorf("child scale = %v, want 2.4", gotChild.Scale)
	}
	if !gotChild.Rotation.IsIdentity() {
		t.Error("child rotation is not the identity")
	}
}

func TestSceneRoundTripLegacy(t *testing.T) {
	root := NewNiNode()
	root.Name = "Scene Root"
	child := NewNiNode()
	child.Name = "new block"
	root.Children.Append(child)

	var buf bytes.Buffer
	if err := nif.Encode(&buf, version.Parse("3.03"), nil, []nif.Block{root}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	g, err := nif.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	gotRoot, ok := g.Roots[0].(*NiNode)
	if !ok {
		t.Fatalf("root is %T, want *NiNode", g.Roots[0])
	}
	av, _ := gotRoot.Children.At(0)
	if got := av.ObjectNET().Name; got != "new block" {
		t.Errorf("child name = %q, want %q", got, "new block")
	}
}

func TestStringPoolDeduplicatesNames(t *testing.T) {
	root := NewNiNode()
	root.Name = "shared"
	a := NewNiNode()
	a.Name = "shared"
	b := NewNiNode()
	b.Name = "unique"
	root.Children.Append(a)
	root.Children.Append(b)

	var buf bytes.Buffer
	if err := nif.Encode(&buf, version.Parse("20.1.0.3"), nil, []nif.Block{root}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	g, err := nif.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	counts := make(map[string]int)
	for _, s := range g.Header.Strings {
		counts[s]++
	}
	if counts["shared"] != 1 {
		t.Errorf("pool holds %d copies of %q, want 1", counts["shared"], "shared")
	}
	gotRoot := g.Roots[0].(*NiNode)
	av, _ := gotRoot.Children.At(0)
	if got := av.ObjectNET().Name; got != "shared" {
		t.Errorf("first child name = %q, want %q", got, "shared")
	}
	av, _ = gotRoot.Children.At(1)
	if got := av.ObjectNET().Name; got != "unique" {
		t.Errorf("second child name = %q, want %q", got, "unique")
	}
}

func TestPhysicsSerializationOrder(t *testing.T) {
	node := NewNiNode()
	node.Name = "collider"

	shape := NewBhkSphereShape()
	shape.Radius = 0.5
	body := NewBhkRigidBody()
	body.Mass = 10
	body.Shape.Set(shape)
	hinge := NewBhkHingeConstraint()
	hinge.EntityA.Set(body)
	body.Constraints.Append(hinge)

	col := NewBhkCollisionObject()
	col.Target.Set(node)
	col.Body.Set(body)
	node.Collision.Set(col)

	var buf bytes.Buffer
	if err := nif.Encode(&buf, version.Parse("20.0.0.5"), nil, []nif.Block{node}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	g, err := nif.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	pos := make(map[string]int)
	for i, b := range g.Blocks {
		pos[b.TypeName()] = i
	}
	if pos["bhkSphereShape"] > pos["bhkRigidBody"] {
		t.Error("shape serialized after the rigid body that owns it")
	}
	if pos["bhkHingeConstraint"] < pos["bhkRigidBody"] {
		t.Error("constraint serialized before the rigid body that owns it")
	}

	gotBody := g.Blocks[pos["bhkRigidBody"]].(*BhkRigidBody)
	gotHinge := g.Blocks[pos["bhkHingeConstraint"]].(*BhkHingeConstraint)
	entity, ok := gotHinge.EntityA.Get()
	if !ok {
		t.Fatal("constraint lost its entity link")
	}
	if entity.Entity() != gotBody.Entity() {
		t.Error("constraint entity resolved to a different instance than the body")
	}
	gotShape, ok := gotBody.Shape.Get()
	if !ok {
		t.Fatal("body lost its shape")
	}
	if gotShape.(*BhkSphereShape).Radius != 0.5 {
		t.Errorf("shape radius = %v, want 0.5", gotShape.(*BhkSphereShape).Radius)
	}
}

func TestControllerWeakTarget(t *testing.T) {
	node := NewNiNode()
	node.Name = "animated"
	ctrl := NewNiVisController()
	ctrl.Frequency = 1
	ctrl.StopTime = 3.5
	ctrl.Target.Set(node)
	node.Ctrl.Set(ctrl)

	var buf bytes.Buffer
	if err := nif.Encode(&buf, version.Parse("10.0.1.0"), nil, []nif.Block{node}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	g, err := nif.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	gotNode := g.Roots[0].(*NiNode)
	gotCtrl, ok := gotNode.Ctrl.Get()
	if !ok {
		t.Fatal("node lost its controller")
	}
	if gotCtrl.Controller().StopTime != 3.5 {
		t.Errorf("stop time = %v, want 3.5", gotCtrl.Controller().StopTime)
	}
	target, ok := gotCtrl.Controller().Target.Get()
	if !ok {
		t.Fatal("controller lost its weak target")
	}
	if target.ObjectNET() != gotNode.ObjectNET() {
		t.Error("controller target resolved to a different instance than the node")
	}
}

func TestExtraDataRoundTrip(t *testing.T) {
	node := NewNiNode()
	node.Name = "tagged"
	extra := NewNiExtraData()
	extra.Name = "payload"
	extra.Data = []byte{1, 2, 3, 4}
	node.Extra.Set(extra)

	var buf bytes.Buffer
	if err := nif.Encode(&buf, version.Parse("4.2.2.0"), nil, []nif.Block{node}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	g, err := nif.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	gotNode := g.Roots[0].(*NiNode)
	gotExtra, ok := gotNode.Extra.Get()
	if !ok {
		t.Fatal("node lost its extra data")
	}
	if got := gotExtra.ExtraData().Name; got != "payload" {
		t.Errorf("extra name = %q, want %q", got, "payload")
	}
	if !bytes.Equal(gotExtra.ExtraData().Data, []byte{1, 2, 3, 4}) {
		t.Errorf("extra payload = %v, want [1 2 3 4]", gotExtra.ExtraData().Data)
	}
}

package schema

import "github.com/matzehuels/nifstream/pkg/nif"

// NiAVObject extends NiObjectNET with a spatial transform, render
// properties, and an optional collision object. It is the abstract base of
// everything placeable in the scene.
type NiAVObject struct {
	NiObjectNET
	Flags       nif.Flags
	Translation Vector3
	Rotation    Matrix33
	Scale       nif.Float
	Properties  nif.RefList[Property]
	Collision   nif.Ref[*BhkCollisionObject]
}

func (o *NiAVObject) AVObject() *NiAVObject { return o }

func (o *NiAVObject) Fields() []nif.Value {
	return append(o.NiObjectNET.Fields(),
		&o.Flags, &o.Translation, &o.Rotation, &o.Scale, &o.Properties, &o.Collision)
}

// NiNode is the interior node of the scene graph: an AV object owning an
// ordered list of child AV objects.
type NiNode struct {
	NiAVObject
	Children nif.RefList[AVObject]
}

// NewNiNode returns a node with identity rotation and unit scale.
func NewNiNode() *NiNode {
	n := &NiNode{}
	n.Scale = 1
	n.Rotation.SetIdentity()
	return n
}

func (n *NiNode) TypeName() string { return "NiNode" }

func (n *NiNode) Fields() []nif.Value {
	return append(n.NiAVObject.Fields(), &n.Children)
}

// NiProperty is the abstract base of render property blocks.
type NiProperty struct {
	NiObjectNET
}

func (p *NiProperty) Property() *NiProperty { return p }

// NiShadeProperty toggles shading on the objects it is attached to.
type NiShadeProperty struct {
	NiProperty
	ShadeFlags nif.Flags
}

func NewNiShadeProperty() *NiShadeProperty { return &NiShadeProperty{} }

func (p *NiShadeProperty) TypeName() string { return "NiShadeProperty" }

func (p *NiShadeProperty) Fields() []nif.Value {
	return append(p.NiProperty.Fields(), &p.ShadeFlags)
}

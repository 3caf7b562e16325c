package schema

import "github.com/matzehuels/nifstream/pkg/nif"

// NiObject is the abstract ancestor of every block type. It carries no
// fields of its own.
type NiObject struct{}

func (*NiObject) Fields() []nif.Value { return nil }

// NiObjectNET extends NiObject with a name, an extra data chain, and a
// controller chain.
type NiObjectNET struct {
	NiObject
	Name  nif.String
	Extra nif.Ref[ExtraData]
	Ctrl  nif.Ref[Controller]
}

func (o *NiObjectNET) ObjectNET() *NiObjectNET { return o }

func (o *NiObjectNET) Fields() []nif.Value {
	return []nif.Value{&o.Name, &o.Extra, &o.Ctrl}
}

// NiExtraData is a named opaque payload attached to an object.
type NiExtraData struct {
	NiObject
	Name nif.String
	Data nif.ByteArray
}

func NewNiExtraData() *NiExtraData { return &NiExtraData{} }

func (e *NiExtraData) ExtraData() *NiExtraData { return e }

func (e *NiExtraData) TypeName() string { return "NiExtraData" }

func (e *NiExtraData) Fields() []nif.Value {
	return []nif.Value{&e.Name, &e.Data}
}

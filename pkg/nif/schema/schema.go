// Package schema is a hand-maintained catalogue of block types covering the
// NiObject scene hierarchy, controllers, properties, and the bhk physics
// category. It registers every concrete type with the codec's registry at
// init, so importing the package (typically for side effects) is enough to
// decode streams that use these blocks.
//
// The hierarchy is modeled with struct embedding for field inheritance and
// small interfaces for reference target constraints: a reference declared
// as Ref[AVObject] accepts any block embedding NiAVObject, checked at
// compile time on assignment and again at resolution time against whatever
// block the stream actually delivers.
package schema

import "github.com/matzehuels/nifstream/pkg/nif"

// ObjectNET is satisfied by every block carrying a name, extra data, and a
// controller chain.
type ObjectNET interface {
	nif.Block
	ObjectNET() *NiObjectNET
}

// AVObject is satisfied by every placeable scene-graph object.
type AVObject interface {
	ObjectNET
	AVObject() *NiAVObject
}

// Controller is satisfied by every time controller block.
type Controller interface {
	nif.Block
	Controller() *NiTimeController
}

// Property is satisfied by every render property block.
type Property interface {
	ObjectNET
	Property() *NiProperty
}

// ExtraData is satisfied by every extra data block.
type ExtraData interface {
	nif.Block
	ExtraData() *NiExtraData
}

// Shape is satisfied by every physics shape block.
type Shape interface {
	nif.Block
	Shape() *BhkShape
}

// Entity is satisfied by every physics world entity block.
type Entity interface {
	nif.Block
	Entity() *BhkEntity
}

// Constraint is satisfied by every physics constraint block.
type Constraint interface {
	nif.Block
	Constraint() *BhkConstraint
}

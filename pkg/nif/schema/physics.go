package schema

import "github.com/matzehuels/nifstream/pkg/nif"

// BhkRefObject is the abstract base of the bhk physics category. Physics
// blocks serialize before the block that owns them, with constraints as the
// one exception (see BhkConstraint).
type BhkRefObject struct {
	NiObject
}

func (*BhkRefObject) SerializeBeforeParent() bool { return true }

// BhkShape is the abstract base of collision shapes.
type BhkShape struct {
	BhkRefObject
}

func (s *BhkShape) Shape() *BhkShape { return s }

// BhkSphereShape is a spherical collision shape.
type BhkSphereShape struct {
	BhkShape
	Radius nif.Float
}

func NewBhkSphereShape() *BhkSphereShape { return &BhkSphereShape{} }

func (s *BhkSphereShape) TypeName() string { return "bhkSphereShape" }

func (s *BhkSphereShape) Fields() []nif.Value {
	return []nif.Value{&s.Radius}
}

// BhkEntity is the abstract base of world entities: physics objects that
// carry a collision shape.
type BhkEntity struct {
	BhkRefObject
	Shape nif.Ref[Shape]
}

func (e *BhkEntity) Entity() *BhkEntity { return e }

func (e *BhkEntity) Fields() []nif.Value {
	return []nif.Value{&e.Shape}
}

// BhkRigidBody is a dynamic world entity. It owns its constraints; the
// constraints point back at their entities through weak references.
type BhkRigidBody struct {
	BhkEntity
	Mass        nif.Float
	Constraints nif.RefList[Constraint]
}

func NewBhkRigidBody() *BhkRigidBody { return &BhkRigidBody{} }

func (b *BhkRigidBody) TypeName() string { return "bhkRigidBody" }

func (b *BhkRigidBody) Fields() []nif.Value {
	return append(b.BhkEntity.Fields(), &b.Mass, &b.Constraints)
}

// BhkConstraint is the abstract base of constraints. Unlike the rest of the
// physics category it serializes after its owner, since the entities it
// couples must exist first.
type BhkConstraint struct {
	BhkRefObject
	EntityA nif.Ptr[Entity]
	EntityB nif.Ptr[Entity]
}

func (*BhkConstraint) SerializeBeforeParent() bool { return false }

func (c *BhkConstraint) Constraint() *BhkConstraint { return c }

func (c *BhkConstraint) Fields() []nif.Value {
	return []nif.Value{&c.EntityA, &c.EntityB}
}

// BhkHingeConstraint couples two entities around a fixed axis.
type BhkHingeConstraint struct {
	BhkConstraint
	Pivot Vector3
	Axis  Vector3
}

func NewBhkHingeConstraint() *BhkHingeConstraint { return &BhkHingeConstraint{} }

func (c *BhkHingeConstraint) TypeName() string { return "bhkHingeConstraint" }

func (c *BhkHingeConstraint) Fields() []nif.Value {
	return append(c.BhkConstraint.Fields(), &c.Pivot, &c.Axis)
}

// BhkCollisionObject attaches a physics body to a scene object. The target
// edge points back up the graph and is weak; the body edge is owning.
type BhkCollisionObject struct {
	NiObject
	Target nif.Ptr[AVObject]
	Flags  nif.UShort
	Body   nif.Ref[Entity]
}

func NewBhkCollisionObject() *BhkCollisionObject { return &BhkCollisionObject{} }

func (o *BhkCollisionObject) TypeName() string { return "bhkCollisionObject" }

func (o *BhkCollisionObject) Fields() []nif.Value {
	return []nif.Value{&o.Target, &o.Flags, &o.Body}
}

package schema

import "github.com/matzehuels/nifstream/pkg/nif"

func init() {
	nif.Register("NiNode", func() nif.Block { return NewNiNode() })
	nif.Register("NiExtraData", func() nif.Block { return NewNiExtraData() })
	nif.Register("NiVisController", func() nif.Block { return NewNiVisController() })
	nif.Register("NiShadeProperty", func() nif.Block { return NewNiShadeProperty() })
	nif.Register("bhkSphereShape", func() nif.Block { return NewBhkSphereShape() })
	nif.Register("bhkRigidBody", func() nif.Block { return NewBhkRigidBody() })
	nif.Register("bhkHingeConstraint", func() nif.Block { return NewBhkHingeConstraint() })
	nif.Register("bhkCollisionObject", func() nif.Block { return NewBhkCollisionObject() })
}

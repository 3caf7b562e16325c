package schema

import "github.com/matzehuels/nifstream/pkg/nif"

// NiTimeController is the abstract base of animation controllers. Target
// points back at the controlled object; the edge is weak because the object
// owns its controller chain, not the other way around.
type NiTimeController struct {
	NiObject
	Next      nif.Ref[Controller]
	Flags     nif.Flags
	Frequency nif.Float
	Phase     nif.Float
	StartTime nif.Float
	StopTime  nif.Float
	Target    nif.Ptr[ObjectNET]
}

func (c *NiTimeController) Controller() *NiTimeController { return c }

func (c *NiTimeController) Fields() []nif.Value {
	return []nif.Value{&c.Next, &c.Flags, &c.Frequency, &c.Phase, &c.StartTime, &c.StopTime, &c.Target}
}

// NiVisController animates the visibility of its target.
type NiVisController struct {
	NiTimeController
}

func NewNiVisController() *NiVisController { return &NiVisController{} }

func (c *NiVisController) TypeName() string { return "NiVisController" }

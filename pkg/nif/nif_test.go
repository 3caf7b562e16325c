package nif

import "io"

// Test block types. testNode is a minimal scene node with a label, owned
// children, and one weak back edge; testPart stands in for the physics
// category that serializes before its owner. strayNode frames a reference
// index that no field ever resolves.

type testNode struct {
	label    SizedString
	part     Ref[*testPart]
	children RefList[*testNode]
	back     Ptr[*testNode]
}

func (n *testNode) TypeName() string { return "TestNode" }

func (n *testNode) Fields() []Value {
	return []Value{&n.label, &n.part, &n.children, &n.back}
}

type testPart struct {
	weight Float
}

func (*testPart) TypeName() string { return "TestPart" }

func (*testPart) SerializeBeforeParent() bool { return true }

func (p *testPart) Fields() []Value { return []Value{&p.weight} }

// strayIndex reads like a reference field, pushing its raw index onto the
// link stack, but provides no fix-up, so the index is never consumed.
type strayIndex struct{}

func (strayIndex) Size(*Context) int { return 4 }

func (strayIndex) Read(r io.Reader, c *Context) error {
	i, err := readI32(r)
	if err != nil {
		return err
	}
	c.pushLink(i)
	return nil
}

func (strayIndex) Write(w io.Writer, c *Context) error { return writeI32(w, -1) }

func (strayIndex) Hash(*Context) (uint64, bool) { return 0, false }

type strayNode struct {
	extra strayIndex
}

func (*strayNode) TypeName() string { return "StrayNode" }

func (n *strayNode) Fields() []Value { return []Value{&n.extra} }

func init() {
	Register("TestNode", func() Block { return &testNode{} })
	Register("TestPart", func() Block { return &testPart{} })
	Register("StrayNode", func() Block { return &strayNode{} })
}

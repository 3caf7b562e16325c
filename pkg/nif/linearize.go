package nif

// linearize flattens the graphs rooted at roots into on-disk block order and
// assigns every block its stream index in the context. Each instance appears
// exactly once no matter how many references reach it. Owning references are
// followed depth-first in field order; weak references are never traversed.
// Owned children that declare serialization precedence are emitted before
// the block that owns them, everything else after.
//
// The returned type names are in first-visit order, which is the order the
// header's type table uses. A block's type registers when the block is first
// visited, before any of its preceding children, so an owner's type can get
// an earlier table slot than blocks that precede it in the list.
//
// Modern streams use the block's position in the emitted list as its index.
// Legacy streams store an arbitrary identity token per block, allocated here
// from the context's counter.
func linearize(roots []Block, c *Context) ([]Block, []string) {
	var list []Block
	var types []string
	slot := make(map[string]bool)
	var visit func(Block)
	visit = func(b Block) {
		if _, done := c.indexOf(b); done {
			return
		}
		if name := b.TypeName(); !slot[name] {
			slot[name] = true
			types = append(types, name)
		}
		for _, child := range OwnedChildren(b) {
			if childPrecedesParent(child) {
				visit(child)
			}
		}
		if _, done := c.indexOf(b); done {
			return
		}
		var idx int32
		if c.Version.LinksByNumber() {
			idx = int32(len(list))
		} else {
			idx = c.legacyIndex()
		}
		c.setIndex(b, idx)
		list = append(list, b)
		for _, child := range OwnedChildren(b) {
			visit(child)
		}
	}
	for _, b := range roots {
		visit(b)
	}
	return list, types
}

package nif

import "io"

// Block is a typed node of the scene graph. Implementations declare their
// wire identity and their fields in declaration order; everything else
// (sizing, codec, hashing, traversal) is derived from the field list by the
// helpers below.
//
// Blocks have identity semantics: two blocks are distinct even when every
// field compares equal, and the same block instance may be the target of
// any number of owning and weak references.
type Block interface {
	// TypeName is the name stored in the stream's type table (or inline
	// type string for legacy versions).
	TypeName() string

	// Fields returns the block's field values in on-disk order. The
	// returned values must alias the block's state so that reading
	// through them mutates the block.
	Fields() []Value
}

// beforeParent is implemented by block categories that must serialize
// before the block that owns them.
type beforeParent interface {
	SerializeBeforeParent() bool
}

// childPrecedesParent is the linearizer's ordering predicate.
func childPrecedesParent(b Block) bool {
	bp, ok := b.(beforeParent)
	return ok && bp.SerializeBeforeParent()
}

// SizeOf returns the exact on-disk footprint of a block body under the
// context's version.
func SizeOf(b Block, c *Context) int {
	total := 0
	for _, f := range b.Fields() {
		total += f.Size(c)
	}
	return total
}

// ReadBlock reads a block body field by field. Reference and string fields
// register themselves with the context instead of resolving immediately.
func ReadBlock(b Block, r io.Reader, c *Context) error {
	for _, f := range b.Fields() {
		if err := f.Read(r, c); err != nil {
			return err
		}
	}
	return nil
}

// WriteBlock writes a block body field by field.
func WriteBlock(b Block, w io.Writer, c *Context) error {
	for _, f := range b.Fields() {
		if err := f.Write(w, c); err != nil {
			return err
		}
	}
	return nil
}

// HashBlock computes a structural digest of a block: its type name plus
// every field that participates in hashing. Owning references fold in their
// target's hash; weak references contribute nothing.
func HashBlock(b Block, c *Context) (uint64, bool) {
	return HashValues(c, b.TypeName(), b.Fields()...)
}

// OwnedChildren returns the blocks reachable through b's owning reference
// fields, in field order. Weak references are excluded.
func OwnedChildren(b Block) []Block {
	var out []Block
	for _, f := range b.Fields() {
		if ref, ok := f.(Referencer); ok {
			out = append(out, ref.Referenced()...)
		}
	}
	return out
}

// WeakTargets returns the blocks reachable through b's weak reference
// fields, for diagnostic display only.
func WeakTargets(b Block) []Block {
	var out []Block
	for _, f := range b.Fields() {
		if ref, ok := f.(WeakReferencer); ok {
			out = append(out, ref.WeakReferenced()...)
		}
	}
	return out
}

// Links returns every block b points at, owning and weak alike.
func Links(b Block) []Block {
	return append(OwnedChildren(b), WeakTargets(b)...)
}

// BlockStrings returns the text embedded in b's string-bearing fields.
func BlockStrings(b Block, c *Context) []string {
	var out []string
	for _, f := range b.Fields() {
		if sb, ok := f.(StringBearer); ok {
			out = append(out, sb.EmbeddedStrings(c)...)
		}
	}
	return out
}

// Tree returns b and every block reachable from it through owning
// references, depth-first, each instance exactly once.
func Tree(b Block) []Block {
	seen := make(map[Block]bool)
	var out []Block
	var visit func(Block)
	visit = func(cur Block) {
		if seen[cur] {
			return
		}
		seen[cur] = true
		out = append(out, cur)
		for _, child := range OwnedChildren(cur) {
			visit(child)
		}
	}
	visit(b)
	return out
}

// fixBlockLinks resolves every reference field of b against the context's
// block table, consuming the link queue in field order.
func fixBlockLinks(b Block, c *Context) error {
	for _, f := range b.Fields() {
		if lf, ok := f.(linkFixer); ok {
			if err := lf.fixLinks(c); err != nil {
				return err
			}
		}
	}
	return nil
}

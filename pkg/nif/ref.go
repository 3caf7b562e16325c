package nif

import (
	"io"

	"github.com/matzehuels/nifstream/pkg/errors"
)

// Ref is an owning reference to another block. The type parameter declares
// the compatible target type, so assignment is checked at compile time;
// resolution during fix-up re-checks the constraint against the block that
// actually arrived from the stream.
//
// A Ref read from a stream is unresolved until the fix-up pass runs: Read
// only captures the raw on-disk index on the context's link stack. On
// write, an empty Ref encodes as the version's null convention (-1 "link by
// number" for modern streams, four zero bytes for legacy ones).
type Ref[T Block] struct {
	target T
	valid  bool
}

// Get returns the target block and whether the reference is set.
func (f *Ref[T]) Get() (T, bool) { return f.target, f.valid }

// Set points the reference at t.
func (f *Ref[T]) Set(t T) {
	f.target = t
	f.valid = true
}

// Clear resets the reference to "no target".
func (f *Ref[T]) Clear() {
	var zero T
	f.target = zero
	f.valid = false
}

func (f *Ref[T]) Size(*Context) int { return 4 }

func (f *Ref[T]) Read(r io.Reader, c *Context) error {
	// The fix-up pass resolves this field; until then it holds no target.
	f.Clear()
	i, err := readI32(r)
	if err != nil {
		return err
	}
	c.pushLink(i)
	return nil
}

func (f *Ref[T]) Write(w io.Writer, c *Context) error {
	if !f.valid {
		if c.Version.LinksByNumber() {
			return writeI32(w, -1)
		}
		return writeU32(w, 0)
	}
	i, ok := c.indexOf(f.target)
	if !ok {
		return errors.New(errors.ErrCodeInternal, "block %s was never linearized", f.target.TypeName())
	}
	return writeI32(w, i)
}

// Hash delegates to the target's block hash so that structural comparison
// follows owning edges. Weak references opt out instead (see Ptr) to keep
// cyclic graphs hashable.
func (f *Ref[T]) Hash(c *Context) (uint64, bool) {
	if !f.valid {
		return 0, false
	}
	return HashBlock(f.target, c)
}

func (f *Ref[T]) Referenced() []Block {
	if !f.valid {
		return nil
	}
	return []Block{f.target}
}

func (f *Ref[T]) fixLinks(c *Context) error {
	i, err := c.popLink()
	if err != nil {
		return err
	}
	if c.Version.LinksByNumber() {
		if i == -1 {
			f.Clear()
			return nil
		}
	} else if i == 0 {
		f.Clear()
		return nil
	}
	b, ok := c.lookupBlock(i)
	if !ok {
		return errors.New(errors.ErrCodeMalformedFraming, "reference to unknown block index %d", i)
	}
	t, ok := b.(T)
	if !ok {
		return errors.New(errors.ErrCodeTypeConstraint, "block index %d holds %s, incompatible with reference target type", i, b.TypeName())
	}
	f.Set(t)
	return nil
}

// Ptr is a weak reference: identical wire shape and resolution as Ref, but
// excluded from ownership traversal so that edges pointing back up the
// hierarchy are never treated as children, and excluded from hashing so
// that cycles through weak edges stay hashable.
type Ptr[T Block] struct {
	Ref[T]
}

func (f *Ptr[T]) Hash(*Context) (uint64, bool) { return 0, false }

// Referenced shadows Ref's owning traversal: weak targets are not children.
func (f *Ptr[T]) Referenced() []Block { return nil }

func (f *Ptr[T]) WeakReferenced() []Block {
	if !f.valid {
		return nil
	}
	return []Block{f.target}
}

// RefList is a count-prefixed sequence of owning references.
type RefList[T Block] struct {
	refs []Ref[T]
}

// Append adds an owning reference to t at the end of the list.
func (l *RefList[T]) Append(t T) {
	var f Ref[T]
	f.Set(t)
	l.refs = append(l.refs, f)
}

// Len returns the number of entries, including unset ones.
func (l *RefList[T]) Len() int { return len(l.refs) }

// At returns the i-th target and whether it is set.
func (l *RefList[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(l.refs) {
		var zero T
		return zero, false
	}
	return l.refs[i].Get()
}

// Targets returns the resolved, non-nil targets in order.
func (l *RefList[T]) Targets() []T {
	var out []T
	for i := range l.refs {
		if t, ok := l.refs[i].Get(); ok {
			out = append(out, t)
		}
	}
	return out
}

func (l *RefList[T]) Size(*Context) int { return 4 + 4*len(l.refs) }

func (l *RefList[T]) Read(r io.Reader, c *Context) error {
	n, err := readU32(r)
	if err != nil {
		return err
	}
	if n > maxListEntries {
		return errors.New(errors.ErrCodeMalformedFraming, "reference list length %d exceeds limit", n)
	}
	l.refs = make([]Ref[T], n)
	for i := range l.refs {
		if err := l.refs[i].Read(r, c); err != nil {
			return err
		}
	}
	return nil
}

func (l *RefList[T]) Write(w io.Writer, c *Context) error {
	if err := writeU32(w, uint32(len(l.refs))); err != nil {
		return err
	}
	for i := range l.refs {
		if err := l.refs[i].Write(w, c); err != nil {
			return err
		}
	}
	return nil
}

func (l *RefList[T]) Hash(c *Context) (uint64, bool) {
	vals := make([]Value, len(l.refs))
	for i := range l.refs {
		vals[i] = &l.refs[i]
	}
	return HashValues(c, "reflist", vals...)
}

func (l *RefList[T]) Referenced() []Block {
	var out []Block
	for i := range l.refs {
		out = append(out, l.refs[i].Referenced()...)
	}
	return out
}

func (l *RefList[T]) fixLinks(c *Context) error {
	for i := range l.refs {
		if err := l.refs[i].fixLinks(c); err != nil {
			return err
		}
	}
	return nil
}

// PtrList is a count-prefixed sequence of weak references.
type PtrList[T Block] struct {
	ptrs []Ptr[T]
}

// Append adds a weak reference to t at the end of the list.
func (l *PtrList[T]) Append(t T) {
	var f Ptr[T]
	f.Set(t)
	l.ptrs = append(l.ptrs, f)
}

// Len returns the number of entries, including unset ones.
func (l *PtrList[T]) Len() int { return len(l.ptrs) }

// Targets returns the resolved, non-nil targets in order.
func (l *PtrList[T]) Targets() []T {
	var out []T
	for i := range l.ptrs {
		if t, ok := l.ptrs[i].Get(); ok {
			out = append(out, t)
		}
	}
	return out
}

func (l *PtrList[T]) Size(*Context) int { return 4 + 4*len(l.ptrs) }

func (l *PtrList[T]) Read(r io.Reader, c *Context) error {
	n, err := readU32(r)
	if err != nil {
		return err
	}
	if n > maxListEntries {
		return errors.New(errors.ErrCodeMalformedFraming, "reference list length %d exceeds limit", n)
	}
	l.ptrs = make([]Ptr[T], n)
	for i := range l.ptrs {
		if err := l.ptrs[i].Read(r, c); err != nil {
			return err
		}
	}
	return nil
}

func (l *PtrList[T]) Write(w io.Writer, c *Context) error {
	if err := writeU32(w, uint32(len(l.ptrs))); err != nil {
		return err
	}
	for i := range l.ptrs {
		if err := l.ptrs[i].Write(w, c); err != nil {
			return err
		}
	}
	return nil
}

func (l *PtrList[T]) Hash(*Context) (uint64, bool) { return 0, false }

func (l *PtrList[T]) WeakReferenced() []Block {
	var out []Block
	for i := range l.ptrs {
		out = append(out, l.ptrs[i].WeakReferenced()...)
	}
	return out
}

func (l *PtrList[T]) fixLinks(c *Context) error {
	for i := range l.ptrs {
		if err := l.ptrs[i].fixLinks(c); err != nil {
			return err
		}
	}
	return nil
}

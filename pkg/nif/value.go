package nif

import (
	"encoding/binary"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Value is the uniform contract every field type implements.
//
// Size must return exactly the number of bytes Write emits under the
// context's version; the write-side block size table and the read-side size
// check both depend on that equality. Hash returns a structural digest, or
// false when the value intentionally opts out of hashing (weak references do
// this to break cycles).
type Value interface {
	Size(c *Context) int
	Read(r io.Reader, c *Context) error
	Write(w io.Writer, c *Context) error
	Hash(c *Context) (uint64, bool)
}

// StringBearer is implemented by values that embed text which belongs in
// the shared string pool.
type StringBearer interface {
	EmbeddedStrings(c *Context) []string
}

// Referencer is implemented by fields holding owning references. The
// returned blocks are the field's resolved, non-nil targets; they are
// counted as owned children and traversed by the graph linearizer.
type Referencer interface {
	Referenced() []Block
}

// WeakReferencer is implemented by fields holding weak references. Weak
// targets are reported for diagnostics only and never traversed.
type WeakReferencer interface {
	WeakReferenced() []Block
}

// linkFixer is the resolution hook of reference fields: it pops raw indices
// from the context's link stack and turns them into live block pointers.
// Resolution happens only in the dedicated fix-up pass, never during the
// initial read.
type linkFixer interface {
	fixLinks(c *Context) error
}

// HashValues folds a sequence of field hashes into one digest, skipping
// values that report no hash. Compound value types build their Hash on it.
func HashValues(c *Context, seed string, vals ...Value) (uint64, bool) {
	d := xxhash.New()
	_, _ = d.WriteString(seed)
	var buf [8]byte
	for _, v := range vals {
		h, ok := v.Hash(c)
		if !ok {
			continue
		}
		binary.LittleEndian.PutUint64(buf[:], h)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64(), true
}

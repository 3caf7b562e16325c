package nif

import (
	"io"

	"github.com/matzehuels/nifstream/pkg/errors"
	"github.com/matzehuels/nifstream/pkg/version"
)

// Encode writes the graphs rooted at roots to w as one complete stream of
// the given version. The header may be nil for a fresh one; a caller that
// wants to carry fields such as UserVersion across a round trip passes the
// decoded header back in. Either way the computed tables (block count, type
// table, size table, string pool) are overwritten from the linearized
// block list.
func Encode(w io.Writer, v version.Ordinal, h *Header, roots []Block, opts ...Option) error {
	if !version.Supported(v) {
		return errors.New(errors.ErrCodeUnsupportedVersion, "unsupported format version %s", v)
	}
	if h == nil {
		h = &Header{}
	}
	c := NewContext(v, h.UserVersion)
	for _, opt := range opts {
		opt(c)
	}

	blocks, types := linearize(roots, c)
	h.NumBlocks = uint32(len(blocks))

	if v.HasStringPool() {
		for _, b := range blocks {
			for _, s := range BlockStrings(b, c) {
				c.internString(s)
			}
		}
		h.Strings = c.pool
		h.MaxStringLength = 0
		for _, s := range c.pool {
			if n := uint32(len(s)); n > h.MaxStringLength {
				h.MaxStringLength = n
			}
		}
	}

	if v.HasTypeTable() {
		h.BlockTypes = types
		slot := make(map[string]uint16, len(types))
		for i, name := range types {
			slot[name] = uint16(i)
		}
		h.TypeIndex = make([]uint16, len(blocks))
		for i, b := range blocks {
			h.TypeIndex[i] = slot[b.TypeName()]
		}
	}

	if v.HasBlockSizes() {
		h.BlockSizes = make([]uint32, len(blocks))
		for i, b := range blocks {
			h.BlockSizes[i] = uint32(SizeOf(b, c))
		}
	}

	if err := h.write(w, c); err != nil {
		return err
	}

	rootSet := make(map[Block]bool, len(roots))
	for _, b := range roots {
		rootSet[b] = true
	}
	for _, b := range blocks {
		if !v.HasBlockCount() {
			if rootSet[b] {
				if err := writeSizedString(w, topLevelSentinel); err != nil {
					return err
				}
			}
			if err := writeSizedString(w, b.TypeName()); err != nil {
				return err
			}
			i, ok := c.indexOf(b)
			if !ok {
				return errors.New(errors.ErrCodeInternal, "block %s was never linearized", b.TypeName())
			}
			if err := writeI32(w, i); err != nil {
				return err
			}
		} else if !v.HasTypeTable() {
			if err := writeSizedString(w, b.TypeName()); err != nil {
				return err
			}
		}
		if v.HasBlockTagDummy() {
			if err := writeU32(w, 0); err != nil {
				return err
			}
		}
		if err := WriteBlock(b, w, c); err != nil {
			return err
		}
	}
	if !v.HasBlockCount() {
		if err := writeSizedString(w, endOfFileSentinel); err != nil {
			return err
		}
	}

	f := &Footer{}
	for _, b := range roots {
		f.Roots.Append(b)
	}
	return f.write(w, c)
}

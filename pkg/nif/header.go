package nif

import (
	"io"

	"github.com/matzehuels/nifstream/pkg/errors"
)

// Header is the per-file metadata that frames the block stream. On write it
// is computed from the linearized block list; on read it is consumed once
// before the block loop. All fields past the text line are version-gated.
type Header struct {
	// NumBlocks is the block count, present from the release that
	// introduced counted streams. Legacy streams rely on the end-of-file
	// sentinel instead.
	NumBlocks uint32

	// UserVersion is the user/sub-version field of modern headers.
	UserVersion uint32

	// BlockTypes is the ordered table of distinct type names.
	BlockTypes []string

	// TypeIndex holds one entry per block: the block's slot in BlockTypes.
	// Readers mask the value to its low 12 bits to tolerate the vendor
	// encoding quirk of the PhysX blocks.
	TypeIndex []uint16

	// BlockSizes is the optional per-block size table.
	BlockSizes []uint32

	// Strings is the optional shared string pool, with MaxStringLength
	// tracking its longest entry.
	Strings         []string
	MaxStringLength uint32
}

// typeIndexMask tolerates the vendor quirk in PhysX type indices.
const typeIndexMask = 0xfff

// littleEndian is the only byte order the codec accepts in the header's
// endianness field.
const littleEndian = 1

// read consumes the header fields that follow the product text line, which
// the caller has already read to discover the version.
func (h *Header) read(r io.Reader, c *Context, line string) error {
	if line != c.Version.HeaderLine() {
		return errors.New(errors.ErrCodeMalformedFraming, "header line %q does not match version %s", line, c.Version)
	}
	if c.Version.HasVersionField() {
		v, err := readU32(r)
		if err != nil {
			return err
		}
		if v != uint32(c.Version) {
			return errors.New(errors.ErrCodeMalformedFraming, "binary version 0x%08X contradicts header text %s", v, c.Version)
		}
	}
	if c.Version.HasEndianByte() {
		e, err := readU8(r)
		if err != nil {
			return err
		}
		if e != littleEndian {
			return errors.New(errors.ErrCodeMalformedFraming, "unsupported endianness byte %d", e)
		}
	}
	if c.Version.HasUserVersion() {
		u, err := readU32(r)
		if err != nil {
			return err
		}
		h.UserVersion = u
		c.UserVersion = u
	}
	if c.Version.HasBlockCount() {
		n, err := readU32(r)
		if err != nil {
			return err
		}
		h.NumBlocks = n
	}
	if c.Version.HasTypeTable() {
		numTypes, err := readU16(r)
		if err != nil {
			return err
		}
		h.BlockTypes = make([]string, numTypes)
		for i := range h.BlockTypes {
			s, err := readSizedString(r)
			if err != nil {
				return err
			}
			h.BlockTypes[i] = s
		}
		h.TypeIndex = make([]uint16, h.NumBlocks)
		for i := range h.TypeIndex {
			idx, err := readU16(r)
			if err != nil {
				return err
			}
			h.TypeIndex[i] = idx
		}
	}
	if c.Version.HasBlockSizes() {
		h.BlockSizes = make([]uint32, h.NumBlocks)
		for i := range h.BlockSizes {
			s, err := readU32(r)
			if err != nil {
				return err
			}
			h.BlockSizes[i] = s
		}
	}
	if c.Version.HasStringPool() {
		numStrings, err := readU32(r)
		if err != nil {
			return err
		}
		maxLen, err := readU32(r)
		if err != nil {
			return err
		}
		h.MaxStringLength = maxLen
		if numStrings > maxListEntries {
			return errors.New(errors.ErrCodeMalformedFraming, "string pool count %d exceeds limit", numStrings)
		}
		h.Strings = make([]string, numStrings)
		for i := range h.Strings {
			s, err := readSizedString(r)
			if err != nil {
				return err
			}
			h.Strings[i] = s
		}
		c.setPool(h.Strings)
	}
	return nil
}

func (h *Header) write(w io.Writer, c *Context) error {
	if err := writeLine(w, c.Version.HeaderLine()); err != nil {
		return err
	}
	if c.Version.HasVersionField() {
		if err := writeU32(w, uint32(c.Version)); err != nil {
			return err
		}
	}
	if c.Version.HasEndianByte() {
		if err := writeU8(w, littleEndian); err != nil {
			return err
		}
	}
	if c.Version.HasUserVersion() {
		if err := writeU32(w, h.UserVersion); err != nil {
			return err
		}
	}
	if c.Version.HasBlockCount() {
		if err := writeU32(w, h.NumBlocks); err != nil {
			return err
		}
	}
	if c.Version.HasTypeTable() {
		if err := writeU16(w, uint16(len(h.BlockTypes))); err != nil {
			return err
		}
		for _, s := range h.BlockTypes {
			if err := writeSizedString(w, s); err != nil {
				return err
			}
		}
		for _, idx := range h.TypeIndex {
			if err := writeU16(w, idx); err != nil {
				return err
			}
		}
	}
	if c.Version.HasBlockSizes() {
		for _, s := range h.BlockSizes {
			if err := writeU32(w, s); err != nil {
				return err
			}
		}
	}
	if c.Version.HasStringPool() {
		if err := writeU32(w, uint32(len(h.Strings))); err != nil {
			return err
		}
		if err := writeU32(w, h.MaxStringLength); err != nil {
			return err
		}
		for _, s := range h.Strings {
			if err := writeSizedString(w, s); err != nil {
				return err
			}
		}
	}
	return nil
}

// blockType resolves the type name for block i from the header tables.
func (h *Header) blockType(i int) (string, error) {
	if i < 0 || i >= len(h.TypeIndex) {
		return "", errors.New(errors.ErrCodeMalformedFraming, "block %d has no type index entry", i)
	}
	idx := int(h.TypeIndex[i] & typeIndexMask)
	if idx >= len(h.BlockTypes) {
		return "", errors.New(errors.ErrCodeMalformedFraming, "type index %d outside table of %d types", idx, len(h.BlockTypes))
	}
	return h.BlockTypes[idx], nil
}

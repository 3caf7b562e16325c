package nif

import (
	"io"

	"github.com/matzehuels/nifstream/pkg/errors"
	"github.com/matzehuels/nifstream/pkg/version"
)

// Sentinel strings framing legacy streams, which have neither a block count
// nor a footer root list.
const (
	topLevelSentinel  = "Top Level Object"
	endOfFileSentinel = "End Of File"
)

// Graph is a fully decoded stream: the blocks in on-disk order, the declared
// roots, and the raw header and footer for tooling that needs them.
type Graph struct {
	Version     version.Ordinal
	UserVersion uint32

	// Blocks holds every block in stream order, references resolved.
	Blocks []Block

	// Roots are the entry points of the scene graph, from the footer list
	// on modern streams or the inline sentinels on legacy ones.
	Roots []Block

	Header *Header
	Footer *Footer
}

// countingReader tracks consumed bytes so block bodies can be checked
// against the header's size table.
type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

// Decode reads one complete stream from r: header, every block body, and
// the footer, then resolves all references in a second pass. The stream
// must end exactly at the footer; trailing bytes are an error.
//
// Blocks referencing each other forward or backward both work: reference
// fields only record raw indices during the body pass, and the fix-up pass
// resolves them once every block exists.
func Decode(r io.Reader, opts ...Option) (*Graph, error) {
	line, err := readLine(r, maxHeaderLine)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotThisFormat, err, "no readable header line")
	}
	v, err := versionFromLine(line)
	if err != nil {
		return nil, err
	}
	c := NewContext(v, 0)
	for _, opt := range opts {
		opt(c)
	}

	h := &Header{}
	if err := h.read(r, c, line); err != nil {
		return nil, err
	}

	var cr *countingReader
	body := r
	if v.HasBlockSizes() {
		cr = &countingReader{r: r}
		body = cr
	}

	var blocks []Block
	var roots []Block
	if v.HasBlockCount() {
		blocks = make([]Block, 0, h.NumBlocks)
		for i := 0; i < int(h.NumBlocks); i++ {
			b, err := readModernBlock(body, c, h, i, cr)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, b)
		}
	} else {
		blocks, roots, err = readLegacyBlocks(body, c)
		if err != nil {
			return nil, err
		}
	}

	f := &Footer{}
	if err := f.read(body, c); err != nil {
		return nil, err
	}

	var trailing [1]byte
	if _, err := io.ReadFull(r, trailing[:]); err != io.EOF {
		return nil, errors.New(errors.ErrCodeMalformedFraming, "trailing data after footer")
	}

	for _, b := range blocks {
		if err := fixBlockLinks(b, c); err != nil {
			return nil, err
		}
	}
	if err := f.fixLinks(c); err != nil {
		return nil, err
	}
	if n := c.pendingLinks(); n != 0 {
		return nil, errors.New(errors.ErrCodeLinkStackImbalance, "%d captured reference indices never consumed", n)
	}

	if v.HasFooterRoots() {
		roots = f.Roots.Targets()
	}
	return &Graph{
		Version:     v,
		UserVersion: c.UserVersion,
		Blocks:      blocks,
		Roots:       roots,
		Header:      h,
		Footer:      f,
	}, nil
}

// readModernBlock reads block i of a counted stream: type name from the
// header table or an inline string, optional zero separator, then the body,
// checked against the size table when one is present.
func readModernBlock(r io.Reader, c *Context, h *Header, i int, cr *countingReader) (Block, error) {
	var typeName string
	if c.Version.HasTypeTable() {
		name, err := h.blockType(i)
		if err != nil {
			return nil, err
		}
		typeName = name
	} else {
		name, err := readSizedString(r)
		if err != nil {
			return nil, err
		}
		typeName = name
	}
	if c.Version.HasBlockTagDummy() {
		dummy, err := readU32(r)
		if err != nil {
			return nil, err
		}
		if dummy != 0 {
			return nil, errors.New(errors.ErrCodeMalformedFraming, "nonzero separator 0x%08X before block %d", dummy, i)
		}
	}
	b, err := NewBlock(typeName)
	if err != nil {
		return nil, err
	}

	var start int64
	if cr != nil {
		start = cr.n
	}
	if err := ReadBlock(b, r, c); err != nil {
		return nil, err
	}
	if cr != nil {
		actual := cr.n - start
		recorded := int64(h.BlockSizes[i])
		if actual != recorded {
			if actual > recorded {
				return nil, errors.New(errors.ErrCodeMalformedFraming, "block %d (%s) read %d bytes past its recorded size %d", i, typeName, actual-recorded, recorded)
			}
			c.logger.Warn("block shorter than size table entry, skipping ahead",
				"block", i, "type", typeName, "read", actual, "recorded", recorded)
			if _, err := io.CopyN(io.Discard, r, recorded-actual); err != nil {
				return nil, errors.Wrap(errors.ErrCodeMalformedFraming, err, "skipping to end of block %d", i)
			}
		}
	}
	if err := c.registerBlock(int32(i), b); err != nil {
		return nil, err
	}
	return b, nil
}

// readLegacyBlocks reads a sentinel-framed stream: each block is an inline
// type string (optionally preceded by the root sentinel) plus a stored
// identity integer, and the end-of-file sentinel terminates the list.
func readLegacyBlocks(r io.Reader, c *Context) ([]Block, []Block, error) {
	var blocks, roots []Block
	for {
		s, err := readSizedString(r)
		if err != nil {
			return nil, nil, err
		}
		if s == endOfFileSentinel {
			return blocks, roots, nil
		}
		isRoot := false
		if s == topLevelSentinel {
			isRoot = true
			s, err = readSizedString(r)
			if err != nil {
				return nil, nil, err
			}
		}
		b, err := NewBlock(s)
		if err != nil {
			return nil, nil, err
		}
		index, err := readI32(r)
		if err != nil {
			return nil, nil, err
		}
		if err := c.registerBlock(index, b); err != nil {
			return nil, nil, err
		}
		if err := ReadBlock(b, r, c); err != nil {
			return nil, nil, err
		}
		blocks = append(blocks, b)
		if isRoot {
			roots = append(roots, b)
		}
	}
}

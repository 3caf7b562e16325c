package nif

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/nifstream/pkg/errors"
	"github.com/matzehuels/nifstream/pkg/version"
)

// Context carries the per-call state of one read or write operation: the
// active format version, the link stack, the block index maps, and the
// shared string pool. A Context is created by Decode/Encode, exclusively
// owned by that call, and discarded afterwards; it must never be shared or
// reused.
type Context struct {
	// Version is the packed format version of the stream.
	Version version.Ordinal

	// UserVersion is the user/sub-version carried by modern headers.
	UserVersion uint32

	logger *log.Logger

	// links is the ordered queue of raw on-disk reference indices captured
	// while reading block bodies, consumed in the same order during fix-up.
	links []int32

	// blocks maps on-disk block identity to the constructed block (read
	// side). For legacy streams the key is the arbitrary integer stored in
	// the file; for modern streams it is the sequential read position.
	blocks map[int32]Block

	// indexes maps a block to its assigned on-disk index (write side).
	indexes map[Block]int32

	// pool is the deduplicated shared string table, in first-occurrence
	// order, with a reverse lookup for write-side index resolution.
	pool      []string
	poolIndex map[string]int32

	// nextLegacy allocates write-side identity tokens for legacy streams.
	// Any stable unique nonzero value works: readers of legacy files only
	// use the token as a local key, and zero is reserved for the null
	// "link by pointer" encoding.
	nextLegacy int32
}

// Option adjusts a single decode or encode call.
type Option func(*Context)

// WithLogger routes codec diagnostics, such as the block size table
// mismatch warning, to l instead of the default logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// NewContext creates the state for a single read or write call against a
// stream of the given version.
func NewContext(v version.Ordinal, userVersion uint32) *Context {
	return &Context{
		Version:     v,
		UserVersion: userVersion,
		logger:      log.Default(),
		blocks:      make(map[int32]Block),
		indexes:     make(map[Block]int32),
		poolIndex:   make(map[string]int32),
		nextLegacy:  1,
	}
}

// pushLink appends a raw reference index to the link queue.
func (c *Context) pushLink(i int32) {
	c.links = append(c.links, i)
}

// popLink removes and returns the oldest queued index. Popping an empty
// queue means read and fix-up disagree about the number of reference
// fields, which is either stream corruption or a codec bug.
func (c *Context) popLink() (int32, error) {
	if len(c.links) == 0 {
		return 0, errors.New(errors.ErrCodeLinkStackImbalance, "link stack exhausted during fix-up")
	}
	i := c.links[0]
	c.links = c.links[1:]
	return i, nil
}

// pendingLinks returns the number of captured indices not yet consumed.
func (c *Context) pendingLinks() int { return len(c.links) }

// registerBlock records a block under its on-disk identity. Legacy streams
// store arbitrary integers, so collisions are possible and fatal.
func (c *Context) registerBlock(index int32, b Block) error {
	if _, exists := c.blocks[index]; exists {
		return errors.New(errors.ErrCodeDuplicateBlockIndex, "duplicate block index 0x%08X", uint32(index))
	}
	c.blocks[index] = b
	return nil
}

// lookupBlock resolves an on-disk identity to the block read under it.
func (c *Context) lookupBlock(index int32) (Block, bool) {
	b, ok := c.blocks[index]
	return b, ok
}

// setIndex records the on-disk index assigned to a block by the linearizer.
func (c *Context) setIndex(b Block, index int32) {
	c.indexes[b] = index
}

// indexOf returns the index assigned to b during linearization.
func (c *Context) indexOf(b Block) (int32, bool) {
	i, ok := c.indexes[b]
	return i, ok
}

// legacyIndex allocates the next write-side identity token for a legacy
// stream.
func (c *Context) legacyIndex() int32 {
	i := c.nextLegacy
	c.nextLegacy++
	return i
}

// internString adds s to the shared pool if absent, preserving
// first-occurrence order. Empty strings are never pooled; they encode as
// the -1 index.
func (c *Context) internString(s string) {
	if s == "" {
		return
	}
	if _, ok := c.poolIndex[s]; ok {
		return
	}
	c.poolIndex[s] = int32(len(c.pool))
	c.pool = append(c.pool, s)
}

// stringIndex resolves a string to its pool slot for writing.
func (c *Context) stringIndex(s string) (int32, bool) {
	i, ok := c.poolIndex[s]
	return i, ok
}

// stringAt resolves a pool slot read from the stream.
func (c *Context) stringAt(i int32) (string, error) {
	if i < 0 || int(i) >= len(c.pool) {
		return "", errors.New(errors.ErrCodeStringPool, "string index %d outside pool of %d entries", i, len(c.pool))
	}
	return c.pool[i], nil
}

// setPool installs the string table read from (or computed for) the header.
func (c *Context) setPool(strings []string) {
	c.pool = strings
	c.poolIndex = make(map[string]int32, len(strings))
	for i, s := range strings {
		if _, ok := c.poolIndex[s]; !ok {
			c.poolIndex[s] = int32(i)
		}
	}
}

// Package nif implements the NetImmerse/Gamebryo block-stream codec.
//
// A file stores a directed graph of typed blocks framed by a header (format
// version, block-type table, optional per-block size table, optional shared
// string pool) and a footer (root-block list for modern versions). The
// package reads such a stream into a live object graph and writes a graph
// back to bytes, reproducing the framing rules of every supported format
// revision.
//
// # Architecture
//
// The codec is built from a few cooperating pieces:
//
//   - The value protocol ([Value]): every field type knows its exact on-disk
//     size, how to read and write itself, and how to contribute to a
//     structural hash. Integer widths, string encodings, and null-reference
//     conventions all vary with the format version; each value consults the
//     named thresholds in pkg/version rather than raw constants.
//   - Reference fields ([Ref], [Ptr]): owning and weak edges between blocks.
//     Reading a reference captures a raw on-disk index on the context's link
//     stack; a dedicated fix-up pass after the block loop resolves indices
//     to live blocks. Weak references are excluded from ownership traversal
//     so that back-edges up the hierarchy never count as children.
//   - The stream context ([Context]): per-call state (version, link stack,
//     block index maps, string pool). Contexts are never shared or reused
//     across calls; independent decodes on separate goroutines need no
//     locking.
//   - The codec loops ([Decode], [Encode], [Probe]) and the write-side graph
//     linearizer, which flattens a root set into a deduplicated block list
//     with a version-appropriate index assignment.
//
// Concrete block types live in the schema subpackage and register
// themselves with [Register] at init time.
//
// # Reading a file
//
//	v, userVersion, err := nif.Probe(f)
//	if err != nil {
//	    // errors.ErrCodeNotThisFormat: not a NIF file at all
//	    // errors.ErrCodeUnsupportedVersion: recognized but unhandled
//	}
//	roots, err := nif.Decode(f, v, userVersion)
//
// # Writing a file
//
//	err := nif.Encode(f, v, userVersion, []nif.Block{root})
package nif

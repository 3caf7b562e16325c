// Package version models NetImmerse/Gamebryo file format versions.
//
// A format version is written in the file header as a dotted string such as
// "20.1.0.3" and stored internally as a packed 32-bit ordinal (one byte per
// component, most significant first). The package provides the bidirectional
// mapping between the two representations, the catalogue of released
// versions the codec understands, and the named feature thresholds that gate
// every version-sensitive framing decision in the codec.
//
// Threshold checks are deliberately centralized here: the codec and the
// value types never compare against raw ordinal constants, so the whole
// version matrix can be audited and tested in one place.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Ordinal is a packed 32-bit format version. Component a.b.c.d packs as
// a<<24 | b<<16 | c<<8 | d.
type Ordinal uint32

// Unsupported is the sentinel returned by Parse for malformed or
// out-of-range version strings. It is not a valid ordinal.
const Unsupported Ordinal = 0xFFFFFFFF

// v303 is the historical "3.03" release. Its string form predates the
// dotted four-component scheme and maps to an irregular constant.
const v303 Ordinal = 0x03000300

// Parse converts a dotted version string into an ordinal.
// It accepts one to four dot-separated components, each 0-255, plus the
// irregular legacy string "3.03". Anything else yields Unsupported; Parse
// never fails with an error.
func Parse(s string) Ordinal {
	if s == "3.03" {
		return v303
	}
	parts := strings.Split(s, ".")
	if len(parts) < 1 || len(parts) > 4 {
		return Unsupported
	}
	var packed uint32
	for i := 0; i < 4; i++ {
		var c uint64
		if i < len(parts) {
			var err error
			c, err = strconv.ParseUint(parts[i], 10, 64)
			if err != nil || c > 0xff {
				return Unsupported
			}
		}
		packed = packed<<8 | uint32(c)
	}
	return Ordinal(packed)
}

// String renders the ordinal in the form that appears in file headers.
// The legacy 3.03 release keeps its historical two-digit form, releases up
// to 3.1 use two components, and everything later uses four.
func (v Ordinal) String() string {
	if v == v303 {
		return "3.03"
	}
	a, b, c, d := byte(v>>24), byte(v>>16), byte(v>>8), byte(v)
	if v <= 0x03010000 {
		return fmt.Sprintf("%d.%d", a, b)
	}
	return fmt.Sprintf("%d.%d.%d.%d", a, b, c, d)
}

// HeaderLine returns the full product header line for this version, without
// the trailing newline. Releases up to 10.0.1.2 shipped under the
// NetImmerse name, later ones under Gamebryo.
func (v Ordinal) HeaderLine() string {
	product := "Gamebryo"
	if v <= 0x0A000102 {
		product = "NetImmerse"
	}
	return fmt.Sprintf("%s File Format, Version %s", product, v)
}

// IsValid reports whether v is a usable ordinal (not the Unsupported
// sentinel).
func (v Ordinal) IsValid() bool { return v != Unsupported }

// Feature thresholds. Each method gates one framing behavior; the receiver
// comparison mirrors the release that introduced (or retired) the feature.

// LinksByNumber reports whether null references encode as the -1 "link by
// number" sentinel. Earlier releases encode a null pointer as four zero
// bytes.
func (v Ordinal) LinksByNumber() bool { return v >= 0x0303000D }

// HasBlockCount reports whether the header carries an explicit block count.
// Below this threshold the stream is terminated by the "End Of File"
// sentinel string instead.
func (v Ordinal) HasBlockCount() bool { return v >= 0x0303000D }

// HasVersionField reports whether the header repeats the version as a
// binary integer after the text line.
func (v Ordinal) HasVersionField() bool { return v >= 0x0303000D }

// HasFooterRoots reports whether root blocks are listed in the footer.
// Below this threshold roots are flagged inline with the "Top Level Object"
// sentinel string.
func (v Ordinal) HasFooterRoots() bool { return v >= 0x0303000D }

// ByteBools reports whether booleans occupy a single byte. Up to and
// including 4.0.0.2 they are stored as 32-bit integers.
func (v Ordinal) ByteBools() bool { return v > 0x04000002 }

// HasTypeTable reports whether block type names live in a header table
// indexed per block. Below this threshold every block body is preceded by
// an inline type-name string.
func (v Ordinal) HasTypeTable() bool { return v >= 0x05000001 }

// HasBlockTagDummy reports whether each block body is preceded by a 4-byte
// zero separator. This applies only to the intermediate band between the
// type-table introduction and 10.1.0.106.
func (v Ordinal) HasBlockTagDummy() bool { return v >= 0x05000001 && v <= 0x0A01006A }

// HasUserVersion reports whether the header carries a user version field.
func (v Ordinal) HasUserVersion() bool { return v >= 0x0A010000 }

// HasEndianByte reports whether the header carries an endianness byte.
func (v Ordinal) HasEndianByte() bool { return v >= 0x14000004 }

// HasStringPool reports whether string fields are 4-byte indices into a
// shared header string pool. Below this threshold strings are stored inline
// with a 4-byte length prefix.
func (v Ordinal) HasStringPool() bool { return v >= 0x14010003 }

// HasBlockSizes reports whether the header carries a per-block size table.
func (v Ordinal) HasBlockSizes() bool { return v >= 0x14020007 }

// supported is the catalogue of released format versions the codec has
// been verified against, matching the historical NetImmerse/Gamebryo
// release list.
var supported = map[Ordinal]bool{
	0x03000000: true,
	0x03000300: true,
	0x03010000: true,
	0x0303000D: true,
	0x04000000: true,
	0x04000002: true,
	0x0401000C: true,
	0x04020002: true,
	0x04020100: true,
	0x04020200: true,
	0x0A000100: true,
	0x0A000102: true,
	0x0A000103: true,
	0x0A010000: true,
	0x0A010065: true,
	0x0A01006A: true,
	0x0A020000: true,
	0x14000004: true,
	0x14000005: true,
	0x14010003: true,
	0x14020007: true,
	0x14020008: true,
	0x14030001: true,
	0x14030002: true,
	0x14030003: true,
	0x14030006: true,
	0x14030009: true,
}

// Supported reports whether v is a known released format version.
func Supported(v Ordinal) bool { return supported[v] }

// All returns every supported ordinal in ascending order.
func All() []Ordinal {
	out := make([]Ordinal, 0, len(supported))
	for v := range supported {
		out = append(out, v)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

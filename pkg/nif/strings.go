package nif

import (
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/matzehuels/nifstream/pkg/errors"
)

// SizedString is a 4-byte length prefix followed by raw bytes. It is the
// encoding of type names, sentinels, and header table entries, independent
// of the format version.
type SizedString string

func (v *SizedString) Size(*Context) int { return sizedStringSize(string(*v)) }

func (v *SizedString) Read(r io.Reader, _ *Context) error {
	s, err := readSizedString(r)
	*v = SizedString(s)
	return err
}

func (v *SizedString) Write(w io.Writer, _ *Context) error {
	return writeSizedString(w, string(*v))
}

func (v *SizedString) Hash(*Context) (uint64, bool) {
	return xxhash.Sum64String(string(*v)), true
}

func (v *SizedString) EmbeddedStrings(*Context) []string {
	if *v == "" {
		return nil
	}
	return []string{string(*v)}
}

// String is the version-gated text field used throughout block bodies.
// Up to 20.1.0.3 it is stored inline with a 4-byte length prefix; from
// 20.1.0.3 on it is a 4-byte index into the header's shared string pool,
// with -1 encoding the empty string.
type String string

func (v *String) Size(c *Context) int {
	if c.Version.HasStringPool() {
		return 4
	}
	return 4 + len(*v)
}

func (v *String) Read(r io.Reader, c *Context) error {
	if c.Version.HasStringPool() {
		i, err := readI32(r)
		if err != nil {
			return err
		}
		if i == -1 {
			*v = ""
			return nil
		}
		s, err := c.stringAt(i)
		if err != nil {
			return err
		}
		*v = String(s)
		return nil
	}
	s, err := readSizedString(r)
	*v = String(s)
	return err
}

func (v *String) Write(w io.Writer, c *Context) error {
	if c.Version.HasStringPool() {
		if *v == "" {
			return writeI32(w, -1)
		}
		i, ok := c.stringIndex(string(*v))
		if !ok {
			return errors.New(errors.ErrCodeStringPool, "string %q not in pool", string(*v))
		}
		return writeI32(w, i)
	}
	return writeSizedString(w, string(*v))
}

func (v *String) Hash(*Context) (uint64, bool) {
	return xxhash.Sum64String(string(*v)), true
}

func (v *String) EmbeddedStrings(*Context) []string {
	if *v == "" {
		return nil
	}
	return []string{string(*v)}
}

// LineString is text terminated by a newline byte, used for the product
// header line.
type LineString string

func (v *LineString) Size(*Context) int { return len(*v) + 1 }

func (v *LineString) Read(r io.Reader, _ *Context) error {
	s, err := readLine(r, maxHeaderLine)
	*v = LineString(s)
	return err
}

func (v *LineString) Write(w io.Writer, _ *Context) error {
	return writeLine(w, string(*v))
}

func (v *LineString) Hash(*Context) (uint64, bool) {
	return xxhash.Sum64String(string(*v)), true
}

// ByteArray is a length-prefixed opaque byte blob.
type ByteArray []byte

func (v *ByteArray) Size(*Context) int { return 4 + len(*v) }

func (v *ByteArray) Read(r io.Reader, _ *Context) error {
	n, err := readU32(r)
	if err != nil {
		return err
	}
	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return err
	}
	*v = buf
	return nil
}

func (v *ByteArray) Write(w io.Writer, _ *Context) error {
	if err := writeU32(w, uint32(len(*v))); err != nil {
		return err
	}
	_, err := w.Write(*v)
	return err
}

func (v *ByteArray) Hash(*Context) (uint64, bool) {
	return xxhash.Sum64(*v), true
}

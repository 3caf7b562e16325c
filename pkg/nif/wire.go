package nif

import (
	"encoding/binary"
	"io"

	"github.com/matzehuels/nifstream/pkg/errors"
)

// Low-level wire helpers. The format is little-endian throughout.

// maxInlineString bounds length prefixes of inline strings. Anything larger
// means the stream is corrupt or is not framed the way the version claims.
const maxInlineString = 10000

// maxListEntries bounds count prefixes of reference lists and header tables.
// Wide scenes are legitimate, so this is far looser than the string bound;
// it only rejects counts no real stream could hold.
const maxListEntries = 1 << 24

// maxHeaderLine bounds the product/version text line at the top of a file.
const maxHeaderLine = 64

func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return errors.Wrap(errors.ErrCodeMalformedFraming, err, "truncated stream")
	}
	return nil
}

func readU8(r io.Reader) (uint8, error) {
	var b [1]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func readU16(r io.Reader) (uint16, error) {
	var b [2]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func readU32(r io.Reader) (uint32, error) {
	var b [4]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readI32(r io.Reader) (int32, error) {
	u, err := readU32(r)
	return int32(u), err
}

func writeU8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

func writeU16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeU32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeI32(w io.Writer, v int32) error {
	return writeU32(w, uint32(v))
}

// readSizedString reads a 4-byte length prefix followed by that many bytes.
func readSizedString(r io.Reader) (string, error) {
	n, err := readU32(r)
	if err != nil {
		return "", err
	}
	if n > maxInlineString {
		return "", errors.New(errors.ErrCodeMalformedFraming, "inline string length %d exceeds limit", n)
	}
	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeSizedString(w io.Writer, s string) error {
	if err := writeU32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func sizedStringSize(s string) int { return 4 + len(s) }

// readLine consumes bytes up to and including a newline, returning the line
// without it. The limit guards against probing binary garbage.
func readLine(r io.Reader, limit int) (string, error) {
	var buf []byte
	var b [1]byte
	for len(buf) < limit {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return "", errors.Wrap(errors.ErrCodeMalformedFraming, err, "reading text line")
		}
		if b[0] == '\n' {
			return string(buf), nil
		}
		buf = append(buf, b[0])
	}
	return "", errors.New(errors.ErrCodeMalformedFraming, "text line exceeds %d bytes", limit)
}

func writeLine(w io.Writer, s string) error {
	_, err := io.WriteString(w, s+"\n")
	return err
}

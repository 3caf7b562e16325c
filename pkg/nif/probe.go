package nif

import (
	"io"
	"strings"

	"github.com/matzehuels/nifstream/pkg/errors"
	"github.com/matzehuels/nifstream/pkg/version"
)

// Header line prefixes. Releases up to 10.0.1.2 shipped as NetImmerse,
// later ones as Gamebryo.
const (
	netImmersePrefix = "NetImmerse File Format, Version "
	gamebryoPrefix   = "Gamebryo File Format, Version "
)

// versionFromLine extracts the format version from a product header line.
// A line that does not carry either product prefix is not this format at
// all; a line with a version the catalogue does not know is this format at
// an unsupported version. Callers branch on the two codes.
func versionFromLine(line string) (version.Ordinal, error) {
	var verStr string
	switch {
	case strings.HasPrefix(line, netImmersePrefix):
		verStr = line[len(netImmersePrefix):]
	case strings.HasPrefix(line, gamebryoPrefix):
		verStr = line[len(gamebryoPrefix):]
	default:
		return version.Unsupported, errors.New(errors.ErrCodeNotThisFormat, "header line %q carries no known product prefix", line)
	}
	v := version.Parse(verStr)
	if !v.IsValid() {
		return version.Unsupported, errors.New(errors.ErrCodeUnsupportedVersion, "malformed version string %q", verStr)
	}
	if !version.Supported(v) {
		return version.Unsupported, errors.New(errors.ErrCodeUnsupportedVersion, "unsupported format version %s", v)
	}
	return v, nil
}

// Probe inspects the head of a stream and reports its format version and
// user version without consuming it: the cursor is restored to its starting
// position regardless of outcome.
//
// The two failure modes carry distinct codes so that a directory walker can
// separate "not one of ours" from "ours, but a version this build does not
// speak": NOT_THIS_FORMAT for a missing product prefix or a binary version
// field that contradicts the text line, UNSUPPORTED_VERSION for a version
// outside the catalogue.
func Probe(r io.ReadSeeker) (version.Ordinal, uint32, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return version.Unsupported, 0, errors.Wrap(errors.ErrCodeInternal, err, "saving stream position")
	}
	defer r.Seek(start, io.SeekStart)

	line, err := readLine(r, maxHeaderLine)
	if err != nil {
		return version.Unsupported, 0, errors.Wrap(errors.ErrCodeNotThisFormat, err, "no readable header line")
	}
	v, err := versionFromLine(line)
	if err != nil {
		return version.Unsupported, 0, err
	}
	if v.HasVersionField() {
		vi, err := readU32(r)
		if err != nil {
			return version.Unsupported, 0, errors.Wrap(errors.ErrCodeNotThisFormat, err, "stream ends before binary version field")
		}
		if vi != uint32(v) {
			return version.Unsupported, 0, errors.New(errors.ErrCodeNotThisFormat, "binary version 0x%08X contradicts header text %s", vi, v)
		}
	}
	if v.HasEndianByte() {
		if _, err := readU8(r); err != nil {
			return version.Unsupported, 0, errors.Wrap(errors.ErrCodeNotThisFormat, err, "stream ends before endianness byte")
		}
	}
	var userVersion uint32
	if v.HasUserVersion() {
		userVersion, err = readU32(r)
		if err != nil {
			return version.Unsupported, 0, errors.Wrap(errors.ErrCodeNotThisFormat, err, "stream ends before user version field")
		}
	}
	return v, userVersion, nil
}

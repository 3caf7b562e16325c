package nif

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/matzehuels/nifstream/pkg/version"
)

// TestDecodeRecoversFromShortBlock corrupts a size table entry so that the
// recorded size exceeds the bytes the block actually occupies, with filler
// inserted to match. The decoder must log and skip, not fail.
func TestDecodeRecoversFromShortBlock(t *testing.T) {
	v := version.Parse("20.2.0.8")
	root := &testNode{label: "r"}
	var buf bytes.Buffer
	if err := Encode(&buf, v, nil, []Block{root}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	data := buf.Bytes()

	// Header layout: text line, version field, endian byte, user version,
	// block count, type table (count + one name + one index), size table.
	line := v.HeaderLine() + "\n"
	sizeOff := len(line) + 4 + 1 + 4 + 4 + 2 + (4 + len("TestNode")) + 2
	recorded := binary.LittleEndian.Uint32(data[sizeOff:])
	binary.LittleEndian.PutUint32(data[sizeOff:], recorded+4)

	// Grow the block body with four filler bytes, just before the footer.
	footerLen := 4 + 4
	cut := len(data) - footerLen
	patched := append([]byte{}, data[:cut]...)
	patched = append(patched, 0, 0, 0, 0)
	patched = append(patched, data[cut:]...)

	g, err := Decode(bytes.NewReader(patched))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got, ok := g.Roots[0].(*testNode)
	if !ok || got.label != "r" {
		t.Errorf("root label = %v, want %q", g.Roots[0], "r")
	}
}

// TestDecodeRejectsOverrunBlock corrupts a size table entry downward: the
// block body then reads past its recorded size, which cannot be recovered
// on a forward-only stream.
func TestDecodeRejectsOverrunBlock(t *testing.T) {
	v := version.Parse("20.2.0.8")
	root := &testNode{label: "r"}
	var buf bytes.Buffer
	if err := Encode(&buf, v, nil, []Block{root}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	data := buf.Bytes()

	line := v.HeaderLine() + "\n"
	sizeOff := len(line) + 4 + 1 + 4 + 4 + 2 + (4 + len("TestNode")) + 2
	recorded := binary.LittleEndian.Uint32(data[sizeOff:])
	binary.LittleEndian.PutUint32(data[sizeOff:], recorded-4)

	if _, err := Decode(bytes.NewReader(data)); err == nil {
		t.Error("Decode() accepted a block overrunning its recorded size")
	}
}

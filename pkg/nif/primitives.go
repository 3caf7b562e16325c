package nif

import (
	"io"
	"math"
)

// Numeric and boolean field types. Each implements the full Value contract;
// only Bool varies its width with the format version.

// Bool is a boolean field. It occupies 4 bytes up to format 4.0.0.2 and a
// single byte afterwards.
type Bool bool

func (v *Bool) Size(c *Context) int {
	if c.Version.ByteBools() {
		return 1
	}
	return 4
}

func (v *Bool) Read(r io.Reader, c *Context) error {
	var raw uint32
	if c.Version.ByteBools() {
		b, err := readU8(r)
		if err != nil {
			return err
		}
		raw = uint32(b)
	} else {
		u, err := readU32(r)
		if err != nil {
			return err
		}
		raw = u
	}
	*v = raw != 0
	return nil
}

func (v *Bool) Write(w io.Writer, c *Context) error {
	var raw uint32
	if *v {
		raw = 1
	}
	if c.Version.ByteBools() {
		return writeU8(w, uint8(raw))
	}
	return writeU32(w, raw)
}

func (v *Bool) Hash(*Context) (uint64, bool) {
	if *v {
		return 1, true
	}
	return 0, true
}

// Byte is an unsigned 8-bit field.
type Byte uint8

func (v *Byte) Size(*Context) int { return 1 }

func (v *Byte) Read(r io.Reader, _ *Context) error {
	b, err := readU8(r)
	*v = Byte(b)
	return err
}

func (v *Byte) Write(w io.Writer, _ *Context) error { return writeU8(w, uint8(*v)) }

func (v *Byte) Hash(*Context) (uint64, bool) { return uint64(*v), true }

// Short is a signed 16-bit field.
type Short int16

func (v *Short) Size(*Context) int { return 2 }

func (v *Short) Read(r io.Reader, _ *Context) error {
	u, err := readU16(r)
	*v = Short(u)
	return err
}

func (v *Short) Write(w io.Writer, _ *Context) error { return writeU16(w, uint16(*v)) }

func (v *Short) Hash(*Context) (uint64, bool) { return uint64(uint16(*v)), true }

// UShort is an unsigned 16-bit field.
type UShort uint16

func (v *UShort) Size(*Context) int { return 2 }

func (v *UShort) Read(r io.Reader, _ *Context) error {
	u, err := readU16(r)
	*v = UShort(u)
	return err
}

func (v *UShort) Write(w io.Writer, _ *Context) error { return writeU16(w, uint16(*v)) }

func (v *UShort) Hash(*Context) (uint64, bool) { return uint64(*v), true }

// Flags is a 16-bit bit-field. Identical wire shape to UShort; kept as a
// distinct type so block definitions read like the format description.
type Flags uint16

func (v *Flags) Size(*Context) int { return 2 }

func (v *Flags) Read(r io.Reader, _ *Context) error {
	u, err := readU16(r)
	*v = Flags(u)
	return err
}

func (v *Flags) Write(w io.Writer, _ *Context) error { return writeU16(w, uint16(*v)) }

func (v *Flags) Hash(*Context) (uint64, bool) { return uint64(*v), true }

// Int is a signed 32-bit field.
type Int int32

func (v *Int) Size(*Context) int { return 4 }

func (v *Int) Read(r io.Reader, _ *Context) error {
	i, err := readI32(r)
	*v = Int(i)
	return err
}

func (v *Int) Write(w io.Writer, _ *Context) error { return writeI32(w, int32(*v)) }

func (v *Int) Hash(*Context) (uint64, bool) { return uint64(uint32(*v)), true }

// UInt is an unsigned 32-bit field.
type UInt uint32

func (v *UInt) Size(*Context) int { return 4 }

func (v *UInt) Read(r io.Reader, _ *Context) error {
	u, err := readU32(r)
	*v = UInt(u)
	return err
}

func (v *UInt) Write(w io.Writer, _ *Context) error { return writeU32(w, uint32(*v)) }

func (v *UInt) Hash(*Context) (uint64, bool) { return uint64(*v), true }

// Float is a 32-bit IEEE 754 field.
type Float float32

func (v *Float) Size(*Context) int { return 4 }

func (v *Float) Read(r io.Reader, _ *Context) error {
	u, err := readU32(r)
	*v = Float(math.Float32frombits(u))
	return err
}

func (v *Float) Write(w io.Writer, _ *Context) error {
	return writeU32(w, math.Float32bits(float32(*v)))
}

func (v *Float) Hash(*Context) (uint64, bool) {
	return uint64(math.Float32bits(float32(*v))), true
}

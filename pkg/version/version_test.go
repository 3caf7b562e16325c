package version

import "testing"

func TestParse_FourComponents(t *testing.T) {
	got := Parse("3.14.15.29")
	if got != 0x030E0F1D {
		t.Errorf("Parse(3.14.15.29) = 0x%08X, want 0x030E0F1D", uint32(got))
	}
}

func TestParse_ShortForms(t *testing.T) {
	tests := []struct {
		in   string
		want Ordinal
	}{
		{"1.2", 0x01020000},
		{"20", 0x14000000},
		{"10.1.0", 0x0A010000},
		{"4.0.0.2", 0x04000002},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = 0x%08X, want 0x%08X", tt.in, uint32(got), uint32(tt.want))
		}
	}
}

func TestParse_IrregularLegacy(t *testing.T) {
	if got := Parse("3.03"); got != 0x03000300 {
		t.Errorf("Parse(3.03) = 0x%08X, want 0x03000300", uint32(got))
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, in := range []string{"", "10.0.1.3a", "1.2.3.4.5", "256.0.0.0", "-1.0", "a.b.c.d", "1..2"} {
		if got := Parse(in); got != Unsupported {
			t.Errorf("Parse(%q) = 0x%08X, want Unsupported", in, uint32(got))
		}
	}
}

func TestString_RoundTrip(t *testing.T) {
	// Pack/unpack must be a bijection on the supported catalogue, including
	// the irregular 3.03 case.
	for _, v := range All() {
		if got := Parse(v.String()); got != v {
			t.Errorf("Parse(%q) = 0x%08X, want 0x%08X", v.String(), uint32(got), uint32(v))
		}
	}
}

func TestString_Forms(t *testing.T) {
	tests := []struct {
		in   Ordinal
		want string
	}{
		{0x03000300, "3.03"},
		{0x03010000, "3.1"},
		{0x0A000100, "10.0.1.0"},
		{0x14010003, "20.1.0.3"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Ordinal(0x%08X).String() = %q, want %q", uint32(tt.in), got, tt.want)
		}
	}
}

func TestHeaderLine_ProductSplit(t *testing.T) {
	if got := Ordinal(0x04000002).HeaderLine(); got != "NetImmerse File Format, Version 4.0.0.2" {
		t.Errorf("HeaderLine() = %q", got)
	}
	if got := Ordinal(0x0A010000).HeaderLine(); got != "Gamebryo File Format, Version 10.1.0.0" {
		t.Errorf("HeaderLine() = %q", got)
	}
}

func TestThresholds(t *testing.T) {
	tests := []struct {
		name string
		fn   func(Ordinal) bool
		v    Ordinal
		want bool
	}{
		{"LinksByNumber below", Ordinal.LinksByNumber, 0x03010000, false},
		{"LinksByNumber at", Ordinal.LinksByNumber, 0x0303000D, true},
		{"ByteBools at threshold", Ordinal.ByteBools, 0x04000002, false},
		{"ByteBools above", Ordinal.ByteBools, 0x04020200, true},
		{"TypeTable below", Ordinal.HasTypeTable, 0x04020200, false},
		{"TypeTable at", Ordinal.HasTypeTable, 0x0A000100, true},
		{"Dummy band lower", Ordinal.HasBlockTagDummy, 0x0A000100, true},
		{"Dummy band upper", Ordinal.HasBlockTagDummy, 0x0A01006A, true},
		{"Dummy band past", Ordinal.HasBlockTagDummy, 0x0A020000, false},
		{"StringPool below", Ordinal.HasStringPool, 0x14000005, false},
		{"StringPool at", Ordinal.HasStringPool, 0x14010003, true},
		{"BlockSizes below", Ordinal.HasBlockSizes, 0x14010003, false},
		{"BlockSizes at", Ordinal.HasBlockSizes, 0x14020007, true},
		{"UserVersion at", Ordinal.HasUserVersion, 0x0A010000, true},
		{"EndianByte at", Ordinal.HasEndianByte, 0x14000004, true},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.v); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSupported(t *testing.T) {
	if !Supported(0x14010003) {
		t.Error("Supported(0x14010003) = false, want true")
	}
	if Supported(0x63000000) {
		t.Error("Supported(0x63000000) = true, want false")
	}
}

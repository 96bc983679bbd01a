package qirlower

import (
	"math"
	"testing"
)

// The rotation constants are part of the lowering contract: the physical
// phase of the emitted gate depends on reproducing them bit-for-bit.
func TestAngleConstantsExact(t *testing.T) {
	cases := []struct {
		name string
		val  float64
		text string
	}{
		{"pi", PiAngle, "3.141592653589793"},
		{"pi/2", HalfPiAngle, "1.5707963267948966"},
		{"pi/4", QuarterPiAngle, "0.7853981633974483"},
		{"-pi/2", -HalfPiAngle, "-1.5707963267948966"},
		{"-pi/4", -QuarterPiAngle, "-0.7853981633974483"},
	}
	for _, tc := range cases {
		if got := FormatAngle(tc.val); got != tc.text {
			t.Errorf("%s: FormatAngle = %q, want %q", tc.name, got, tc.text)
		}
	}

	if PiAngle != math.Pi {
		t.Error("PiAngle is not math.Pi")
	}
	if HalfPiAngle != math.Pi/2 {
		t.Error("HalfPiAngle is not math.Pi/2")
	}
	if QuarterPiAngle != math.Pi/4 {
		t.Error("QuarterPiAngle is not math.Pi/4")
	}
}

func TestFormatAngleZero(t *testing.T) {
	if got := FormatAngle(0); got != "0" {
		t.Errorf("FormatAngle(0) = %q, want %q", got, "0")
	}
}

func TestParseAngle(t *testing.T) {
	cases := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1.5707", 1.5707, true},
		{"-0.5", -0.5, true},
		{"3.14e-2", 3.14e-2, true},
		{"pi", math.Pi, true},
		{"pi/2", math.Pi / 2, true},
		{"pi/4", math.Pi / 4, true},
		{"-pi", -math.Pi, true},
		{"-pi/2", -math.Pi / 2, true},
		{"2*pi", 2 * math.Pi, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"3pi/4", 3 * math.Pi / 4, true},
		{"", 0, false},
		{"tau", 0, false},
		{"pi/0", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseAngle(tc.input)
		if ok != tc.ok {
			t.Errorf("ParseAngle(%q): ok = %v, want %v", tc.input, ok, tc.ok)
			continue
		}
		if ok && math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("ParseAngle(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestFormatPiRoundTrip(t *testing.T) {
	for _, expr := range []string{"pi", "pi/2", "pi/4", "-pi", "-pi/2", "3*pi/4"} {
		val, ok := ParseAngle(expr)
		if !ok {
			t.Fatalf("ParseAngle(%q) failed", expr)
		}
		if got := FormatPi(val); got != expr {
			t.Errorf("FormatPi(ParseAngle(%q)) = %q", expr, got)
		}
	}
	// Values with no pi form fall back to full precision.
	if got := FormatPi(0.25); got != "0.25" {
		t.Errorf("FormatPi(0.25) = %q", got)
	}
}

package qirlower

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Angle constants used by the rewrite rules. Every rotation angle in a rule
// body is an exact rational multiple of π realized as the nearest
// representable double; the physical phase of the emitted gate depends on
// reproducing these bit-for-bit.
const (
	PiAngle        = math.Pi
	HalfPiAngle    = math.Pi / 2
	QuarterPiAngle = math.Pi / 4
)

// FormatAngle renders an angle for emission: the shortest decimal form that
// round-trips the exact double, e.g. π/2 as 1.5707963267948966 and π/4 as
// 0.7853981633974483.
func FormatAngle(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// anglePattern matches a single angle expression in program text: numbers,
// pi expressions, or combinations. Examples: "1.5707", "pi", "pi/2",
// "3*pi/4", "-pi", "3.14e-2".
const anglePattern = `-?(?:\d*\.?\d*\*?pi(?:/\d+\.?\d*)?|\d+\.?\d*(?:[eE][+\-]?\d+)?)`

// piExprRegex matches expressions like: pi, 2pi, 2*pi, pi/2, 3pi/4, -pi/2.
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// ParseAngle parses a single angle expression, supporting plain numbers and
// pi expressions. Returns the parsed value and true on success.
func ParseAngle(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	// Plain number first
	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	s = strings.ToLower(s)
	matches := piExprRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, false
	}

	negative := matches[1] == "-"
	coeffStr := matches[2]
	denomStr := matches[3]

	coeff := 1.0
	if coeffStr != "" {
		var err error
		coeff, err = strconv.ParseFloat(coeffStr, 64)
		if err != nil {
			return 0, false
		}
	}

	result := coeff * math.Pi

	if denomStr != "" {
		denom, err := strconv.ParseFloat(denomStr, 64)
		if err != nil || denom == 0 {
			return 0, false
		}
		result /= denom
	}

	if negative {
		result = -result
	}
	return result, true
}

// FormatPi formats an angle for program text, using pi notation when the
// value is a recognized pi fraction.
func FormatPi(val float64) string {
	type piForm struct {
		value   float64
		display string
	}
	piForms := []piForm{
		{2 * math.Pi, "2*pi"},
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 3, "pi/3"},
		{math.Pi / 4, "pi/4"},
		{math.Pi / 6, "pi/6"},
		{math.Pi / 8, "pi/8"},
		{3 * math.Pi / 4, "3*pi/4"},
		{3 * math.Pi / 2, "3*pi/2"},
	}

	for _, pf := range piForms {
		if math.Abs(val-pf.value) < 1e-12 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-12 {
			return "-" + pf.display
		}
	}

	return FormatAngle(val)
}

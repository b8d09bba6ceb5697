package report

import (
	"math"
	"strconv"
	"strings"
)

// FormatDouble prints x as plain decimal with at least one fractional digit
// for 1e-3 <= |x| < 1e7, otherwise as d.dddE±n (2.0, 0.25, 1.0E7). Digits are
// the shortest that round-trip.
func FormatDouble(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		if math.Signbit(x) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := math.Abs(x)
	if abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(x, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	s := strconv.FormatFloat(x, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	e, _ := strconv.Atoi(exp)
	return mantissa + "E" + strconv.Itoa(e)
}

func joinDoubles(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatDouble(v)
	}
	return strings.Join(parts, " ")
}

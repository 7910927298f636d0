package numeric

import (
	"math"
	"strconv"
	"strings"
)

// ParseDecimal coerces a raw value (typically from a JSON body where numbers
// may arrive as float64 or string) into a non-negative decimal. Invalid or
// empty input yields 0 so form edits never fail mid-keystroke.
func ParseDecimal(v interface{}) float64 {
	f := toFloat(v)
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	return f
}

// ParseUint coerces a raw value into a non-negative integer. Invalid input
// yields 0. Fractional values are truncated.
func ParseUint(v interface{}) int {
	f := toFloat(v)
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	return int(f)
}

// ParseNumber coerces a raw value into a float64 with strict semantics:
// a missing, empty, or unparseable value yields NaN rather than 0, so
// callers can distinguish "absent" from "zero" before submission.
func ParseNumber(v interface{}) float64 {
	return toFloat(v)
}

// IsNaN reports whether f is the NaN marker produced by ParseNumber.
func IsNaN(f float64) bool {
	return math.IsNaN(f)
}

// Round2 rounds to two decimal places for monetary display.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Round3 rounds to three decimal places for weight display.
func Round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

// IDString normalizes a backend identifier of unknown type (number or
// string) into its canonical string form so ids can be compared across
// numeric/string mismatches.
func IDString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		if val == math.Trunc(val) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return IDString(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return ""
	}
}

func toFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

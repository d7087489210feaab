package validation

import (
	"math"
	"strconv"
	"strings"
)

// TryParseNumber converts a collected value into a float64. Strings are
// trimmed before parsing; empty strings, booleans, NaN and infinities are
// rejected so numeric rules never compare against a meaningless number.
func TryParseNumber(value any) (float64, bool) {
	var out float64
	switch v := value.(type) {
	case float64:
		out = v
	case float32:
		out = float64(v)
	case int:
		out = float64(v)
	case int32:
		out = float64(v)
	case int64:
		out = float64(v)
	case uint:
		out = float64(v)
	case uint32:
		out = float64(v)
	case uint64:
		out = float64(v)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		out = parsed
	default:
		return 0, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}

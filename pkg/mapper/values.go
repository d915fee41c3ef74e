// pkg/mapper/values.go
package mapper

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeConvertible is implemented by store timestamp values that expose a
// conversion to time.Time. The Firestore client normally hands back
// time.Time directly; this covers wrapper types from other SDK surfaces.
type TimeConvertible interface {
	ToTime() time.Time
}

// asString converts an arbitrary field value to its string form
func asString(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return formatNumber(val)
	default:
		// Use Sprint as a fallback
		return fmt.Sprintf("%v", val)
	}
}

// asFloat attempts to read a field value as a number
func asFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		cleaned := strings.TrimSpace(val)
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// formatNumber renders a float without a trailing ".0" for whole values
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// numericOrZero coerces a field to a numeric string, defaulting to "0" for
// missing or non-numeric values. Used for prep/cook times.
func numericOrZero(v interface{}, present bool) string {
	if !present || v == nil {
		return "0"
	}
	f, ok := asFloat(v)
	if !ok {
		return "0"
	}
	return formatNumber(f)
}

// numericOrRaw normalizes a numeric field but passes malformed values
// through untouched so validation can report the original text. Missing
// values map to the empty string.
func numericOrRaw(v interface{}, present bool) string {
	if !present || v == nil {
		return ""
	}
	if f, ok := asFloat(v); ok {
		return formatNumber(f)
	}
	return asString(v)
}

// joinTags serializes a tag list to a comma-joined string. Scalar strings
// pass through unchanged; anything else stringifies element-wise.
func joinTags(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, asString(item))
		}
		return strings.Join(parts, ",")
	default:
		return asString(v)
	}
}

// asTimestamp converts a store timestamp to an ISO-8601 string. It never
// fails: unknown representations degrade to their stringified form and
// absent values to "".
func asTimestamp(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case TimeConvertible:
		return val.ToTime().UTC().Format(time.RFC3339)
	case string:
		return val
	default:
		return asString(v)
	}
}

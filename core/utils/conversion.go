package utils

import (
	"fmt"
	"strconv"
)

// ToInt64 converts values of unknown shape to int64 using explicit type switching.
// Non-numeric and missing values coerce to 0 rather than failing; JSON numbers
// arrive as float64 and are truncated.
func ToInt64(val any) int64 {
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint64:
		return int64(v)
	case uint32:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	case string:
		i, _ := strconv.ParseInt(v, 10, 64)
		return i
	case []byte:
		i, _ := strconv.ParseInt(string(v), 10, 64)
		return i
	case nil:
		return 0
	default:
		s := fmt.Sprintf("%v", v)
		i, _ := strconv.ParseInt(s, 10, 64)
		return i
	}
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// OptString returns a pointer to the string form of val, or nil when the
// value is absent or empty. Used for nullable catalog columns.
func OptString(val any) *string {
	if val == nil {
		return nil
	}
	s, ok := val.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

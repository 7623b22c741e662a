package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParsePRNumber coerces a loosely typed PR number (JSON number, int or numeric string).
// Zero, negative and fractional values are rejected.
func ParsePRNumber(v interface{}) (int, bool) {
	var n int
	switch val := v.(type) {
	case int:
		n = val
	case int64:
		n = int(val)
	case float64:
		if val != math.Trunc(val) {
			return 0, false
		}
		n = int(val)
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			return 0, false
		}
		n = int(i)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, false
		}
		n = i
	default:
		return 0, false
	}
	if n <= 0 {
		return 0, false
	}
	return n, true
}

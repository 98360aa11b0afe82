package records

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// coerceInt coerces a raw JSON value to an int. Integral JSON numbers and
// strings holding a base-10 integer (surrounding whitespace allowed) are
// accepted; booleans, null, fractions, objects and arrays are not.
func coerceInt(field string, raw json.RawMessage) (int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, coercionError(field, "integer", raw)
	}
	switch c := trimmed[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0, coercionError(field, "integer", raw)
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, coercionError(field, "integer", raw)
		}
		return n, nil
	case c == '-' || (c >= '0' && c <= '9'):
		if n, err := strconv.Atoi(string(trimmed)); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(string(trimmed), 64)
		if err != nil || f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
			return 0, coercionError(field, "integer", raw)
		}
		return int(f), nil
	default:
		return 0, coercionError(field, "integer", raw)
	}
}

func coerceString(field string, raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", coercionError(field, "string", raw)
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", coercionError(field, "string", raw)
	}
	return s, nil
}

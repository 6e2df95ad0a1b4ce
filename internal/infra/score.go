package infra

import (
	"math"
	"strconv"
	"strings"
)

// CoerceScore converts a Mythic+ score as delivered by the game APIs into the
// integer the schema stores. The APIs hand back floats (673.312) and sometimes
// stringified floats; the stored value is rounded to the nearest integer.
// NaN, infinities, non-numeric input and negatives all clamp to zero.
func CoerceScore(v interface{}) int {
	var f float64
	switch s := v.(type) {
	case nil:
		return 0
	case float64:
		f = s
	case float32:
		f = float64(s)
	case int:
		f = float64(s)
	case int64:
		f = float64(s)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int(math.Round(f))
}

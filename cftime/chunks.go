package cftime

import (
	"fmt"
	"strconv"
	"strings"
)

// TranslateTimeChunk resolves the symbolic values a chunk specification may
// carry on its "time" entries: -1 becomes timeSize (the full axis length)
// and "Nyear" strings become int(N * days per year) for the calendar
// (noleap 365, 360_day 360, all_leap 366, standard 365.25). Nested maps,
// as produced by decoding per-variable chunk blocks from YAML, are
// translated recursively. The input is never mutated; the translated copy
// is returned. A "time" string value without the "year" suffix, or with a
// non-integer count, returns ErrChunk.
func TranslateTimeChunk(chunks map[string]any, cal Calendar, timeSize int) (map[string]any, error) {
	out := make(map[string]any, len(chunks))
	for k, v := range chunks {
		switch val := v.(type) {
		case map[string]any:
			sub, err := TranslateTimeChunk(val, cal, timeSize)
			if err != nil {
				return nil, err
			}
			out[k] = sub
		case int:
			if k == "time" && val == -1 {
				out[k] = timeSize
			} else {
				out[k] = val
			}
		case string:
			if k != "time" {
				out[k] = val
				continue
			}
			n, ok := strings.CutSuffix(val, "year")
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrChunk, val)
			}
			years, err := strconv.Atoi(strings.TrimSpace(n))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrChunk, val)
			}
			out[k] = int(float64(years) * cal.daysPerYear())
		default:
			out[k] = v
		}
	}
	return out, nil
}

package ncio

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ctessum/cdf"
)

// AttrsView is a read-only window onto the global attributes of a NetCDF
// file, used when comparing attributes across neighbouring datasets
// without loading their data. Close it when done.
type AttrsView struct {
	path string
	f    *os.File
	ff   *cdf.File
}

// OpenAttrs opens the file's header for attribute queries.
func OpenAttrs(path string) (*AttrsView, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ncio: opening %s: %w", path, err)
	}
	ff, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("ncio: reading %s: %w", path, err)
	}
	return &AttrsView{path: path, f: f, ff: ff}, nil
}

// Get returns the named global attribute rendered as a string, and whether
// it is present.
func (v *AttrsView) Get(key string) (string, bool) {
	raw := v.ff.Header.GetAttribute("", key)
	if raw == nil {
		return "", false
	}
	return attrString(raw), true
}

// Path returns the file the view reads from.
func (v *AttrsView) Path() string { return v.path }

// Close releases the underlying file.
func (v *AttrsView) Close() error { return v.f.Close() }

// attrString renders an attribute value the way it would be spelled in a
// string attribute: text as-is, numeric vectors space-joined.
func attrString(raw any) string {
	switch val := raw.(type) {
	case string:
		return val
	case []float64:
		parts := make([]string, len(val))
		for i, x := range val {
			parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
		}
		return strings.Join(parts, " ")
	case []float32:
		parts := make([]string, len(val))
		for i, x := range val {
			parts[i] = strconv.FormatFloat(float64(x), 'g', -1, 32)
		}
		return strings.Join(parts, " ")
	case []int32:
		parts := make([]string, len(val))
		for i, x := range val {
			parts[i] = strconv.FormatInt(int64(x), 10)
		}
		return strings.Join(parts, " ")
	case []int16:
		parts := make([]string, len(val))
		for i, x := range val {
			parts[i] = strconv.FormatInt(int64(x), 10)
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(raw)
	}
}

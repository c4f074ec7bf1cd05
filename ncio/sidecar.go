package ncio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/cdf"

	"github.com/Youssef-Bakr/xscen/cftime"
	"github.com/Youssef-Bakr/xscen/dataset"
)

// timeUnits is the CF encoding used for calendar-date axes.
const timeUnits = "days since 1970-01-01"

// WriteCoords stores the given coordinates as a side-car NetCDF3 file at
// path, creating parent directories as needed. Each coordinate becomes a
// float64 variable over its dimension, carrying its attributes; date axes
// are encoded as days since 1970-01-01 with a calendar attribute. Global
// attributes are copied from attrs when non-nil; the "coords" attribute
// always lists the stored variables.
func WriteCoords(path string, coords []*dataset.Coord, attrs *dataset.Attrs) error {
	if len(coords) == 0 {
		return ErrNoCoords
	}
	var dimNames []string
	var dimLens []int
	sizes := make(map[string]int)
	names := make([]string, 0, len(coords))
	for _, c := range coords {
		if c.Kind == dataset.KindString {
			return fmt.Errorf("%w: %q is a string axis", ErrCoordKind, c.Name)
		}
		if have, ok := sizes[c.Dim]; ok {
			if have != c.Len() {
				return fmt.Errorf("%w: dimension %q seen as %d and %d", ErrDim, c.Dim, have, c.Len())
			}
		} else {
			sizes[c.Dim] = c.Len()
			dimNames = append(dimNames, c.Dim)
			dimLens = append(dimLens, c.Len())
		}
		names = append(names, c.Name)
	}

	h := cdf.NewHeader(dimNames, dimLens)
	for _, c := range coords {
		h.AddVariable(c.Name, []string{c.Dim}, []float64{})
		c.Attrs.Range(func(k, v string) bool {
			if c.Kind == dataset.KindTime && (k == "units" || k == "calendar") {
				return true // replaced by the encoding below
			}
			h.AddAttribute(c.Name, k, v)
			return true
		})
		if c.Kind == dataset.KindTime {
			h.AddAttribute(c.Name, "units", timeUnits)
			cal := cftime.Standard
			if len(c.Times) > 0 {
				cal = c.Times[0].Cal
			}
			h.AddAttribute(c.Name, "calendar", cal.String())
		}
	}
	if attrs != nil {
		attrs.Range(func(k, v string) bool {
			if k != "coords" {
				h.AddAttribute("", k, v)
			}
			return true
		})
	}
	h.AddAttribute("", "coords", strings.Join(names, " "))
	h.Define()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ncio: creating %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ncio: creating %s: %w", path, err)
	}
	defer f.Close()
	ff, err := cdf.Create(f, h)
	if err != nil {
		return fmt.Errorf("ncio: writing header of %s: %w", path, err)
	}
	for _, c := range coords {
		buf, err := encodeCoord(c)
		if err != nil {
			return err
		}
		w := ff.Writer(c.Name, nil, nil)
		// The cdf strider signals a completed write of a fixed-size
		// variable with io.EOF; only other errors are failures.
		if _, err := w.Write(buf); err != nil && err != io.EOF {
			return fmt.Errorf("ncio: writing %q to %s: %w", c.Name, path, err)
		}
	}
	return nil
}

// encodeCoord renders the coordinate payload as float64s.
func encodeCoord(c *dataset.Coord) ([]float64, error) {
	switch c.Kind {
	case dataset.KindFloat:
		return append([]float64(nil), c.Floats...), nil
	case dataset.KindTime:
		out := make([]float64, len(c.Times))
		for i, t := range c.Times {
			epoch := cftime.Date{Year: 1970, Month: 1, Day: 1, Cal: t.Cal}
			days, err := cftime.EncodeDays(t, epoch)
			if err != nil {
				return nil, fmt.Errorf("ncio: encoding %q: %w", c.Name, err)
			}
			out[i] = days
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrCoordKind, c.Name)
	}
}

// ReadCoords loads a side-car coordinate file into a coordinate-only
// dataset. The variables listed by the global "coords" attribute are read;
// files lacking it are read variable by variable. Axes carrying a
// "days since" units attribute come back as calendar-date coordinates with
// the encoding attributes stripped.
func ReadCoords(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ncio: opening %s: %w", path, err)
	}
	defer f.Close()
	ff, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("ncio: reading %s: %w", path, err)
	}

	var names []string
	if v := ff.Header.GetAttribute("", "coords"); v != nil {
		if s, ok := v.(string); ok {
			names = strings.Fields(s)
		}
	}
	if len(names) == 0 {
		names = ff.Header.Variables()
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCoords, path)
	}

	ds := dataset.New()
	for _, name := range names {
		c, err := readCoord(ff, name, path)
		if err != nil {
			return nil, err
		}
		if err := ds.SetCoord(c); err != nil {
			return nil, fmt.Errorf("ncio: reading %s: %w", path, err)
		}
	}
	return ds, nil
}

// readCoord reads one coordinate variable with its attributes.
func readCoord(ff *cdf.File, name, path string) (*dataset.Coord, error) {
	lens := ff.Header.Lengths(name)
	if len(lens) == 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrNoVar, name, path)
	}
	n := 1
	for _, l := range lens {
		n *= l
	}
	r := ff.Reader(name, nil, nil)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("ncio: reading %q from %s: %w", name, path, err)
	}
	vals, err := toFloats(buf)
	if err != nil {
		return nil, fmt.Errorf("%w (variable %q in %s)", err, name, path)
	}

	dim := name
	if dims := ff.Header.Dimensions(name); len(dims) > 0 {
		dim = dims[0]
	}
	attrs := dataset.NewAttrs()
	for _, k := range ff.Header.Attributes(name) {
		attrs.Set(k, attrString(ff.Header.GetAttribute(name, k)))
	}

	if units, ok := attrs.Get("units"); ok && strings.HasPrefix(units, "days since ") {
		cal := cftime.Standard
		if cs, ok := attrs.Get("calendar"); ok {
			if parsed, err := cftime.ParseCalendar(cs); err == nil {
				cal = parsed
			}
		}
		epoch, err := cftime.ParseDate(strings.TrimPrefix(units, "days since "), cal)
		if err != nil {
			return nil, fmt.Errorf("ncio: time units %q of %q in %s: %w", units, name, path, err)
		}
		times := make([]cftime.Date, len(vals))
		for i, d := range vals {
			times[i] = cftime.DecodeDays(d, epoch)
		}
		attrs.Del("units")
		attrs.Del("calendar")
		c := dataset.NewTimeCoord(name, dim, times)
		c.Attrs = attrs
		return c, nil
	}

	c := dataset.NewFloatCoord(name, dim, vals)
	c.Attrs = attrs
	return c, nil
}

// toFloats widens the payload types NetCDF3 can store into float64.
func toFloats(buf any) ([]float64, error) {
	switch b := buf.(type) {
	case []float64:
		return append([]float64(nil), b...), nil
	case []float32:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, nil
	case []int32:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, nil
	case []int16:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrPayload, buf)
	}
}

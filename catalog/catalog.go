package catalog

import (
	"fmt"
	"strings"

	"github.com/Youssef-Bakr/xscen/dataset"
)

// Attrs returns the catalog attributes of ds, prefix stripped. A nil
// dataset or one without catalog attributes yields an empty map.
func Attrs(ds *dataset.Dataset) map[string]string {
	out := map[string]string{}
	if ds == nil {
		return out
	}
	for _, key := range ds.Attrs().Keys() {
		if name, ok := strings.CutPrefix(key, Prefix); ok {
			out[name] = ds.Attrs().Value(key)
		}
	}
	return out
}

// GenerateID derives the dataset identifier from its catalog
// attributes: the id columns present on the dataset, in their fixed
// order, joined with underscores.
func GenerateID(ds *dataset.Dataset) (string, error) {
	attrs := Attrs(ds)
	if len(attrs) == 0 {
		return "", fmt.Errorf("%w: nothing under %q", ErrNoCatAttrs, Prefix)
	}
	parts := make([]string, 0, len(idColumns))
	for _, col := range idColumns {
		if v, ok := attrs[col]; ok && v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "_"), nil
}

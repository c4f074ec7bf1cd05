package catalog

import "errors"

// Prefix marks the global attributes owned by the catalog.
const Prefix = "cat:"

// ErrNoCatAttrs is returned by GenerateID when the dataset carries no
// catalog attributes at all.
var ErrNoCatAttrs = errors.New("catalog: no catalog attributes")

// idColumns is the fixed column order of the dataset identifier.
// Absent columns are skipped, the rest joined with underscores.
var idColumns = []string{
	"bias_adjust_project",
	"mip_era",
	"activity",
	"driving_model",
	"institution",
	"source",
	"experiment",
	"member",
	"domain",
}

package cleanup

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Youssef-Bakr/xscen/dataset"
)

var (
	// ErrNilDataset is returned when Apply is handed a nil dataset.
	ErrNilDataset = errors.New("cleanup: nil dataset")

	// ErrConfig flags an invalid configuration block.
	ErrConfig = errors.New("cleanup: invalid config")

	// ErrMissingPolicy is returned when missing_by_var does not cover
	// every data variable; the message lists the uncovered ones.
	ErrMissingPolicy = errors.New("cleanup: missing_by_var must cover every variable")
)

// sentinel stands in for missing values during calendar conversion so
// the per-variable policies can find them afterwards.
const sentinel = -9999.0

// Config drives Apply. Every block is optional; a zero block disables
// its stage. The YAML form mirrors the field tags.
type Config struct {
	VariablesAndUnits    map[string]string            `yaml:"variables_and_units"`
	ConvertCalendar      *CalendarBlock               `yaml:"convert_calendar"`
	MissingByVar         map[string]MissingPolicy     `yaml:"missing_by_var"`
	MaybeUnstack         *UnstackBlock                `yaml:"maybe_unstack"`
	RoundVar             map[string]int               `yaml:"round_var"`
	CommonAttrsOnly      []string                     `yaml:"common_attrs_only"`
	ToLevel              string                       `yaml:"to_level"`
	AttrsToRemove        map[string][]string          `yaml:"attrs_to_remove"`
	RemoveAllAttrsExcept map[string][]string          `yaml:"remove_all_attrs_except"`
	AddAttrs             map[string]map[string]string `yaml:"add_attrs"`
	ChangeAttrPrefix     string                       `yaml:"change_attr_prefix"`

	// CommonDatasets takes part in the common_attrs_only stage next to
	// the file paths. Only reachable from code, never serialized.
	CommonDatasets []*dataset.Dataset `yaml:"-"`

	// Logger receives the stage log. Nil means silent.
	Logger *zap.Logger `yaml:"-"`
}

// CalendarBlock configures the convert_calendar stage.
type CalendarBlock struct {
	Target  string `yaml:"target"`
	AlignOn string `yaml:"align_on"`
	Seed    *int64 `yaml:"seed"`
}

// UnstackBlock configures the maybe_unstack stage. Rechunk values pass
// through cftime.TranslateTimeChunk, so "time" entries may be -1 or
// "Nyear" strings.
type UnstackBlock struct {
	Stacked    bool           `yaml:"stack_drop_nans"`
	Dim        string         `yaml:"dim"`
	CoordsPath string         `yaml:"coords"`
	Rechunk    map[string]any `yaml:"rechunk"`
}

// MissingPolicy says how one variable's sentinel cells are repaired
// after calendar conversion: linear interpolation in time, or a fixed
// fill value. In YAML it is either the string "interpolate" or a
// number.
type MissingPolicy struct {
	Interpolate bool
	Fill        float64
}

// UnmarshalYAML accepts the two spellings. The numeric decode runs
// first: yaml.v3 coerces any scalar into a string, so the string
// branch would otherwise swallow numbers.
func (p *MissingPolicy) UnmarshalYAML(node *yaml.Node) error {
	var f float64
	if err := node.Decode(&f); err == nil {
		*p = MissingPolicy{Fill: f}
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("%w: missing policy must be \"interpolate\" or a number", ErrConfig)
	}
	if s != "interpolate" {
		return fmt.Errorf("%w: unknown missing policy %q", ErrConfig, s)
	}
	*p = MissingPolicy{Interpolate: true}
	return nil
}

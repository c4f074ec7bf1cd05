package cleanup

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Youssef-Bakr/xscen/calconv"
	"github.com/Youssef-Bakr/xscen/catalog"
	"github.com/Youssef-Bakr/xscen/cftime"
	"github.com/Youssef-Bakr/xscen/dataset"
	"github.com/Youssef-Bakr/xscen/ncio"
	"github.com/Youssef-Bakr/xscen/stack"
	"github.com/Youssef-Bakr/xscen/units"
)

// LoadConfig reads a pipeline configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cleanup: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfig, path, err)
	}
	return &cfg, nil
}

// Apply runs the configured stages, in their fixed order, over a copy
// of ds and returns the cleaned dataset.
func Apply(ds *dataset.Dataset, cfg *Config) (*dataset.Dataset, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	if cfg == nil {
		cfg = &Config{}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	p := &pipeline{out: ds.Clone(), cfg: cfg, log: log}
	for _, stage := range []func() error{
		p.changeUnits,
		p.convertCalendar,
		p.maybeUnstack,
		p.roundVars,
		p.commonAttrsOnly,
		p.toLevel,
		p.removeAttrs,
		p.keepOnlyAttrs,
		p.addAttrs,
		p.changePrefix,
	} {
		if err := stage(); err != nil {
			return nil, err
		}
	}
	return p.out, nil
}

// MatchAttr tests an attribute name against one pattern from the
// attribute stages: a trailing "*" turns the rest into a substring
// test, a leading "^" into a prefix test, anything else must match
// exactly.
func MatchAttr(pattern, name string) bool {
	if pattern == "" {
		return false
	}
	if rest, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.Contains(name, rest)
	}
	if rest, ok := strings.CutPrefix(pattern, "^"); ok {
		return strings.HasPrefix(name, rest)
	}
	return pattern == name
}

type pipeline struct {
	out *dataset.Dataset
	cfg *Config
	log *zap.Logger
}

func (p *pipeline) changeUnits() error {
	if len(p.cfg.VariablesAndUnits) == 0 {
		return nil
	}
	p.log.Info("converting units", zap.Any("targets", p.cfg.VariablesAndUnits))
	out, err := units.ChangeUnits(p.out, p.cfg.VariablesAndUnits, units.WithLogger(p.log))
	if err != nil {
		return err
	}
	p.out = out
	return nil
}

func (p *pipeline) maybeUnstack() error {
	blk := p.cfg.MaybeUnstack
	if blk == nil {
		return nil
	}
	var rechunk map[string]int
	if len(blk.Rechunk) > 0 {
		cal, ok := calconv.GetCalendar(p.out)
		if !ok {
			cal = cftime.Standard
		}
		size := 0
		if times, ok := p.out.Times(); ok {
			size = len(times)
		}
		translated, err := cftime.TranslateTimeChunk(blk.Rechunk, cal, size)
		if err != nil {
			return err
		}
		rechunk = make(map[string]int, len(translated))
		for k, v := range translated {
			n, ok := v.(int)
			if !ok {
				return fmt.Errorf("%w: rechunk %q is not an integer", ErrConfig, k)
			}
			rechunk[k] = n
		}
	}
	opts := []stack.Option{stack.WithLogger(p.log)}
	if blk.Dim != "" {
		opts = append(opts, stack.WithDim(blk.Dim))
	}
	if blk.CoordsPath != "" {
		opts = append(opts, stack.WithCoordsPath(blk.CoordsPath))
	}
	out, err := stack.MaybeUnstack(p.out, blk.Stacked, rechunk, opts...)
	if err != nil {
		return err
	}
	p.out = out
	return nil
}

func (p *pipeline) roundVars() error {
	for _, name := range sortedKeys(p.cfg.RoundVar) {
		if err := p.out.Round(name, p.cfg.RoundVar[name]); err != nil {
			return fmt.Errorf("cleanup: round_var: %w", err)
		}
	}
	return nil
}

// commonAttrsOnly keeps only the global attributes whose value is the
// same across this dataset, the live comparison datasets and the
// side-car files. The date range is dropped unconditionally, then the
// catalog id is regenerated from what remains.
func (p *pipeline) commonAttrsOnly() error {
	if len(p.cfg.CommonAttrsOnly) == 0 && len(p.cfg.CommonDatasets) == 0 {
		return nil
	}
	drop := func(lookup func(string) (string, bool)) {
		for _, key := range p.out.Attrs().Keys() {
			other, ok := lookup(key)
			if !ok || key == "cat:date_start" || key == "cat:date_end" ||
				other != p.out.Attrs().Value(key) {
				p.out.Attrs().Del(key)
			}
		}
	}
	for _, other := range p.cfg.CommonDatasets {
		drop(other.Attrs().Get)
	}
	for _, path := range p.cfg.CommonAttrsOnly {
		view, err := ncio.OpenAttrs(path)
		if err != nil {
			return fmt.Errorf("cleanup: common_attrs_only: %w", err)
		}
		drop(view.Get)
		_ = view.Close()
	}
	if id, err := catalog.GenerateID(p.out); err == nil {
		p.out.Attrs().Set("cat:id", id)
	} else {
		p.log.Debug("no catalog attrs left, id not regenerated")
	}
	return nil
}

func (p *pipeline) toLevel() error {
	if p.cfg.ToLevel == "" {
		return nil
	}
	p.out.Attrs().Set("cat:processing_level", p.cfg.ToLevel)
	return nil
}

func (p *pipeline) removeAttrs() error {
	for _, target := range sortedKeys(p.cfg.AttrsToRemove) {
		attrs, err := p.attrsOf(target)
		if err != nil {
			return err
		}
		for _, key := range attrs.Keys() {
			for _, pattern := range p.cfg.AttrsToRemove[target] {
				if MatchAttr(pattern, key) {
					attrs.Del(key)
					break
				}
			}
		}
	}
	return nil
}

func (p *pipeline) keepOnlyAttrs() error {
	for _, target := range sortedKeys(p.cfg.RemoveAllAttrsExcept) {
		attrs, err := p.attrsOf(target)
		if err != nil {
			return err
		}
		for _, key := range attrs.Keys() {
			keep := false
			for _, pattern := range p.cfg.RemoveAllAttrsExcept[target] {
				if MatchAttr(pattern, key) {
					keep = true
					break
				}
			}
			if !keep {
				attrs.Del(key)
			}
		}
	}
	return nil
}

func (p *pipeline) addAttrs() error {
	for _, target := range sortedKeys(p.cfg.AddAttrs) {
		attrs, err := p.attrsOf(target)
		if err != nil {
			return err
		}
		for _, key := range sortedKeys(p.cfg.AddAttrs[target]) {
			attrs.Set(key, p.cfg.AddAttrs[target][key])
		}
	}
	return nil
}

// changePrefix rewrites "cat:" inside global attribute keys. A key whose
// rewrite comes out empty is removed outright.
func (p *pipeline) changePrefix() error {
	prefix := p.cfg.ChangeAttrPrefix
	if prefix == "" {
		return nil
	}
	for _, key := range p.out.Attrs().Keys() {
		if !strings.Contains(key, catalog.Prefix) {
			continue
		}
		newName := strings.ReplaceAll(key, catalog.Prefix, prefix)
		switch {
		case newName == key:
		case newName == "":
			p.out.Attrs().Del(key)
		default:
			p.out.Attrs().Rename(key, newName)
		}
	}
	return nil
}

// attrsOf resolves an attribute-stage target: the reserved name
// "global", or a variable.
func (p *pipeline) attrsOf(target string) (*dataset.Attrs, error) {
	if target == "global" {
		return p.out.Attrs(), nil
	}
	v, ok := p.out.Var(target)
	if !ok {
		return nil, fmt.Errorf("cleanup: %w: %q", dataset.ErrNoSuchVar, target)
	}
	return v.Attrs, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

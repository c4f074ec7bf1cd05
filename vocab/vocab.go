package vocab

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

//go:embed cvs/*.json
var builtin embed.FS

// registry holds the built-in vocabularies, populated once during init
// and read-only afterwards.
var registry = map[string]*Vocabulary{}

func init() {
	entries, err := builtin.ReadDir("cvs")
	if err != nil {
		panic(fmt.Sprintf("vocab: reading embedded tables: %v", err))
	}
	for _, e := range entries {
		data, err := builtin.ReadFile("cvs/" + e.Name())
		if err != nil {
			panic(fmt.Sprintf("vocab: embedded table %s: %v", e.Name(), err))
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		v, err := parse(name, data)
		if err != nil {
			panic(fmt.Sprintf("vocab: embedded table %s: %v", e.Name(), err))
		}
		registry[name] = v
	}
}

// Vocabulary is one loaded mapping table. Zero value is not usable;
// obtain instances from Get or LoadDir.
type Vocabulary struct {
	name    string
	isRegex bool
	keys    []string // file order, drives regex precedence
	values  map[string]Value
	res     []*regexp.Regexp // parallel to keys when isRegex
}

// Get returns the built-in vocabulary with that name.
func Get(name string) (*Vocabulary, bool) {
	v, ok := registry[name]
	return v, ok
}

// Names lists the built-in vocabularies, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LoadDir parses every *.json mapping file in dir. A malformed file
// fails the whole load with an error naming it.
func LoadDir(dir string) (map[string]*Vocabulary, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("vocab: %s: %w", dir, err)
	}
	sort.Strings(matches)
	out := make(map[string]*Vocabulary, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("vocab: %s: %w", path, err)
		}
		name := strings.TrimSuffix(filepath.Base(path), ".json")
		v, err := parse(name, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out[name] = v
	}
	return out, nil
}

// Name reports the vocabulary's name, the mapping file's base name.
func (v *Vocabulary) Name() string { return v.name }

// IsRegex reports whether keys are matched as regular expressions.
func (v *Vocabulary) IsRegex() bool { return v.isRegex }

// Keys returns the mapping's keys in file order.
func (v *Vocabulary) Keys() []string {
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Raw returns a copy of the underlying mapping for introspection.
func (v *Vocabulary) Raw() map[string]Value {
	out := make(map[string]Value, len(v.values))
	for k, val := range v.values {
		if val.IsList {
			list := make([]string, len(val.List))
			copy(list, val.List)
			val.List = list
		}
		out[k] = val
	}
	return out
}

// Lookup translates key through the table. An unmapped key follows the
// policy; a key mapped to a list is refused with ErrKind.
func (v *Vocabulary) Lookup(key string, p Policy) (string, error) {
	if val, ok := v.match(key); ok {
		if val.IsList {
			return "", fmt.Errorf("%w: %s: %q maps to a list", ErrKind, v.name, key)
		}
		return val.Str, nil
	}
	switch p.mode {
	case policyPass:
		return key, nil
	case policyFallback:
		return p.fallback, nil
	default:
		return "", fmt.Errorf("%w: %s: %q", ErrNotFound, v.name, key)
	}
}

// LookupList translates key into a list. Single-string entries come
// back as one-element lists, as do the pass and fallback policies.
func (v *Vocabulary) LookupList(key string, p Policy) ([]string, error) {
	if val, ok := v.match(key); ok {
		if !val.IsList {
			return []string{val.Str}, nil
		}
		out := make([]string, len(val.List))
		copy(out, val.List)
		return out, nil
	}
	switch p.mode {
	case policyPass:
		return []string{key}, nil
	case policyFallback:
		return []string{p.fallback}, nil
	default:
		return nil, fmt.Errorf("%w: %s: %q", ErrNotFound, v.name, key)
	}
}

// match resolves key against the table: a map hit for exact
// vocabularies, the first whole-string regex match in file order
// otherwise.
func (v *Vocabulary) match(key string) (Value, bool) {
	if !v.isRegex {
		val, ok := v.values[key]
		return val, ok
	}
	for i, re := range v.res {
		if re.MatchString(key) {
			return v.values[v.keys[i]], true
		}
	}
	return Value{}, false
}

// parse reads one mapping file, preserving key order. The reserved
// "is_regex" entry switches the lookup mode and never becomes a key.
func parse(name string, data []byte) (*Vocabulary, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: %s: top level is not an object", ErrMalformed, name)
	}
	v := &Vocabulary{name: name, values: make(map[string]Value)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
		key := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %s: key %q: %v", ErrMalformed, name, key, err)
		}
		if key == "is_regex" {
			if err := json.Unmarshal(raw, &v.isRegex); err != nil {
				return nil, fmt.Errorf("%w: %s: is_regex is not a boolean", ErrMalformed, name)
			}
			continue
		}
		val, err := decodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: key %q: %v", ErrMalformed, name, key, err)
		}
		if _, dup := v.values[key]; !dup {
			v.keys = append(v.keys, key)
		}
		v.values[key] = val
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	if !v.isRegex {
		return v, nil
	}
	v.res = make([]*regexp.Regexp, len(v.keys))
	for i, k := range v.keys {
		// Whole-string match, like the usual fullmatch contract.
		re, err := regexp.Compile(`\A(?:` + k + `)\z`)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: key %q: %v", ErrMalformed, name, k, err)
		}
		v.res[i] = re
	}
	return v, nil
}

func decodeValue(raw json.RawMessage) (Value, error) {
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return Value{}, fmt.Errorf("list entries must be strings")
		}
		return Value{List: list, IsList: true}, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return Value{}, fmt.Errorf("value is neither a string nor a list of strings")
	}
	return Value{Str: s}, nil
}

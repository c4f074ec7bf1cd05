package dataset

// Attrs is an insertion-ordered attribute map. Keys keep the position they
// were first set at; updating a value never moves its key. The zero of
// usefulness is NewAttrs; a nil *Attrs is safe for reads and reports
// emptiness.
type Attrs struct {
	keys   []string
	values map[string]string
}

// NewAttrs returns an empty ordered attribute map.
func NewAttrs() *Attrs {
	return &Attrs{values: make(map[string]string)}
}

// FromPairs builds an Attrs from alternating key, value arguments, in
// order. It panics on an odd argument count (programmer error).
func FromPairs(kv ...string) *Attrs {
	if len(kv)%2 != 0 {
		panic("dataset: FromPairs needs an even number of arguments")
	}
	a := NewAttrs()
	for i := 0; i < len(kv); i += 2 {
		a.Set(kv[i], kv[i+1])
	}
	return a
}

// Len returns the number of attributes.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Has reports whether key is present.
func (a *Attrs) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Get returns the value for key and whether it is present.
func (a *Attrs) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a.values[key]
	return v, ok
}

// Value returns the value for key, or "" when absent.
func (a *Attrs) Value(key string) string {
	v, _ := a.Get(key)
	return v
}

// Set inserts key at the end of the order, or updates its value in place
// when already present.
func (a *Attrs) Set(key, value string) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Del removes key, closing the gap in the order, and reports whether the
// key was present.
func (a *Attrs) Del(key string) bool {
	if a == nil {
		return false
	}
	if _, ok := a.values[key]; !ok {
		return false
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
	return true
}

// Rename changes the key of an entry while keeping its position and value.
// When to is already present its old entry is removed first. Renaming an
// absent key is a no-op; the return reports whether a rename happened.
func (a *Attrs) Rename(from, to string) bool {
	if a == nil || from == to {
		return false
	}
	v, ok := a.values[from]
	if !ok {
		return false
	}
	if _, clash := a.values[to]; clash {
		a.Del(to)
	}
	for i, k := range a.keys {
		if k == from {
			a.keys[i] = to
			break
		}
	}
	delete(a.values, from)
	a.values[to] = v
	return true
}

// Keys returns the keys in order, as a copy.
func (a *Attrs) Keys() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Range calls fn for each attribute in order until fn returns false.
func (a *Attrs) Range(fn func(key, value string) bool) {
	if a == nil {
		return
	}
	for _, k := range a.keys {
		if !fn(k, a.values[k]) {
			return
		}
	}
}

// Clone returns a deep copy. Cloning nil yields an empty map.
func (a *Attrs) Clone() *Attrs {
	out := NewAttrs()
	a.Range(func(k, v string) bool {
		out.Set(k, v)
		return true
	})
	return out
}

// Merge sets every attribute of other onto a, in other's order.
func (a *Attrs) Merge(other *Attrs) {
	other.Range(func(k, v string) bool {
		a.Set(k, v)
		return true
	})
}

// Equal reports order-sensitive equality: same keys in the same order with
// the same values.
func (a *Attrs) Equal(other *Attrs) bool {
	if a.Len() != other.Len() {
		return false
	}
	if a == nil {
		return true
	}
	for i, k := range a.keys {
		if other.keys[i] != k || other.values[k] != a.values[k] {
			return false
		}
	}
	return true
}

package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrMissingKey indicates a required option is absent.
	ErrMissingKey = errors.New("config: missing key")

	// ErrBadValue indicates an option holds a value of the wrong type or range.
	ErrBadValue = errors.New("config: bad value")
)

// LookupError reports which option of which dictionary failed.
type LookupError struct {
	Dict    string
	Key     string
	Wrapped error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %q in dictionary %q", e.Wrapped.Error(), e.Key, e.Dict)
}

func (e *LookupError) Unwrap() error {
	return e.Wrapped
}

// Dictionary is a case-insensitive tree of named options. Nested
// dictionaries are addressed with dotted keys ("conductivity.sigma0").
type Dictionary struct {
	name    string
	entries map[string]any
}

// NewDictionary copies m, lower-casing every key at every level.
func NewDictionary(name string, m map[string]any) Dictionary {
	return Dictionary{name: name, entries: normalize(m)}
}

func normalize(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return normalize(x)
	case map[any]any:
		return normalize(cast.ToStringMap(x))
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = normalizeValue(x[i])
		}
		return out
	default:
		return v
	}
}

func (d Dictionary) Name() string { return d.name }

func (d Dictionary) Len() int { return len(d.entries) }

// Keys returns the top-level keys in sorted order.
func (d Dictionary) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a deep copy of the entries.
func (d Dictionary) Map() map[string]any {
	return normalize(d.entries)
}

func (d Dictionary) Lookup(key string) (any, bool) {
	parts := strings.Split(strings.ToLower(key), ".")
	cur := d.entries
	for i, p := range parts {
		v, ok := cur[p]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

func (d Dictionary) Has(key string) bool {
	_, ok := d.Lookup(key)
	return ok
}

func (d Dictionary) missing(key string) error {
	return &LookupError{Dict: d.name, Key: key, Wrapped: ErrMissingKey}
}

func (d Dictionary) bad(key string, err error) error {
	return &LookupError{Dict: d.name, Key: key, Wrapped: fmt.Errorf("%w: %v", ErrBadValue, err)}
}

// Subdict returns the nested dictionary under key.
func (d Dictionary) Subdict(key string) (Dictionary, error) {
	v, ok := d.Lookup(key)
	if !ok {
		return Dictionary{}, d.missing(key)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return Dictionary{}, d.bad(key, fmt.Errorf("expected a dictionary, got %T", v))
	}
	return Dictionary{name: d.name + "." + strings.ToLower(key), entries: m}, nil
}

// SubdictOrSelf returns the nested dictionary under key when present, or d.
func (d Dictionary) SubdictOrSelf(key string) (Dictionary, error) {
	if !d.Has(key) {
		return d, nil
	}
	return d.Subdict(key)
}

func (d Dictionary) Float(key string) (float64, error) {
	v, ok := d.Lookup(key)
	if !ok {
		return 0, d.missing(key)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, d.bad(key, err)
	}
	return f, nil
}

func (d Dictionary) FloatOrDefault(key string, def float64) (float64, error) {
	if !d.Has(key) {
		return def, nil
	}
	return d.Float(key)
}

func (d Dictionary) Bool(key string) (bool, error) {
	v, ok := d.Lookup(key)
	if !ok {
		return false, d.missing(key)
	}
	// Switch words as written in case dictionaries.
	if s, isStr := v.(string); isStr {
		switch strings.ToLower(s) {
		case "on", "yes", "y":
			return true, nil
		case "off", "no", "n", "none":
			return false, nil
		}
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, d.bad(key, err)
	}
	return b, nil
}

func (d Dictionary) BoolOrDefault(key string, def bool) (bool, error) {
	if !d.Has(key) {
		return def, nil
	}
	return d.Bool(key)
}

func (d Dictionary) String(key string) (string, error) {
	v, ok := d.Lookup(key)
	if !ok {
		return "", d.missing(key)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", d.bad(key, err)
	}
	return s, nil
}

func (d Dictionary) StringOrDefault(key, def string) (string, error) {
	if !d.Has(key) {
		return def, nil
	}
	return d.String(key)
}

// Vector reads a three-element list.
func (d Dictionary) Vector(key string) (r3.Vec, error) {
	v, ok := d.Lookup(key)
	if !ok {
		return r3.Vec{}, d.missing(key)
	}
	items, err := cast.ToSliceE(v)
	if err != nil {
		return r3.Vec{}, d.bad(key, err)
	}
	if len(items) != 3 {
		return r3.Vec{}, d.bad(key, fmt.Errorf("expected 3 components, got %d", len(items)))
	}
	var c [3]float64
	for i, item := range items {
		if c[i], err = cast.ToFloat64E(item); err != nil {
			return r3.Vec{}, d.bad(key, err)
		}
	}
	return r3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}

func (d Dictionary) VectorOrDefault(key string, def r3.Vec) (r3.Vec, error) {
	if !d.Has(key) {
		return def, nil
	}
	return d.Vector(key)
}

package config

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func testDict() Dictionary {
	return NewDictionary("mhdProperties", map[string]any{
		"hallEffect": "on",
		"Sigma0":     "1e4",
		"B0":         []any{0, 0.5, 1},
		"badVector":  []any{1, 2},
		"conductivity": map[string]any{
			"Model":    "spitzer",
			"lnLambda": 10,
		},
		"name": 7,
	})
}

func TestDictionary_CaseInsensitive(t *testing.T) {
	d := testDict()

	for _, key := range []string{"sigma0", "SIGMA0", "Sigma0"} {
		v, err := d.Float(key)
		if err != nil || v != 1e4 {
			t.Errorf("Float(%q) = %g, %v", key, v, err)
		}
	}
	if m, err := d.String("Conductivity.model"); err != nil || m != "spitzer" {
		t.Errorf("nested lookup: %q, %v", m, err)
	}
}

func TestDictionary_Switches(t *testing.T) {
	d := NewDictionary("d", map[string]any{"a": "on", "b": "off", "c": true, "d": "yes", "e": "maybe"})

	tests := []struct {
		key  string
		want bool
		err  bool
	}{
		{"a", true, false},
		{"b", false, false},
		{"c", true, false},
		{"d", true, false},
		{"e", false, true},
	}
	for _, tt := range tests {
		got, err := d.Bool(tt.key)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("Bool(%q) = %v, %v; want %v, err=%v", tt.key, got, err, tt.want, tt.err)
		}
	}
}

func TestDictionary_MissingAndBad(t *testing.T) {
	d := testDict()

	_, err := d.Float("absent")
	if !errors.Is(err, ErrMissingKey) {
		t.Errorf("expected ErrMissingKey, got %v", err)
	}
	var le *LookupError
	if !errors.As(err, &le) || le.Key != "absent" || le.Dict != "mhdProperties" {
		t.Errorf("expected LookupError naming the key, got %#v", err)
	}

	if _, err := d.Float("conductivity.model"); !errors.Is(err, ErrBadValue) {
		t.Errorf("expected ErrBadValue, got %v", err)
	}
	if _, err := d.Vector("badVector"); !errors.Is(err, ErrBadValue) {
		t.Errorf("expected ErrBadValue for 2-vector, got %v", err)
	}
	if _, err := d.Subdict("sigma0"); !errors.Is(err, ErrBadValue) {
		t.Errorf("expected ErrBadValue for scalar subdict, got %v", err)
	}
}

func TestDictionary_Defaults(t *testing.T) {
	d := testDict()

	if v, err := d.FloatOrDefault("missing", 3); err != nil || v != 3 {
		t.Errorf("FloatOrDefault = %g, %v", v, err)
	}
	if _, err := d.FloatOrDefault("conductivity.model", 3); err == nil {
		t.Error("a present but malformed option must not fall back to the default")
	}
	if v, err := d.VectorOrDefault("B0", r3.Vec{}); err != nil || v != (r3.Vec{Y: 0.5, Z: 1}) {
		t.Errorf("VectorOrDefault = %v, %v", v, err)
	}
	if s, err := d.StringOrDefault("name", "x"); err != nil || s != "7" {
		t.Errorf("StringOrDefault = %q, %v", s, err)
	}
	if b, err := d.BoolOrDefault("missing", true); err != nil || !b {
		t.Errorf("BoolOrDefault = %v, %v", b, err)
	}
}

func TestDictionary_Subdict(t *testing.T) {
	d := testDict()

	sub, err := d.Subdict("conductivity")
	if err != nil {
		t.Fatal(err)
	}
	if sub.Name() != "mhdProperties.conductivity" {
		t.Errorf("unexpected subdict name %q", sub.Name())
	}
	if keys := sub.Keys(); len(keys) != 2 || keys[0] != "lnlambda" || keys[1] != "model" {
		t.Errorf("unexpected keys %v", keys)
	}

	self, err := d.SubdictOrSelf("lowReMagCoeffs")
	if err != nil || self.Len() != d.Len() {
		t.Errorf("SubdictOrSelf should fall back to the parent: %v", err)
	}
}

func TestDictionary_MapIsCopy(t *testing.T) {
	d := testDict()
	m := d.Map()
	m["conductivity"].(map[string]any)["model"] = "constant"

	if s, _ := d.String("conductivity.model"); s != "spitzer" {
		t.Error("Map() returned shared storage")
	}
}

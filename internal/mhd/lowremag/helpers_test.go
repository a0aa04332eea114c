package lowremag

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/lowremag/internal/config"
	"github.com/san-kum/lowremag/internal/field"
	"github.com/san-kum/lowremag/internal/mesh"
	"github.com/san-kum/lowremag/internal/thermo"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// switchSource returns whatever dictionary the test last set.
type switchSource struct {
	m   map[string]any
	err error
}

func (s *switchSource) Dictionary() (config.Dictionary, error) {
	if s.err != nil {
		return config.Dictionary{}, s.err
	}
	return config.NewDictionary("test", s.m), nil
}

func coeffsDict(hall bool, sigma0 float64, b0 r3.Vec) map[string]any {
	return map[string]any{
		"mhdModel": "lowReMag",
		"lowReMagCoeffs": map[string]any{
			"hallEffect": hall,
			"conductivity": map[string]any{
				"model":  "constant",
				"sigma0": sigma0,
			},
			"B0": []any{b0.X, b0.Y, b0.Z},
		},
	}
}

func uniformThermo(t *testing.T, n int, T, pe float64) *thermo.Fields {
	t.Helper()
	g, err := mesh.NewGrid(n, 1, 1, 1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	return thermo.NewUniform(g, T, pe)
}

func mustModel(t *testing.T, m map[string]any, th thermo.Thermo) *Model {
	t.Helper()
	mod, err := NewFromConfig(config.Static("test", m), th, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	return mod
}

func vecClose(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol*(1+r3.Norm(b))
}

func velocity(n int, u r3.Vec) field.Vector { return field.UniformVector(n, u) }

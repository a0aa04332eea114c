package lowremag

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/lowremag/internal/constants"
	"github.com/san-kum/lowremag/internal/field"
)

func TestHallTensor_ZeroHallVectorIsIsotropic(t *testing.T) {
	got := HallTensor(250, r3.Vec{})
	if got != field.ScaledIdentity(250) {
		t.Errorf("expected 250·I, got %v", got)
	}
}

func TestHallTensor_InvertsGeneralisedOhm(t *testing.T) {
	tests := []struct {
		name   string
		sigma0 float64
		h      r3.Vec
		eff    r3.Vec
	}{
		{"weak hall", 1e4, r3.Vec{Z: 0.1}, r3.Vec{X: 1, Y: 2, Z: 3}},
		{"strong hall", 1e4, r3.Vec{Z: 20}, r3.Vec{Y: -1}},
		{"oblique", 3, r3.Vec{X: 1, Y: -2, Z: 0.5}, r3.Vec{X: 0.3, Y: 0.1, Z: -4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := HallTensor(tt.sigma0, tt.h).MulVec(tt.eff)
			// j + j×h must reproduce sigma0·E'.
			lhs := r3.Add(j, r3.Cross(j, tt.h))
			if want := r3.Scale(tt.sigma0, tt.eff); !vecClose(lhs, want, 1e-12) {
				t.Errorf("j + j×h = %v, want %v", lhs, want)
			}
		})
	}
}

func TestHallTensor_ParallelConductivityUnchanged(t *testing.T) {
	h := r3.Vec{Z: 5}
	j := HallTensor(10, h).MulVec(r3.Vec{Z: 2})
	if !vecClose(j, r3.Vec{Z: 20}, 1e-12) {
		t.Errorf("current along h: expected (0,0,20), got %v", j)
	}
}

func TestHallTensor_SymmetricPartPositiveSemiDefinite(t *testing.T) {
	for _, beta := range []float64{0, 0.01, 1, 10, 1e3} {
		tensor := HallTensor(1e4, r3.Scale(beta, r3.Unit(r3.Vec{X: 1, Y: 1, Z: 1})))
		if !tensor.IsPositiveSemiDefinite(1e-9) {
			t.Errorf("beta=%g: min eigenvalue %g", beta, tensor.MinSymEigenvalue())
		}
	}
}

func TestHallTensor_StrongHallLimit(t *testing.T) {
	const sigma0 = 1e4
	tests := []struct {
		name string
		h    r3.Vec
		b    r3.Vec
	}{
		{"large", r3.Vec{Z: 1e200}, r3.Vec{Z: 1}},
		{"oblique large", r3.Vec{X: 3e300, Y: -4e300}, r3.Vec{X: 0.6, Y: -0.8}},
		{"infinite", r3.Vec{Z: math.Inf(-1)}, r3.Vec{Z: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HallTensor(sigma0, tt.h)
			if !got.IsFinite() {
				t.Fatalf("non-finite tensor %v", got)
			}
			want := field.Outer(tt.b, tt.b).Scale(sigma0)
			for k := range want {
				if math.Abs(got[k]-want[k]) > 1e-9*sigma0 {
					t.Errorf("component %d: got %g, want %g", k, got[k], want[k])
				}
			}
		})
	}

	// tiny Hall parameters whose square underflows stay isotropic
	got := HallTensor(sigma0, r3.Vec{X: 1e-200})
	if !got.IsFinite() || math.Abs(got.At(0, 0)-sigma0) > 1e-9 || math.Abs(got.At(1, 1)-sigma0) > 1e-9 {
		t.Errorf("weak Hall: got %v", got)
	}
}

func TestUpdate_TraceElectronPressureIsStrongHall(t *testing.T) {
	th := uniformThermo(t, 2, 10000, 1e-300)
	m := mustModel(t, coeffsDict(true, 1e4, r3.Vec{Z: 1}), th)
	// E' = U×B = (0,-1,0) is perpendicular to B, so no current flows.
	if err := m.Update(velocity(2, r3.Vec{X: 1})); err != nil {
		t.Fatalf("update: %v", err)
	}
	for i, s := range m.Sigma() {
		if !s.IsFinite() || math.Abs(s.At(2, 2)-1e4) > 1e-6 || math.Abs(s.At(0, 0)) > 1e-6 {
			t.Errorf("cell %d: want sigma0 along B only, got %v", i, s)
		}
		if !vecClose(m.J()[i], r3.Vec{}, 1e-9) {
			t.Errorf("cell %d: j = %v, want 0", i, m.J()[i])
		}
	}
}

func TestComputeConductivity_Spitzer(t *testing.T) {
	// T chosen so kB T/e is exactly 1 eV.
	T := constants.ElementaryCharge / constants.KBoltzmann
	th := uniformThermo(t, 2, T, 100)
	m := mustModel(t, map[string]any{
		"hallEffect": false,
		"conductivity": map[string]any{
			"model":            "spitzer",
			"coulombLogarithm": 10,
		},
	}, th)

	sigma, err := m.ComputeConductivity()
	if err != nil {
		t.Fatal(err)
	}
	want := 1 / (constants.SpitzerResistivityCoefficient * 10)
	for i, s := range sigma {
		if math.Abs(s.At(0, 0)-want)/want > 1e-9 || s.At(0, 1) != 0 {
			t.Errorf("cell %d: expected %g·I, got %v", i, want, s)
		}
	}
}

func TestComputeConductivity_SpitzerColdCellIsInsulating(t *testing.T) {
	th := uniformThermo(t, 1, 0, 100)
	m := mustModel(t, map[string]any{
		"hallEffect":   true,
		"conductivity": map[string]any{"model": "spitzer", "coulombLogarithm": 10},
	}, th)
	sigma, err := m.ComputeConductivity()
	if err != nil {
		t.Fatal(err)
	}
	if sigma[0] != (field.Tensor{}) {
		t.Errorf("expected zero tensor at T=0, got %v", sigma[0])
	}
}

func TestComputeConductivity_PlasmaHallParameter(t *testing.T) {
	const (
		T      = 10000.0
		pe     = 100.0
		sigma0 = 1e4
		bz     = 2.0
	)
	th := uniformThermo(t, 1, T, pe)
	m := mustModel(t, coeffsDict(true, sigma0, r3.Vec{Z: bz}), th)

	sigma, err := m.ComputeConductivity()
	if err != nil {
		t.Fatal(err)
	}
	ne := pe / (constants.KBoltzmann * T)
	beta := sigma0 * bz / (ne * constants.ElementaryCharge)
	want := HallTensor(sigma0, r3.Vec{Z: beta})
	for k := range want {
		if math.Abs(sigma[0][k]-want[k]) > 1e-9*sigma0 {
			t.Fatalf("component %d: got %g, want %g", k, sigma[0][k], want[k])
		}
	}
	if sigma[0].At(0, 1) == 0 {
		t.Error("expected off-diagonal Hall component")
	}
}

func TestComputeConductivity_NoElectronsNoHall(t *testing.T) {
	th := uniformThermo(t, 1, 10000, 0)
	m := mustModel(t, coeffsDict(true, 5, r3.Vec{Z: 1}), th)
	sigma, err := m.ComputeConductivity()
	if err != nil {
		t.Fatal(err)
	}
	if sigma[0] != field.ScaledIdentity(5) {
		t.Errorf("expected isotropic tensor without electrons, got %v", sigma[0])
	}
}

func TestComputeConductivity_MobilityContinuousAtZeroField(t *testing.T) {
	th := uniformThermo(t, 1, 10000, 100)
	d := coeffsDict(true, 1e4, r3.Vec{})
	d["lowReMagCoeffs"].(map[string]any)["hallParameter"] = map[string]any{"model": "mobility", "mobility": 2.0}
	m := mustModel(t, d, th)

	sigma, err := m.ComputeConductivity()
	if err != nil {
		t.Fatal(err)
	}
	if sigma[0] != field.ScaledIdentity(1e4) {
		t.Errorf("expected isotropic tensor at B=0, got %v", sigma[0])
	}

	m.B()[0] = r3.Vec{Z: 1e-9}
	sigma, _ = m.ComputeConductivity()
	if math.Abs(sigma[0].At(0, 0)-1e4) > 1e-6 {
		t.Errorf("tensor should tend to sigma0·I as B → 0, got %v", sigma[0])
	}
}

package experiment

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/lowremag/internal/config"
	"github.com/san-kum/lowremag/internal/mhd"
	"github.com/san-kum/lowremag/internal/physics"
)

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestHartmannPresetMatchesAnalyticDecay(t *testing.T) {
	c := config.GetPreset("hartmann")
	e, err := New(c, quiet())
	if err != nil {
		t.Fatal(err)
	}
	tau := e.BrakingTime()
	if math.Abs(tau-1e-4) > 1e-12 {
		t.Fatalf("expected tau 1e-4, got %g", tau)
	}

	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	final, tEnd := result.Final()
	want := physics.DecayedVelocity(c.Velocity[0], tEnd, tau)
	if math.Abs(final[0]-want) > 1e-6 {
		t.Errorf("u(%g) = %g, want %g", tEnd, final[0], want)
	}
	if result.Metrics["energy_balance"] > 5e-3 {
		t.Errorf("energy not conserved: balance %g", result.Metrics["energy_balance"])
	}
	if r := result.Metrics["peak_speed"]; math.Abs(r-want) > 1e-6 {
		t.Errorf("peak speed %g, want %g", r, want)
	}
}

func TestQuiescentPresetDoesNotAccelerateWithoutField(t *testing.T) {
	e, err := New(config.GetPreset("quiescent"), quiet())
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(e.BrakingTime(), 1) {
		t.Errorf("expected infinite braking time, got %g", e.BrakingTime())
	}
	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	final, _ := result.Final()
	for i, v := range final {
		if v != 0 {
			t.Fatalf("component %d: expected rest, got %g", i, v)
		}
	}
	// E0 still drives a current and heats the fluid.
	if result.Metrics["joule_energy"] <= 0 {
		t.Errorf("expected Joule heating from the applied field, got %g", result.Metrics["joule_energy"])
	}
}

func TestAllPresetsRun(t *testing.T) {
	for _, name := range config.ListPresets() {
		t.Run(name, func(t *testing.T) {
			c := config.GetPreset(name)
			c.Duration = 10 * c.Dt
			e, err := New(c, quiet())
			if err != nil {
				t.Fatal(err)
			}
			if _, err := e.Run(context.Background()); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestNew_Errors(t *testing.T) {
	c := config.DefaultCase()
	c.SetMHD("lowReMagCoeffs", map[string]any{"conductivity": map[string]any{"model": "constant", "sigma0": 1}})
	if _, err := New(c, quiet()); !errors.Is(err, mhd.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}

	c = config.DefaultCase()
	c.Integrator = "leapfrog"
	if _, err := New(c, quiet()); err == nil {
		t.Error("expected unknown integrator error")
	}

	c = config.DefaultCase()
	c.Grid.Nx = 0
	if _, err := New(c, quiet()); err == nil {
		t.Error("expected grid error")
	}
}

func TestSweep(t *testing.T) {
	var cases []*config.Case
	for _, b := range []float64{0.5, 1, 2} {
		c := config.GetPreset("hartmann")
		c.Name = "hartmann-sweep"
		c.SetMHD("lowReMagCoeffs.B0", []any{0.0, 0.0, b})
		cases = append(cases, c)
	}

	exps, results, err := Sweep(context.Background(), cases, quiet(), 2)
	if err != nil {
		t.Fatal(err)
	}
	prev := math.Inf(1)
	for i, r := range results {
		final, tEnd := r.Final()
		want := physics.DecayedVelocity(1, tEnd, exps[i].BrakingTime())
		if math.Abs(final[0]-want) > 1e-5 {
			t.Errorf("case %d: u = %g, want %g", i, final[0], want)
		}
		if final[0] >= prev {
			t.Errorf("stronger field must brake harder: %g after %g", final[0], prev)
		}
		prev = final[0]
	}
}

func TestSnapshotTabulatesCellFields(t *testing.T) {
	e, err := New(config.GetPreset("hartmann"), quiet())
	if err != nil {
		t.Fatal(err)
	}
	snap, err := e.Snapshot(e.InitialState())
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Rows) != e.Grid.NumCells() {
		t.Fatalf("got %d rows, want %d", len(snap.Rows), e.Grid.NumCells())
	}
	col := map[string]int{}
	for i, c := range snap.Columns {
		col[c] = i
	}
	row := snap.Rows[3]
	if len(row) != len(snap.Columns) {
		t.Fatalf("row width %d, columns %d", len(row), len(snap.Columns))
	}
	// u = x̂, B = ẑ, sigma = 1e4: j = sigma u×B = -1e4 ŷ, F = j×B = -1e4 x̂
	checks := map[string]float64{
		"cell": 3, "ux": 1, "bz": 1, "jy": -1e4, "fx": -1e4, "joule": 1e4, "sigma_min": 1e4,
	}
	for name, want := range checks {
		if got := row[col[name]]; math.Abs(got-want) > 1e-9*math.Max(1, math.Abs(want)) {
			t.Errorf("%s = %g, want %g", name, got, want)
		}
	}
}

package config

import "sort"

func coeffs(hall, gradPe bool, conductivity map[string]any, b0 []any, extra map[string]any) map[string]any {
	c := map[string]any{
		"hallEffect":               hall,
		"electronPressureGradient": gradPe,
		"conductivity":             conductivity,
		"B0":                       b0,
	}
	for k, v := range extra {
		c[k] = v
	}
	return map[string]any{"mhdModel": "lowReMag", "lowReMagCoeffs": c}
}

func constantSigma(s float64) map[string]any {
	return map[string]any{"model": "constant", "sigma0": s}
}

var grid16 = GridConfig{Nx: 16, Ny: 1, Nz: 1, Dx: 1e-3, Dy: 1e-3, Dz: 1e-3}

var Presets = map[string]*Case{
	"hartmann": {
		Name: "hartmann", Integrator: "rk4", Dt: 1e-5, Duration: 2e-4, Grid: grid16,
		Velocity: [3]float64{1, 0, 0}, Temperature: 10000, ElectronPressure: 100, Density: 1,
		MHD: coeffs(false, false, constantSigma(1e4), []any{0.0, 0.0, 1.0}, nil),
	},
	"hall": {
		Name: "hall", Integrator: "rk4", Dt: 1e-5, Duration: 2e-4, Grid: grid16,
		Velocity: [3]float64{1, 0, 0}, Temperature: 10000, ElectronPressure: 100, Density: 1,
		MHD: coeffs(true, false, constantSigma(1e4), []any{0.0, 0.0, 1.0},
			map[string]any{"hallParameter": map[string]any{"model": "mobility", "mobility": 2.0}}),
	},
	"quiescent": {
		Name: "quiescent", Integrator: "euler", Dt: 1e-4, Duration: 1e-3, Grid: grid16,
		Velocity: [3]float64{0, 0, 0}, Temperature: 10000, ElectronPressure: 100, Density: 1,
		MHD: coeffs(false, false, constantSigma(1e4), []any{0.0, 0.0, 0.0},
			map[string]any{"E0": []any{0.0, 10.0, 0.0}}),
	},
	"spitzer": {
		Name: "spitzer", Integrator: "rk4", Dt: 1e-5, Duration: 2e-4, Grid: grid16,
		Velocity: [3]float64{500, 0, 0}, Temperature: 11604.5, ElectronPressure: 1e3, Density: 1e-2,
		MHD: coeffs(true, true,
			map[string]any{"model": "spitzer", "coulombLogarithm": 10.0},
			[]any{0.0, 0.0, 0.5}, nil),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Case {
	c, ok := Presets[name]
	if !ok {
		return nil
	}
	return c.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/san-kum/lowremag/internal/config"
)

// caseFlags selects a case and overrides parts of it. Overrides only apply
// when the flag was set explicitly.
type caseFlags struct {
	preset     string
	file       string
	mhdFile    string
	integrator string
	dt         float64
	duration   float64
	cells      int
	bz         float64
	sigma0     float64
	hall       bool
	set        []string
}

func (f *caseFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.preset, "preset", "", "start from a preset ("+strings.Join(config.ListPresets(), ", ")+")")
	fs.StringVarP(&f.file, "config", "c", "", "case file (yaml)")
	fs.StringVar(&f.mhdFile, "mhd", "", "mhdProperties file (yaml or toml), replaces the case's mhd dictionary")
	fs.StringVar(&f.integrator, "integrator", "rk4", "integrator (euler, rk4, rk45)")
	fs.Float64Var(&f.dt, "dt", config.DefaultDt, "timestep [s]")
	fs.Float64Var(&f.duration, "time", config.DefaultDuration, "duration [s]")
	fs.IntVar(&f.cells, "cells", config.DefaultCells, "cells along x")
	fs.Float64Var(&f.bz, "bz", config.DefaultBz, "uniform B0 along z [T]")
	fs.Float64Var(&f.sigma0, "sigma0", config.DefaultSigma0, "constant conductivity [S/m]")
	fs.BoolVar(&f.hall, "hall", false, "enable the Hall effect")
	fs.StringSliceVar(&f.set, "set", nil, "mhd option override key=value, e.g. lowReMagCoeffs.hallParameter.mobility=2")
}

func (f *caseFlags) build(fs *pflag.FlagSet) (*config.Case, error) {
	c := config.DefaultCase()
	if f.preset != "" {
		if c = config.GetPreset(f.preset); c == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)", f.preset, strings.Join(config.ListPresets(), ", "))
		}
	}
	if f.file != "" {
		loaded, err := config.LoadCase(f.file)
		if err != nil {
			return nil, fmt.Errorf("load case: %w", err)
		}
		c = loaded
	}
	if f.mhdFile != "" {
		d, err := config.FileSource{Path: f.mhdFile}.Dictionary()
		if err != nil {
			return nil, err
		}
		c.MHD = d.Map()
	}

	if fs.Changed("integrator") {
		c.Integrator = f.integrator
	}
	if fs.Changed("dt") {
		c.Dt = f.dt
	}
	if fs.Changed("time") {
		c.Duration = f.duration
	}
	if fs.Changed("cells") {
		c.Grid.Nx = f.cells
	}
	if fs.Changed("bz") {
		c.SetMHD("lowReMagCoeffs.B0", []any{0.0, 0.0, f.bz})
	}
	if fs.Changed("sigma0") {
		c.SetMHD("lowReMagCoeffs.conductivity.model", "constant")
		c.SetMHD("lowReMagCoeffs.conductivity.sigma0", f.sigma0)
	}
	if fs.Changed("hall") {
		c.SetMHD("lowReMagCoeffs.hallEffect", f.hall)
	}
	for _, kv := range f.set {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: want key=value", kv)
		}
		c.SetMHD(key, val)
	}
	return c, c.Validate()
}

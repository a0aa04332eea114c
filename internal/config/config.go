package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 1e-5
	DefaultDuration    = 3e-4
	DefaultCells       = 16
	DefaultSpacing     = 1e-3
	DefaultTemperature = 10000.0
	DefaultPe          = 100.0
	DefaultDensity     = 1.0
	DefaultSigma0      = 1e4
	DefaultBz          = 1.0
	DefaultUx          = 1.0
)

// Case describes a self-contained test problem for the CLI: a grid, a
// uniform initial flow, the thermo state and the mhdProperties dictionary.
type Case struct {
	Name             string         `yaml:"name"`
	Integrator       string         `yaml:"integrator"`
	Dt               float64        `yaml:"dt"`
	Duration         float64        `yaml:"duration"`
	SampleEvery      int            `yaml:"sample_every,omitempty"`
	Grid             GridConfig     `yaml:"grid"`
	Velocity         [3]float64     `yaml:"velocity"`
	Temperature      float64        `yaml:"temperature"`
	ElectronPressure float64        `yaml:"electron_pressure"`
	Density          float64        `yaml:"density"`
	MHD              map[string]any `yaml:"mhd"`
}

type GridConfig struct {
	Nx int     `yaml:"nx"`
	Ny int     `yaml:"ny"`
	Nz int     `yaml:"nz"`
	Dx float64 `yaml:"dx"`
	Dy float64 `yaml:"dy"`
	Dz float64 `yaml:"dz"`
}

func DefaultCase() *Case {
	return &Case{
		Name:       "hartmann",
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Grid: GridConfig{
			Nx: DefaultCells, Ny: 1, Nz: 1,
			Dx: DefaultSpacing, Dy: DefaultSpacing, Dz: DefaultSpacing,
		},
		Velocity:         [3]float64{DefaultUx, 0, 0},
		Temperature:      DefaultTemperature,
		ElectronPressure: DefaultPe,
		Density:          DefaultDensity,
		MHD: map[string]any{
			"mhdModel": "lowReMag",
			"lowReMagCoeffs": map[string]any{
				"hallEffect":               false,
				"electronPressureGradient": false,
				"conductivity": map[string]any{
					"model":  "constant",
					"sigma0": DefaultSigma0,
				},
				"B0": []any{0.0, 0.0, DefaultBz},
			},
		},
	}
}

func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := DefaultCase()
	c.MHD = nil
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	if c.MHD == nil {
		c.MHD = DefaultCase().MHD
	}
	return c, nil
}

func SaveCase(path string, c *Case) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Case) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", c.Duration)
	}
	if c.Density <= 0 {
		return fmt.Errorf("density must be positive, got %g", c.Density)
	}
	if c.MHD == nil {
		return fmt.Errorf("case %q has no mhd dictionary", c.Name)
	}
	return nil
}

// MHDSource exposes the case's mhd dictionary to the models.
func (c *Case) MHDSource() Source {
	return Static(c.Name, c.MHD)
}

// Clone returns a deep copy, so presets can be edited by callers.
func (c *Case) Clone() *Case {
	cp := *c
	cp.MHD = NewDictionary("", c.MHD).Map()
	return &cp
}

// SetMHD sets a dotted mhd option such as "lowReMagCoeffs.hallEffect",
// creating intermediate dictionaries as needed.
func (c *Case) SetMHD(key string, v any) {
	c.MHD = NewDictionary("", c.MHD).Map()
	parts := strings.Split(strings.ToLower(key), ".")
	cur := c.MHD
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = v
}

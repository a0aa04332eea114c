package lowremag

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/lowremag/internal/config"
	"github.com/san-kum/lowremag/internal/mhd"
)

// ConductivityModel selects how the scalar conductivity sigma0 is obtained.
type ConductivityModel string

const (
	ConstantConductivity ConductivityModel = "constant"
	SpitzerConductivity  ConductivityModel = "spitzer"
)

// HallModel selects how the Hall vector h is obtained from B.
type HallModel string

const (
	// PlasmaHall uses the electron mobility sigma0/(n_e e).
	PlasmaHall HallModel = "plasma"
	// MobilityHall uses a configured electron mobility.
	MobilityHall HallModel = "mobility"
)

const DefaultSigma0 = 1.0 // [S/m]

// Coeffs are the lowReMagCoeffs options.
type Coeffs struct {
	HallEffect               bool
	ElectronPressureGradient bool

	Conductivity     ConductivityModel
	Sigma0           float64 // [S/m]
	CoulombLogarithm float64

	Hall     HallModel
	Mobility float64 // [m^2 V^-1 s^-1]

	// Initial uniform fields, applied at construction only.
	B0       r3.Vec
	E0       r3.Vec
	ElecPot0 float64
}

func DefaultCoeffs() Coeffs {
	return Coeffs{
		Conductivity: ConstantConductivity,
		Sigma0:       DefaultSigma0,
		Hall:         PlasmaHall,
	}
}

func optionError(key string, err error) error {
	return &mhd.ConfigurationError{Option: key, Wrapped: err}
}

// ParseCoeffs reads the options from d, or from its lowReMagCoeffs
// sub-dictionary when present. hallEffect, conductivity.model and the
// parameters of the selected models are required.
func ParseCoeffs(d config.Dictionary) (Coeffs, error) {
	d, err := d.SubdictOrSelf("lowReMagCoeffs")
	if err != nil {
		return Coeffs{}, optionError("lowReMagCoeffs", err)
	}

	c := DefaultCoeffs()
	if c.HallEffect, err = d.Bool("hallEffect"); err != nil {
		return Coeffs{}, optionError("hallEffect", err)
	}
	if c.ElectronPressureGradient, err = d.BoolOrDefault("electronPressureGradient", false); err != nil {
		return Coeffs{}, optionError("electronPressureGradient", err)
	}

	model, err := d.String("conductivity.model")
	if err != nil {
		return Coeffs{}, optionError("conductivity.model", err)
	}
	c.Conductivity = ConductivityModel(model)
	switch c.Conductivity {
	case ConstantConductivity:
		if c.Sigma0, err = d.Float("conductivity.sigma0"); err != nil {
			return Coeffs{}, optionError("conductivity.sigma0", err)
		}
	case SpitzerConductivity:
		if c.CoulombLogarithm, err = d.Float("conductivity.coulombLogarithm"); err != nil {
			return Coeffs{}, optionError("conductivity.coulombLogarithm", err)
		}
	}

	hall, err := d.StringOrDefault("hallParameter.model", string(PlasmaHall))
	if err != nil {
		return Coeffs{}, optionError("hallParameter.model", err)
	}
	c.Hall = HallModel(hall)
	if c.Hall == MobilityHall {
		if c.Mobility, err = d.Float("hallParameter.mobility"); err != nil {
			return Coeffs{}, optionError("hallParameter.mobility", err)
		}
	}

	if c.B0, err = d.VectorOrDefault("B0", r3.Vec{}); err != nil {
		return Coeffs{}, optionError("B0", err)
	}
	if c.E0, err = d.VectorOrDefault("E0", r3.Vec{}); err != nil {
		return Coeffs{}, optionError("E0", err)
	}
	if c.ElecPot0, err = d.FloatOrDefault("elecPot0", 0); err != nil {
		return Coeffs{}, optionError("elecPot0", err)
	}

	return c, c.Validate()
}

func (c Coeffs) Validate() error {
	switch c.Conductivity {
	case ConstantConductivity:
		if !(c.Sigma0 >= 0) || math.IsInf(c.Sigma0, 1) {
			return optionError("conductivity.sigma0", fmt.Errorf("must be finite and non-negative, got %g", c.Sigma0))
		}
	case SpitzerConductivity:
		if !(c.CoulombLogarithm > 0) || math.IsInf(c.CoulombLogarithm, 1) {
			return optionError("conductivity.coulombLogarithm", fmt.Errorf("must be finite and positive, got %g", c.CoulombLogarithm))
		}
	default:
		return optionError("conductivity.model", fmt.Errorf("unknown model %q (constant, spitzer)", c.Conductivity))
	}

	switch c.Hall {
	case PlasmaHall:
	case MobilityHall:
		if !(c.Mobility >= 0) || math.IsInf(c.Mobility, 1) {
			return optionError("hallParameter.mobility", fmt.Errorf("must be finite and non-negative, got %g", c.Mobility))
		}
	default:
		return optionError("hallParameter.model", fmt.Errorf("unknown model %q (plasma, mobility)", c.Hall))
	}

	for _, f := range []struct {
		key string
		v   []float64
	}{
		{"B0", []float64{c.B0.X, c.B0.Y, c.B0.Z}},
		{"E0", []float64{c.E0.X, c.E0.Y, c.E0.Z}},
		{"elecPot0", []float64{c.ElecPot0}},
	} {
		if !finite(f.v...) {
			return optionError(f.key, fmt.Errorf("must be finite, got %v", f.v))
		}
	}
	return nil
}

func (c Coeffs) logFields() logrus.Fields {
	f := logrus.Fields{
		"hallEffect":               c.HallEffect,
		"electronPressureGradient": c.ElectronPressureGradient,
		"conductivity":             c.Conductivity,
	}
	switch c.Conductivity {
	case ConstantConductivity:
		f["sigma0"] = c.Sigma0
	case SpitzerConductivity:
		f["coulombLogarithm"] = c.CoulombLogarithm
	}
	if c.HallEffect {
		f["hallParameter"] = c.Hall
		if c.Hall == MobilityHall {
			f["mobility"] = c.Mobility
		}
	}
	return f
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

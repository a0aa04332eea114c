package lowremag

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/lowremag/internal/config"
	"github.com/san-kum/lowremag/internal/constants"
	"github.com/san-kum/lowremag/internal/field"
	"github.com/san-kum/lowremag/internal/mesh"
	"github.com/san-kum/lowremag/internal/mhd"
	"github.com/san-kum/lowremag/internal/thermo"
)

const TypeName = "lowReMag"

func init() {
	mhd.Register(TypeName, func(src config.Source, th thermo.Thermo, log logrus.FieldLogger) (mhd.Model, error) {
		m, err := NewFromConfig(src, th, WithLogger(log))
		if err != nil {
			return nil, err
		}
		return m, nil
	})
}

var _ mhd.Model = (*Model)(nil)

// Phase is the controller state.
type Phase int

const (
	// Configured: options read and fields allocated, no update yet.
	Configured Phase = iota
	// Advancing: sigma and j reflect the most recent Update.
	Advancing
)

func (p Phase) String() string {
	switch p {
	case Configured:
		return "configured"
	case Advancing:
		return "advancing"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

type Model struct {
	thermo thermo.Thermo
	mesh   mesh.Mesh
	src    config.Source
	log    logrus.FieldLogger
	nCells int

	kB         float64
	elecCharge float64

	coeffs Coeffs
	fields *Fields
	sigma  field.TensorField
	phase  Phase

	scratchSigma field.TensorField
	scratchJ     field.Vector
	gradPe       field.Vector
}

type Option func(*Model)

func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Model) {
		if log != nil {
			m.log = log
		}
	}
}

// New builds a model with default coefficients and zero fields. Read is a
// no-op for such a model since it has no configuration source.
func New(th thermo.Thermo, opts ...Option) *Model {
	m := newModel(th, nil, DefaultCoeffs(), opts)
	m.log.WithFields(m.coeffs.logFields()).Info("lowReMag: constructed with default coefficients")
	return m
}

// NewFromConfig parses src before allocating anything, so a configuration
// error leaves nothing behind.
func NewFromConfig(src config.Source, th thermo.Thermo, opts ...Option) (*Model, error) {
	d, err := src.Dictionary()
	if err != nil {
		return nil, optionError("mhdProperties", err)
	}
	c, err := ParseCoeffs(d)
	if err != nil {
		return nil, err
	}
	m := newModel(th, src, c, opts)
	m.log.WithFields(c.logFields()).WithField("source", d.Name()).Info("lowReMag: constructed")
	return m, nil
}

func newModel(th thermo.Thermo, src config.Source, c Coeffs, opts []Option) *Model {
	n := th.Mesh().NumCells()
	m := &Model{
		thermo:     th,
		mesh:       th.Mesh(),
		src:        src,
		log:        logrus.StandardLogger(),
		nCells:     n,
		kB:         constants.KBoltzmann,
		elecCharge: constants.ElementaryCharge,
		coeffs:     c,
		fields:     newFields(n, c),
		phase:      Configured,

		scratchSigma: field.NewTensorField(n),
		scratchJ:     field.NewVector(n),
		gradPe:       field.NewVector(n),
	}
	// sigma starts consistent with the initial B and thermo state.
	m.sigma = field.NewTensorField(n)
	if m.checkThermo() == nil {
		m.conductivityInto(m.sigma)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Read re-parses the configuration source. Field values are untouched and
// the previous coefficients stay in force when parsing fails.
func (m *Model) Read() error {
	if m.src == nil {
		m.log.Debug("lowReMag: no configuration source, keeping coefficients")
		return nil
	}
	d, err := m.src.Dictionary()
	if err != nil {
		return optionError("mhdProperties", err)
	}
	c, err := ParseCoeffs(d)
	if err != nil {
		return err
	}
	m.coeffs = c
	m.log.WithFields(c.logFields()).WithField("source", d.Name()).Info("lowReMag: coefficients re-read")
	return nil
}

// Update refreshes the conductivity from the current B, then the current
// density. Both are committed together, and only when every cell is
// finite; on error the previous sigma and j are kept.
func (m *Model) Update(U field.Vector) error {
	if err := m.checkInputs(U); err != nil {
		return err
	}

	m.conductivityInto(m.scratchSigma)
	if !m.scratchSigma.IsFinite() {
		return &nonFiniteError{field: "sigma"}
	}
	if err := m.currentDensityInto(U, m.scratchSigma, m.scratchJ); err != nil {
		return fmt.Errorf("lowReMag: current density: %w", err)
	}
	if !m.scratchJ.IsFinite() {
		return &nonFiniteError{field: "j"}
	}

	copy(m.sigma, m.scratchSigma)
	copy(m.fields.J, m.scratchJ)
	m.phase = Advancing

	m.log.WithFields(logrus.Fields{
		"cells": m.nCells,
		"maxJ":  m.fields.J.Magnitude().Max(),
	}).Debug("lowReMag: updated")
	return nil
}

// DeriveElectricField sets E = -∇elecPot, for solvers that write the
// potential from an external electrostatic solve.
func (m *Model) DeriveElectricField() error {
	if err := m.mesh.Gradient(m.fields.ElecPot, m.fields.E); err != nil {
		return fmt.Errorf("lowReMag: electric field: %w", err)
	}
	for i, g := range m.fields.E {
		m.fields.E[i] = r3.Scale(-1, g)
	}
	return nil
}

func (m *Model) checkThermo() error {
	if err := mhd.CheckCells("T", len(m.thermo.T()), m.nCells); err != nil {
		return err
	}
	return mhd.CheckCells("pe", len(m.thermo.Pe()), m.nCells)
}

func (m *Model) checkVelocity(U field.Vector) error {
	return mhd.CheckCells("U", len(U), m.nCells)
}

func (m *Model) checkInputs(U field.Vector) error {
	if err := m.checkVelocity(U); err != nil {
		return err
	}
	return m.checkThermo()
}

func (m *Model) E() field.Vector       { return m.fields.E }
func (m *Model) ElecPot() field.Scalar { return m.fields.ElecPot }
func (m *Model) B() field.Vector       { return m.fields.B }

// J returns the current density [A/m^2]. Read-only.
func (m *Model) J() field.Vector { return m.fields.J }

// Sigma returns the conductivity tensor of the last Update. Read-only.
func (m *Model) Sigma() field.TensorField { return m.sigma }

func (m *Model) Coeffs() Coeffs { return m.coeffs }

func (m *Model) Phase() Phase { return m.phase }

func (m *Model) NumCells() int { return m.nCells }

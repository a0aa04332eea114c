package lowremag

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/lowremag/internal/constants"
	"github.com/san-kum/lowremag/internal/field"
)

// HallTensor returns sigma0/(1+|h|²) (I + h hᵀ + [h×]), the inverse of the
// operator j ↦ (j + j×h)/sigma0. Its symmetric part is positive
// semi-definite for sigma0 >= 0, and it equals sigma0·I exactly when h = 0.
func HallTensor(sigma0 float64, h r3.Vec) field.Tensor {
	b, beta := direction(h)
	return hallTensor(sigma0, b, beta)
}

// hallTensor is HallTensor for h = beta·b with |b| = 1. The coefficients
// stay finite for every beta in [0, +Inf]; the strong Hall limit is
// sigma0·b bᵀ.
func hallTensor(sigma0 float64, b r3.Vec, beta float64) field.Tensor {
	if beta == 0 || sigma0 == 0 {
		return field.ScaledIdentity(sigma0)
	}
	beta2 := beta * beta
	iso := sigma0 / (1 + beta2)
	par := sigma0 / (1 + 1/beta2)
	skew := sigma0 / (beta + 1/beta)
	return field.ScaledIdentity(iso).
		Add(field.Outer(b, b).Scale(par)).
		Add(field.Skew(b).Scale(skew))
}

// direction splits v into a unit vector and its length without squaring
// the raw components. Infinite components give an infinite length along
// their axes; NaN propagates.
func direction(v r3.Vec) (r3.Vec, float64) {
	s := max(math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z))
	switch {
	case math.IsNaN(s):
		return v, s
	case s == 0:
		return r3.Vec{}, 0
	case math.IsInf(s, 1):
		v = r3.Vec{X: infSign(v.X), Y: infSign(v.Y), Z: infSign(v.Z)}
		return r3.Scale(1/r3.Norm(v), v), s
	}
	u := r3.Scale(1/s, v)
	n := r3.Norm(u)
	return r3.Scale(1/n, u), s * n
}

func infSign(x float64) float64 {
	switch {
	case math.IsInf(x, 1):
		return 1
	case math.IsInf(x, -1):
		return -1
	}
	return 0
}

// scalarConductivity returns sigma0 for a cell at temperature T.
func (m *Model) scalarConductivity(T float64) float64 {
	if m.coeffs.Conductivity != SpitzerConductivity {
		return m.coeffs.Sigma0
	}
	if T <= 0 {
		return 0
	}
	tEV := m.kB * T / m.elecCharge
	return math.Pow(tEV, 1.5) / (constants.SpitzerResistivityCoefficient * m.coeffs.CoulombLogarithm)
}

// electronDensity returns n_e = pe/(kB T), or 0 where there are no free
// electrons to carry a Hall or pressure-gradient current.
func (m *Model) electronDensity(T, pe float64) float64 {
	if T <= 0 || pe <= 0 {
		return 0
	}
	return pe / (m.kB * T)
}

// hall returns the direction of B and the Hall parameter beta. Both models
// are linear in |B| so the tensor tends to sigma0·I as |B| → 0.
func (m *Model) hall(b r3.Vec, sigma0, ne float64) (r3.Vec, float64) {
	if !m.coeffs.HallEffect || sigma0 == 0 {
		return r3.Vec{}, 0
	}
	dir, bmag := direction(b)
	if bmag == 0 {
		return r3.Vec{}, 0
	}
	if m.coeffs.Hall == MobilityHall {
		return dir, m.coeffs.Mobility * bmag
	}
	if ne <= 0 {
		return r3.Vec{}, 0
	}
	// plasma: beta = sigma0 |B| / (n_e e), infinite when n_e e underflows
	return dir, sigma0 * (bmag / (ne * m.elecCharge))
}

func (m *Model) conductivityInto(out field.TensorField) {
	T, pe, B := m.thermo.T(), m.thermo.Pe(), m.fields.B
	for i := range out {
		s0 := m.scalarConductivity(T[i])
		b, beta := m.hall(B[i], s0, m.electronDensity(T[i], pe[i]))
		out[i] = hallTensor(s0, b, beta)
	}
}

// ComputeConductivity evaluates the Hall tensor from the current B and
// thermo state into a new field. It does not change the model.
func (m *Model) ComputeConductivity() (field.TensorField, error) {
	if err := m.checkThermo(); err != nil {
		return nil, err
	}
	out := field.NewTensorField(m.nCells)
	m.conductivityInto(out)
	return out, nil
}

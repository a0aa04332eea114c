package lowremag

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/lowremag/internal/field"
	"github.com/san-kum/lowremag/internal/mhd"
)

// effectiveField returns E + U×B, the electric field in the fluid frame.
func effectiveField(e, u, b r3.Vec) r3.Vec {
	return r3.Add(e, r3.Cross(u, b))
}

// currentDensityInto evaluates j = sigma·(E + U×B + ∇pe/(n_e e)) for every
// cell. The pressure term is only added when enabled.
// Sign convention: the pressure term enters inside the contraction with a
// plus sign, j = sigma·(E + U×B) + sigma·∇pe/(n_e e), which is the
// "- c·∇pe" form with c = -sigma/(n_e e).
func (m *Model) currentDensityInto(U field.Vector, sigma field.TensorField, out field.Vector) error {
	E, B := m.fields.E, m.fields.B

	var gradPe field.Vector
	if m.coeffs.ElectronPressureGradient {
		gradPe = m.gradPe
		if err := m.mesh.Gradient(m.thermo.Pe(), gradPe); err != nil {
			return err
		}
	}

	T, pe := m.thermo.T(), m.thermo.Pe()
	for i := range out {
		eff := effectiveField(E[i], U[i], B[i])
		if gradPe != nil {
			if ne := m.electronDensity(T[i], pe[i]); ne > 0 {
				eff = r3.Add(eff, r3.Scale(1/(ne*m.elecCharge), gradPe[i]))
			}
		}
		out[i] = sigma[i].MulVec(eff)
	}
	return nil
}

// UpdateCurrentDensity recomputes j from the stored conductivity. Update
// refreshes the conductivity first; call this directly only when B and the
// thermo state are unchanged since the last Update. On error j is left
// untouched.
func (m *Model) UpdateCurrentDensity(U field.Vector) error {
	if err := m.checkInputs(U); err != nil {
		return err
	}
	if err := m.currentDensityInto(U, m.sigma, m.scratchJ); err != nil {
		return err
	}
	if !m.scratchJ.IsFinite() {
		return &nonFiniteError{field: "j"}
	}
	copy(m.fields.J, m.scratchJ)
	return nil
}

type nonFiniteError struct {
	field string
}

func (e *nonFiniteError) Error() string { return mhd.ErrNonFinite.Error() + ": " + e.field }

func (e *nonFiniteError) Unwrap() error { return mhd.ErrNonFinite }

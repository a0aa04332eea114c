package lowremag

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/lowremag/internal/field"
)

// JouleHeating returns j·(E + U×B) per cell [W m^-3].
func (m *Model) JouleHeating(U field.Vector) (field.Scalar, error) {
	if err := m.checkVelocity(U); err != nil {
		return nil, err
	}
	E, B, J := m.fields.E, m.fields.B, m.fields.J
	q := field.NewScalar(m.nCells)
	for i := range q {
		q[i] = r3.Dot(J[i], effectiveField(E[i], U[i], B[i]))
	}
	return q, nil
}

// LorentzForce returns j×B per cell [N m^-3].
func (m *Model) LorentzForce() field.Vector {
	B, J := m.fields.B, m.fields.J
	f := field.NewVector(m.nCells)
	for i := range f {
		f[i] = r3.Cross(J[i], B[i])
	}
	return f
}

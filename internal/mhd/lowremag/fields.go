package lowremag

import (
	"github.com/san-kum/lowremag/internal/field"
)

// Fields is the electromagnetic state owned by the model. Every field
// covers all cells of the mesh.
type Fields struct {
	B       field.Vector // [T]
	E       field.Vector // [V/m]
	ElecPot field.Scalar // [V]
	J       field.Vector // [A/m^2]
}

func newFields(n int, c Coeffs) *Fields {
	return &Fields{
		B:       field.UniformVector(n, c.B0),
		E:       field.UniformVector(n, c.E0),
		ElecPot: field.UniformScalar(n, c.ElecPot0),
		J:       field.NewVector(n),
	}
}

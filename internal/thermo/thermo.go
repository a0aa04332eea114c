// Package thermo defines the thermodynamic collaborator that owns the
// temperature and electron pressure fields read by the MHD models.
package thermo

import (
	"github.com/san-kum/lowremag/internal/field"
	"github.com/san-kum/lowremag/internal/mesh"
)

// Thermo hands out borrowed views. Callers must not write through the
// returned slices; they stay owned and updated by the implementation.
type Thermo interface {
	Mesh() mesh.Mesh
	T() field.Scalar
	Pe() field.Scalar
}

// Fields is a Thermo backed by caller-owned slices.
type Fields struct {
	M           mesh.Mesh
	Temperature field.Scalar // [K]
	ElecPress   field.Scalar // [Pa]
}

// NewUniform builds a Fields with constant temperature and electron pressure.
func NewUniform(m mesh.Mesh, temperature, electronPressure float64) *Fields {
	n := m.NumCells()
	return &Fields{
		M:           m,
		Temperature: field.UniformScalar(n, temperature),
		ElecPress:   field.UniformScalar(n, electronPressure),
	}
}

func (f *Fields) Mesh() mesh.Mesh  { return f.M }
func (f *Fields) T() field.Scalar  { return f.Temperature }
func (f *Fields) Pe() field.Scalar { return f.ElecPress }

package experiment

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/lowremag/internal/dynamo"
	"github.com/san-kum/lowremag/internal/field"
	"github.com/san-kum/lowremag/internal/storage"
)

var snapshotColumns = []string{
	"cell", "x", "y", "z",
	"ux", "uy", "uz",
	"bx", "by", "bz",
	"jx", "jy", "jz",
	"fx", "fy", "fz",
	"joule", "sigma_min",
}

// currentSource is implemented by models that expose their current density.
type currentSource interface {
	J() field.Vector
}

// Snapshot updates the model for state x and tabulates the per-cell fields.
// Models without a current accessor get zero current columns.
func (e *Experiment) Snapshot(x dynamo.State) (*storage.Snapshot, error) {
	U := field.Unflatten(x)
	if err := e.Model.Update(U); err != nil {
		return nil, err
	}
	q, err := e.Model.JouleHeating(U)
	if err != nil {
		return nil, err
	}
	F := e.Model.LorentzForce()
	B := e.Model.B()
	sigma := e.Model.Sigma()
	var J field.Vector
	if cs, ok := e.Model.(currentSource); ok {
		J = cs.J()
	}

	rows := make([][]float64, len(U))
	for i := range U {
		var j r3.Vec
		if J != nil {
			j = J[i]
		}
		c := e.Grid.Centre(i)
		rows[i] = []float64{
			float64(i), c.X, c.Y, c.Z,
			U[i].X, U[i].Y, U[i].Z,
			B[i].X, B[i].Y, B[i].Z,
			j.X, j.Y, j.Z,
			F[i].X, F[i].Y, F[i].Z,
			q[i], sigma[i].MinSymEigenvalue(),
		}
	}
	return &storage.Snapshot{Columns: snapshotColumns, Rows: rows}, nil
}

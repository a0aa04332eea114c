package physics

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/lowremag/internal/dynamo"
	"github.com/san-kum/lowremag/internal/field"
	"github.com/san-kum/lowremag/internal/mesh"
	"github.com/san-kum/lowremag/internal/mhd"
)

// cells per goroutine when spreading the momentum source over workers
const parallelChunk = 4096

// Brake integrates du/dt = (j×B)/rho cell by cell. The state is the
// flattened velocity field. Each derivative evaluation updates the model,
// so the model must not be shared with another running Brake.
type Brake struct {
	Model   mhd.Model
	Mesh    mesh.Mesh
	Density float64 // [kg/m^3]
}

func NewBrake(model mhd.Model, m mesh.Mesh, density float64) (*Brake, error) {
	if density <= 0 {
		return nil, fmt.Errorf("brake: density must be positive, got %g", density)
	}
	if n := len(model.B()); n != m.NumCells() {
		return nil, &mhd.InconsistentFieldError{Field: "B", Want: m.NumCells(), Got: n}
	}
	return &Brake{Model: model, Mesh: m, Density: density}, nil
}

func (b *Brake) StateDim() int { return 3 * b.Mesh.NumCells() }

// InitialState returns a uniform velocity field.
func (b *Brake) InitialState(u r3.Vec) dynamo.State {
	return dynamo.State(field.UniformVector(b.Mesh.NumCells(), u).Flatten())
}

func (b *Brake) velocity(x dynamo.State) (field.Vector, error) {
	if len(x) != b.StateDim() {
		return nil, fmt.Errorf("%w: got %d entries, want %d", dynamo.ErrDimensionMismatch, len(x), b.StateDim())
	}
	return field.Unflatten(x), nil
}

func (b *Brake) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	U, err := b.velocity(x)
	if err != nil {
		return nil, err
	}
	if err := b.Model.Update(U); err != nil {
		return nil, fmt.Errorf("brake: t=%g: %w", t, err)
	}
	F := b.Model.LorentzForce()

	dx := make(dynamo.State, len(x))
	inv := 1 / b.Density
	err = dynamo.ParallelFor(context.Background(), len(F), parallelChunk, func(start, end int) error {
		for i := start; i < end; i++ {
			dx[3*i] = inv * F[i].X
			dx[3*i+1] = inv * F[i].Y
			dx[3*i+2] = inv * F[i].Z
		}
		return nil
	})
	return dx, err
}

// Energy is the kinetic energy of the flow [J].
func (b *Brake) Energy(x dynamo.State) float64 {
	ke := 0.0
	for i := 0; i+2 < len(x); i += 3 {
		ke += 0.5 * b.Density * (x[i]*x[i] + x[i+1]*x[i+1] + x[i+2]*x[i+2]) * b.Mesh.CellVolume(i/3)
	}
	return ke
}

// JoulePower is the total Joule heating ∫Q dV [W] for the flow in x.
func (b *Brake) JoulePower(x dynamo.State) (float64, error) {
	U, err := b.velocity(x)
	if err != nil {
		return 0, err
	}
	if err := b.Model.Update(U); err != nil {
		return 0, err
	}
	q, err := b.Model.JouleHeating(U)
	if err != nil {
		return 0, err
	}
	return q.Integral(b.Mesh.CellVolume), nil
}

// BrakingTime is rho/(sigma0 B²), or +Inf when nothing brakes the flow.
func BrakingTime(density, sigma0, bMag float64) float64 {
	k := sigma0 * bMag * bMag
	if k <= 0 {
		return math.Inf(1)
	}
	return density / k
}

// DecayedVelocity is u0 exp(-t/tau).
func DecayedVelocity(u0, t, tau float64) float64 {
	if math.IsInf(tau, 1) {
		return u0
	}
	return u0 * math.Exp(-t/tau)
}

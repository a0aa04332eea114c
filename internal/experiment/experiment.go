// Package experiment assembles a braking run from a case description.
package experiment

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/lowremag/internal/config"
	"github.com/san-kum/lowremag/internal/dynamo"
	"github.com/san-kum/lowremag/internal/integrators"
	"github.com/san-kum/lowremag/internal/mesh"
	"github.com/san-kum/lowremag/internal/metrics"
	"github.com/san-kum/lowremag/internal/mhd"
	"github.com/san-kum/lowremag/internal/physics"
	"github.com/san-kum/lowremag/internal/thermo"

	// registers the lowReMag model
	_ "github.com/san-kum/lowremag/internal/mhd/lowremag"
)

type Experiment struct {
	Case   *config.Case
	Grid   *mesh.Grid
	Thermo *thermo.Fields
	Model  mhd.Model
	Brake  *physics.Brake

	simulator *dynamo.Simulator
	ke        *metrics.KineticEnergy
	joule     *metrics.JouleEnergy
	log       logrus.FieldLogger
}

// New validates c and builds everything a run needs. The case is cloned,
// so later edits to c do not affect the experiment.
func New(c *config.Case, log logrus.FieldLogger) (*Experiment, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c = c.Clone()
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("case", c.Name)

	g, err := mesh.NewGrid(c.Grid.Nx, c.Grid.Ny, c.Grid.Nz, c.Grid.Dx, c.Grid.Dy, c.Grid.Dz)
	if err != nil {
		return nil, err
	}
	th := thermo.NewUniform(g, c.Temperature, c.ElectronPressure)

	model, err := mhd.New(c.MHDSource(), th, log)
	if err != nil {
		return nil, fmt.Errorf("case %q: %w", c.Name, err)
	}
	brake, err := physics.NewBrake(model, g, c.Density)
	if err != nil {
		return nil, err
	}
	integ, err := integrators.Get(c.Integrator)
	if err != nil {
		return nil, err
	}

	e := &Experiment{
		Case:      c,
		Grid:      g,
		Thermo:    th,
		Model:     model,
		Brake:     brake,
		simulator: dynamo.New(brake, integ),
		ke:        metrics.NewKineticEnergy(brake),
		joule:     metrics.NewJouleEnergy(brake),
		log:       log,
	}
	for _, m := range e.defaultMetrics() {
		e.simulator.AddMetric(m)
	}
	return e, nil
}

func (e *Experiment) defaultMetrics() []dynamo.Metric {
	return []dynamo.Metric{
		e.ke,
		e.joule,
		metrics.NewEnergyBalance(e.ke, e.joule),
		metrics.NewPeakSpeed(),
	}
}

// Simulator exposes the underlying simulator for adding observers.
func (e *Experiment) Simulator() *dynamo.Simulator { return e.simulator }

func (e *Experiment) InitialState() dynamo.State {
	v := e.Case.Velocity
	return e.Brake.InitialState(r3.Vec{X: v[0], Y: v[1], Z: v[2]})
}

func (e *Experiment) RunConfig() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Dt = e.Case.Dt
	cfg.Duration = e.Case.Duration
	cfg.SampleEvery = max(e.Case.SampleEvery, 1)
	return cfg
}

// BrakingTime is rho/(sigma_par |B|²) for the first cell, where sigma_par
// is the conductivity along B.
func (e *Experiment) BrakingTime() float64 {
	sigma, B := e.Model.Sigma(), e.Model.B()
	if len(B) == 0 || r3.Norm(B[0]) == 0 {
		return physics.BrakingTime(e.Case.Density, 0, 0)
	}
	b := r3.Unit(B[0])
	return physics.BrakingTime(e.Case.Density, r3.Dot(b, sigma[0].MulVec(b)), r3.Norm(B[0]))
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	e.log.WithFields(logrus.Fields{
		"cells":      e.Grid.NumCells(),
		"integrator": e.Case.Integrator,
		"dt":         e.Case.Dt,
		"duration":   e.Case.Duration,
	}).Info("experiment: starting")

	result, err := e.simulator.Run(ctx, e.InitialState(), e.RunConfig())
	if err != nil {
		return result, err
	}
	if err := e.joule.Err(); err != nil {
		return result, fmt.Errorf("experiment: joule power: %w", err)
	}

	e.log.WithFields(logrus.Fields{
		"steps":         result.StepsTaken,
		"keLoss":        e.ke.Loss(),
		"jouleEnergy":   e.joule.Value(),
		"energyBalance": result.Metrics["energy_balance"],
	}).Info("experiment: finished")
	return result, nil
}

// Sweep runs one experiment per case concurrently. Each case gets its own
// model, so no state is shared between goroutines.
func Sweep(ctx context.Context, cases []*config.Case, log logrus.FieldLogger, limit int) ([]*Experiment, []*dynamo.Result, error) {
	exps := make([]*Experiment, len(cases))
	jobs := make([]dynamo.Job, len(cases))
	for i, c := range cases {
		e, err := New(c, log)
		if err != nil {
			return nil, nil, err
		}
		exps[i] = e
		jobs[i] = dynamo.Job{Sim: e.simulator, X0: e.InitialState(), Cfg: e.RunConfig()}
	}
	results, err := dynamo.RunAll(ctx, jobs, limit)
	return exps, results, err
}

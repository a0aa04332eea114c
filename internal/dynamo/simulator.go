package dynamo

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	sys        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(sys System, integrator Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 for cfg.Duration. Metrics and observers see the
// initial state and every state after a step. On failure the partial
// result is returned together with a *SimulationError.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	every := max(cfg.SampleEvery, 1)
	result := &Result{
		States:  make([]State, 0, steps/every+2),
		Times:   make([]float64, 0, steps/every+2),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	s.observe(x, t)
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialEnergy := s.computeEnergy(x)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return s.finish(result, x, initialEnergy), &SimulationError{
				Step: i, Time: t, Wrapped: fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err()),
			}
		default:
		}

		newX, err := s.integrator.Step(s.sys, x, t, cfg.Dt)
		if err != nil {
			return s.finish(result, x, initialEnergy), &SimulationError{Step: i, Time: t, Wrapped: err}
		}
		if cfg.ValidateState && !newX.IsValid() {
			return s.finish(result, x, initialEnergy), &SimulationError{Step: i, Time: t, Wrapped: ErrInvalidState}
		}

		x = newX
		t = float64(i+1) * cfg.Dt
		result.StepsTaken++
		s.observe(x, t)

		if (i+1)%every == 0 || i == steps-1 {
			result.States = append(result.States, x.Clone())
			result.Times = append(result.Times, t)
		}
	}

	return s.finish(result, x, initialEnergy), nil
}

func (s *Simulator) observe(x State, t float64) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, t)
	}
}

func (s *Simulator) finish(result *Result, x State, initialEnergy float64) *Result {
	finalEnergy := s.computeEnergy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result
}

func (s *Simulator) validate(x0 State, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, cfg.Duration)
	}
	if len(x0) != s.sys.StateDim() {
		return fmt.Errorf("%w: state has %d entries, system wants %d", ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}
	return nil
}

func (s *Simulator) computeEnergy(x State) float64 {
	if ec, ok := s.sys.(EnergyComputer); ok {
		return ec.Energy(x)
	}
	return 0
}

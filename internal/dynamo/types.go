package dynamo

import (
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// AddScaled returns s + a*d.
func (s State) AddScaled(a float64, d State) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] + a*d[i]
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] - other[i]
	}
	return result
}

// System is the right-hand side of dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) (State, error)
	StateDim() int
}

// EnergyComputer is implemented by systems with a meaningful energy.
type EnergyComputer interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) (State, error)
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
	// SampleEvery records every n-th state; the final state is always kept.
	SampleEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1e-5,
		Duration:      1e-3,
		SampleEvery:   1,
		ValidateState: true,
	}
}

type Result struct {
	States      []State
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}

// Final returns the last recorded state and its time.
func (r *Result) Final() (State, float64) {
	if len(r.States) == 0 {
		return nil, 0
	}
	return r.States[len(r.States)-1], r.Times[len(r.Times)-1]
}

// Package automation runs scripted scenarios and parameter sweeps of
// braking cases.
package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/lowremag/internal/config"
	"github.com/san-kum/lowremag/internal/dynamo"
	"github.com/san-kum/lowremag/internal/experiment"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario is a YAML-scripted list of cases run one after another.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the default case) and applies
// overrides. Set keys are dotted mhd options, as accepted by Case.SetMHD.
type ScenarioStep struct {
	Name       string         `yaml:"name"`
	Preset     string         `yaml:"preset"`
	Integrator string         `yaml:"integrator"`
	Dt         float64        `yaml:"dt"`
	Duration   float64        `yaml:"duration"`
	Velocity   []float64      `yaml:"velocity"`
	Set        map[string]any `yaml:"set"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(s.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	return &s, nil
}

// Case resolves the step into a validated case.
func (st ScenarioStep) Case() (*config.Case, error) {
	c := config.DefaultCase()
	if st.Preset != "" {
		if c = config.GetPreset(st.Preset); c == nil {
			return nil, fmt.Errorf("unknown preset %q", st.Preset)
		}
	}
	if st.Name != "" {
		c.Name = st.Name
	}
	if st.Integrator != "" {
		c.Integrator = st.Integrator
	}
	if st.Dt > 0 {
		c.Dt = st.Dt
	}
	if st.Duration > 0 {
		c.Duration = st.Duration
	}
	if st.Velocity != nil {
		if len(st.Velocity) != 3 {
			return nil, fmt.Errorf("velocity needs 3 components, got %d", len(st.Velocity))
		}
		copy(c.Velocity[:], st.Velocity)
	}
	for k, v := range st.Set {
		c.SetMHD(k, v)
	}
	return c, c.Validate()
}

// StepResult pairs a finished step with its experiment.
type StepResult struct {
	Experiment *experiment.Experiment
	Result     *dynamo.Result
}

// RunScenario runs the steps in order and stops at the first failure,
// returning the steps finished so far.
func RunScenario(ctx context.Context, s *Scenario, log logrus.FieldLogger) ([]StepResult, error) {
	out := make([]StepResult, 0, len(s.Steps))
	for i, st := range s.Steps {
		c, err := st.Case()
		if err != nil {
			return out, fmt.Errorf("step %d: %w", i+1, err)
		}
		e, err := experiment.New(c, log)
		if err != nil {
			return out, fmt.Errorf("step %d: %w", i+1, err)
		}
		r, err := e.Run(ctx)
		if err != nil {
			return out, fmt.Errorf("step %d run: %w", i+1, err)
		}
		out = append(out, StepResult{Experiment: e, Result: r})
	}
	return out, nil
}

// ParameterSweep varies one dotted mhd option linearly over [Min, Max].
type ParameterSweep struct {
	Base     *config.Case
	Option   string
	Min, Max float64
	Points   int
	Parallel int
}

type SweepResult struct {
	Value       float64
	BrakingTime float64
	SpeedRatio  float64 // final over initial peak speed
	Balance     float64
}

func (p *ParameterSweep) values() []float64 {
	if p.Points <= 1 {
		return []float64{p.Min}
	}
	vals := make([]float64, p.Points)
	step := (p.Max - p.Min) / float64(p.Points-1)
	for i := range vals {
		vals[i] = p.Min + float64(i)*step
	}
	return vals
}

// RunSweep runs every point concurrently, Parallel at a time.
func RunSweep(ctx context.Context, p *ParameterSweep, log logrus.FieldLogger) ([]SweepResult, error) {
	vals := p.values()
	cases := make([]*config.Case, len(vals))
	for i, v := range vals {
		c := p.Base.Clone()
		c.Name = fmt.Sprintf("%s-%d", p.Base.Name, i)
		c.SetMHD(p.Option, v)
		cases[i] = c
	}
	exps, results, err := experiment.Sweep(ctx, cases, log, p.Parallel)
	if err != nil {
		return nil, err
	}

	out := make([]SweepResult, len(vals))
	for i, v := range vals {
		out[i] = SweepResult{
			Value:       v,
			BrakingTime: exps[i].BrakingTime(),
			SpeedRatio:  speedRatio(results[i]),
			Balance:     results[i].Metrics["energy_balance"],
		}
	}
	return out, nil
}

func speedRatio(r *dynamo.Result) float64 {
	if len(r.States) == 0 {
		return math.NaN()
	}
	u0 := r.States[0].Norm()
	if u0 == 0 {
		return 1
	}
	final, _ := r.Final()
	return final.Norm() / u0
}

// MonteCarlo perturbs the initial velocity of a case and checks that
// braking never speeds the flow up.
type MonteCarlo struct {
	Base         *config.Case
	Perturbation float64 // absolute, per velocity component [m/s]
	Trials       int
	Seed         uint64
	Parallel     int
}

type TrialResult struct {
	Velocity   [3]float64
	SpeedRatio float64
	Bounded    bool
}

func RunMonteCarlo(ctx context.Context, mc *MonteCarlo, log logrus.FieldLogger) ([]TrialResult, error) {
	rng := rand.New(rand.NewPCG(mc.Seed, mc.Seed^0x9e3779b97f4a7c15))
	cases := make([]*config.Case, mc.Trials)
	for i := range cases {
		c := mc.Base.Clone()
		c.Name = fmt.Sprintf("%s-mc%d", mc.Base.Name, i)
		for k := range c.Velocity {
			c.Velocity[k] += (rng.Float64() - 0.5) * 2 * mc.Perturbation
		}
		cases[i] = c
	}
	_, results, err := experiment.Sweep(ctx, cases, log, mc.Parallel)
	if err != nil {
		return nil, err
	}

	out := make([]TrialResult, len(cases))
	for i, r := range results {
		ratio := speedRatio(r)
		out[i] = TrialResult{
			Velocity:   cases[i].Velocity,
			SpeedRatio: ratio,
			Bounded:    !math.IsNaN(ratio) && ratio <= 1+1e-9,
		}
	}
	return out, nil
}

// MonteCarloStats counts bounded and unbounded trials.
func MonteCarloStats(results []TrialResult) (bounded, unbounded int) {
	for _, r := range results {
		if r.Bounded {
			bounded++
		} else {
			unbounded++
		}
	}
	return
}

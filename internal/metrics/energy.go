package metrics

import (
	"math"

	"github.com/san-kum/lowremag/internal/dynamo"
)

// KineticEnergy reports the energy of the last observed state.
type KineticEnergy struct {
	name    string
	sys     dynamo.EnergyComputer
	initial float64
	current float64
	samples int
}

func NewKineticEnergy(sys dynamo.EnergyComputer) *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy", sys: sys}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(x dynamo.State, t float64) {
	k.current = k.sys.Energy(x)
	if k.samples == 0 {
		k.initial = k.current
	}
	k.samples++
}

func (k *KineticEnergy) Value() float64 { return k.current }

// Loss is the energy removed since the first observation.
func (k *KineticEnergy) Loss() float64 { return k.initial - k.current }

func (k *KineticEnergy) Reset() {
	k.initial = 0
	k.current = 0
	k.samples = 0
}

// JouleSource gives the total Joule heating for a state.
type JouleSource interface {
	JoulePower(x dynamo.State) (float64, error)
}

// JouleEnergy integrates the Joule power over the observed states with the
// trapezoidal rule [J].
type JouleEnergy struct {
	name   string
	src    JouleSource
	total  float64
	lastP  float64
	lastT  float64
	seen   bool
	err    error
}

func NewJouleEnergy(src JouleSource) *JouleEnergy {
	return &JouleEnergy{name: "joule_energy", src: src}
}

func (j *JouleEnergy) Name() string { return j.name }

func (j *JouleEnergy) Observe(x dynamo.State, t float64) {
	if j.err != nil {
		return
	}
	p, err := j.src.JoulePower(x)
	if err != nil {
		j.err = err
		return
	}
	if j.seen {
		j.total += 0.5 * (t - j.lastT) * (p + j.lastP)
	}
	j.lastP, j.lastT, j.seen = p, t, true
}

// Value is NaN once an observation has failed; see Err.
func (j *JouleEnergy) Value() float64 {
	if j.err != nil {
		return math.NaN()
	}
	return j.total
}

// Power is the Joule power at the last observation [W].
func (j *JouleEnergy) Power() float64 { return j.lastP }

func (j *JouleEnergy) Err() error { return j.err }

func (j *JouleEnergy) Reset() {
	j.total = 0
	j.lastP = 0
	j.lastT = 0
	j.seen = false
	j.err = nil
}

// EnergyBalance is |ΔKE - W_joule| relative to the initial kinetic energy.
// Zero means every joule lost by the flow reappeared as heat.
type EnergyBalance struct {
	ke    *KineticEnergy
	joule *JouleEnergy
}

func NewEnergyBalance(ke *KineticEnergy, joule *JouleEnergy) *EnergyBalance {
	return &EnergyBalance{ke: ke, joule: joule}
}

func (e *EnergyBalance) Name() string { return "energy_balance" }

// Observe is a no-op; the balance reads the metrics it was built from,
// which must be registered with the same simulator.
func (e *EnergyBalance) Observe(x dynamo.State, t float64) {}

func (e *EnergyBalance) Value() float64 {
	if e.ke.initial == 0 {
		return 0
	}
	return math.Abs(e.ke.Loss()-e.joule.Value()) / math.Abs(e.ke.initial)
}

func (e *EnergyBalance) Reset() {}

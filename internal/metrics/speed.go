package metrics

import (
	"math"

	"github.com/san-kum/lowremag/internal/dynamo"
)

// PeakSpeed tracks the largest cell speed of the last observed state.
// States are flattened velocity fields.
type PeakSpeed struct {
	name    string
	current float64
	initial float64
	samples int
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(x dynamo.State, t float64) {
	peak := 0.0
	for i := 0; i+2 < len(x); i += 3 {
		peak = math.Max(peak, math.Sqrt(x[i]*x[i]+x[i+1]*x[i+1]+x[i+2]*x[i+2]))
	}
	p.current = peak
	if p.samples == 0 {
		p.initial = peak
	}
	p.samples++
}

func (p *PeakSpeed) Value() float64 { return p.current }

// Ratio is the current peak speed over the initial one.
func (p *PeakSpeed) Ratio() float64 {
	if p.initial == 0 {
		return 1
	}
	return p.current / p.initial
}

func (p *PeakSpeed) Reset() {
	p.current = 0
	p.initial = 0
	p.samples = 0
}

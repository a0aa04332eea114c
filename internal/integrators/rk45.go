package integrators

import (
	"math"

	"github.com/san-kum/lowremag/internal/dynamo"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// RK45 takes fixed Dormand-Prince steps and keeps the embedded error
// estimate of the last one, so callers can check their dt.
type RK45 struct {
	lastErr float64
}

func NewRK45() *RK45 {
	return &RK45{}
}

// LastError is the relative local error estimate of the previous step.
func (r *RK45) LastError() float64 { return r.lastErr }

func (r *RK45) Step(sys dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	n := len(x)
	var err error
	derive := func(s dynamo.State, at float64) dynamo.State {
		if err != nil {
			return nil
		}
		var d dynamo.State
		d, err = sys.Derive(s, at)
		return d
	}
	combine := func(w []float64, ks ...dynamo.State) dynamo.State {
		out := make(dynamo.State, n)
		for i := 0; i < n; i++ {
			sum := 0.0
			for j, k := range ks {
				sum += w[j] * k[i]
			}
			out[i] = x[i] + dt*sum
		}
		return out
	}

	k1 := derive(x, t)
	if err != nil {
		return nil, err
	}
	k2 := derive(combine([]float64{b21}, k1), t+a2*dt)
	if err != nil {
		return nil, err
	}
	k3 := derive(combine([]float64{b31, b32}, k1, k2), t+a3*dt)
	if err != nil {
		return nil, err
	}
	k4 := derive(combine([]float64{b41, b42, b43}, k1, k2, k3), t+a4*dt)
	if err != nil {
		return nil, err
	}
	k5 := derive(combine([]float64{b51, b52, b53, b54}, k1, k2, k3, k4), t+a5*dt)
	if err != nil {
		return nil, err
	}
	k6 := derive(combine([]float64{b61, b62, b63, b64, b65}, k1, k2, k3, k4, k5), t+dt)
	if err != nil {
		return nil, err
	}
	xNew := combine([]float64{c1, c3, c4, c5, c6}, k1, k3, k4, k5, k6)
	k7 := derive(xNew, t+dt)
	if err != nil {
		return nil, err
	}

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := math.Abs(x[i]) + math.Abs(dt*k1[i]) + 1e-10
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}
	r.lastErr = errMax

	return xNew, nil
}

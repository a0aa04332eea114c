package field

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

type Scalar []float64

func NewScalar(n int) Scalar { return make(Scalar, n) }

func UniformScalar(n int, v float64) Scalar {
	s := make(Scalar, n)
	s.Fill(v)
	return s
}

func (s Scalar) Fill(v float64) {
	for i := range s {
		s[i] = v
	}
}

func (s Scalar) Clone() Scalar {
	c := make(Scalar, len(s))
	copy(c, s)
	return c
}

// IsFinite reports whether no cell holds NaN or Inf.
func (s Scalar) IsFinite() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Min returns 0 for an empty field.
func (s Scalar) Min() float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Min(s)
}

// Max returns 0 for an empty field.
func (s Scalar) Max() float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Max(s)
}

// Integral returns sum(s[i] * vol(i)).
func (s Scalar) Integral(vol func(cell int) float64) float64 {
	w := make([]float64, len(s))
	for i := range s {
		w[i] = vol(i)
	}
	return floats.Dot(s, w)
}

type Vector []r3.Vec

func NewVector(n int) Vector { return make(Vector, n) }

func UniformVector(n int, v r3.Vec) Vector {
	f := make(Vector, n)
	f.Fill(v)
	return f
}

func (f Vector) Fill(v r3.Vec) {
	for i := range f {
		f[i] = v
	}
}

func (f Vector) Clone() Vector {
	c := make(Vector, len(f))
	copy(c, f)
	return c
}

func (f Vector) IsFinite() bool {
	for _, v := range f {
		for _, c := range [3]float64{v.X, v.Y, v.Z} {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return false
			}
		}
	}
	return true
}

// Magnitude returns |f| per cell.
func (f Vector) Magnitude() Scalar {
	m := make(Scalar, len(f))
	for i, v := range f {
		m[i] = r3.Norm(v)
	}
	return m
}

// Flatten packs the field as x0,y0,z0,x1,... for integrators and CSV output.
func (f Vector) Flatten() []float64 {
	out := make([]float64, 3*len(f))
	for i, v := range f {
		out[3*i], out[3*i+1], out[3*i+2] = v.X, v.Y, v.Z
	}
	return out
}

// Unflatten is the inverse of Flatten. Trailing values that do not form a
// full vector are ignored.
func Unflatten(x []float64) Vector {
	f := make(Vector, len(x)/3)
	for i := range f {
		f[i] = r3.Vec{X: x[3*i], Y: x[3*i+1], Z: x[3*i+2]}
	}
	return f
}

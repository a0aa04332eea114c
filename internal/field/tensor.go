package field

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Tensor is a 3×3 tensor stored row-major.
type Tensor [9]float64

func Identity() Tensor { return ScaledIdentity(1) }

func ScaledIdentity(s float64) Tensor {
	return Tensor{s, 0, 0, 0, s, 0, 0, 0, s}
}

// Outer returns a bᵀ.
func Outer(a, b r3.Vec) Tensor {
	return Tensor{
		a.X * b.X, a.X * b.Y, a.X * b.Z,
		a.Y * b.X, a.Y * b.Y, a.Y * b.Z,
		a.Z * b.X, a.Z * b.Y, a.Z * b.Z,
	}
}

// Skew returns the tensor W with W·v = h × v.
func Skew(h r3.Vec) Tensor {
	return Tensor{
		0, -h.Z, h.Y,
		h.Z, 0, -h.X,
		-h.Y, h.X, 0,
	}
}

func (t Tensor) At(i, j int) float64 { return t[3*i+j] }

func (t Tensor) Add(o Tensor) Tensor {
	for i := range t {
		t[i] += o[i]
	}
	return t
}

func (t Tensor) Scale(f float64) Tensor {
	for i := range t {
		t[i] *= f
	}
	return t
}

func (t Tensor) Transpose() Tensor {
	return Tensor{t[0], t[3], t[6], t[1], t[4], t[7], t[2], t[5], t[8]}
}

// Sym returns (t + tᵀ)/2.
func (t Tensor) Sym() Tensor { return t.Add(t.Transpose()).Scale(0.5) }

// MulVec returns the contraction t·v.
func (t Tensor) MulVec(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: t[0]*v.X + t[1]*v.Y + t[2]*v.Z,
		Y: t[3]*v.X + t[4]*v.Y + t[5]*v.Z,
		Z: t[6]*v.X + t[7]*v.Y + t[8]*v.Z,
	}
}

func (t Tensor) IsFinite() bool {
	for _, v := range t {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MinSymEigenvalue returns the smallest eigenvalue of the symmetric part.
// The quadratic form v·t·v only sees that part, so this decides definiteness.
func (t Tensor) MinSymEigenvalue() float64 {
	s := t.Sym()
	sym := mat.NewSymDense(3, []float64{
		s[0], s[1], s[2],
		s[1], s[4], s[5],
		s[2], s[5], s[8],
	})
	var eig mat.EigenSym
	if !eig.Factorize(sym, false) {
		return math.NaN()
	}
	vals := eig.Values(nil)
	min := vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// IsPositiveSemiDefinite reports whether v·t·v >= -tol*|t| for all v.
func (t Tensor) IsPositiveSemiDefinite(tol float64) bool {
	scale := 0.0
	for _, v := range t {
		scale = math.Max(scale, math.Abs(v))
	}
	return t.MinSymEigenvalue() >= -tol*scale
}

type TensorField []Tensor

func NewTensorField(n int) TensorField { return make(TensorField, n) }

func (f TensorField) Clone() TensorField {
	c := make(TensorField, len(f))
	copy(c, f)
	return c
}

func (f TensorField) IsFinite() bool {
	for _, t := range f {
		if !t.IsFinite() {
			return false
		}
	}
	return true
}

package lowremag

import (
	"math"
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/lowremag/internal/config"
	"github.com/san-kum/lowremag/internal/field"
	"github.com/san-kum/lowremag/internal/mesh"
	"github.com/san-kum/lowremag/internal/thermo"
)

func randomVec(rng *rand.Rand, scale float64) r3.Vec {
	return r3.Vec{
		X: scale * (2*rng.Float64() - 1),
		Y: scale * (2*rng.Float64() - 1),
		Z: scale * (2*rng.Float64() - 1),
	}
}

var _ = Describe("Model", func() {
	const n = 32

	var (
		rng *rand.Rand
		th  *thermo.Fields
		U   field.Vector
	)

	build := func(hall bool, hallModel string) *Model {
		c := map[string]any{
			"hallEffect":   hall,
			"conductivity": map[string]any{"model": "constant", "sigma0": 1e4},
		}
		if hallModel != "" {
			c["hallParameter"] = map[string]any{"model": hallModel, "mobility": 0.7}
		}
		m, err := NewFromConfig(config.Static("props", c), th, WithLogger(quietLogger()))
		Expect(err).NotTo(HaveOccurred())
		for i := range m.B() {
			m.B()[i] = randomVec(rng, 2)
			m.E()[i] = randomVec(rng, 50)
		}
		return m
	}

	BeforeEach(func() {
		rng = rand.New(rand.NewPCG(1, 2))
		g, err := mesh.NewGrid(n, 1, 1, 1e-2, 1e-2, 1e-2)
		Expect(err).NotTo(HaveOccurred())
		th = thermo.NewUniform(g, 8000, 50)
		U = field.NewVector(n)
		for i := range U {
			U[i] = randomVec(rng, 10)
		}
	})

	DescribeTable("without the pressure term",
		func(hall bool, hallModel string) {
			m := build(hall, hallModel)
			Expect(m.Update(U)).To(Succeed())

			By("dissipating energy in every cell")
			q, err := m.JouleHeating(U)
			Expect(err).NotTo(HaveOccurred())
			for _, v := range q {
				Expect(v).To(BeNumerically(">=", -1e-9))
			}

			By("keeping the symmetric part of sigma positive semi-definite")
			for _, s := range m.Sigma() {
				Expect(s.IsPositiveSemiDefinite(1e-9)).To(BeTrue())
			}

			By("producing a Lorentz force normal to B")
			for i, f := range m.LorentzForce() {
				Expect(math.Abs(r3.Dot(f, m.B()[i]))).To(BeNumerically("<=", 1e-9*(1+r3.Norm(f)*r3.Norm(m.B()[i]))))
			}
		},
		Entry("isotropic", false, ""),
		Entry("plasma Hall parameter", true, "plasma"),
		Entry("mobility Hall parameter", true, "mobility"),
	)

	It("reduces to sigma0 times the effective field with the Hall effect off", func() {
		m := build(false, "")
		Expect(m.Update(U)).To(Succeed())
		for i, j := range m.J() {
			want := r3.Scale(1e4, effectiveField(m.E()[i], U[i], m.B()[i]))
			Expect(vecClose(j, want, 1e-12)).To(BeTrue())
		}
	})

	It("gives the same answer for repeated updates", func() {
		m := build(true, "plasma")
		Expect(m.Update(U)).To(Succeed())
		first := m.J().Clone()
		Expect(m.Update(U)).To(Succeed())
		Expect(m.J()).To(Equal(first))
	})

	It("does not carry current parallel to B through the Hall term", func() {
		m := build(true, "mobility")
		for i := range m.E() {
			m.E()[i] = r3.Scale(3, m.B()[i])
		}
		Expect(m.Update(field.NewVector(n))).To(Succeed())
		for i, j := range m.J() {
			Expect(vecClose(j, r3.Scale(3e4, m.B()[i]), 1e-10)).To(BeTrue())
		}
	})
})

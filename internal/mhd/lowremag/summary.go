package lowremag

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/lowremag/internal/field"
)

// Summary condenses the model state after an Update.
type Summary struct {
	Phase Phase

	MaxCurrent    float64 // max |j| [A/m^2]
	MaxLorentz    float64 // max |j×B| [N/m^3]
	MinJoule      float64 // [W/m^3]
	JoulePower    float64 // ∫Q dV [W]
	MinSigmaEigen float64 // smallest eigenvalue of sym(sigma) over all cells
}

// Summarize evaluates the diagnostics for velocity U.
func (m *Model) Summarize(U field.Vector) (Summary, error) {
	q, err := m.JouleHeating(U)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{
		Phase:      m.phase,
		MaxCurrent: m.fields.J.Magnitude().Max(),
		MaxLorentz: m.LorentzForce().Magnitude().Max(),
		MinJoule:   q.Min(),
		JoulePower: q.Integral(m.mesh.CellVolume),
	}
	s.MinSigmaEigen = math.Inf(1)
	for _, t := range m.sigma {
		s.MinSigmaEigen = math.Min(s.MinSigmaEigen, t.MinSymEigenvalue())
	}
	if len(m.sigma) == 0 {
		s.MinSigmaEigen = 0
	}
	return s, nil
}

func (s Summary) Fields() logrus.Fields {
	return logrus.Fields{
		"phase":         s.Phase.String(),
		"maxJ":          s.MaxCurrent,
		"maxLorentz":    s.MaxLorentz,
		"minJoule":      s.MinJoule,
		"joulePower":    s.JoulePower,
		"minSigmaEigen": s.MinSigmaEigen,
	}
}

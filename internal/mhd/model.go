package mhd

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/lowremag/internal/config"
	"github.com/san-kum/lowremag/internal/field"
	"github.com/san-kum/lowremag/internal/thermo"
)

// Model is the capability set a flow solver needs from an MHD formulation.
//
// E, ElecPot and B return the model's own storage so external solvers can
// write into them between updates. Sigma is a read-only view.
type Model interface {
	// Read re-parses the model options without touching field values.
	Read() error
	// Update recomputes the model's derived fields for velocity U.
	Update(U field.Vector) error

	E() field.Vector
	ElecPot() field.Scalar
	B() field.Vector

	// JouleHeating is the source term of the total energy equation [W m^-3].
	JouleHeating(U field.Vector) (field.Scalar, error)
	// LorentzForce is the source term of the momentum equation [N m^-3].
	LorentzForce() field.Vector
	Sigma() field.TensorField
}

// Constructor builds a model from its configuration source.
type Constructor func(src config.Source, th thermo.Thermo, log logrus.FieldLogger) (Model, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{}
)

// Register makes a model selectable by name. Names are case-insensitive.
func Register(name string, c Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = c
}

func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New selects the model named by the "mhdModel" option of src.
func New(src config.Source, th thermo.Thermo, log logrus.FieldLogger) (Model, error) {
	d, err := src.Dictionary()
	if err != nil {
		return nil, &ConfigurationError{Option: "mhdModel", Wrapped: err}
	}
	name, err := d.String("mhdModel")
	if err != nil {
		return nil, &ConfigurationError{Option: "mhdModel", Wrapped: err}
	}

	registryMu.RLock()
	c, ok := registry[strings.ToLower(name)]
	registryMu.RUnlock()
	if !ok {
		return nil, &ConfigurationError{
			Option:  "mhdModel",
			Wrapped: fmt.Errorf("%w: %q (available: %s)", ErrUnknownModel, name, strings.Join(Names(), ", ")),
		}
	}
	return c(src, th, log)
}

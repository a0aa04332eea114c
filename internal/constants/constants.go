// Package constants holds the SI physical constants used by the MHD models.
package constants

const (
	KBoltzmann       float64 = 1.380649e-23     // [J K^-1]
	ElementaryCharge float64 = 1.602176634e-19  // [C]
	ElectronMass     float64 = 9.1093837139e-31 // [kg]
)

// SpitzerResistivityCoefficient is the prefactor of the parallel Spitzer
// resistivity eta = c * lnLambda / T_eV^(3/2) for a singly ionized plasma.
const SpitzerResistivityCoefficient = 5.2e-5 // [Ohm m eV^(3/2)]

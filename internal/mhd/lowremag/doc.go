// Package lowremag implements the low magnetic Reynolds number MHD model.
//
// The induced magnetic field is neglected, so B is imposed (or supplied
// externally) and the model only derives the current density from a
// generalized Ohm's law and the resulting source terms:
//
//	sigma = sigma0/(1+|h|²) (I + h hᵀ + [h×])   Hall tensor
//	j     = sigma · (E + U×B + ∇pe/(n_e e))     electron pressure term optional
//	Q     = j · (E + U×B)                       Joule heating
//	F     = j × B                               Lorentz force
//
// The Hall vector h is parallel to B. The plasma model (default) uses
// h = sigma0 B/(n_e e) with n_e = pe/(kB T); the mobility model uses
// h = mu_e B with a configured electron mobility.
//
// Update refreshes sigma then j, in that order, and commits both only when
// every cell is finite.
package lowremag

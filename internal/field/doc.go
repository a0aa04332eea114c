// Package field provides per-cell field storage over a fixed mesh index space.
//
// Every field is a contiguous slice indexed by cell ID:
//
//   - [Scalar]: one float64 per cell (temperature, pressure, potential, Joule heating)
//   - [Vector]: one [r3.Vec] per cell (velocity, B, E, j, Lorentz force)
//   - [TensorField]: one 3×3 [Tensor] per cell (conductivity)
//
// Fields do not know about the mesh geometry; index validity and halo
// exchange belong to the mesh collaborator.
package field

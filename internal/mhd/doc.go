// Package mhd defines the capability set shared by magnetohydrodynamics
// source-term models and the registry used to pick one at configuration time.
//
// A flow solver resolves a [Model] once, from the "mhdModel" entry of its
// mhdProperties dictionary, and then drives it once per timestep:
//
//	m, err := mhd.New(config.FileSource{Path: "mhdProperties.yaml"}, th, log)
//	...
//	if err := m.Update(U); err != nil { ... }
//	q, _ := m.JouleHeating(U) // energy equation source
//	f := m.LorentzForce()     // momentum equation source
//
// # Thread Safety
//
// Models are NOT thread-safe. Source-term queries may run concurrently with
// each other but never with Update on the same model.
package mhd

// Package dynamo provides the outer time loop used to drive MHD models the
// way a flow solver would.
//
// The package defines the primitives for integrating ordinary differential
// equations dX/dt = f(X, t):
//
//   - [State]: flat vector holding the integrated variables
//   - [System]: right-hand side, which may fail (a model update can)
//   - [Integrator]: explicit one-step scheme
//   - [Metric], [Observer]: per-step diagnostics
//   - [Simulator]: orchestrates a run
//
// # Example
//
//	sys, _ := physics.NewBrake(model, density)
//	sim := dynamo.New(sys, integrators.NewRK4())
//	result, _ := sim.Run(ctx, sys.InitialState(u0), cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe, and neither are the MHD models
// they drive. [RunAll] runs independent simulators concurrently.
package dynamo

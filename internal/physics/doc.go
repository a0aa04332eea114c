// Package physics couples MHD models to a flow so they can be exercised by
// the [dynamo] time loop.
//
//   - [Brake]: a fluid of uniform density decelerated by the Lorentz force.
//     It is the simplest consumer of the momentum and energy source terms.
//
// For the Hartmann-type set-up (E = 0, velocity normal to a uniform B,
// scalar conductivity) the velocity decays as exp(-t/tau) with
// tau = rho/(sigma0 B²); see [BrakingTime].
//
//	sys, _ := physics.NewBrake(model, grid, 1.0)
//	if e, ok := any(sys).(dynamo.EnergyComputer); ok {
//	    ke := e.Energy(state)
//	}
package physics

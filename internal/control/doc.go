// Package control implements the multi-light state transitions for
// Lumen Core.
//
// Five operations exist: toggle, increase/decrease brightness, and
// increase/decrease colour temperature. Each applies the same pattern to
// every light currently in the registry, strictly in sequence:
//
//  1. Fetch the light's current state.
//  2. Compute the new value, clamped to its domain.
//  3. Push only the changed field.
//
// Clamping is mandatory on every adjustment and never left to the device
// firmware. The first fetch or push failure aborts the whole operation with
// an *OperationError naming the endpoint and phase; remaining lights are
// never attempted. Operations return the value computed for the last light
// processed, which is meaningful for homogeneous groups.
package control

// Package discovery resolves the set of light endpoints for Lumen Core.
//
// Two mutually exclusive strategies exist, selected by configuration:
//
//   - Static: a comma-separated address list is parsed into endpoints on the
//     default port. Synchronous, no network activity.
//   - mDNS: a multicast browse for the "_elg._tcp" service type appends
//     endpoints to the registry as announcements arrive, until the target
//     device count is reached or the timeout elapses.
//
// # Completion policy
//
// The mDNS browse has three terminal outcomes, and the listener is torn
// down on all of them:
//
//   - target count reached: success, endpoints returned
//   - timeout with zero found: ErrNoDevicesFound
//   - timeout with a partial set: *PartialError; the endpoints found so far
//     remain in the registry so callers may still operate on them
//
// # Concurrency
//
// A Service serialises Discover calls internally; the registry is never
// raced by two discoveries. Partial results are visible to registry readers
// while a browse is still in flight.
package discovery

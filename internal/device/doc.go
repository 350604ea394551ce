// Package device provides the endpoint registry for Lumen Core.
//
// The registry is the in-memory, replace-on-discovery list of resolved light
// endpoints. It is the sole shared mutable resource between the discovery
// service (writer) and the control operations (readers).
//
// # Key Types
//
//   - Endpoint: A light's network address and port
//   - Registry: Thread-safe, ordered, replace-on-discovery endpoint list
//
// # Usage
//
//	registry := device.NewRegistry()
//	registry.Replace([]device.Endpoint{device.NewEndpoint("192.168.1.20", 9123)})
//	for _, ep := range registry.Snapshot() {
//	    fmt.Println(ep)
//	}
//
// # Thread Safety
//
// All Registry methods are protected by a read-write mutex. Snapshot returns
// a copy, so callers never observe concurrent mutation mid-iteration.
package device

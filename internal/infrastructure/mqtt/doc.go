// Package mqtt provides optional MQTT connectivity for the Lumen daemon.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Retained per-light state publishing after successful writes
//   - Discovery completion events
//   - Inbound command subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Topic Scheme
//
// All topics live under the flat "lumen/" namespace:
//
//	lumen/state/<host>     retained, current state of one light
//	lumen/event/discovery  discovery run results, not retained
//	lumen/command/<action> inbound control commands
//	lumen/system/status    retained online/offline status + LWT
//
// State topics are retained so dashboards and automations joining late
// immediately see the current state of every known light. Events and
// commands are not retained.
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are read from config and never logged
//   - Handler panics are recovered so a bad payload cannot kill the daemon
//
// The whole package is optional: the daemon runs fully without a broker
// when mqtt.enabled is false.
package mqtt

// Package telemetry provides optional InfluxDB metric recording for the
// Lumen daemon.
//
// After every successful control operation the resulting brightness or
// temperature value is written as a point tagged by the light's host
// address. Discovery runs record how many lights were found and how long
// the run took.
//
// Writes are non-blocking: points are batched by the client library and
// flushed on an interval, so a slow or unreachable InfluxDB never stalls
// a control operation. Async write failures are surfaced through the
// SetOnError callback.
//
// The whole package is optional: the daemon runs fully without InfluxDB
// when influxdb.enabled is false.
package telemetry

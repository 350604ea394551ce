// Package elgato implements the Elgato key light REST protocol.
//
// Key lights expose their state at http://<host>:9123/elgato/lights as a
// JSON object with a "lights" array. A GET returns the current state; a PUT
// with a partial body applies a server-side merge, leaving omitted fields
// untouched.
//
// The Client performs exactly one attempt per call. Failure handling,
// clamping arithmetic, and multi-device iteration belong to the control
// package, not here.
package elgato

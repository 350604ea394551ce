package discovery

import (
	"errors"
	"fmt"
)

// Domain errors for the discovery package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, discovery.ErrNoDevicesFound) {
//	    // nothing answered within the timeout
//	}
var (
	// ErrNoDevicesFound is returned when the discovery timeout elapsed with
	// zero endpoints resolved.
	ErrNoDevicesFound = errors.New("discovery: no devices found")

	// ErrInvalidAddressList is returned when the static address list is
	// malformed (empty list or empty entry).
	ErrInvalidAddressList = errors.New("discovery: invalid static address list")

	// ErrInvalidDeviceCount is returned when the target device count is
	// not a positive integer.
	ErrInvalidDeviceCount = errors.New("discovery: device count must be at least 1")

	// ErrBrowseFailed is returned when the mDNS browser fails before any
	// endpoint was resolved.
	ErrBrowseFailed = errors.New("discovery: mdns browse failed")
)

// PartialError reports that the discovery timeout fired after at least one
// device was found but before the target count was reached. The endpoints
// found so far remain in the registry, so callers may still operate on them.
type PartialError struct {
	Found int
	Want  int
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("discovery: found %d of %d devices before timeout", e.Found, e.Want)
}

package elgato

import (
	"errors"
	"fmt"

	"github.com/lumen-home/lumen-core/internal/device"
)

// Domain errors for the elgato package.
//
// These errors can be checked using errors.Is() / errors.As():
//
//	var unreachable *elgato.UnreachableError
//	if errors.As(err, &unreachable) {
//	    // unreachable.Endpoint identifies the failing light
//	}
var (
	// ErrNoLights is returned when a device reports an empty lights array.
	ErrNoLights = errors.New("elgato: device reported no lights")

	// ErrUnreachable is the sentinel wrapped by every UnreachableError.
	ErrUnreachable = errors.New("elgato: device unreachable")
)

// UnreachableError reports a transport-level or non-2xx failure against a
// specific light endpoint. It wraps the underlying cause.
type UnreachableError struct {
	Endpoint device.Endpoint
	Err      error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("elgato: device %s unreachable: %v", e.Endpoint, e.Err)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// Is reports true for ErrUnreachable so callers can match the class of
// failure without a type assertion.
func (e *UnreachableError) Is(target error) bool {
	return target == ErrUnreachable
}

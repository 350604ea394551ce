package control

import (
	"errors"
	"fmt"

	"github.com/lumen-home/lumen-core/internal/device"
)

// Phase identifies which half of a read-modify-write cycle failed.
type Phase string

const (
	// PhaseFetch is the state read preceding a mutation.
	PhaseFetch Phase = "fetch"

	// PhasePush is the partial state write.
	PhasePush Phase = "push"
)

// Domain errors for the control package.
var (
	// ErrNoEndpoints is returned when an operation runs against an empty
	// registry. Run discovery first.
	ErrNoEndpoints = errors.New("control: no known lights, run discovery first")
)

// OperationError reports that a control operation aborted because one
// endpoint's fetch or push failed. Endpoints after the failing one were
// never attempted.
type OperationError struct {
	Endpoint device.Endpoint
	Phase    Phase
	Err      error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("control: %s failed for %s: %v", e.Phase, e.Endpoint, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

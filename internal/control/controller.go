package control

import (
	"context"
	"sync"

	"github.com/lumen-home/lumen-core/internal/device"
	"github.com/lumen-home/lumen-core/internal/elgato"
)

// Brightness and colour temperature domains. Temperature is in the mired
// scale the Elgato firmware uses: lower is colder.
const (
	MinBrightness = 0
	MaxBrightness = 100

	// BrightnessStep is the per-call brightness adjustment.
	BrightnessStep = 5

	ColdTemperature = 143
	WarmTemperature = 344

	// TemperatureStep is one twentieth of the temperature domain span.
	TemperatureStep = (WarmTemperature - ColdTemperature) / 20
)

// Logger defines the logging interface used by the Controller.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// LightClient is the device client used for the read-modify-write cycle.
// Implemented by *elgato.Client.
type LightClient interface {
	FetchState(ctx context.Context, ep device.Endpoint) (elgato.LightState, error)
	PushState(ctx context.Context, ep device.Endpoint, update elgato.StateUpdate) error
}

// StatePublisher receives the resulting state after a successful write.
// Implemented by the MQTT client; optional.
type StatePublisher interface {
	PublishLightState(ep device.Endpoint, state elgato.LightState) error
}

// MetricRecorder records observed light metrics after a successful write.
// Implemented by the telemetry client; optional.
type MetricRecorder interface {
	WriteLightMetric(host string, measurement string, value float64)
}

// Controller applies state transitions to every light in the registry.
//
// Each operation iterates the registry snapshot sequentially: fetch current
// state, compute the clamped new value, push only the changed field. The
// first fetch or push failure aborts the operation; endpoints not yet
// processed are never attempted. The return value is the value computed for
// the last endpoint processed.
//
// A per-endpoint mutex serialises concurrent operations against the same
// light so interleaved read-modify-write cycles cannot lose updates.
type Controller struct {
	registry *device.Registry
	client   LightClient
	logger   Logger

	publisher StatePublisher
	recorder  MetricRecorder

	// locks serialises read-modify-write cycles per endpoint.
	locks   map[string]*sync.Mutex
	locksMu sync.Mutex
}

// NewController creates a controller over the given registry and client.
func NewController(registry *device.Registry, client LightClient) *Controller {
	return &Controller{
		registry: registry,
		client:   client,
		logger:   noopLogger{},
		locks:    make(map[string]*sync.Mutex),
	}
}

// SetLogger sets the logger for the controller.
func (c *Controller) SetLogger(logger Logger) {
	c.logger = logger
}

// SetPublisher sets an optional publisher notified after successful writes.
func (c *Controller) SetPublisher(p StatePublisher) {
	c.publisher = p
}

// SetRecorder sets an optional telemetry recorder.
func (c *Controller) SetRecorder(r MetricRecorder) {
	c.recorder = r
}

// Toggle flips the power state of every light in the registry.
// It returns the power state computed for the last light processed.
func (c *Controller) Toggle(ctx context.Context) (bool, error) {
	var last bool
	err := c.forEach(ctx, func(ctx context.Context, ep device.Endpoint) error {
		state, err := c.fetch(ctx, ep)
		if err != nil {
			return err
		}

		newOn := !state.On
		if err := c.push(ctx, ep, elgato.StateUpdate{On: &newOn}); err != nil {
			return err
		}

		state.On = newOn
		c.notify(ep, state)
		last = newOn
		return nil
	})
	if err != nil {
		return false, err
	}
	return last, nil
}

// IncreaseBrightness raises every light's brightness by BrightnessStep,
// clamped to the brightness domain. Returns the last computed value.
func (c *Controller) IncreaseBrightness(ctx context.Context) (int, error) {
	return c.adjustBrightness(ctx, BrightnessStep)
}

// DecreaseBrightness lowers every light's brightness by BrightnessStep,
// clamped to the brightness domain. Returns the last computed value.
func (c *Controller) DecreaseBrightness(ctx context.Context) (int, error) {
	return c.adjustBrightness(ctx, -BrightnessStep)
}

// IncreaseTemperature warms every light by TemperatureStep, clamped to the
// temperature domain. Returns the last computed value.
func (c *Controller) IncreaseTemperature(ctx context.Context) (int, error) {
	return c.adjustTemperature(ctx, TemperatureStep)
}

// DecreaseTemperature cools every light by TemperatureStep, clamped to the
// temperature domain. Returns the last computed value.
func (c *Controller) DecreaseTemperature(ctx context.Context) (int, error) {
	return c.adjustTemperature(ctx, -TemperatureStep)
}

func (c *Controller) adjustBrightness(ctx context.Context, delta int) (int, error) {
	var last int
	err := c.forEach(ctx, func(ctx context.Context, ep device.Endpoint) error {
		state, err := c.fetch(ctx, ep)
		if err != nil {
			return err
		}

		value := clamp(state.Brightness+delta, MinBrightness, MaxBrightness)
		if err := c.push(ctx, ep, elgato.StateUpdate{Brightness: &value}); err != nil {
			return err
		}

		state.Brightness = value
		c.notify(ep, state)
		c.record(ep, "brightness", float64(value))
		last = value
		return nil
	})
	if err != nil {
		return 0, err
	}
	return last, nil
}

func (c *Controller) adjustTemperature(ctx context.Context, delta int) (int, error) {
	var last int
	err := c.forEach(ctx, func(ctx context.Context, ep device.Endpoint) error {
		state, err := c.fetch(ctx, ep)
		if err != nil {
			return err
		}

		value := clamp(state.Temperature+delta, ColdTemperature, WarmTemperature)
		if err := c.push(ctx, ep, elgato.StateUpdate{Temperature: &value}); err != nil {
			return err
		}

		state.Temperature = value
		c.notify(ep, state)
		c.record(ep, "temperature", float64(value))
		last = value
		return nil
	})
	if err != nil {
		return 0, err
	}
	return last, nil
}

// forEach runs fn for every endpoint in registry order, strictly in
// sequence, holding the endpoint's lock for the whole read-modify-write
// cycle. The first failure aborts the iteration.
func (c *Controller) forEach(ctx context.Context, fn func(context.Context, device.Endpoint) error) error {
	endpoints := c.registry.Snapshot()
	if len(endpoints) == 0 {
		return ErrNoEndpoints
	}

	for _, ep := range endpoints {
		lock := c.lockFor(ep)
		lock.Lock()
		err := fn(ctx, ep)
		lock.Unlock()
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) fetch(ctx context.Context, ep device.Endpoint) (elgato.LightState, error) {
	state, err := c.client.FetchState(ctx, ep)
	if err != nil {
		c.logger.Error("fetch failed", "endpoint", ep.String(), "error", err)
		return elgato.LightState{}, &OperationError{Endpoint: ep, Phase: PhaseFetch, Err: err}
	}
	return state, nil
}

func (c *Controller) push(ctx context.Context, ep device.Endpoint, update elgato.StateUpdate) error {
	if err := c.client.PushState(ctx, ep, update); err != nil {
		c.logger.Error("push failed", "endpoint", ep.String(), "error", err)
		return &OperationError{Endpoint: ep, Phase: PhasePush, Err: err}
	}
	return nil
}

// notify publishes the resulting state, if a publisher is configured.
// Publish failures are logged, never propagated; the light was updated.
func (c *Controller) notify(ep device.Endpoint, state elgato.LightState) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.PublishLightState(ep, state); err != nil {
		c.logger.Warn("state publish failed", "endpoint", ep.String(), "error", err)
	}
}

// record writes a telemetry point, if a recorder is configured.
func (c *Controller) record(ep device.Endpoint, measurement string, value float64) {
	if c.recorder == nil {
		return
	}
	c.recorder.WriteLightMetric(ep.Host, measurement, value)
}

// lockFor returns the mutex guarding read-modify-write cycles for the
// given endpoint, creating it on first use.
func (c *Controller) lockFor(ep device.Endpoint) *sync.Mutex {
	c.locksMu.Lock()
	defer c.locksMu.Unlock()

	key := ep.String()
	lock, ok := c.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[key] = lock
	}
	return lock
}

// clamp constrains v to the closed interval [lo, hi], saturating at the
// nearer bound.
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

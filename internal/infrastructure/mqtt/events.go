package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lumen-home/lumen-core/internal/device"
	"github.com/lumen-home/lumen-core/internal/elgato"
)

// Event types published by the daemon.
const (
	// EventLightState is published after a successful state write to a light.
	EventLightState = "light_state"

	// EventDiscovery is published when a discovery run completes.
	EventDiscovery = "discovery_completed"
)

// Event is the envelope for all Lumen event payloads.
// Every event carries a unique ID so consumers can deduplicate
// redelivered messages.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// lightStatePayload is the data carried by a light_state event.
type lightStatePayload struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	On          bool   `json:"on"`
	Brightness  int    `json:"brightness"`
	Temperature int    `json:"temperature"`
}

// discoveryPayload is the data carried by a discovery_completed event.
type discoveryPayload struct {
	Endpoints []device.Endpoint `json:"endpoints"`
	Count     int               `json:"count"`
}

// newEvent wraps data in an event envelope with a fresh ID.
func newEvent(eventType string, data any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// PublishLightState publishes a light's resulting state to its retained
// state topic. Called by the controller after every successful write.
func (c *Client) PublishLightState(ep device.Endpoint, state elgato.LightState) error {
	event := newEvent(EventLightState, lightStatePayload{
		Host:        ep.Host,
		Port:        ep.Port,
		On:          state.On,
		Brightness:  state.Brightness,
		Temperature: state.Temperature,
	})

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return c.PublishRetained(Topics{}.LightState(ep.Host), payload)
}

// PublishDiscovery publishes the result of a completed discovery run.
// The event is not retained; it describes a moment in time, not state.
func (c *Client) PublishDiscovery(endpoints []device.Endpoint) error {
	event := newEvent(EventDiscovery, discoveryPayload{
		Endpoints: endpoints,
		Count:     len(endpoints),
	})

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return c.Publish(Topics{}.DiscoveryEvent(), payload, byte(c.cfg.QoS), false)
}

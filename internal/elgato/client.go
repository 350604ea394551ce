package elgato

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lumen-home/lumen-core/internal/device"
)

// defaultRequestTimeout bounds each REST call when no client is supplied.
const defaultRequestTimeout = 5 * time.Second

// Client performs the two REST primitives against individual lights:
// fetch current state and push a partial state update.
//
// There are no retries at this layer; a single failed attempt is surfaced
// immediately to the caller as an *UnreachableError.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a device client. If httpClient is nil, a client with a
// 5-second timeout is used.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Client{httpClient: httpClient}
}

// FetchState reads the current state of the light at the given endpoint.
//
// It issues a GET against /elgato/lights and returns the first light's
// reported state. Key lights expose exactly one light per device.
//
// Returns:
//   - LightState: The first light's state
//   - error: *UnreachableError on transport or non-2xx failure,
//     ErrNoLights if the device reports an empty lights array
func (c *Client) FetchState(ctx context.Context, ep device.Endpoint) (LightState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ep.URL()+lightsPath, nil)
	if err != nil {
		return LightState{}, &UnreachableError{Endpoint: ep, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return LightState{}, &UnreachableError{Endpoint: ep, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return LightState{}, &UnreachableError{
			Endpoint: ep,
			Err:      fmt.Errorf("unexpected status code %d", resp.StatusCode),
		}
	}

	var envelope lightsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return LightState{}, &UnreachableError{Endpoint: ep, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if len(envelope.Lights) == 0 {
		return LightState{}, fmt.Errorf("%w: %s", ErrNoLights, ep)
	}

	return envelope.Lights[0], nil
}

// PushState writes a partial state update to the light at the given endpoint.
//
// Only the fields set on the update are sent; the device applies a
// server-side merge and leaves other attributes untouched.
//
// Returns:
//   - error: *UnreachableError on transport or non-2xx failure
func (c *Client) PushState(ctx context.Context, ep device.Endpoint, update StateUpdate) error {
	body, err := json.Marshal(updateEnvelope{Lights: []StateUpdate{update}})
	if err != nil {
		return fmt.Errorf("encoding state update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, ep.URL()+lightsPath, bytes.NewReader(body))
	if err != nil {
		return &UnreachableError{Endpoint: ep, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UnreachableError{Endpoint: ep, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UnreachableError{
			Endpoint: ep,
			Err:      fmt.Errorf("unexpected status code %d", resp.StatusCode),
		}
	}

	return nil
}

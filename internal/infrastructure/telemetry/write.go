package telemetry

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteLightMetric records a single light measurement.
//
// This is the primary method for recording light telemetry after a
// control operation. The write is non-blocking; data is batched and
// sent asynchronously. Lights are identified by their host address,
// which is stable across discovery runs for statically addressed
// installations.
//
// Example:
//
//	client.WriteLightMetric("192.168.1.20", "brightness", 55)
//	client.WriteLightMetric("192.168.1.20", "temperature", 213)
func (c *Client) WriteLightMetric(host string, measurement string, value float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"light_metrics",
		map[string]string{
			"host":        host,
			"measurement": measurement,
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteDiscoveryMetric records the outcome of a discovery run: how many
// lights were found and how long the run took.
func (c *Client) WriteDiscoveryMetric(found int, elapsed time.Duration) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"discovery",
		nil,
		map[string]interface{}{
			"found":      found,
			"elapsed_ms": float64(elapsed.Milliseconds()),
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
// Tags should stay low cardinality.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

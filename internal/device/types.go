package device

import (
	"fmt"
	"net"
	"strconv"
)

// Endpoint is a light's network address and port, used for all REST calls.
// Endpoints are immutable once constructed; they are produced only by the
// discovery service.
type Endpoint struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// NewEndpoint constructs an Endpoint from a host address and port.
func NewEndpoint(host string, port int) Endpoint {
	return Endpoint{Host: host, Port: port}
}

// String returns the endpoint as "host:port".
func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// URL returns the base HTTP URL for the endpoint, e.g. "http://192.168.1.20:9123".
func (e Endpoint) URL() string {
	return fmt.Sprintf("http://%s", e.String())
}

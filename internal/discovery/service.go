package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lumen-home/lumen-core/internal/device"
)

// Logger defines the logging interface used by the Service.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Options configures a discovery Service.
type Options struct {
	// Addresses is an optional comma-separated static address list.
	// When non-empty it bypasses mDNS discovery entirely.
	Addresses string

	// DefaultPort is the port assigned to statically configured endpoints.
	DefaultPort int

	// DeviceCount is the number of lights mDNS discovery waits for.
	DeviceCount int

	// Timeout bounds mDNS discovery. Zero means 5 seconds.
	Timeout time.Duration

	// Browser overrides the production mDNS browser. Nil selects the real one.
	Browser Browser
}

// defaultTimeout is the mDNS discovery timeout when none is configured.
const defaultTimeout = 5 * time.Second

// Service resolves the set of light endpoints, either from a static address
// list or by browsing for multicast announcements, and installs the result
// in the registry.
//
// Only one discovery runs at a time; concurrent Discover calls are
// serialised so they cannot race on the shared registry.
type Service struct {
	registry *device.Registry
	opts     Options
	browser  Browser
	logger   Logger

	// mu serialises Discover calls.
	mu sync.Mutex
}

// NewService creates a discovery service bound to the given registry.
func NewService(registry *device.Registry, opts Options) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	browser := opts.Browser
	if browser == nil {
		browser = newMDNSBrowser(opts.Timeout)
	}

	return &Service{
		registry: registry,
		opts:     opts,
		browser:  browser,
		logger:   noopLogger{},
	}
}

// SetLogger sets the logger for the service.
func (s *Service) SetLogger(logger Logger) {
	s.logger = logger
}

// Discover resolves light endpoints and replaces the registry contents.
//
// With a static address list configured, resolution is synchronous and makes
// no network calls. Otherwise an mDNS browse runs until the target device
// count is reached or the timeout elapses.
//
// Returns:
//   - []device.Endpoint: The resolved endpoints, in resolution order
//   - error: ErrNoDevicesFound if the timeout fired with nothing resolved;
//     *PartialError if it fired with fewer than DeviceCount endpoints (the
//     partial set stays in the registry); ErrInvalidAddressList for a
//     malformed static list
func (s *Service) Discover(ctx context.Context) ([]device.Endpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.Addresses != "" {
		return s.discoverStatic()
	}
	return s.discoverMDNS(ctx)
}

// discoverStatic parses the comma-separated address list, one endpoint per
// entry on the default port. No network activity occurs.
func (s *Service) discoverStatic() ([]device.Endpoint, error) {
	parts := strings.Split(s.opts.Addresses, ",")
	endpoints := make([]device.Endpoint, 0, len(parts))
	for i, part := range parts {
		addr := strings.TrimSpace(part)
		if addr == "" {
			return nil, fmt.Errorf("%w: entry %d is empty", ErrInvalidAddressList, i+1)
		}
		endpoints = append(endpoints, device.NewEndpoint(addr, s.opts.DefaultPort))
	}

	s.registry.Replace(endpoints)
	s.logger.Info("discovery resolved static addresses", "count", len(endpoints))
	return endpoints, nil
}

// discoverMDNS browses for announcements until the target count is reached
// or the timeout elapses. The browser is torn down on every terminal path.
func (s *Service) discoverMDNS(ctx context.Context) ([]device.Endpoint, error) {
	want := s.opts.DeviceCount
	if want < 1 {
		return nil, ErrInvalidDeviceCount
	}

	// The old contents are discarded before browsing; appended endpoints are
	// visible to readers as announcements arrive.
	s.registry.Clear()

	browseCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	entries := make(chan Announcement, entryBuffer)
	browseDone := make(chan error, 1)
	go func() {
		browseDone <- s.browser.Browse(browseCtx, entries)
	}()

	timer := time.NewTimer(s.opts.Timeout)
	defer timer.Stop()

	s.logger.Info("mdns discovery started", "service", ServiceType, "want", want)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case ann := <-entries:
			if !usable(ann) {
				s.logger.Debug("ignoring unusable announcement", "host", ann.Host, "port", ann.Port)
				continue
			}
			ep := device.NewEndpoint(ann.Host, ann.Port)
			s.registry.Append(ep)
			s.logger.Info("light discovered", "endpoint", ep.String(), "found", s.registry.Count())

			if s.registry.Count() >= want {
				cancel()
				return s.registry.Snapshot(), nil
			}

		case <-timer.C:
			cancel()
			return s.settle(nil)

		case err := <-browseDone:
			// The browser terminated on its own before the target count was
			// reached; drain anything still buffered, then settle.
			s.drain(entries, want)
			if s.registry.Count() >= want {
				return s.registry.Snapshot(), nil
			}
			return s.settle(err)
		}
	}
}

// drain consumes buffered announcements after the browser has terminated.
func (s *Service) drain(entries <-chan Announcement, want int) {
	for {
		select {
		case ann := <-entries:
			if usable(ann) && s.registry.Count() < want {
				s.registry.Append(device.NewEndpoint(ann.Host, ann.Port))
			}
		default:
			return
		}
	}
}

// settle resolves the terminal outcome when browsing ended short of the
// target count. browseErr carries a browser failure, if any.
func (s *Service) settle(browseErr error) ([]device.Endpoint, error) {
	found := s.registry.Count()
	if found == 0 {
		if browseErr != nil && !errors.Is(browseErr, context.Canceled) {
			return nil, fmt.Errorf("%w: %w", ErrBrowseFailed, browseErr)
		}
		s.logger.Warn("mdns discovery found no devices")
		return nil, ErrNoDevicesFound
	}

	s.logger.Warn("mdns discovery timed out with partial results",
		"found", found,
		"want", s.opts.DeviceCount,
	)
	// The partial set stays in the registry and is returned alongside the
	// error so callers can proceed with the lights that were found.
	return s.registry.Snapshot(), &PartialError{Found: found, Want: s.opts.DeviceCount}
}

// usable reports whether an announcement carries enough to build an endpoint.
func usable(ann Announcement) bool {
	return ann.Host != "" && ann.Host != "<nil>" && ann.Port > 0
}

package discovery

import (
	"context"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service type Elgato key lights announce.
const ServiceType = "_elg._tcp"

// entryBuffer sizes the mDNS entry channel; announcements beyond the buffer
// are dropped by the resolver rather than blocking it.
const entryBuffer = 16

// Announcement is a single multicast service announcement as seen on the
// wire. Host may be empty when the responder did not include an A record.
type Announcement struct {
	Host string
	Port int
}

// Browser streams service announcements until its context is cancelled or
// its own timeout elapses. Implementations must return once browsing has
// terminated and must release the underlying listener before returning.
type Browser interface {
	Browse(ctx context.Context, entries chan<- Announcement) error
}

// mdnsBrowser browses for ServiceType announcements via hashicorp/mdns.
type mdnsBrowser struct {
	timeout time.Duration
}

// newMDNSBrowser creates the production Browser. The timeout bounds the
// underlying query; the service layer applies its own completion policy on
// top of it.
func newMDNSBrowser(timeout time.Duration) Browser {
	return &mdnsBrowser{timeout: timeout}
}

// Browse runs one multicast query and forwards usable-looking entries.
// Cancelling ctx tears down the resolver's sockets.
func (b *mdnsBrowser) Browse(ctx context.Context, entries chan<- Announcement) error {
	raw := make(chan *mdns.ServiceEntry, entryBuffer)
	done := make(chan error, 1)

	go func() {
		defer close(raw)
		done <- mdns.QueryContext(ctx, &mdns.QueryParam{
			Service:             ServiceType,
			Domain:              "local",
			Timeout:             b.timeout,
			Entries:             raw,
			DisableIPv6:         true,
			WantUnicastResponse: true,
		})
	}()

	for entry := range raw {
		ann := Announcement{Port: entry.Port}
		if entry.AddrV4 != nil {
			ann.Host = entry.AddrV4.String()
		}

		select {
		case entries <- ann:
		case <-ctx.Done():
			// Keep draining raw so the query goroutine never blocks.
		}
	}

	return <-done
}

package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumen-home/lumen-core/internal/device"
)

// fakeBrowser replays a scripted set of announcements. When block is set it
// keeps "browsing" until its context is cancelled, like a quiet network.
type fakeBrowser struct {
	anns  []Announcement
	err   error
	block bool

	// stopped is closed when the browser sees its context cancelled,
	// letting tests assert teardown happened.
	stopped chan struct{}
}

func newFakeBrowser(anns []Announcement) *fakeBrowser {
	return &fakeBrowser{anns: anns, stopped: make(chan struct{})}
}

func (f *fakeBrowser) Browse(ctx context.Context, entries chan<- Announcement) error {
	defer close(f.stopped)

	for _, ann := range f.anns {
		select {
		case entries <- ann:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}

// assertStopped fails the test unless the browser was torn down.
func (f *fakeBrowser) assertStopped(t *testing.T) {
	t.Helper()
	select {
	case <-f.stopped:
	case <-time.After(time.Second):
		t.Error("browser was not torn down after discovery settled")
	}
}

func TestDiscover_StaticAddresses(t *testing.T) {
	registry := device.NewRegistry()
	browser := newFakeBrowser(nil)
	svc := NewService(registry, Options{
		Addresses:   " 192.168.1.20 ,192.168.1.21,  192.168.1.22",
		DefaultPort: 9123,
		Browser:     browser,
	})

	endpoints, err := svc.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(endpoints) != 3 {
		t.Fatalf("Discover() returned %d endpoints, want 3", len(endpoints))
	}
	for i, want := range []string{"192.168.1.20", "192.168.1.21", "192.168.1.22"} {
		if endpoints[i].Host != want {
			t.Errorf("endpoint %d host = %q, want %q (whitespace trimmed)", i, endpoints[i].Host, want)
		}
		if endpoints[i].Port != 9123 {
			t.Errorf("endpoint %d port = %d, want default 9123", i, endpoints[i].Port)
		}
	}
	if registry.Count() != 3 {
		t.Errorf("registry Count() = %d, want 3", registry.Count())
	}

	// The static path never touches the network.
	select {
	case <-browser.stopped:
		t.Error("static discovery invoked the mDNS browser")
	default:
	}
}

func TestDiscover_StaticReplacesOldContents(t *testing.T) {
	registry := device.NewRegistry()
	registry.Replace([]device.Endpoint{device.NewEndpoint("10.9.9.9", 9123)})

	svc := NewService(registry, Options{Addresses: "192.168.1.20", DefaultPort: 9123})
	if _, err := svc.Discover(context.Background()); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	snap := registry.Snapshot()
	if len(snap) != 1 || snap[0].Host != "192.168.1.20" {
		t.Errorf("registry = %v, want the old contents discarded", snap)
	}
}

func TestDiscover_StaticMalformedList(t *testing.T) {
	registry := device.NewRegistry()
	svc := NewService(registry, Options{Addresses: "192.168.1.20,,192.168.1.22", DefaultPort: 9123})

	_, err := svc.Discover(context.Background())
	if !errors.Is(err, ErrInvalidAddressList) {
		t.Errorf("Discover() = %v, want ErrInvalidAddressList", err)
	}
}

func TestDiscover_MDNSCountReached(t *testing.T) {
	registry := device.NewRegistry()
	browser := newFakeBrowser([]Announcement{
		{Host: "192.168.1.30", Port: 9123},
		{Host: "192.168.1.31", Port: 9124},
		{Host: "192.168.1.32", Port: 9123}, // arrives after the target count
	})
	browser.block = true

	svc := NewService(registry, Options{
		DeviceCount: 2,
		Timeout:     2 * time.Second,
		Browser:     browser,
	})

	endpoints, err := svc.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(endpoints) != 2 {
		t.Fatalf("Discover() returned %d endpoints, want 2", len(endpoints))
	}

	// Append order equals announcement arrival order.
	if endpoints[0].Host != "192.168.1.30" || endpoints[1].Host != "192.168.1.31" {
		t.Errorf("endpoints = %v, not in arrival order", endpoints)
	}
	if endpoints[1].Port != 9124 {
		t.Errorf("endpoint port = %d, want the announced 9124", endpoints[1].Port)
	}

	browser.assertStopped(t)

	// Late announcements produce no further registry mutation.
	if registry.Count() != 2 {
		t.Errorf("registry Count() after settle = %d, want 2", registry.Count())
	}
}

func TestDiscover_MDNSSkipsUnusableAnnouncements(t *testing.T) {
	registry := device.NewRegistry()
	browser := newFakeBrowser([]Announcement{
		{Host: "", Port: 9123},
		{Host: "<nil>", Port: 9123},
		{Host: "192.168.1.40", Port: 0},
		{Host: "192.168.1.41", Port: 9123},
	})
	browser.block = true

	svc := NewService(registry, Options{
		DeviceCount: 1,
		Timeout:     2 * time.Second,
		Browser:     browser,
	})

	endpoints, err := svc.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(endpoints) != 1 || endpoints[0].Host != "192.168.1.41" {
		t.Errorf("endpoints = %v, want only the usable announcement", endpoints)
	}
}

func TestDiscover_MDNSTimeoutZeroFound(t *testing.T) {
	registry := device.NewRegistry()
	registry.Replace([]device.Endpoint{device.NewEndpoint("10.9.9.9", 9123)})

	browser := newFakeBrowser(nil)
	browser.block = true

	svc := NewService(registry, Options{
		DeviceCount: 2,
		Timeout:     50 * time.Millisecond,
		Browser:     browser,
	})

	_, err := svc.Discover(context.Background())
	if !errors.Is(err, ErrNoDevicesFound) {
		t.Fatalf("Discover() = %v, want ErrNoDevicesFound", err)
	}

	browser.assertStopped(t)

	// The registry was cleared at the start of the call and stays empty.
	if registry.Count() != 0 {
		t.Errorf("registry Count() = %d, want 0", registry.Count())
	}
}

func TestDiscover_MDNSPartialTimeout(t *testing.T) {
	registry := device.NewRegistry()
	browser := newFakeBrowser([]Announcement{{Host: "192.168.1.50", Port: 9123}})
	browser.block = true

	svc := NewService(registry, Options{
		DeviceCount: 3,
		Timeout:     50 * time.Millisecond,
		Browser:     browser,
	})

	_, err := svc.Discover(context.Background())

	var partial *PartialError
	if !errors.As(err, &partial) {
		t.Fatalf("Discover() = %v, want *PartialError", err)
	}
	if partial.Found != 1 || partial.Want != 3 {
		t.Errorf("PartialError = %+v, want Found=1 Want=3", partial)
	}

	browser.assertStopped(t)

	// The partial set stays in the registry for callers that want it anyway.
	if registry.Count() != 1 {
		t.Errorf("registry Count() = %d, want the partial set retained", registry.Count())
	}
}

func TestDiscover_MDNSBrowserFailure(t *testing.T) {
	registry := device.NewRegistry()
	browser := newFakeBrowser(nil)
	browser.err = errors.New("socket: operation not permitted")

	svc := NewService(registry, Options{
		DeviceCount: 1,
		Timeout:     time.Second,
		Browser:     browser,
	})

	_, err := svc.Discover(context.Background())
	if !errors.Is(err, ErrBrowseFailed) {
		t.Errorf("Discover() = %v, want ErrBrowseFailed", err)
	}
}

func TestDiscover_MDNSBrowserEndsEarlyWithPartial(t *testing.T) {
	registry := device.NewRegistry()
	browser := newFakeBrowser([]Announcement{{Host: "192.168.1.60", Port: 9123}})

	svc := NewService(registry, Options{
		DeviceCount: 2,
		Timeout:     5 * time.Second,
		Browser:     browser,
	})

	start := time.Now()
	_, err := svc.Discover(context.Background())

	var partial *PartialError
	if !errors.As(err, &partial) {
		t.Fatalf("Discover() = %v, want *PartialError", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Discover() waited %v after the browser ended; should settle promptly", elapsed)
	}
}

func TestDiscover_MDNSInvalidDeviceCount(t *testing.T) {
	svc := NewService(device.NewRegistry(), Options{DeviceCount: 0, Browser: newFakeBrowser(nil)})

	_, err := svc.Discover(context.Background())
	if !errors.Is(err, ErrInvalidDeviceCount) {
		t.Errorf("Discover() = %v, want ErrInvalidDeviceCount", err)
	}
}

func TestDiscover_ContextCancelled(t *testing.T) {
	browser := newFakeBrowser(nil)
	browser.block = true

	svc := NewService(device.NewRegistry(), Options{
		DeviceCount: 1,
		Timeout:     5 * time.Second,
		Browser:     browser,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := svc.Discover(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Discover() = %v, want context.Canceled", err)
	}
}

package device

import (
	"fmt"
	"sync"
	"testing"
)

func TestEndpoint_String(t *testing.T) {
	ep := NewEndpoint("192.168.1.20", 9123)
	if got := ep.String(); got != "192.168.1.20:9123" {
		t.Errorf("String() = %q, want %q", got, "192.168.1.20:9123")
	}
	if got := ep.URL(); got != "http://192.168.1.20:9123" {
		t.Errorf("URL() = %q, want %q", got, "http://192.168.1.20:9123")
	}
}

func TestRegistry_ReplaceAndSnapshot(t *testing.T) {
	r := NewRegistry()

	if r.Count() != 0 {
		t.Fatalf("new registry Count() = %d, want 0", r.Count())
	}

	first := []Endpoint{
		NewEndpoint("192.168.1.20", 9123),
		NewEndpoint("192.168.1.21", 9123),
	}
	r.Replace(first)

	if r.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", r.Count())
	}

	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Host != "192.168.1.20" || snap[1].Host != "192.168.1.21" {
		t.Errorf("Snapshot() = %v, order not preserved", snap)
	}

	// Replacing discards old contents entirely.
	r.Replace([]Endpoint{NewEndpoint("10.0.0.5", 9123)})
	if r.Count() != 1 {
		t.Errorf("Count() after replace = %d, want 1", r.Count())
	}
}

func TestRegistry_SnapshotIsCopy(t *testing.T) {
	r := NewRegistry()
	r.Replace([]Endpoint{NewEndpoint("192.168.1.20", 9123)})

	snap := r.Snapshot()
	snap[0] = NewEndpoint("mutated", 1)

	if got := r.Snapshot()[0].Host; got != "192.168.1.20" {
		t.Errorf("mutating a snapshot changed the registry, Host = %q", got)
	}
}

func TestRegistry_AppendOrder(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 5; i++ {
		r.Append(NewEndpoint(fmt.Sprintf("10.0.0.%d", i), 9123))
	}

	snap := r.Snapshot()
	for i, ep := range snap {
		want := fmt.Sprintf("10.0.0.%d", i)
		if ep.Host != want {
			t.Errorf("Snapshot()[%d].Host = %q, want %q (append order)", i, ep.Host, want)
		}
	}
}

func TestRegistry_ClearThenAppendVisible(t *testing.T) {
	r := NewRegistry()
	r.Replace([]Endpoint{NewEndpoint("192.168.1.20", 9123)})
	r.Clear()

	if r.Count() != 0 {
		t.Fatalf("Count() after Clear = %d, want 0", r.Count())
	}

	// Partial results become visible as they are appended.
	r.Append(NewEndpoint("192.168.1.30", 9123))
	if r.Count() != 1 {
		t.Errorf("Count() after Append = %d, want 1", r.Count())
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			r.Append(NewEndpoint(fmt.Sprintf("10.0.1.%d", n), 9123))
		}(i)
		go func() {
			defer wg.Done()
			_ = r.Snapshot()
			_ = r.Count()
		}()
	}
	wg.Wait()

	if r.Count() != 10 {
		t.Errorf("Count() = %d, want 10", r.Count())
	}
}

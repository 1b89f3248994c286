// Package observability provides hooks for instrumenting martservice calls.
//
// The library stays free of hard dependencies on observability backends:
// consumers register hook implementations at startup and receive an event
// per HTTP round-trip, which they can forward to whatever metrics or tracing
// stack they run (OpenTelemetry, Prometheus, plain logs, ...).
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// The client emits events around every request:
//
//	observability.HTTP().OnRequest(ctx, "GET", "www.ensembl.org", "/biomart/martservice")
package observability

import (
	"context"
	"sync"
	"time"
)

// HTTPHooks receives events for martservice HTTP round-trips.
type HTTPHooks interface {
	// OnRequest is called before a request is sent.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse is called after a response arrives, with its status and
	// the round-trip duration.
	OnResponse(ctx context.Context, method, host, path string, status int, duration time.Duration)

	// OnError is called when the transport fails before a response exists.
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopHTTPHooks is the default HTTPHooks implementation that does nothing.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(ctx context.Context, method, host, path string) {}
func (NoopHTTPHooks) OnResponse(ctx context.Context, method, host, path string, status int, duration time.Duration) {
}
func (NoopHTTPHooks) OnError(ctx context.Context, method, host, path string, err error) {}

var (
	mu        sync.RWMutex
	httpHooks HTTPHooks = NoopHTTPHooks{}
)

// SetHTTPHooks registers the hooks called around every request. Pass nil to
// restore the no-op default.
func SetHTTPHooks(h HTTPHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		httpHooks = NoopHTTPHooks{}
		return
	}
	httpHooks = h
}

// HTTP returns the currently registered hooks, never nil.
func HTTP() HTTPHooks {
	mu.RLock()
	defer mu.RUnlock()
	return httpHooks
}

// Reset restores the no-op defaults. Intended for tests.
func Reset() {
	SetHTTPHooks(nil)
}

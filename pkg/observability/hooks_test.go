package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testHTTPHooks struct {
	requests  int
	responses int
	errs      int
}

func (h *testHTTPHooks) OnRequest(ctx context.Context, method, host, path string) { h.requests++ }
func (h *testHTTPHooks) OnResponse(ctx context.Context, method, host, path string, status int, duration time.Duration) {
	h.responses++
}
func (h *testHTTPHooks) OnError(ctx context.Context, method, host, path string, err error) {
	h.errs++
}

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "www.ensembl.org", "/biomart/martservice")
	h.OnResponse(ctx, "GET", "www.ensembl.org", "/biomart/martservice", 200, time.Second)
	h.OnError(ctx, "POST", "www.ensembl.org", "/biomart/martservice", errors.New("boom"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	custom := &testHTTPHooks{}
	SetHTTPHooks(custom)
	if HTTP() != HTTPHooks(custom) {
		t.Error("SetHTTPHooks should install custom hooks")
	}

	HTTP().OnRequest(context.Background(), "GET", "h", "/p")
	if custom.requests != 1 {
		t.Errorf("requests = %d, want 1", custom.requests)
	}

	SetHTTPHooks(nil)
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("SetHTTPHooks(nil) should restore the no-op default")
	}

	Reset()
}

package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shaharia-lab/nexusctl/internal/nexus"
)

// recordingView keeps only what the region currently shows, plus a call log.
type recordingView struct {
	kind    string
	methods []PaymentMethod
	keys    []APIKey
	message string
	calls   []string
}

func (v *recordingView) ShowPaymentMethods(methods []PaymentMethod) {
	*v = recordingView{kind: "list", methods: methods, calls: append(v.calls, "list")}
}

func (v *recordingView) ShowAPIKeys(keys []APIKey) {
	*v = recordingView{kind: "list", keys: keys, calls: append(v.calls, "list")}
}

func (v *recordingView) ShowEmpty(message string) {
	*v = recordingView{kind: "empty", message: message, calls: append(v.calls, "empty")}
}

func (v *recordingView) ShowError(message string) {
	*v = recordingView{kind: "error", message: message, calls: append(v.calls, "error")}
}

type notification struct {
	ok      bool
	message string
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []notification
}

func (n *recordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, notification{ok: true, message: message})
}

func (n *recordingNotifier) Failure(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, notification{ok: false, message: message})
}

type fakePrompter struct {
	answer string
	err    error
	asked  []string
}

func (p *fakePrompter) Prompt(ctx context.Context, message string) (string, error) {
	p.asked = append(p.asked, message)
	return p.answer, p.err
}

type recordingDialog struct {
	mu      sync.Mutex
	events  []string
	enabled bool
	closed  bool
}

func (d *recordingDialog) SetSubmitEnabled(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled = enabled
	if enabled {
		d.events = append(d.events, "enable")
	} else {
		d.events = append(d.events, "disable")
	}
}

func (d *recordingDialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.events = append(d.events, "close")
}

type tokenizerFunc func(ctx context.Context, secret string, card CardDetails) (string, error)

func (f tokenizerFunc) ConfirmCardSetup(ctx context.Context, secret string, card CardDetails) (string, error) {
	return f(ctx, secret, card)
}

// recordedRequest is one request seen by the fake dashboard server.
type recordedRequest struct {
	Method      string
	Path        string
	APIKey      string
	ContentType string
	Body        map[string]interface{}
}

type route struct {
	status int
	body   string
}

// fakeServer answers "METHOD /path" with canned responses and records every request.
type fakeServer struct {
	mu       sync.Mutex
	routes   map[string]route
	requests []recordedRequest
}

func newFakeServer(t *testing.T, routes map[string]route) (*fakeServer, *nexus.Client) {
	t.Helper()
	fs := &fakeServer{routes: routes}
	srv := httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(srv.Close)
	return fs, nexus.NewClient("test-key", nexus.WithBaseURL(srv.URL))
}

func (fs *fakeServer) serve(w http.ResponseWriter, r *http.Request) {
	rec := recordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		APIKey:      r.Header.Get("X-API-Key"),
		ContentType: r.Header.Get("Content-Type"),
	}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &rec.Body)
	}

	fs.mu.Lock()
	fs.requests = append(fs.requests, rec)
	rt, ok := fs.routes[r.Method+" "+r.URL.Path]
	fs.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rt.status)
	_, _ = io.WriteString(w, rt.body)
}

func (fs *fakeServer) setRoute(key string, rt route) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.routes[key] = rt
}

func (fs *fakeServer) calls() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]string, len(fs.requests))
	for i, r := range fs.requests {
		out[i] = r.Method + " " + r.Path
	}
	return out
}

func (fs *fakeServer) request(i int) recordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.requests[i]
}

type fixture struct {
	server   *fakeServer
	handlers *Handlers
	payments *recordingView
	keys     *recordingView
	notifier *recordingNotifier
	prompter *fakePrompter
}

func newFixture(t *testing.T, routes map[string]route) *fixture {
	t.Helper()
	fs, client := newFakeServer(t, routes)
	f := &fixture{
		server:   fs,
		payments: &recordingView{},
		keys:     &recordingView{},
		notifier: &recordingNotifier{},
		prompter: &fakePrompter{},
	}

	h, err := NewHandlers(Options{
		Client:      client,
		CustomerID:  "1",
		PaymentView: f.payments,
		KeysView:    f.keys,
		Notifier:    f.notifier,
		Prompter:    f.prompter,
	})
	if err != nil {
		t.Fatalf("NewHandlers: %v", err)
	}
	f.handlers = h
	return f
}

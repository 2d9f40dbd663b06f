package internal_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formwizard/internal"
	"github.com/dmitrymomot/formwizard/pkg/job"
	"github.com/dmitrymomot/formwizard/pkg/session"
)

// fakeRenderer records the locals of every rendered template and writes the
// template name as the body.
type fakeRenderer struct {
	mu     sync.Mutex
	locals map[string]map[string]any
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{locals: make(map[string]map[string]any)}
}

func (r *fakeRenderer) Component(name string, locals map[string]any) (internal.Component, error) {
	r.mu.Lock()
	r.locals[name] = locals
	r.mu.Unlock()
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "template:"+name)
		return err
	}), nil
}

func (r *fakeRenderer) last(t *testing.T, name string) map[string]any {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	locals, ok := r.locals[name]
	require.True(t, ok, "template %q was not rendered", name)
	return locals
}

type fakeQueue struct {
	mu    sync.Mutex
	names []string
	jobs  []any
	err   error
}

func (q *fakeQueue) Enqueue(_ context.Context, name string, payload any, _ ...job.EnqueueOption) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.names = append(q.names, name)
	q.jobs = append(q.jobs, payload)
	return nil
}

func (q *fakeQueue) enqueued() ([]string, []any) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.names...), append([]any(nil), q.jobs...)
}

type response struct {
	status   int
	location string
	body     string
	header   http.Header
}

// harness runs a wizard behind a real App with an in-memory session store.
// The client keeps cookies and does not follow redirects.
type harness struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
	views  *fakeRenderer
	wizard *internal.Wizard
}

func startWizard(t *testing.T, cfg internal.WizardConfig, wopts []internal.WizardOption, appOpts ...internal.Option) *harness {
	t.Helper()

	views := newFakeRenderer()
	wopts = append([]internal.WizardOption{
		internal.WithControllerOptions(internal.WithRenderer(views)),
	}, wopts...)
	w, err := internal.NewWizard(cfg, wopts...)
	require.NoError(t, err)

	store := session.NewMemoryStore(session.WithCleanupInterval(0))
	t.Cleanup(func() { _ = store.Close() })

	app := internal.New(append([]internal.Option{
		internal.WithSession(store),
		internal.WithHandlers(w),
	}, appOpts...)...)

	srv := httptest.NewServer(app.Router())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &harness{
		t:   t,
		srv: srv,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		views:  views,
		wizard: w,
	}
}

func (h *harness) get(path string) response {
	h.t.Helper()
	return h.do(http.MethodGet, path, nil)
}

func (h *harness) post(path string, form url.Values) response {
	h.t.Helper()
	return h.do(http.MethodPost, path, form)
}

func (h *harness) do(method, path string, form url.Values) response {
	h.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, h.srv.URL+path, body)
	require.NoError(h.t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := h.client.Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)

	return response{
		status:   resp.StatusCode,
		location: resp.Header.Get("Location"),
		body:     string(data),
		header:   resp.Header,
	}
}

// requireRedirect asserts a 303 to location.
func requireRedirect(t *testing.T, resp response, location string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, resp.status, "body: %s", resp.body)
	require.Equal(t, location, resp.location)
}

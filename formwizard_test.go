package formwizard_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formwizard"
	"github.com/dmitrymomot/formwizard/middlewares"
	"github.com/dmitrymomot/formwizard/pkg/session"
	"github.com/dmitrymomot/formwizard/pkg/view"
)

func TestApp_Wizard(t *testing.T) {
	t.Parallel()

	views, err := view.New(
		view.WithView("step", func(locals map[string]any) templ.Component {
			return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
				_, err := io.WriteString(w, "step "+locals["route"].(string))
				return err
			})
		}),
		view.WithFallback("step"),
	)
	require.NoError(t, err)

	wizard := formwizard.MustWizard(formwizard.WizardConfig{
		Name:    "apply",
		BaseURL: "/apply",
		Steps: formwizard.Steps{
			{
				Route:    "/name",
				Template: "name",
				Fields:   formwizard.Fields{{Key: "name", Validate: formwizard.Rules{{Type: "required"}}}},
				Next:     "/done",
			},
			{Route: "/done", Template: "done"},
		},
	}, formwizard.WithControllerOptions(formwizard.WithRenderer(views)))

	store := session.NewMemoryStore(session.WithCleanupInterval(0))
	t.Cleanup(func() { _ = store.Close() })

	app := formwizard.New(
		formwizard.WithSession(store),
		formwizard.WithMiddleware(middlewares.Recover()),
		formwizard.WithHandlers(wizard),
		formwizard.WithHealthChecks(),
	)

	t.Run("renders through the fallback view", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/apply/name", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "step name", rec.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("redirects after a valid submission", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/apply/name", strings.NewReader(url.Values{"name": {"Jane"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		app.Router().ServeHTTP(rec, req)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/apply/done", rec.Header().Get("Location"))
		assert.NotEmpty(t, rec.Result().Cookies())
	})

	t.Run("htmx submissions get HX-Redirect", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/apply/name", strings.NewReader(url.Values{}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		app.Router().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/apply/name", rec.Header().Get("HX-Redirect"))
	})

	t.Run("health endpoints", func(t *testing.T) {
		t.Parallel()
		for _, path := range []string{"/health/live", "/health/ready"} {
			rec := httptest.NewRecorder()
			app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, rec.Code, path)
		}
	})

	t.Run("unknown routes", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestErrorStep(t *testing.T) {
	t.Parallel()

	errs := formwizard.ValidationErrors{"name": &formwizard.ValidationError{Key: "name", Type: "required", Redirect: "/exit"}}
	assert.Equal(t, "/apply/exit", formwizard.ErrorStep(errs, "/apply/name", "/apply", false))
	assert.True(t, formwizard.IsValidationError(errs))
}

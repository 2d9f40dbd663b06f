package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formwizard/internal"
	"github.com/dmitrymomot/formwizard/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	run := func(t *testing.T, mw internal.Middleware, h internal.HandlerFunc) error {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return mw(h)(newTestContext(httptest.NewRecorder(), req))
	}

	t.Run("panic becomes an internal error", func(t *testing.T) {
		t.Parallel()

		err := run(t, middlewares.Recover(), func(c internal.Context) error {
			panic("test panic")
		})

		httpErr := internal.AsHTTPError(err)
		require.NotNil(t, httpErr)
		require.Equal(t, http.StatusInternalServerError, httpErr.StatusCode())

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Equal(t, "test panic", pe.Value)
		require.NotEmpty(t, pe.Stack)
	})

	t.Run("error panic is reachable", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("boom")
		err := run(t, middlewares.Recover(), func(c internal.Context) error {
			panic(cause)
		})
		require.ErrorIs(t, err, cause)
	})

	t.Run("passes through without panic", func(t *testing.T) {
		t.Parallel()

		err := run(t, middlewares.Recover(), func(c internal.Context) error { return nil })
		require.NoError(t, err)
	})

	t.Run("handler errors are untouched", func(t *testing.T) {
		t.Parallel()

		want := internal.ErrNotFound("Not found")
		err := run(t, middlewares.Recover(), func(c internal.Context) error { return want })
		require.Same(t, want, err)
	})

	t.Run("stack capture disabled", func(t *testing.T) {
		t.Parallel()

		err := run(t, middlewares.Recover(middlewares.WithRecoverDisablePrintStack()), func(c internal.Context) error {
			panic(42)
		})
		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Equal(t, 42, pe.Value)
		require.Nil(t, pe.Stack)
	})

	t.Run("stack size limit", func(t *testing.T) {
		t.Parallel()

		err := run(t, middlewares.Recover(middlewares.WithRecoverStackSize(64)), func(c internal.Context) error {
			panic("small")
		})
		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.LessOrEqual(t, len(pe.Stack), 64)
	})
}

func TestRecover_App(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithMiddleware(middlewares.Recover()),
		internal.WithHandlers(handlerFunc(func(r internal.Router) {
			r.GET("/boom", func(c internal.Context) error { panic("boom") })
		})),
	)

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Internal Server Error", rec.Body.String())
}

type handlerFunc func(r internal.Router)

func (fn handlerFunc) Routes(r internal.Router) { fn(r) }

package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formwizard/pkg/cookie"
	"github.com/dmitrymomot/formwizard/pkg/htmx"
	"github.com/dmitrymomot/formwizard/pkg/i18n"
	"github.com/dmitrymomot/formwizard/pkg/job"
	"github.com/dmitrymomot/formwizard/pkg/session"
)

// Component is a renderable template. templ components satisfy it directly.
type Component = templ.Component

// TranslatorKey is the context key of the request *i18n.Translator.
type TranslatorKey struct{}

// LanguageKey is the context key of the resolved language.
type LanguageKey struct{}

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter

	// SetRequest replaces the request, e.g. to attach context values.
	SetRequest(r *http.Request)

	// Param returns a URL parameter of the matched route.
	Param(name string) string
	Query(name string) string
	Header(name string) string
	SetHeader(name, value string)

	JSON(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error

	// Redirect sends the client to url. HTMX requests get HX-Redirect
	// instead of a 3xx status.
	Redirect(code int, url string) error

	// Render writes component as HTML with the given status.
	Render(code int, component Component) error

	IsHTMX() bool
	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	Set(key, value any)
	Get(key any) any

	Cookie(name string) (string, error)
	SetCookie(name, value string, maxAge int)
	DeleteCookie(name string)

	// Session returns the session of the request, or nil when there is none.
	Session() (*session.Session, error)
	// InitSession starts a new session and sets its cookie.
	InitSession() error
	DestroySession() error

	// T translates key with the request translator. Without one the key
	// is returned unchanged.
	T(key string, placeholders ...i18n.M) string
	Translator() *i18n.Translator
	Language() string

	Enqueue(name string, payload any, opts ...job.EnqueueOption) error
}

type requestContext struct {
	response       http.ResponseWriter
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	cookieManager  *cookie.Manager
	sessionManager *SessionManager
	session        *session.Session
	jobs           job.Enqueuing

	sessionLoaded         bool
	sessionHookRegistered bool
}

func (a *App) newContext(w http.ResponseWriter, r *http.Request) *requestContext {
	rw := NewResponseWriter(w, htmx.IsHTMX(r))
	return &requestContext{
		request:        r,
		response:       rw,
		responseWriter: rw,
		logger:         a.logger,
		cookieManager:  a.cookieManager,
		sessionManager: a.sessionManager,
		jobs:           a.jobs,
	}
}

func (c *requestContext) Request() *http.Request        { return c.request }
func (c *requestContext) Response() http.ResponseWriter { return c.response }
func (c *requestContext) SetRequest(r *http.Request)    { c.request = r }

func (c *requestContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *requestContext) Err() error                  { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	htmx.RedirectWithStatus(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Render(code int, component Component) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)
	return component.Render(c.request.Context(), c.response)
}

func (c *requestContext) IsHTMX() bool {
	return htmx.IsHTMX(c.request)
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Cookie(name string) (string, error) {
	return c.cookieManager.Read(c.request, name)
}

func (c *requestContext) SetCookie(name, value string, maxAge int) {
	c.cookieManager.Write(c.response, name, value, maxAge)
}

func (c *requestContext) DeleteCookie(name string) {
	c.cookieManager.Delete(c.response, name)
}

// registerSessionHook persists session changes right before the response
// headers are written.
func (c *requestContext) registerSessionHook() {
	if c.sessionHookRegistered || c.sessionManager == nil {
		return
	}
	c.sessionHookRegistered = true
	c.responseWriter.OnBeforeWrite(func() {
		if c.session == nil {
			return
		}
		// The response is already being written, so a failed save can
		// only be logged.
		if err := c.sessionManager.Save(c.request.Context(), c.response, c.session); err != nil {
			c.LogError("failed to save session", "error", err)
		}
	})
}

func (c *requestContext) Session() (*session.Session, error) {
	if c.sessionManager == nil {
		return nil, ErrSessionNotConfigured
	}
	c.registerSessionHook()

	if c.sessionLoaded {
		return c.session, nil
	}
	s, err := c.sessionManager.Load(c.request.Context(), c.request)
	if err != nil {
		return nil, err
	}
	c.session = s
	c.sessionLoaded = true
	return c.session, nil
}

func (c *requestContext) InitSession() error {
	if c.sessionManager == nil {
		return ErrSessionNotConfigured
	}
	c.registerSessionHook()

	s, err := c.sessionManager.Create(c.request.Context(), c.response)
	if err != nil {
		return err
	}
	c.session = s
	c.sessionLoaded = true
	return nil
}

func (c *requestContext) DestroySession() error {
	if c.sessionManager == nil {
		return ErrSessionNotConfigured
	}
	if err := c.sessionManager.Destroy(c.request.Context(), c.response, c.session); err != nil {
		return err
	}
	c.session = nil
	c.sessionLoaded = true
	return nil
}

func (c *requestContext) Translator() *i18n.Translator {
	tr, _ := c.Get(TranslatorKey{}).(*i18n.Translator)
	return tr
}

func (c *requestContext) T(key string, placeholders ...i18n.M) string {
	if tr := c.Translator(); tr != nil {
		return tr.T(key, placeholders...)
	}
	return key
}

func (c *requestContext) Language() string {
	lang, _ := c.Get(LanguageKey{}).(string)
	return lang
}

func (c *requestContext) Enqueue(name string, payload any, opts ...job.EnqueueOption) error {
	if c.jobs == nil {
		return ErrJobsNotConfigured
	}
	return c.jobs.Enqueue(c.request.Context(), name, payload, opts...)
}

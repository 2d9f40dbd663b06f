package internal

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formwizard/pkg/cookie"
	"github.com/dmitrymomot/formwizard/pkg/health"
	"github.com/dmitrymomot/formwizard/pkg/job"
	"github.com/dmitrymomot/formwizard/pkg/logger"
	"github.com/dmitrymomot/formwizard/pkg/session"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds middleware applied to every route.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHTTPMiddleware adds plain net/http middleware, e.g. chi's
// middleware.RequestID. It runs before the Middleware chain.
func WithHTTPMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(a *App) {
		a.httpMiddlewares = append(a.httpMiddlewares, mw...)
	}
}

// WithHandlers registers handlers, wizards included.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithHealthChecks enables the liveness and readiness endpoints.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger builds the app logger with logger.New.
func WithLogger(cfg logger.Config, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(cfg, extractors...)
	}
}

// WithCustomLogger sets a ready logger, e.g. one from logger.NewWithSentry.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

func WithCookieOptions(opts ...cookie.Option) Option {
	return func(a *App) {
		a.cookieManager = cookie.New(opts...)
	}
}

// WithCookieManager sets a configured manager, e.g. from cookie.NewFromConfig.
func WithCookieManager(m *cookie.Manager) Option {
	return func(a *App) {
		if m != nil {
			a.cookieManager = m
		}
	}
}

// WithSession stores wizard state in store.
func WithSession(store session.Store, opts ...SessionOption) Option {
	return func(a *App) {
		a.sessionManager = NewSessionManager(store, opts...)
	}
}

// WithJobQueue makes Context.Enqueue available without running workers.
func WithJobQueue(q job.Enqueuing) Option {
	return func(a *App) {
		a.jobs = q
	}
}

// WithJobManager enqueues through m and runs its workers with the server.
func WithJobManager(m *job.Manager) Option {
	return func(a *App) {
		if m == nil {
			return
		}
		a.jobs = m
		a.startupHooks = append(a.startupHooks, m.StartFunc())
		a.shutdownHooks = append(a.shutdownHooks, m.Shutdown())
	}
}

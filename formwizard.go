package formwizard

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/formwizard/internal"
	"github.com/dmitrymomot/formwizard/pkg/cookie"
	"github.com/dmitrymomot/formwizard/pkg/field"
	"github.com/dmitrymomot/formwizard/pkg/formatter"
	"github.com/dmitrymomot/formwizard/pkg/health"
	"github.com/dmitrymomot/formwizard/pkg/job"
	"github.com/dmitrymomot/formwizard/pkg/logger"
	"github.com/dmitrymomot/formwizard/pkg/session"
	"github.com/dmitrymomot/formwizard/pkg/validator"
)

// Type aliases - public API
type (
	// App wires routing, sessions, health endpoints and graceful shutdown.
	App = internal.App

	Router       = internal.Router
	Context      = internal.Context
	Handler      = internal.Handler
	HandlerFunc  = internal.HandlerFunc
	Middleware   = internal.Middleware
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// Component is the interface for renderable templates.
	Component = internal.Component

	HealthOption  = internal.HealthOption
	SessionOption = internal.SessionOption
	CookieOption  = cookie.Option

	// ContextExtractor adds a request-scoped attribute to log records.
	ContextExtractor = logger.ContextExtractor

	HTTPError       = internal.HTTPError
	HTTPErrorOption = internal.HTTPErrorOption

	ServerConfig  = internal.ServerConfig
	SessionConfig = internal.SessionConfig

	// Extractor resolves a value from the first source that has one.
	Extractor       = internal.Extractor
	ExtractorSource = internal.ExtractorSource
)

// Wizard types
type (
	// Wizard is a set of steps mounted below a base URL.
	Wizard       = internal.Wizard
	WizardConfig = internal.WizardConfig
	WizardOption = internal.WizardOption

	// Step configures one page of a wizard.
	Step  = internal.Step
	Steps = internal.Steps
	Fork  = internal.Fork

	Controller       = internal.Controller
	ControllerOption = internal.ControllerOption
	Form             = internal.Form
	StageFunc        = internal.StageFunc
	FieldHook        = internal.FieldHook
	ForkFunc         = internal.ForkFunc
	FieldLocal       = internal.FieldLocal

	// Renderer turns a step template name and its locals into a component.
	Renderer = internal.Renderer

	ValueStore   = internal.ValueStore
	ErrorStore   = internal.ErrorStore
	Progress     = internal.Progress
	SessionStore = internal.SessionStore

	Field      = field.Field
	Fields     = field.Fields
	Rule       = field.Rule
	Rules      = field.Rules
	Condition  = field.Condition
	Components = field.Components

	ValidationError  = validator.ValidationError
	ValidationErrors = validator.Errors
)

// Errors
var (
	ErrTemplateRequired     = internal.ErrTemplateRequired
	ErrRendererRequired     = internal.ErrRendererRequired
	ErrSessionNotConfigured = internal.ErrSessionNotConfigured
	ErrJobsNotConfigured    = internal.ErrJobsNotConfigured
	ErrUnknownFieldHook     = internal.ErrUnknownFieldHook
	ErrInvalidStep          = internal.ErrInvalidStep
	ErrDuplicateStep        = internal.ErrDuplicateStep
	ErrLoadWizard           = internal.ErrLoadWizard
)

// DefaultConfirmStep is the step edits fast-forward to.
const DefaultConfirmStep = internal.DefaultConfirmStep

// New creates an application with the given options.
//
//	app := formwizard.New(
//	    formwizard.WithSession(session.NewMemoryStore()),
//	    formwizard.WithHandlers(wizard),
//	)
//	err := app.Run(":8080", formwizard.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewWizard builds a controller for every configured step.
func NewWizard(cfg WizardConfig, opts ...WizardOption) (*Wizard, error) {
	return internal.NewWizard(cfg, opts...)
}

// MustWizard is NewWizard that panics on error.
func MustWizard(cfg WizardConfig, opts ...WizardOption) *Wizard {
	return internal.MustWizard(cfg, opts...)
}

// LoadWizard reads a wizard definition from a YAML file in fsys.
func LoadWizard(fsys fs.FS, path string) (WizardConfig, error) {
	return internal.LoadWizard(fsys, path)
}

// NewController prepares a single step outside of a Wizard.
func NewController(step Step, opts ...ControllerOption) (*Controller, error) {
	return internal.NewController(step, opts...)
}

// MustController is NewController that panics on error.
func MustController(step Step, opts ...ControllerOption) *Controller {
	return internal.MustController(step, opts...)
}

// NewSessionStore creates value, error and progress storage in the request
// session under scope.
func NewSessionStore(scope string) *SessionStore {
	return internal.NewSessionStore(scope)
}

// When is a fork on the value of a field.
func When(fieldKey string, value any, target string) Fork {
	return internal.When(fieldKey, value, target)
}

// WhenFunc is a fork decided by fn.
func WhenFunc(fn ForkFunc, target string) Fork {
	return internal.WhenFunc(fn, target)
}

// ErrorStep returns where a failed submission is redirected.
func ErrorStep(errs ValidationErrors, originalPath, baseURL string, edit bool) string {
	return internal.ErrorStep(errs, originalPath, baseURL, edit)
}

// IsValidationError reports whether err holds only validation failures.
func IsValidationError(err error) bool {
	return validator.IsValidationError(err)
}

// Wizard options

// WithControllerOptions applies opts to every step.
func WithControllerOptions(opts ...ControllerOption) WizardOption {
	return internal.WithControllerOptions(opts...)
}

// WithStepOptions applies opts to the step with the given route.
func WithStepOptions(route string, opts ...ControllerOption) WizardOption {
	return internal.WithStepOptions(route, opts...)
}

// Controller options

func WithRenderer(r Renderer) ControllerOption { return internal.WithRenderer(r) }

func WithFormatters(r *formatter.Registry) ControllerOption { return internal.WithFormatters(r) }

func WithValidators(r *validator.Registry) ControllerOption { return internal.WithValidators(r) }

func WithFieldHook(name string, fn FieldHook) ControllerOption {
	return internal.WithFieldHook(name, fn)
}

func WithConfigure(fn StageFunc) ControllerOption { return internal.WithConfigure(fn) }
func WithProcess(fn StageFunc) ControllerOption   { return internal.WithProcess(fn) }
func WithValidate(fn StageFunc) ControllerOption  { return internal.WithValidate(fn) }

// OnComplete registers a listener of the step complete signal.
func OnComplete(fn StageFunc) ControllerOption { return internal.OnComplete(fn) }

func WithWizardName(name string) ControllerOption  { return internal.WithWizardName(name) }
func WithBaseURL(baseURL string) ControllerOption  { return internal.WithBaseURL(baseURL) }
func WithComponents(c Components) ControllerOption { return internal.WithComponents(c) }
func WithValueStore(s ValueStore) ControllerOption { return internal.WithValueStore(s) }
func WithErrorStore(s ErrorStore) ControllerOption { return internal.WithErrorStore(s) }
func WithProgress(p Progress) ControllerOption     { return internal.WithProgress(p) }

// App options

// WithMiddleware adds global middleware. It runs in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHTTPMiddleware adds plain net/http middleware, such as chi's
// middleware.RequestID, in front of everything else.
func WithHTTPMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return internal.WithHTTPMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes, wizards included.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithHealthChecks enables /health/live and /health/ready.
//
//	formwizard.WithHealthChecks(
//	    formwizard.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger builds the app logger from cfg. Extractors add request-scoped
// attributes such as the wizard and step names.
func WithLogger(cfg logger.Config, extractors ...ContextExtractor) Option {
	return internal.WithLogger(cfg, extractors...)
}

func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

func WithCookieOptions(opts ...CookieOption) Option {
	return internal.WithCookieOptions(opts...)
}

func WithCookieManager(m *cookie.Manager) Option {
	return internal.WithCookieManager(m)
}

// WithSession enables sessions backed by store. Wizards keep values,
// errors and progress there.
func WithSession(store session.Store, opts ...SessionOption) Option {
	return internal.WithSession(store, opts...)
}

// WithJobQueue makes Context.Enqueue available, so completed steps are
// enqueued as job.CompletionTaskName.
func WithJobQueue(q job.Enqueuing) Option {
	return internal.WithJobQueue(q)
}

// WithJobManager is WithJobQueue for a manager that also runs the workers.
// The manager is started and stopped with the app.
func WithJobManager(m *job.Manager) Option {
	return internal.WithJobManager(m)
}

// Session options

func WithSessionCookieName(name string) SessionOption { return internal.WithSessionCookieName(name) }
func WithSessionTTL(ttl time.Duration) SessionOption  { return internal.WithSessionTTL(ttl) }

func WithSessionTouchInterval(d time.Duration) SessionOption {
	return internal.WithSessionTouchInterval(d)
}

// Health check options

func WithLivenessPath(path string) HealthOption  { return internal.WithLivenessPath(path) }
func WithReadinessPath(path string) HealthOption { return internal.WithReadinessPath(path) }

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

func Logger(l *slog.Logger) RunOption           { return internal.Logger(l) }
func ShutdownTimeout(d time.Duration) RunOption { return internal.ShutdownTimeout(d) }
func WithContext(ctx context.Context) RunOption { return internal.WithContext(ctx) }

// StartupHook runs fn before the server starts listening. A failing hook
// stops the start.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook runs fn after the server stopped accepting requests.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// HTTP errors

func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

func IsHTTPError(err error) bool       { return internal.IsHTTPError(err) }
func AsHTTPError(err error) *HTTPError { return internal.AsHTTPError(err) }

// Extractors

func NewExtractor(sources ...ExtractorSource) Extractor { return internal.NewExtractor(sources...) }
func FromHeader(name string) ExtractorSource            { return internal.FromHeader(name) }
func FromQuery(name string) ExtractorSource             { return internal.FromQuery(name) }
func FromParam(name string) ExtractorSource             { return internal.FromParam(name) }
func FromCookie(name string) ExtractorSource            { return internal.FromCookie(name) }

// Logger extractors

// WizardExtractor adds the wizard name to log records.
func WizardExtractor() ContextExtractor { return logger.WizardExtractor() }

// StepExtractor adds the step route to log records.
func StepExtractor() ContextExtractor { return logger.StepExtractor() }

// RequestIDExtractor adds the ID set by chi's middleware.RequestID.
func RequestIDExtractor() ContextExtractor { return logger.RequestIDExtractor() }

package internal

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/dmitrymomot/formwizard/pkg/field"
	"github.com/dmitrymomot/formwizard/pkg/formatter"
	"github.com/dmitrymomot/formwizard/pkg/logger"
	"github.com/dmitrymomot/formwizard/pkg/validator"
)

const (
	editAction        = "edit"
	defaultWizardName = "wizard"
	maxFormMemory     = 10 << 20
)

// Renderer resolves a template name into a component.
// pkg/view provides implementations for templ and html/template.
type Renderer interface {
	Component(template string, locals map[string]any) (Component, error)
}

// FieldHook runs for every field that names it in Field.Controller under
// the request method ("get" or "post").
type FieldHook func(c Context, f *Form, key string) error

// Controller serves one wizard step.
//
// GET renders the step with stored values and errors. POST formats and
// validates the submission, stores it and redirects to the next step.
// Validation errors are stored and redirected back; any other error is
// returned to the app error handler.
type Controller struct {
	step       Step
	name       string
	baseURL    string
	formatters *formatter.Registry
	validators *validator.Registry
	components field.Components
	values     ValueStore
	errors     ErrorStore
	progress   Progress
	renderer   Renderer
	fieldHooks map[string]FieldHook
	configure  []StageFunc
	process    []StageFunc
	validate   []StageFunc
	complete   []StageFunc

	get  pipeline
	post pipeline
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithWizardName sets the session scope and the log attribute of the step.
func WithWizardName(name string) ControllerOption {
	return func(ctl *Controller) {
		if name != "" {
			ctl.name = name
		}
	}
}

// WithBaseURL sets the path the wizard is mounted on. Next steps and error
// redirects are prefixed with it.
func WithBaseURL(baseURL string) ControllerOption {
	return func(ctl *Controller) {
		if baseURL != "" {
			ctl.baseURL = baseURL
		}
	}
}

func WithFormatters(r *formatter.Registry) ControllerOption {
	return func(ctl *Controller) {
		if r != nil {
			ctl.formatters = r
		}
	}
}

func WithValidators(r *validator.Registry) ControllerOption {
	return func(ctl *Controller) {
		if r != nil {
			ctl.validators = r
		}
	}
}

// WithComponents sets the presets fields can reference by name.
func WithComponents(c field.Components) ControllerOption {
	return func(ctl *Controller) {
		ctl.components = c
	}
}

func WithValueStore(s ValueStore) ControllerOption {
	return func(ctl *Controller) {
		ctl.values = s
	}
}

func WithErrorStore(s ErrorStore) ControllerOption {
	return func(ctl *Controller) {
		ctl.errors = s
	}
}

func WithProgress(p Progress) ControllerOption {
	return func(ctl *Controller) {
		ctl.progress = p
	}
}

func WithRenderer(r Renderer) ControllerOption {
	return func(ctl *Controller) {
		ctl.renderer = r
	}
}

// WithFieldHook registers a hook fields can name in Field.Controller.
func WithFieldHook(name string, fn FieldHook) ControllerOption {
	return func(ctl *Controller) {
		if ctl.fieldHooks == nil {
			ctl.fieldHooks = make(map[string]FieldHook)
		}
		ctl.fieldHooks[name] = fn
	}
}

// WithConfigure runs fn after the per-request step copy is prepared.
func WithConfigure(fn StageFunc) ControllerOption {
	return func(ctl *Controller) {
		ctl.configure = append(ctl.configure, fn)
	}
}

// WithProcess runs fn after the submission is formatted.
func WithProcess(fn StageFunc) ControllerOption {
	return func(ctl *Controller) {
		ctl.process = append(ctl.process, fn)
	}
}

// WithValidate runs fn after the field validation passed. Returning
// validator.Errors is handled like a field failure.
func WithValidate(fn StageFunc) ControllerOption {
	return func(ctl *Controller) {
		ctl.validate = append(ctl.validate, fn)
	}
}

// OnComplete registers a listener of the step complete signal.
func OnComplete(fn StageFunc) ControllerOption {
	return func(ctl *Controller) {
		ctl.complete = append(ctl.complete, fn)
	}
}

// NewController prepares a step. Configuration problems, such as an unknown
// validator, component or field hook, are reported here.
func NewController(step Step, opts ...ControllerOption) (*Controller, error) {
	ctl := &Controller{
		name:       defaultWizardName,
		baseURL:    "/",
		formatters: formatter.NewRegistry(),
		validators: validator.NewRegistry(),
	}
	for _, opt := range opts {
		opt(ctl)
	}

	step = step.withDefaults()
	if step.Route == "" {
		return nil, fmt.Errorf("%w: route is required", ErrInvalidStep)
	}
	fields, err := ctl.components.Apply(step.Fields)
	if err != nil {
		return nil, fmt.Errorf("step %s: %w", step.Route, err)
	}
	step.Fields = fields
	ctl.step = step

	if _, err := validator.NewEngine(step.Fields, ctl.validators); err != nil {
		return nil, fmt.Errorf("step %s: %w", step.Route, err)
	}
	for _, f := range step.Fields {
		for method, hooks := range f.Controller {
			for _, name := range hooks {
				if _, ok := ctl.fieldHooks[name]; !ok {
					return nil, fmt.Errorf("%w: %q (step %s, field %s, %s)", ErrUnknownFieldHook, name, step.Route, f.Key, method)
				}
			}
		}
	}

	if ctl.values == nil || ctl.errors == nil || ctl.progress == nil {
		store := NewSessionStore(ctl.name)
		if ctl.values == nil {
			ctl.values = store
		}
		if ctl.errors == nil {
			ctl.errors = store
		}
		if ctl.progress == nil {
			ctl.progress = store
		}
	}

	ctl.get = pipeline{
		{"configure", ctl.configureStage},
		{"errors", ctl.errorsStage},
		{"values", ctl.valuesStage},
		{"complete", ctl.completeEmptyStage},
		{"hooks", ctl.fieldHooksStage("get")},
		{"locals", ctl.localsStage},
		{"render", ctl.renderStage},
	}
	ctl.post = pipeline{
		{"configure", ctl.configureStage},
		{"process", ctl.processStage},
		{"validate", ctl.validateStage},
		{"historical", ctl.historicalStage},
		{"hooks", ctl.fieldHooksStage("post")},
		{"save", ctl.saveStage},
		{"success", ctl.successStage},
	}
	return ctl, nil
}

// MustController is NewController that panics on error.
func MustController(step Step, opts ...ControllerOption) *Controller {
	ctl, err := NewController(step, opts...)
	if err != nil {
		panic(err)
	}
	return ctl
}

// Step returns a copy of the prepared step configuration.
func (ctl *Controller) Step() Step {
	return ctl.step.Clone()
}

// Routes registers the step and its edit route.
func (ctl *Controller) Routes(r Router) {
	r.Handle(ctl.step.Route, ctl.Serve)
	r.Handle(path.Join(ctl.step.Route, "{action}"), ctl.Serve)
}

// Serve dispatches on the request method.
func (ctl *Controller) Serve(c Context) error {
	if action := c.Param("action"); action != "" && action != editAction {
		return ErrNotFound("Not found")
	}

	ctx := logger.WithStep(logger.WithWizard(c.Request().Context(), ctl.name), ctl.step.Route)
	c.SetRequest(c.Request().WithContext(ctx))

	switch c.Request().Method {
	case http.MethodGet:
		return ctl.Get(c)
	case http.MethodPost:
		return ctl.Post(c)
	default:
		return ErrMethodNotAllowed("Method not supported", WithErrorCode("method_not_allowed"))
	}
}

// Get renders the step.
func (ctl *Controller) Get(c Context) error {
	f := ctl.newForm(c)
	return ctl.handle(c, f, ctl.get.run(c, f))
}

// Post handles a submission of the step.
func (ctl *Controller) Post(c Context) error {
	if err := ctl.errors.SetErrors(c, nil); err != nil {
		return err
	}
	f := ctl.newForm(c)
	return ctl.handle(c, f, ctl.post.run(c, f))
}

func (ctl *Controller) newForm(c Context) *Form {
	return &Form{
		Step:    ctl.step.Clone(),
		BaseURL: ctl.baseURL,
		Edit:    c.Param("action") == editAction,
	}
}

// handle stores validation errors and redirects to the error step.
// Other errors are returned unchanged.
func (ctl *Controller) handle(c Context, f *Form, err error) error {
	if err == nil {
		return nil
	}
	if !validator.IsValidationError(err) {
		return err
	}

	var errs validator.Errors
	errors.As(err, &errs)
	if err := ctl.errors.SetErrors(c, errs); err != nil {
		return err
	}
	target := ErrorStep(errs, c.Request().URL.Path, f.BaseURL, f.Edit)
	c.LogInfo("validation failed", "errors", errs.Keys(), "redirect", target)
	return c.Redirect(http.StatusSeeOther, target)
}

func (ctl *Controller) formatter(f *Form) *formatter.Engine {
	return formatter.New(f.Step.Fields, f.Step.DefaultFormatters, ctl.formatters)
}

// configureStage drops fields whose useWhen condition does not hold against
// the stored values, together with their stored values.
func (ctl *Controller) configureStage(c Context, f *Form) error {
	stored, err := ctl.values.Values(c)
	if err != nil {
		return err
	}

	var removed []string
	for _, fd := range f.Step.Fields {
		if fd.UseWhen != nil && !fd.UseWhen.Matches(stored[fd.UseWhen.Field]) {
			removed = append(removed, fd.Key)
		}
	}
	if len(removed) > 0 {
		f.Step.Fields = f.Step.Fields.Without(removed...)
		if err := ctl.values.UnsetValues(c, removed...); err != nil {
			return err
		}
		c.LogDebug("fields removed by useWhen", "fields", removed)
	}

	return runHooks(ctl.configure)(c, f)
}

func (ctl *Controller) errorsStage(c Context, f *Form) error {
	errs, err := ctl.errors.Errors(c)
	if err != nil {
		return err
	}
	f.Errors = errs
	return nil
}

func (ctl *Controller) valuesStage(c Context, f *Form) error {
	values, err := ctl.values.Values(c)
	if err != nil {
		return err
	}
	f.Values = values
	return nil
}

// completeEmptyStage signals completion of a step without fields, since
// such a step is never posted.
func (ctl *Controller) completeEmptyStage(c Context, f *Form) error {
	if len(f.Step.Fields) > 0 || f.Step.Next == "" {
		return nil
	}
	return ctl.emitComplete(c, f)
}

func (ctl *Controller) fieldHooksStage(method string) StageFunc {
	return func(c Context, f *Form) error {
		for _, fd := range f.Step.Fields {
			for _, name := range fd.Controller[method] {
				if err := ctl.fieldHooks[name](c, f, fd.Key); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

func (ctl *Controller) renderStage(c Context, f *Form) error {
	if f.Step.Template == "" {
		return ErrTemplateRequired
	}
	if ctl.renderer == nil {
		return ErrRendererRequired
	}
	component, err := ctl.renderer.Component(f.Step.Template, f.Locals)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, component)
}

// processStage formats the submitted value of every field. Missing fields
// are formatted from the empty string.
func (ctl *Controller) processStage(c Context, f *Form) error {
	r := c.Request()
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxFormMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return ErrBadRequest("Invalid form data", WithError(err))
	}

	fm := ctl.formatter(f)
	f.Values = make(map[string]any, len(f.Step.Fields))
	for _, fd := range f.Step.Fields {
		f.Values[fd.Key] = fm.Format(fd.Key, submitted(r.PostForm[fd.Key]))
	}

	return runHooks(ctl.process)(c, f)
}

func submitted(values []string) any {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func (ctl *Controller) validateStage(c Context, f *Form) error {
	engine, err := validator.NewEngine(f.Step.Fields, ctl.validators)
	if err != nil {
		return err
	}
	for _, key := range f.Step.Fields.Keys() {
		if !engine.ShouldValidate(key, f.Values) {
			c.LogDebug("dependent field skipped", "field", key)
		}
	}
	if errs := engine.Validate(f.Values, ctl.formatter(f).Empty); len(errs) > 0 {
		return errs
	}
	return runHooks(ctl.validate)(c, f)
}

func (ctl *Controller) historicalStage(c Context, f *Form) error {
	values, err := ctl.values.Values(c)
	if err != nil {
		return err
	}
	f.Historical = values
	return nil
}

func (ctl *Controller) saveStage(c Context, f *Form) error {
	return ctl.values.SaveValues(c, f.Values)
}

func (ctl *Controller) successStage(c Context, f *Form) error {
	if err := ctl.emitComplete(c, f); err != nil {
		return err
	}
	next, err := ctl.NextStep(c, f)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, next)
}

// emitComplete records the step as completed and notifies the listeners.
func (ctl *Controller) emitComplete(c Context, f *Form) error {
	if err := ctl.progress.CompleteStep(c, f.Step.Route); err != nil {
		return err
	}
	c.LogDebug("step completed")
	return runHooks(ctl.complete)(c, f)
}

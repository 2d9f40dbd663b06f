package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formwizard/pkg/field"
	"github.com/dmitrymomot/formwizard/pkg/job"
)

// WizardConfig is the declarative definition of a wizard.
//
//	name: apply
//	baseUrl: /apply
//	components:
//	  yes-no:
//	    mixin: radio-group
//	    options: ["yes", "no"]
//	steps:
//	  /name:
//	    template: name
//	    fields:
//	      name: {validate: required}
//	    next: /confirm
type WizardConfig struct {
	Name       string           `yaml:"name"`
	BaseURL    string           `yaml:"baseUrl"`
	Components field.Components `yaml:"components,omitempty"`
	Steps      Steps            `yaml:"steps"`
}

// LoadWizard reads a wizard definition from a YAML file in fsys.
func LoadWizard(fsys fs.FS, path string) (WizardConfig, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return WizardConfig{}, errors.Join(ErrLoadWizard, err)
	}
	var cfg WizardConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if errors.Is(err, ErrLoadWizard) {
			return WizardConfig{}, err
		}
		return WizardConfig{}, fmt.Errorf("%w: %s: %w", ErrLoadWizard, path, err)
	}
	return cfg, nil
}

// Wizard is a set of steps sharing a name, a base URL and session storage.
// It implements Handler.
type Wizard struct {
	name        string
	baseURL     string
	store       *SessionStore
	controllers []*Controller
}

type wizardOptions struct {
	common []ControllerOption
	steps  map[string][]ControllerOption
}

// WizardOption configures a Wizard.
type WizardOption func(*wizardOptions)

// WithControllerOptions applies opts to every step.
func WithControllerOptions(opts ...ControllerOption) WizardOption {
	return func(o *wizardOptions) {
		o.common = append(o.common, opts...)
	}
}

// WithStepOptions applies opts to the step with the given route.
func WithStepOptions(route string, opts ...ControllerOption) WizardOption {
	return func(o *wizardOptions) {
		route = normalizeRoute(route)
		o.steps[route] = append(o.steps[route], opts...)
	}
}

// NewWizard builds a controller for every configured step.
//
// Completed steps are recorded in the session and, when the app has a job
// queue, enqueued as job.CompletionTaskName.
func NewWizard(cfg WizardConfig, opts ...WizardOption) (*Wizard, error) {
	o := &wizardOptions{steps: make(map[string][]ControllerOption)}
	for _, opt := range opts {
		opt(o)
	}

	name := cfg.Name
	if name == "" {
		name = defaultWizardName
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "/"
	}
	baseURL = normalizeRoute(baseURL)

	w := &Wizard{
		name:    name,
		baseURL: baseURL,
		store:   NewSessionStore(name),
	}

	seen := make(map[string]bool, len(cfg.Steps))
	for _, step := range cfg.Steps {
		route := normalizeRoute(step.Route)
		if seen[route] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStep, route)
		}
		seen[route] = true

		stepOpts := append([]ControllerOption{
			WithWizardName(name),
			WithBaseURL(baseURL),
			WithComponents(cfg.Components),
			WithValueStore(w.store),
			WithErrorStore(w.store),
			WithProgress(w.store),
			OnComplete(w.enqueueCompletion),
		}, o.common...)
		stepOpts = append(stepOpts, o.steps[route]...)

		ctl, err := NewController(step, stepOpts...)
		if err != nil {
			return nil, fmt.Errorf("wizard %s: %w", name, err)
		}
		w.controllers = append(w.controllers, ctl)
	}

	for route := range o.steps {
		if !seen[route] {
			return nil, fmt.Errorf("%w: options for unknown step %s", ErrInvalidStep, route)
		}
	}
	return w, nil
}

// MustWizard is NewWizard that panics on error.
func MustWizard(cfg WizardConfig, opts ...WizardOption) *Wizard {
	w, err := NewWizard(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return w
}

func (w *Wizard) Name() string    { return w.name }
func (w *Wizard) BaseURL() string { return w.baseURL }

// Store returns the session storage shared by the steps.
func (w *Wizard) Store() *SessionStore { return w.store }

// Controller returns the controller of route.
func (w *Wizard) Controller(route string) (*Controller, bool) {
	route = normalizeRoute(route)
	for _, ctl := range w.controllers {
		if ctl.step.Route == route {
			return ctl, true
		}
	}
	return nil, false
}

// Routes mounts the steps below the base URL.
func (w *Wizard) Routes(r Router) {
	register := func(r Router) {
		for _, ctl := range w.controllers {
			ctl.Routes(r)
		}
	}
	if isRootBase(w.baseURL) {
		register(r)
		return
	}
	r.Route(w.baseURL, register)
}

func (w *Wizard) enqueueCompletion(c Context, f *Form) error {
	var sid string
	if sess, err := c.Session(); err != nil {
		return err
	} else if sess != nil {
		sid = sess.ID
	}

	completion := job.Completion{
		Wizard:      w.name,
		Step:        f.Step.Route,
		SessionID:   sid,
		Values:      f.Values,
		CompletedAt: time.Now(),
	}
	err := c.Enqueue(job.CompletionTaskName, completion, job.CompletionOptions(completion)...)
	if errors.Is(err, ErrJobsNotConfigured) {
		return nil
	}
	return err
}

package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrymomot/formwizard/pkg/session"
	"github.com/dmitrymomot/formwizard/pkg/validator"
)

// ValueStore persists the submitted values of a wizard.
type ValueStore interface {
	// Values returns all stored values. It never returns a nil map.
	Values(c Context) (map[string]any, error)
	SaveValues(c Context, values map[string]any) error
	UnsetValues(c Context, keys ...string) error
}

// ErrorStore keeps validation errors between the failed POST and the GET
// that shows them.
type ErrorStore interface {
	Errors(c Context) (validator.Errors, error)
	// SetErrors replaces the stored errors. Nil clears them.
	SetErrors(c Context, errs validator.Errors) error
}

// Progress records the steps a visitor completed.
type Progress interface {
	CompletedSteps(c Context) ([]string, error)
	CompleteStep(c Context, route string) error
}

const (
	errorsScopeSuffix = ":errors"
	stepsScopeSuffix  = ":steps"
	completedKey      = "completed"
)

// SessionStore implements ValueStore, ErrorStore and Progress on the request
// session. Everything is kept under the wizard name, so several wizards can
// share one session.
//
// Reads never create a session; the first write does.
type SessionStore struct {
	scope string
}

// NewSessionStore creates a store for the wizard named scope.
func NewSessionStore(scope string) *SessionStore {
	return &SessionStore{scope: scope}
}

func (s *SessionStore) Values(c Context) (map[string]any, error) {
	sess, err := c.Session()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return make(map[string]any), nil
	}
	values := sess.Values(s.scope)
	if values == nil {
		values = make(map[string]any)
	}
	return values, nil
}

func (s *SessionStore) SaveValues(c Context, values map[string]any) error {
	sess, err := ensureSession(c)
	if err != nil {
		return err
	}
	sess.SetAll(s.scope, values)
	return nil
}

func (s *SessionStore) UnsetValues(c Context, keys ...string) error {
	sess, err := c.Session()
	if err != nil || sess == nil {
		return err
	}
	sess.Unset(s.scope, keys...)
	return nil
}

func (s *SessionStore) Errors(c Context) (validator.Errors, error) {
	sess, err := c.Session()
	if err != nil || sess == nil {
		return nil, err
	}
	stored := sess.Values(s.scope + errorsScopeSuffix)
	if len(stored) == 0 {
		return nil, nil
	}

	// Stores hand back decoded JSON, so the entries are generic maps.
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.Join(session.ErrUnmarshal, err)
	}
	var decoded map[string]*validator.ValidationError
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, errors.Join(session.ErrUnmarshal, err)
	}
	return validator.FromMap(decoded), nil
}

func (s *SessionStore) SetErrors(c Context, errs validator.Errors) error {
	if len(errs) == 0 {
		sess, err := c.Session()
		if err != nil || sess == nil {
			return err
		}
		sess.Reset(s.scope + errorsScopeSuffix)
		return nil
	}

	sess, err := ensureSession(c)
	if err != nil {
		return err
	}
	scope := s.scope + errorsScopeSuffix
	sess.Reset(scope)
	entries := make(map[string]any, len(errs))
	for k, ve := range errs.Map() {
		entries[k] = ve
	}
	sess.SetAll(scope, entries)
	return nil
}

func (s *SessionStore) CompletedSteps(c Context) ([]string, error) {
	sess, err := c.Session()
	if err != nil || sess == nil {
		return nil, err
	}
	v, _ := sess.Get(s.scope+stepsScopeSuffix, completedKey)
	switch steps := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return slices.Clone(steps), nil
	case []any:
		out := make([]string, 0, len(steps))
		for _, step := range steps {
			out = append(out, fmt.Sprint(step))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s%s.%s", session.ErrTypeMismatch, s.scope, stepsScopeSuffix, completedKey)
	}
}

func (s *SessionStore) CompleteStep(c Context, route string) error {
	steps, err := s.CompletedSteps(c)
	if err != nil {
		return err
	}
	if slices.Contains(steps, route) {
		return nil
	}
	sess, err := ensureSession(c)
	if err != nil {
		return err
	}
	sess.Set(s.scope+stepsScopeSuffix, completedKey, append(steps, route))
	return nil
}

// Reset forgets values, errors and progress of the wizard.
func (s *SessionStore) Reset(c Context) error {
	sess, err := c.Session()
	if err != nil || sess == nil {
		return err
	}
	sess.Reset(s.scope)
	sess.Reset(s.scope + errorsScopeSuffix)
	sess.Reset(s.scope + stepsScopeSuffix)
	return nil
}

// ensureSession returns the request session, starting one if needed.
func ensureSession(c Context) (*session.Session, error) {
	sess, err := c.Session()
	if err != nil {
		return nil, err
	}
	if sess != nil {
		return sess, nil
	}
	if err := c.InitSession(); err != nil {
		return nil, err
	}
	return c.Session()
}

var (
	_ ValueStore = (*SessionStore)(nil)
	_ ErrorStore = (*SessionStore)(nil)
	_ Progress   = (*SessionStore)(nil)
)

package internal

import (
	"regexp"
	"slices"
	"strings"

	"github.com/dmitrymomot/formwizard/pkg/validator"
)

const editSuffix = "/" + editAction

var editPattern = regexp.MustCompile(`/edit$|/edit/`)

// NextStep returns the URL the visitor continues to after the step.
//
// The target is Next, or the current path when there is none. Forks are
// evaluated in order and the last match wins. On the edit route a target
// the visitor already completed is replaced by the confirm step, unless
// ContinueOnEdit is set, in which case its edit route is used.
func (ctl *Controller) NextStep(c Context, f *Form) (string, error) {
	target := f.Step.Next
	for _, fk := range f.Step.Forks {
		if fk.matches(c, f) {
			target = fk.Target
		}
	}
	if target == "" {
		return c.Request().URL.Path, nil
	}

	next := withBase(f.BaseURL, target)
	if !f.Edit || isAbsoluteURL(target) {
		return next, nil
	}

	completed, err := ctl.progress.CompletedSteps(c)
	if err != nil {
		return "", err
	}
	if !slices.Contains(completed, normalizeRoute(target)) {
		return next, nil
	}
	if !f.Step.ContinueOnEdit || normalizeRoute(target) == f.Step.ConfirmStep {
		return withBase(f.BaseURL, f.Step.ConfirmStep), nil
	}
	return next + editSuffix, nil
}

// BackLink returns the back link of the step. It is relative below a base
// URL and gets the edit suffix on the edit route.
func BackLink(link, baseURL string, edit bool) string {
	if link == "" {
		return ""
	}
	if isRootBase(baseURL) && !strings.HasPrefix(link, "/") {
		link = "/" + link
	}
	if edit {
		link += editSuffix
	}
	return link
}

// ErrorStep returns where a failed submission is redirected.
//
// When every error carries a redirect, the first one in key order is used;
// otherwise the visitor goes back to originalPath. Relative redirects are
// placed below baseURL. On the edit route the target gets the edit suffix
// unless it already points at an edit route.
func ErrorStep(errs validator.Errors, originalPath, baseURL string, edit bool) string {
	target := originalPath
	if redirect, ok := commonRedirect(errs); ok {
		if isAbsoluteURL(redirect) {
			return redirect
		}
		target = withBase(baseURL, redirect)
	}
	if edit && !editPattern.MatchString(target) {
		target += editSuffix
	}
	return target
}

func commonRedirect(errs validator.Errors) (string, bool) {
	if len(errs) == 0 {
		return "", false
	}
	all := errs.Map()
	var first string
	for _, key := range errs.Keys() {
		ve, ok := all[key]
		if !ok || ve.Redirect == "" {
			return "", false
		}
		if first == "" {
			first = ve.Redirect
		}
	}
	return first, true
}

func withBase(baseURL, target string) string {
	if isAbsoluteURL(target) {
		return target
	}
	target = normalizeRoute(target)
	if isRootBase(baseURL) {
		return target
	}
	return strings.TrimSuffix(baseURL, "/") + target
}

func isRootBase(baseURL string) bool {
	return baseURL == "" || baseURL == "/"
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

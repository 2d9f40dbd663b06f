package logger

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey int

const (
	wizardKey ctxKey = iota
	stepKey
)

// WithWizard stores the wizard name for WizardExtractor.
func WithWizard(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, wizardKey, name)
}

// WithStep stores the step route for StepExtractor.
func WithStep(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, stepKey, route)
}

// WizardExtractor adds the "wizard" attribute.
func WizardExtractor() ContextExtractor {
	return stringExtractor(wizardKey, "wizard")
}

// StepExtractor adds the "step" attribute.
func StepExtractor() ContextExtractor {
	return stringExtractor(stepKey, "step")
}

// RequestIDExtractor adds the ID set by chi's RequestID middleware.
func RequestIDExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := middleware.GetReqID(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}

func stringExtractor(key ctxKey, attr string) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			return slog.String(attr, v), true
		}
		return slog.Attr{}, false
	}
}

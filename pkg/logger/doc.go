// Package logger builds the slog loggers used across the wizard.
//
// A [ContextHandler] wraps any handler and appends attributes pulled
// from the context on every call. The package ships extractors for the
// wizard name, the step route and the chi request ID:
//
//	log := logger.New(cfg,
//	    logger.WizardExtractor(),
//	    logger.StepExtractor(),
//	    logger.RequestIDExtractor(),
//	)
//
//	ctx = logger.WithStep(logger.WithWizard(ctx, "apply"), "/name")
//	log.InfoContext(ctx, "validation failed")
//	// {"level":"INFO","msg":"validation failed","wizard":"apply","step":"/name"}
//
// [NewWithSentry] additionally forwards warnings and errors to Sentry when a
// DSN is configured, and behaves like [New] otherwise.
package logger

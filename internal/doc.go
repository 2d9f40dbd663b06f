// Package internal implements the HTTP side of formwizard.
//
// Import "github.com/dmitrymomot/formwizard" instead, which re-exports the
// public API.
//
// # Core Types
//
//   - App: routing, middleware, sessions, health endpoints and graceful shutdown
//   - Context: request and response access, session, translator and job queue
//   - Controller: serves one wizard step through the GET and POST pipelines
//   - Wizard: a set of controllers sharing a name, base URL and session scope
//   - Router, Handler, HandlerFunc, Middleware: route declaration
//
// # Steps
//
// A GET request runs configure, errors, values, field hooks, locals and
// render. A POST request clears stored errors and runs configure, process,
// validate, historical values, field hooks, save and success:
//
//	ctl, err := internal.NewController(internal.Step{
//	    Route:    "/name",
//	    Template: "name",
//	    Fields:   fields,
//	    Next:     "/age",
//	}, internal.WithRenderer(views))
//
// Validation failures are stored in the session and the visitor is
// redirected to the error step. Every other error reaches the ErrorHandler.
//
// # Wizards
//
// Wizards are usually loaded from YAML:
//
//	cfg, err := internal.LoadWizard(os.DirFS("config"), "apply.yaml")
//	w, err := internal.NewWizard(cfg,
//	    internal.WithControllerOptions(internal.WithRenderer(views)),
//	)
//	app := internal.New(
//	    internal.WithSession(session.NewMemoryStore()),
//	    internal.WithHandlers(w),
//	)
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed to any function that
// expects one.
package internal

// Package formwizard serves multi-step HTML form wizards.
//
// A wizard is a list of steps. Each step has a template, field definitions
// and the step that follows it. GET renders the step with the values and
// errors stored in the session. POST formats the submission, validates it,
// stores it and redirects to the next step, or back to the step with the
// validation errors.
//
// # Quick Start
//
//	cfg, err := formwizard.LoadWizard(os.DirFS("config"), "apply.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	views, err := view.New(view.WithFS(os.DirFS("views"), "*.html"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	wizard := formwizard.MustWizard(cfg,
//	    formwizard.WithControllerOptions(formwizard.WithRenderer(views)),
//	)
//
//	app := formwizard.New(
//	    formwizard.WithSession(session.NewMemoryStore()),
//	    formwizard.WithMiddleware(middlewares.Recover()),
//	    formwizard.WithHandlers(wizard),
//	)
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Wizard definitions
//
//	name: apply
//	baseUrl: /apply
//	steps:
//	  /name:
//	    template: name
//	    fields:
//	      name:
//	        validate: required
//	    next: /business
//	  /business:
//	    template: business
//	    fields:
//	      business:
//	        options: ["yes", "no"]
//	    next: /personal
//	    forks:
//	      - target: /company
//	        condition: {field: business, value: "yes"}
//
// Forks are evaluated in order and the last match wins. Each step also
// answers on "<route>/edit"; when the visitor edits a step and the next one
// is already completed, they skip to the confirm step.
//
// # Errors
//
// Validation failures never reach the ErrorHandler. They are stored and the
// visitor is redirected, see [ErrorStep]. Other errors, including a missing
// template, are returned to the ErrorHandler.
//
// # Completion
//
// Every completed step is recorded in the session and, with [WithJobQueue]
// or [WithJobManager], enqueued as a job.Completion task.
package formwizard

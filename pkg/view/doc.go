// Package view resolves step template names to components.
//
// Steps name their template; the registry turns the name and the step
// locals into a templ.Component. Both templ components and html/template
// files can be registered:
//
//	views, err := view.New(
//	    view.WithView("confirm", func(locals map[string]any) templ.Component {
//	        return pages.Confirm(locals)
//	    }),
//	    view.WithFS(os.DirFS("views"), "*.html"),
//	    view.WithFallback("step"),
//	)
//	w, err := formwizard.NewWizard(cfg,
//	    formwizard.WithControllerOptions(formwizard.WithRenderer(views)),
//	)
package view

// Package middlewares provides middleware for formwizard apps.
//
// # Recover
//
// Recover turns panics into a 500 HTTPError wrapping a PanicError:
//
//	app := formwizard.New(
//	    formwizard.WithMiddleware(middlewares.Recover()),
//	)
//
// # I18n
//
// I18n resolves the visitor's language from ?lang=, the lang cookie or
// Accept-Language and stores a translator in the request context. The
// wizard controllers use it for page titles, intros and validation
// messages:
//
//	bundle, err := i18n.New(i18n.WithYAMLDir(os.DirFS("locales")))
//	app := formwizard.New(
//	    formwizard.WithMiddleware(middlewares.I18n(bundle, middlewares.WithI18nPersist())),
//	)
//
// Request IDs come from chi's middleware.RequestID, installed with
// formwizard.WithHTTPMiddleware, and reach the logs through
// logger.RequestIDExtractor.
package middlewares

// Package htmx lets wizard steps work with htmx-enhanced forms.
//
// Steps redirect through [Redirect], which picks the mechanism the client
// understands: HX-Location for boosted forms, HX-Redirect for other htmx
// requests and 303 See Other otherwise.
package htmx

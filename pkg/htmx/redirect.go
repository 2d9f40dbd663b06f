package htmx

import "net/http"

// Redirect sends the client to url after a form submission.
//
// Boosted requests navigate with HX-Location so the page is swapped without
// a full reload. Other htmx requests get HX-Redirect. Plain requests get a
// 303 See Other so the browser follows with GET.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	RedirectWithStatus(w, r, url, http.StatusSeeOther)
}

// RedirectWithStatus is Redirect with an explicit status for plain requests.
func RedirectWithStatus(w http.ResponseWriter, r *http.Request, url string, status int) {
	switch {
	case IsBoosted(r):
		Location(w, r, url)
	case IsHTMX(r):
		w.Header().Set(HeaderHXRedirect, url)
		w.WriteHeader(http.StatusOK)
	default:
		http.Redirect(w, r, url, status)
	}
}

package htmx

import (
	"encoding/json"
	"net/http"
)

// LocationOptions is the JSON form of the HX-Location header.
type LocationOptions struct {
	Path   string `json:"path"`
	Target string `json:"target,omitempty"`
	Swap   string `json:"swap,omitempty"`
	Select string `json:"select,omitempty"`
}

// Location navigates htmx clients to path without a full reload and falls
// back to a 303 redirect for plain requests.
func Location(w http.ResponseWriter, r *http.Request, path string) {
	LocationWithOptions(w, r, LocationOptions{Path: path})
}

// LocationWithOptions is Location with a target, swap or select.
func LocationWithOptions(w http.ResponseWriter, r *http.Request, opts LocationOptions) {
	if !IsHTMX(r) {
		http.Redirect(w, r, opts.Path, http.StatusSeeOther)
		return
	}

	value := opts.Path
	if opts.Target != "" || opts.Swap != "" || opts.Select != "" {
		if data, err := json.Marshal(opts); err == nil {
			value = string(data)
		}
	}
	w.Header().Set(HeaderHXLocation, value)
	w.WriteHeader(http.StatusOK)
}

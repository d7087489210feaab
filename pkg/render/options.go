package render

import "net/http"

// RenderOptions describe per-request data renderers can use without touching
// the handle.
type RenderOptions struct {
	// Action is the URL the form posts to. Empty posts back to the current URL.
	Action string
	// Method defaults to POST.
	Method string
	// Title overrides the handle title.
	Title string
	// Output is shown in a result panel after an accepted submission, e.g. the
	// computed tip.
	Output string
	// Document wraps the output in a complete HTML page.
	Document bool
}

// HTTPMethod returns the method, defaulting to POST.
func (o RenderOptions) HTTPMethod() string {
	if o.Method == "" {
		return http.MethodPost
	}
	return o.Method
}

// Package template defines the seam the HTML widget factory renders through.
// The gotemplate subpackage provides the default implementation on
// github.com/goliatone/go-template.
package template

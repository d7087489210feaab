// Package vanilla renders forms as plain HTML. Factory creates one HTML widget
// per field through the go-template (pongo2) engine, Render wraps a built handle in
// a <form> element and Bind writes a form post back into the widgets.
//
// Labels and help text may carry simple inline markup (<b>, <em>, <code>,
// links); everything else is stripped by bluemonday before rendering.
package vanilla

// Package calcform is the entry point for building calculator forms: it
// re-exports the descriptor types and wires the template library, the
// validator and the renderers together for callers that do not need the
// individual packages.
package calcform

import (
	"fmt"
	"io/fs"

	"github.com/goliatone/go-calcform/pkg/form"
	"github.com/goliatone/go-calcform/pkg/model"
	"github.com/goliatone/go-calcform/pkg/render"
	"github.com/goliatone/go-calcform/pkg/renderers/tui"
	"github.com/goliatone/go-calcform/pkg/renderers/vanilla"
	"github.com/goliatone/go-calcform/pkg/templates"
	"github.com/goliatone/go-calcform/pkg/validation"
	"github.com/goliatone/go-calcform/pkg/widgets"
)

// Field describes one input of a form.
type Field = model.Field

// Form is a named, titled list of fields.
type Form = model.Form

// CollectedData maps field names to submitted values.
type CollectedData = model.CollectedData

// Result is the outcome of validating collected data.
type Result = validation.Result

// Handle is a built form.
type Handle = form.Handle

// RenderOptions describe per-request overrides for renderers.
type RenderOptions = render.RenderOptions

// Build assembles a form from descriptors using factory.
func Build(fields []Field, factory widgets.Factory, options ...form.Option) (*Handle, error) {
	return form.Build(fields, factory, options...)
}

// Validate checks data against fields with the default messages.
func Validate(data CollectedData, fields []Field) (Result, error) {
	return validation.Validate(data, fields)
}

// Templates returns a library holding the built-in calculator templates.
func Templates() *templates.Library {
	return templates.Default()
}

// LoadTemplates returns the built-in library extended with the YAML/JSON
// template files found in fsys.
func LoadTemplates(fsys fs.FS) (*templates.Library, error) {
	lib := templates.Default()
	if fsys == nil {
		return lib, nil
	}
	if err := templates.LoadFS(lib, fsys); err != nil {
		return nil, err
	}
	return lib, nil
}

// Headless builds the named template with in-memory widgets, the quickest way
// to validate data programmatically.
func Headless(lib *templates.Library, name string, options ...form.Option) (*Handle, error) {
	if lib == nil {
		lib = templates.Default()
	}
	f, err := lib.Lookup(name)
	if err != nil {
		return nil, err
	}
	return form.BuildForm(f, widgets.NewHeadlessFactory(), options...)
}

// Renderers returns a registry with the html, json and tui renderers. The
// html renderer is the HTML widget factory configured by htmlOptions.
func Renderers(session *tui.Session, htmlOptions ...vanilla.Option) (*render.Registry, error) {
	html, err := vanilla.NewFactory(htmlOptions...)
	if err != nil {
		return nil, fmt.Errorf("calcform: html renderer: %w", err)
	}
	if session == nil {
		session = tui.NewSession()
	}

	registry := render.NewRegistry()
	for _, renderer := range []render.Renderer{html, render.JSONRenderer{}, session} {
		if err := registry.Register(renderer); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

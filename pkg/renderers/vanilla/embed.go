package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// Template names resolved by the engine. A theme can point any of them at a
// different file through RendererConfig.Partials.
const (
	TemplateField = "field"
	TemplateForm  = "form"
	TemplatePage  = "page"
	TemplateIndex = "index"
)

// TemplatesFS exposes the built-in template bundle.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

package template

import (
	"io"
)

// TemplateRenderer renders named templates or inline template strings. When
// writers are supplied the output is also copied to each of them. The method
// set matches github.com/goliatone/go-template's Engine, so that engine can be
// passed wherever a TemplateRenderer is expected.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

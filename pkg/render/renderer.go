package render

import (
	"context"

	"github.com/goliatone/go-calcform/pkg/form"
)

// Renderer converts a form handle, including its current values and error
// state, into bytes (HTML, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, h *form.Handle, options RenderOptions) ([]byte, error)
}

package vanilla

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-calcform/pkg/form"
	"github.com/goliatone/go-calcform/pkg/model"
	"github.com/goliatone/go-calcform/pkg/render"
)

// Reset is requested by posting ActionField=ActionReset; the rendered reset
// button does this so the server restores descriptor defaults.
const (
	ActionField = "_action"
	ActionReset = "reset"
)

// RenderOptions configure Render.
type RenderOptions = render.RenderOptions

// ErrForeignWidget is returned when a handle holds widgets this package did
// not create.
var ErrForeignWidget = errors.New("vanilla: handle was not built with the HTML factory")

var _ render.Renderer = (*Factory)(nil)

var (
	defaultFactoryOnce sync.Once
	defaultFactory     *Factory
	defaultFactoryErr  error
)

// Render renders a handle built with any vanilla Factory. A handle without
// fields renders through a default factory.
func Render(h *form.Handle, opts RenderOptions) ([]byte, error) {
	f, err := factoryOf(h)
	if err != nil {
		return nil, err
	}
	return f.Render(context.Background(), h, opts)
}

func (f *Factory) Name() string        { return "html" }
func (f *Factory) ContentType() string { return "text/html; charset=utf-8" }

// Render renders the whole form: every widget in declaration order, the
// submit and reset buttons and, when set, the output panel.
func (f *Factory) Render(ctx context.Context, h *form.Handle, opts RenderOptions) ([]byte, error) {
	if h == nil {
		return nil, errors.New("vanilla: form handle is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(h.Widgets()))
	for _, w := range h.Widgets() {
		hw, ok := w.(*Widget)
		if !ok {
			return nil, ErrForeignWidget
		}
		markup, err := hw.HTML()
		if err != nil {
			return nil, err
		}
		fields = append(fields, markup)
	}

	title := opts.Title
	if title == "" {
		title = h.Title()
	}

	body, err := f.templates.Render(f.theme.template(TemplateForm), map[string]any{
		"id":          strings.TrimSuffix(f.idPrefix, "-") + "-form",
		"method":      opts.HTTPMethod(),
		"action":      opts.Action,
		"state":       h.State().String(),
		"title":       title,
		"description": h.Description(),
		"fields":      fields,
		"submitLabel": h.SubmitLabel(),
		"resetLabel":  h.ResetLabel(),
		"actionField": ActionField,
		"resetAction": ActionReset,
		"output":      opts.Output,
		"classes":     f.classes(),
		"theme":       f.theme.data(),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla: render form: %w", err)
	}

	if !opts.Document {
		return []byte(body), nil
	}
	return f.page(title, body)
}

// IndexEntry is one link of RenderIndex.
type IndexEntry struct {
	Href        string
	Title       string
	Description string
	Category    string
}

// IndexEntries links every form under base ("/forms" gives "/forms/tip").
func IndexEntries(base string, forms []model.Form) []IndexEntry {
	base = strings.TrimSuffix(base, "/")
	out := make([]IndexEntry, 0, len(forms))
	for _, f := range forms {
		title := f.Title
		if title == "" {
			title = f.ID
		}
		out = append(out, IndexEntry{
			Href:        base + "/" + f.ID,
			Title:       title,
			Description: f.Description,
			Category:    f.Category,
		})
	}
	return out
}

// RenderIndex renders a list of links as a full page.
func (f *Factory) RenderIndex(title string, entries []IndexEntry) ([]byte, error) {
	items := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		items = append(items, map[string]any{
			"href":        entry.Href,
			"title":       entry.Title,
			"description": entry.Description,
			"category":    entry.Category,
		})
	}
	body, err := f.templates.Render(f.theme.template(TemplateIndex), map[string]any{
		"entries": items,
		"classes": f.classes(),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla: render index: %w", err)
	}
	return f.page(title, body)
}

func (f *Factory) page(title, body string) ([]byte, error) {
	out, err := f.templates.Render(f.theme.template(TemplatePage), map[string]any{
		"lang":       f.lang,
		"title":      title,
		"stylesheet": f.theme.asset(AssetStylesheet),
		"body":       body,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla: render page: %w", err)
	}
	return []byte(out), nil
}

func factoryOf(h *form.Handle) (*Factory, error) {
	if h == nil {
		return nil, errors.New("vanilla: form handle is required")
	}
	for _, w := range h.Widgets() {
		hw, ok := w.(*Widget)
		if !ok {
			return nil, ErrForeignWidget
		}
		return hw.factory, nil
	}
	defaultFactoryOnce.Do(func() {
		defaultFactory, defaultFactoryErr = NewFactory()
	})
	return defaultFactory, defaultFactoryErr
}

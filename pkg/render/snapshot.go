package render

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/goliatone/go-calcform/pkg/form"
	"github.com/goliatone/go-calcform/pkg/model"
)

// FieldState is the observable state of one field.
type FieldState struct {
	Name     string         `json:"name"`
	Kind     string         `json:"kind"`
	Label    string         `json:"label,omitempty"`
	Help     string         `json:"help,omitempty"`
	Required bool           `json:"required"`
	Options  []model.Option `json:"options,omitempty"`
	Value    any            `json:"value"`
	Invalid  bool           `json:"invalid"`
	Error    string         `json:"error,omitempty"`
}

// Snapshot is the observable state of a form handle.
type Snapshot struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	SubmitLabel string       `json:"submitLabel"`
	ResetLabel  string       `json:"resetLabel"`
	State       string       `json:"state"`
	Output      string       `json:"output,omitempty"`
	Fields      []FieldState `json:"fields"`
}

// Snap captures h. Values are read straight from the widgets and error text
// comes from the last submit attempt.
func Snap(h *form.Handle) Snapshot {
	errs := h.LastResult().Errors
	widgets := h.Widgets()

	snap := Snapshot{
		Title:       h.Title(),
		Description: h.Description(),
		SubmitLabel: h.SubmitLabel(),
		ResetLabel:  h.ResetLabel(),
		State:       h.State().String(),
		Fields:      make([]FieldState, 0, len(widgets)),
	}
	for idx, field := range h.Fields() {
		messages := errs.Get(field.Name)
		snap.Fields = append(snap.Fields, FieldState{
			Name:     field.Name,
			Kind:     string(field.EffectiveKind()),
			Label:    field.Label,
			Help:     field.Help,
			Required: field.Required,
			Options:  field.Options,
			Value:    widgets[idx].ReadValue(),
			Invalid:  len(messages) > 0,
			Error:    strings.Join(messages, form.MessageSeparator),
		})
	}
	return snap
}

// JSONRenderer renders a Snapshot as indented JSON.
type JSONRenderer struct{}

var _ Renderer = JSONRenderer{}

func (JSONRenderer) Name() string        { return "json" }
func (JSONRenderer) ContentType() string { return "application/json" }

func (JSONRenderer) Render(ctx context.Context, h *form.Handle, options RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := Snap(h)
	if options.Title != "" {
		snap.Title = options.Title
	}
	snap.Output = options.Output
	return json.MarshalIndent(snap, "", "  ")
}

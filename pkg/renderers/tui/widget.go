package tui

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-calcform/pkg/model"
	"github.com/goliatone/go-calcform/pkg/widgets"
)

// Prompt describes how a widget is asked for. Widget.Container returns it.
type Prompt struct {
	Kind    string
	Message string
	Help    string
	Options []model.Option
}

// Widget stores the value a prompt produced. The error slot is reported by
// the Session through the driver.
type Widget struct {
	field     model.Field
	kind      string
	value     any
	invalid   bool
	errorText string
}

var _ widgets.Widget = (*Widget)(nil)

func (w *Widget) Container() any {
	return Prompt{
		Kind:    w.kind,
		Message: w.field.PromptLabel(),
		Help:    w.field.Help,
		Options: w.field.Options,
	}
}

func (w *Widget) ReadValue() any           { return w.value }
func (w *Widget) WriteValue(value any)     { w.value = value }
func (w *Widget) SetInvalid(invalid bool)  { w.invalid = invalid }
func (w *Widget) SetErrorText(text string) { w.errorText = text }

// Invalid reports the invalid marker.
func (w *Widget) Invalid() bool { return w.invalid }

// ErrorText returns the error slot text.
func (w *Widget) ErrorText() string { return w.errorText }

// Factory creates terminal widgets.
type Factory struct {
	registry *widgets.Registry
}

var _ widgets.Factory = (*Factory)(nil)

// NewFactory returns a factory backed by the built-in widget registry.
func NewFactory() *Factory {
	return &Factory{registry: widgets.NewRegistry()}
}

// NewFactoryWithRegistry returns a factory using reg to pick prompt kinds.
func NewFactoryWithRegistry(reg *widgets.Registry) *Factory {
	if reg == nil {
		reg = widgets.NewRegistry()
	}
	return &Factory{registry: reg}
}

func (f *Factory) CreateWidget(field model.Field) (widgets.Widget, error) {
	return &Widget{
		field: field,
		kind:  f.registry.Resolve(field),
		value: widgets.InitialValue(field),
	}, nil
}

func textValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

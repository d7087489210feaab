package widgets

import "github.com/goliatone/go-calcform/pkg/model"

// Headless is an in-memory widget for programmatic and test flows. A checkbox
// reports nil until something writes to it after Clear, mirroring a browser
// form post that omits unchecked boxes.
type Headless struct {
	Field     model.Field
	Kind      string
	Value     any
	Invalid   bool
	ErrorText string
}

// Container returns the widget itself.
func (w *Headless) Container() any { return w }

// ReadValue returns the current value.
func (w *Headless) ReadValue() any { return w.Value }

// WriteValue replaces the current value.
func (w *Headless) WriteValue(value any) { w.Value = value }

// SetInvalid toggles the invalid marker.
func (w *Headless) SetInvalid(invalid bool) { w.Invalid = invalid }

// SetErrorText replaces the error slot text.
func (w *Headless) SetErrorText(text string) { w.ErrorText = text }

// Clear drops the current value so the widget reports nothing, like an
// untouched control that was never posted.
func (w *Headless) Clear() { w.Value = nil }

// HeadlessFactory creates Headless widgets.
type HeadlessFactory struct {
	registry *Registry
}

// NewHeadlessFactory returns a factory backed by the built-in registry.
func NewHeadlessFactory() *HeadlessFactory {
	return &HeadlessFactory{registry: NewRegistry()}
}

// CreateWidget seeds the widget with the field's initial value.
func (f *HeadlessFactory) CreateWidget(field model.Field) (Widget, error) {
	return &Headless{
		Field: field,
		Kind:  f.registry.Resolve(field),
		Value: InitialValue(field),
	}, nil
}

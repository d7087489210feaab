package widgets

import "github.com/goliatone/go-calcform/pkg/model"

// Widget is the handle a factory returns for one field. The form engine reads
// and writes values through it and drives its error slot; what Container
// returns depends on the factory (an HTML fragment, a prompt description, a plain
// struct for headless use).
type Widget interface {
	Container() any
	ReadValue() any
	WriteValue(value any)
	SetInvalid(invalid bool)
	SetErrorText(text string)
}

// Factory materializes a widget for a field descriptor.
type Factory interface {
	CreateWidget(field model.Field) (Widget, error)
}

// FactoryFunc adapts a function into a Factory.
type FactoryFunc func(field model.Field) (Widget, error)

// CreateWidget calls fn.
func (fn FactoryFunc) CreateWidget(field model.Field) (Widget, error) {
	return fn(field)
}

// InitialValue returns the value a freshly built (or reset) widget should
// hold for field: a bool for checkboxes, otherwise the declared default, or
// "" when none is declared.
func InitialValue(field model.Field) any {
	if field.EffectiveKind() == model.KindCheckbox {
		return field.DefaultBool()
	}
	if field.Default == nil {
		return ""
	}
	return field.Default
}

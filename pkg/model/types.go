package model

import (
	"fmt"
	"strings"
)

// FieldKind is the input kind a widget factory materializes for a field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindNumber   FieldKind = "number"
	KindSelect   FieldKind = "select"
	KindTextarea FieldKind = "textarea"
	KindCheckbox FieldKind = "checkbox"
	KindPassword FieldKind = "password"
	KindEmail    FieldKind = "email"
	KindRange    FieldKind = "range"
	KindColor    FieldKind = "color"
	KindDate     FieldKind = "date"
)

// IsNumeric reports whether widgets for the kind accept numeric input.
func (k FieldKind) IsNumeric() bool {
	return k == KindNumber || k == KindRange
}

// Option is one entry of a select field. An empty Label displays the Value.
type Option struct {
	Value string `json:"value" yaml:"value" toml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
}

// Display returns the option caption.
func (o Option) Display() string {
	if strings.TrimSpace(o.Label) == "" {
		return o.Value
	}
	return o.Label
}

// Constraints are advisory hints for widgets. The validator ignores them
// unless the same bound is mirrored into a Rule.
type Constraints struct {
	Step        *float64 `json:"step,omitempty" yaml:"step,omitempty" toml:"step,omitempty"`
	Min         *float64 `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
	Max         *float64 `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty" toml:"placeholder,omitempty"`
	Rows        int      `json:"rows,omitempty" yaml:"rows,omitempty" toml:"rows,omitempty"`
}

// Field describes a single input inside a form.
type Field struct {
	Name        string      `json:"name" yaml:"name" toml:"name"`
	Kind        FieldKind   `json:"kind" yaml:"kind" toml:"kind"`
	Label       string      `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Help        string      `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty"`
	Required    bool        `json:"required" yaml:"required" toml:"required"`
	Options     []Option    `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
	Default     any         `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
	Constraints Constraints `json:"constraints,omitempty" yaml:"constraints,omitempty" toml:"constraints,omitempty"`
	Rules       []Rule      `json:"-" yaml:"-" toml:"-"`
}

// DisplayName returns the label when set, otherwise the field name. Default
// validation messages interpolate this value.
func (f Field) DisplayName() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.Name
}

// EffectiveKind falls back to KindText for descriptors that leave Kind blank.
func (f Field) EffectiveKind() FieldKind {
	if strings.TrimSpace(string(f.Kind)) == "" {
		return KindText
	}
	return f.Kind
}

// DefaultBool interprets Default for checkbox fields. Anything other than a
// true bool (or the string "true") is unchecked.
func (f Field) DefaultBool() bool {
	switch v := f.Default.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}

// Form groups descriptors with the presentation metadata the template library
// and the renderers share.
type Form struct {
	ID          string  `json:"id" yaml:"id" toml:"id"`
	Title       string  `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Category    string  `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
	SubmitLabel string  `json:"submitLabel,omitempty" yaml:"submitLabel,omitempty" toml:"submitLabel,omitempty"`
	ResetLabel  string  `json:"resetLabel,omitempty" yaml:"resetLabel,omitempty" toml:"resetLabel,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields" toml:"fields"`
}

// CollectedData maps field names to the raw values read from widgets. It is
// rebuilt on every collection and never mutated in place by the engine.
type CollectedData map[string]any

// String returns the value for name as text. Missing and nil values are "".
func (d CollectedData) String(name string) string {
	value, ok := d[name]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// Bool returns the value for name as a bool.
func (d CollectedData) Bool(name string) bool {
	switch v := d[name].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}

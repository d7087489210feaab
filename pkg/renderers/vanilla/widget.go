package vanilla

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-calcform/pkg/form"
	"github.com/goliatone/go-calcform/pkg/model"
	"github.com/goliatone/go-calcform/pkg/widgets"
)

// Widget is an HTML control plus its label, help text and error slot.
// Container returns the rendered markup as a string.
type Widget struct {
	factory   *Factory
	field     model.Field
	kind      string
	value     any
	invalid   bool
	errorText string
}

var _ widgets.Widget = (*Widget)(nil)

// Container renders the widget. Template failures are logged and yield an
// empty string; use HTML to observe the error.
func (w *Widget) Container() any {
	markup, err := w.HTML()
	if err != nil {
		w.factory.logger.Error("render widget", zap.String("field", w.field.Name), zap.Error(err))
		return ""
	}
	return markup
}

func (w *Widget) ReadValue() any          { return w.value }
func (w *Widget) WriteValue(value any)    { w.value = value }
func (w *Widget) SetInvalid(invalid bool) { w.invalid = invalid }
func (w *Widget) SetErrorText(text string) {
	w.errorText = text
}

// Kind returns the widget name the registry resolved for the field.
func (w *Widget) Kind() string { return w.kind }

// Invalid reports the invalid marker.
func (w *Widget) Invalid() bool { return w.invalid }

// ErrorText returns the error slot text.
func (w *Widget) ErrorText() string { return w.errorText }

// HTML renders the field template.
func (w *Widget) HTML() (string, error) {
	f := w.factory
	out, err := f.templates.Render(f.theme.template(TemplateField), map[string]any{
		"field":   w.templateData(),
		"classes": f.classes(),
	})
	if err != nil {
		return "", fmt.Errorf("vanilla: render field %q: %w", w.field.Name, err)
	}
	return out, nil
}

func (w *Widget) templateData() map[string]any {
	field := w.field
	value := formatValue(w.value)

	data := map[string]any{
		"id":          w.factory.idPrefix + field.Name,
		"name":        field.Name,
		"widget":      w.kind,
		"type":        inputType(field.EffectiveKind()),
		"label":       inlineMarkup(field.Label),
		"help":        inlineMarkup(field.Help),
		"required":    field.Required,
		"value":       value,
		"checked":     form.Toggled(w.value),
		"invalid":     w.invalid,
		"error":       plainText(w.errorText),
		"placeholder": field.Constraints.Placeholder,
		"step":        formatBound(field.Constraints.Step),
		"min":         formatBound(field.Constraints.Min),
		"max":         formatBound(field.Constraints.Max),
		"rows":        formatRows(field.Constraints.Rows),
	}

	if len(field.Options) > 0 {
		options := make([]map[string]any, 0, len(field.Options))
		for _, opt := range field.Options {
			options = append(options, map[string]any{
				"value":    opt.Value,
				"label":    opt.Display(),
				"selected": opt.Value == value,
			})
		}
		data["options"] = options
	}
	return data
}

func inputType(kind model.FieldKind) string {
	switch kind {
	case model.KindNumber:
		return "number"
	case model.KindText, model.KindSelect, model.KindTextarea, model.KindCheckbox:
		return "text"
	default:
		// range, email, password, color, date and free-form kinds map to the
		// input type of the same name.
		return strings.ToLower(string(kind))
	}
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// formatRows keeps rows a string; the template engine hands numbers to
// templates as float64, which would print as "4.000000".
func formatRows(rows int) string {
	if rows <= 0 {
		return ""
	}
	return strconv.Itoa(rows)
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package vanilla

import (
	"net/url"

	"github.com/goliatone/go-calcform/pkg/form"
	"github.com/goliatone/go-calcform/pkg/model"
)

// Bind writes posted values into the widgets of h. Browsers omit unchecked
// checkboxes, so an absent checkbox is written as nil and collected as false.
// Other absent fields are written as "". Unknown keys are ignored. Bind works
// on any handle, whatever factory built it.
func Bind(h *form.Handle, values url.Values) {
	if h == nil {
		return
	}
	widgets := h.Widgets()
	for idx, field := range h.Fields() {
		posted, present := values[field.Name]
		switch {
		case !present && field.EffectiveKind() == model.KindCheckbox:
			widgets[idx].WriteValue(nil)
		case !present || len(posted) == 0:
			widgets[idx].WriteValue("")
		default:
			widgets[idx].WriteValue(posted[0])
		}
	}
}

// IsReset reports whether values carry the reset action posted by the
// rendered reset button.
func IsReset(values url.Values) bool {
	return values.Get(ActionField) == ActionReset
}

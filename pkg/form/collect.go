package form

import (
	"github.com/goliatone/go-calcform/pkg/model"
)

// Collect reads every widget into a fresh map. Every declared field is
// present; checkbox widgets that report nothing are normalised to false.
// Values are otherwise returned exactly as widgets report them.
func (h *Handle) Collect() model.CollectedData {
	data := make(model.CollectedData, len(h.fields))
	for idx, field := range h.fields {
		value := h.widgets[idx].ReadValue()
		if field.EffectiveKind() == model.KindCheckbox {
			value = Toggled(value)
		}
		data[field.Name] = value
	}
	return data
}

// CollectedData is an alias of Collect for programmatic submission flows.
func (h *Handle) CollectedData() model.CollectedData {
	return h.Collect()
}

// Toggled interprets a checkbox widget value: true, or one of the strings a
// form post or prompt produces for a checked box ("on", "true", "1", "yes").
func Toggled(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch v {
		case "on", "true", "1", "yes":
			return true
		}
	}
	return false
}

package form

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-calcform/pkg/validation"
)

// MessageSeparator joins multiple messages in one error slot.
const MessageSeparator = ", "

// Clear removes error text and the invalid marker from every widget. Calling
// it on a clean form is a no-op.
func Clear(h *Handle) {
	if h == nil {
		return
	}
	for _, widget := range h.widgets {
		widget.SetInvalid(false)
		widget.SetErrorText("")
	}
}

// Apply marks each field with at least one message as invalid and fills its
// error slot. Fields missing from errs are left as they are; the submit
// lifecycle always calls Clear first.
func Apply(h *Handle, errs validation.Errors) {
	if h == nil {
		return
	}
	for name, messages := range errs {
		if len(messages) == 0 {
			continue
		}
		widget, ok := h.Widget(name)
		if !ok {
			h.cfg.logger.Debug("error for unknown field ignored", zap.String("field", name))
			continue
		}
		widget.SetInvalid(true)
		widget.SetErrorText(strings.Join(messages, MessageSeparator))
	}
}

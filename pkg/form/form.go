package form

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-calcform/pkg/model"
	"github.com/goliatone/go-calcform/pkg/validation"
	"github.com/goliatone/go-calcform/pkg/widgets"
)

var (
	ErrFactoryMissing = errors.New("form: widget factory is required")
	ErrNilWidget      = errors.New("form: factory returned a nil widget")
)

// Handle owns the widgets of one built form. It is not safe for concurrent
// use.
type Handle struct {
	fields  []model.Field
	widgets []widgets.Widget
	index   map[string]int

	cfg   config
	state State
	last  validation.Result
}

// Build creates one widget per descriptor, in order, and returns the handle
// used for collection, submission and reset. Descriptor defects (duplicate
// names, select fields without options, broken rules) are returned as errors.
func Build(fields []model.Field, factory widgets.Factory, options ...Option) (*Handle, error) {
	if factory == nil {
		return nil, ErrFactoryMissing
	}
	if err := model.Check(fields); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	h := &Handle{
		fields:  append([]model.Field(nil), fields...),
		widgets: make([]widgets.Widget, 0, len(fields)),
		index:   make(map[string]int, len(fields)),
		cfg:     cfg,
		state:   StateIdle,
	}

	for idx, field := range h.fields {
		widget, err := factory.CreateWidget(field)
		if err != nil {
			return nil, fmt.Errorf("form: create widget %q: %w", field.Name, err)
		}
		if widget == nil {
			return nil, fmt.Errorf("form: create widget %q: %w", field.Name, ErrNilWidget)
		}
		h.widgets = append(h.widgets, widget)
		h.index[field.Name] = idx
	}

	cfg.logger.Debug("form built", zap.Int("fields", len(h.fields)))
	return h, nil
}

// BuildForm builds a template form, applying its captions before options.
func BuildForm(f model.Form, factory widgets.Factory, options ...Option) (*Handle, error) {
	opts := append([]Option{WithForm(f)}, options...)
	return Build(f.Fields, factory, opts...)
}

// Fields returns the descriptors in declaration order.
func (h *Handle) Fields() []model.Field {
	return h.fields
}

// Widget returns the widget bound to name.
func (h *Handle) Widget(name string) (widgets.Widget, bool) {
	idx, ok := h.index[name]
	if !ok {
		return nil, false
	}
	return h.widgets[idx], true
}

// Widgets returns the widgets in declaration (and traversal) order.
func (h *Handle) Widgets() []widgets.Widget {
	return h.widgets
}

// Title returns the form title set through WithForm, if any.
func (h *Handle) Title() string {
	return h.cfg.title
}

// Description returns the form description set through WithForm, if any.
func (h *Handle) Description() string {
	return h.cfg.description
}

// SubmitLabel returns the submit affordance caption.
func (h *Handle) SubmitLabel() string {
	return h.cfg.submitLabel
}

// ResetLabel returns the reset affordance caption.
func (h *Handle) ResetLabel() string {
	return h.cfg.resetLabel
}

// State reports the current lifecycle state.
func (h *Handle) State() State {
	return h.state
}

// LastResult returns the result of the most recent submit attempt.
func (h *Handle) LastResult() validation.Result {
	return h.last
}

// Reset restores every widget to its descriptor default and clears error
// presentation. Validation does not run.
func (h *Handle) Reset() {
	for idx, field := range h.fields {
		h.widgets[idx].WriteValue(widgets.InitialValue(field))
	}
	Clear(h)
	h.last = validation.Result{}
	h.state = StateIdle
	h.cfg.logger.Debug("form reset")
}

// Submit runs one pass of the lifecycle. Invalid input is reported through
// the returned Result (and the widgets' error slots); the error return carries
// descriptor defects and submit handler failures.
func (h *Handle) Submit() (validation.Result, error) {
	h.transition(StateCollecting)
	data := h.Collect()

	h.transition(StateValidating)
	result, err := h.cfg.validator.Validate(data, h.fields)
	if err != nil {
		h.transition(StateIdle)
		return validation.Result{}, err
	}
	h.last = result

	Clear(h)
	if !result.Valid {
		h.transition(StateInvalid)
		Apply(h, result.Errors)
		h.cfg.logger.Debug("form submission rejected", zap.Strings("fields", result.Errors.Fields()))
		h.transition(StateIdle)
		return result, nil
	}

	h.transition(StateAccepted)
	var handlerErr error
	if h.cfg.onSubmit != nil {
		handlerErr = h.cfg.onSubmit(data, h)
	}
	h.transition(StateIdle)
	if handlerErr != nil {
		return result, fmt.Errorf("form: submit handler: %w", handlerErr)
	}
	return result, nil
}

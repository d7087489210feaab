package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-calcform/pkg/form"
	"github.com/goliatone/go-calcform/pkg/model"
	"github.com/goliatone/go-calcform/pkg/render"
	"github.com/goliatone/go-calcform/pkg/widgets"
)

// noneOption is listed first in optional select prompts and maps to "".
const noneOption = "(none)"

// Session runs a built form interactively.
type Session struct {
	driver      PromptDriver
	format      OutputFormat
	maxAttempts int
	theme       Theme
	logger      *zap.Logger
}

var _ render.Renderer = (*Session)(nil)

// NewSession returns a session using the survey driver and JSON output unless
// options say otherwise.
func NewSession(options ...Option) *Session {
	s := &Session{
		format: OutputFormatJSON,
		theme:  DefaultTheme,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

func (s *Session) Name() string { return "tui" }

func (s *Session) ContentType() string {
	switch s.format {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render runs the session; options are not used by terminal output.
func (s *Session) Render(ctx context.Context, h *form.Handle, _ render.RenderOptions) ([]byte, error) {
	return s.Run(ctx, h)
}

// Run prompts every field in order and submits. While the form is rejected,
// each field's messages are printed through the driver and only the invalid
// fields are asked again. The accepted data is returned serialized in the
// configured format.
func (s *Session) Run(ctx context.Context, h *form.Handle) ([]byte, error) {
	if h == nil {
		return nil, errors.New("tui: form handle is required")
	}

	fields := h.Fields()
	ws := h.Widgets()
	pending := make([]int, len(fields))
	for idx := range fields {
		if _, ok := ws[idx].(*Widget); !ok {
			return nil, ErrForeignWidget
		}
		pending[idx] = idx
	}

	for attempt := 1; ; attempt++ {
		for _, idx := range pending {
			if err := s.prompt(ctx, fields[idx], ws[idx].(*Widget)); err != nil {
				return nil, err
			}
		}

		result, err := h.Submit()
		if err != nil {
			return nil, err
		}
		if result.Valid {
			s.logger.Debug("terminal form accepted", zap.Int("attempts", attempt))
			return serialize(s.format, fields, h.Collect())
		}

		s.logger.Debug("terminal form rejected",
			zap.Int("attempt", attempt),
			zap.Strings("fields", result.Errors.Fields()),
		)
		if s.maxAttempts > 0 && attempt >= s.maxAttempts {
			return nil, fmt.Errorf("%w (%d)", ErrTooManyAttempts, attempt)
		}

		pending = pending[:0]
		for idx, field := range fields {
			messages := result.Errors.Get(field.Name)
			if len(messages) == 0 {
				continue
			}
			pending = append(pending, idx)
			msg := fmt.Sprintf("%s%s: %s", s.theme.ErrorPrefix, field.PromptLabel(), strings.Join(messages, form.MessageSeparator))
			if err := s.driver.Info(ctx, msg); err != nil {
				return nil, err
			}
		}
	}
}

func (s *Session) prompt(ctx context.Context, field model.Field, w *Widget) error {
	message := field.PromptLabel()
	if field.Required {
		message += " *"
	}

	switch w.kind {
	case widgets.WidgetToggle:
		v, err := s.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: form.Toggled(w.value), Help: field.Help})
		if err != nil {
			return err
		}
		w.WriteValue(v)

	case widgets.WidgetSelect:
		labels, values := selectOptions(field)
		current := textValue(w.value)
		defaultIdx := 0
		for i, value := range values {
			if value == current {
				defaultIdx = i
				break
			}
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: defaultIdx, Help: field.Help})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(values) {
			return fmt.Errorf("tui: field %q: option index %d out of range", field.Name, idx)
		}
		w.WriteValue(values[idx])

	case widgets.WidgetTextarea:
		v, err := s.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: textValue(w.value), Help: field.Help})
		if err != nil {
			return err
		}
		w.WriteValue(v)

	case widgets.WidgetPassword:
		v, err := s.driver.Password(ctx, InputConfig{Message: message, Help: field.Help})
		if err != nil {
			return err
		}
		w.WriteValue(v)

	default:
		v, err := s.driver.Input(ctx, InputConfig{Message: message, Default: textValue(w.value), Help: inputHelp(field)})
		if err != nil {
			return err
		}
		w.WriteValue(v)
	}
	return nil
}

func selectOptions(field model.Field) (labels, values []string) {
	if !field.Required {
		labels = append(labels, noneOption)
		values = append(values, "")
	}
	for _, opt := range field.Options {
		labels = append(labels, opt.Display())
		values = append(values, opt.Value)
	}
	return labels, values
}

// inputHelp appends the advisory bounds to the help text of numeric prompts.
func inputHelp(field model.Field) string {
	help := field.Help
	c := field.Constraints
	if !field.EffectiveKind().IsNumeric() || (c.Min == nil && c.Max == nil) {
		return help
	}
	var bounds string
	switch {
	case c.Min != nil && c.Max != nil:
		bounds = fmt.Sprintf("between %s and %s", textValue(*c.Min), textValue(*c.Max))
	case c.Min != nil:
		bounds = "at least " + textValue(*c.Min)
	default:
		bounds = "at most " + textValue(*c.Max)
	}
	if help == "" {
		return bounds
	}
	return help + " (" + bounds + ")"
}

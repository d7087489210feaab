package form

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-calcform/pkg/model"
	"github.com/goliatone/go-calcform/pkg/validation"
)

const (
	DefaultSubmitLabel = "Calculate"
	DefaultResetLabel  = "Reset"
)

// SubmitHandler receives validated data. It only runs for accepted
// submissions; a returned error is passed back from Handle.Submit.
type SubmitHandler func(data model.CollectedData, h *Handle) error

// StateObserver is notified of every lifecycle transition.
type StateObserver func(from, to State)

// Option configures Build.
type Option func(*config)

type config struct {
	title       string
	description string
	submitLabel string
	resetLabel  string
	onSubmit    SubmitHandler
	observer    StateObserver
	validator   *validation.Validator
	logger      *zap.Logger
}

func defaultConfig() config {
	return config{
		submitLabel: DefaultSubmitLabel,
		resetLabel:  DefaultResetLabel,
		validator:   validation.New(),
		logger:      zap.NewNop(),
	}
}

// WithSubmitLabel overrides the submit affordance caption.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// WithResetLabel overrides the reset affordance caption.
func WithResetLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.resetLabel = trimmed
		}
	}
}

// WithSubmitHandler registers the callback for accepted submissions.
func WithSubmitHandler(fn SubmitHandler) Option {
	return func(cfg *config) {
		cfg.onSubmit = fn
	}
}

// WithStateObserver registers a lifecycle transition callback.
func WithStateObserver(fn StateObserver) Option {
	return func(cfg *config) {
		cfg.observer = fn
	}
}

// WithValidator swaps the validator, e.g. to customise messages.
func WithValidator(v *validation.Validator) Option {
	return func(cfg *config) {
		if v != nil {
			cfg.validator = v
		}
	}
}

// WithLogger attaches a zap logger. Lifecycle transitions are logged at debug
// level.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithForm applies the title and the submit/reset captions declared on a
// template form.
func WithForm(f model.Form) Option {
	return func(cfg *config) {
		cfg.title = strings.TrimSpace(f.Title)
		cfg.description = strings.TrimSpace(f.Description)
		WithSubmitLabel(f.SubmitLabel)(cfg)
		WithResetLabel(f.ResetLabel)(cfg)
	}
}

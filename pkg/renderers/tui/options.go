package tui

import (
	"strings"

	"go.uber.org/zap"
)

// OutputFormat controls how accepted data is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits a JSON object.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one name=value line per field.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat maps a flag value to an OutputFormat.
func ParseOutputFormat(raw string) (OutputFormat, bool) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case OutputFormatJSON, "":
		return OutputFormatJSON, true
	case OutputFormatFormURLEncoded:
		return OutputFormatFormURLEncoded, true
	case OutputFormatPrettyText:
		return OutputFormatPrettyText, true
	default:
		return "", false
	}
}

// Theme holds message prefixes. Keep it free of ANSI codes so drivers decide
// on styling.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is applied when WithTheme is not used.
var DefaultTheme = Theme{InfoPrefix: "", ErrorPrefix: "✗ "}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutputFormat selects the serialization of accepted data.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Session) {
		if format != "" {
			s.format = format
		}
	}
}

// WithMaxAttempts bounds the number of submit attempts. Zero means no bound.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

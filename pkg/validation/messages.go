package validation

import (
	"fmt"
	"strings"
)

// Messages holds the default message format strings. Each format receives
// only the operands it names:
//
//	Required, Pattern, Custom, Numeric  display name (label or name)
//	Min, Max                            threshold
//	MinLength, MaxLength                display name, length
type Messages struct {
	Required  string
	Min       string
	Max       string
	Pattern   string
	Custom    string
	Numeric   string
	MinLength string
	MaxLength string
}

// DefaultMessages returns the built-in English formats.
func DefaultMessages() Messages {
	return Messages{
		Required:  "%s is required",
		Min:       "Minimum value is %v",
		Max:       "Maximum value is %v",
		Pattern:   "%s has an invalid format",
		Custom:    "%s is invalid",
		Numeric:   "%s must be a number",
		MinLength: "%s must be at least %d characters",
		MaxLength: "%s must be at most %d characters",
	}
}

// Translation keys passed to a Translator.
const (
	KeyRequired  = "validation.required"
	KeyMin       = "validation.min"
	KeyMax       = "validation.max"
	KeyPattern   = "validation.pattern"
	KeyCustom    = "validation.custom"
	KeyNumeric   = "validation.numeric"
	KeyMinLength = "validation.minLength"
	KeyMaxLength = "validation.maxLength"
)

// Translator resolves a message key for a locale. It receives the same
// operands as the format strings. Returning an error or an empty string falls
// back to the configured format.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate calls fn.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

func (m Messages) merged(defaults Messages) Messages {
	pick := func(value, fallback string) string {
		if strings.TrimSpace(value) == "" {
			return fallback
		}
		return value
	}
	return Messages{
		Required:  pick(m.Required, defaults.Required),
		Min:       pick(m.Min, defaults.Min),
		Max:       pick(m.Max, defaults.Max),
		Pattern:   pick(m.Pattern, defaults.Pattern),
		Custom:    pick(m.Custom, defaults.Custom),
		Numeric:   pick(m.Numeric, defaults.Numeric),
		MinLength: pick(m.MinLength, defaults.MinLength),
		MaxLength: pick(m.MaxLength, defaults.MaxLength),
	}
}

func (v *Validator) message(key, format, override string, args ...any) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	if v.translator != nil {
		if msg, err := v.translator.Translate(v.locale, key, args...); err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return fmt.Sprintf(format, args...)
}

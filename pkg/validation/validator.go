package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/goliatone/go-calcform/pkg/model"
)

// ErrPredicateFailed wraps an error returned by a custom rule predicate.
var ErrPredicateFailed = errors.New("validation: custom predicate failed")

// Option configures a Validator.
type Option func(*Validator)

// WithMessages overrides default message formats. Blank entries keep the
// built-in format.
func WithMessages(messages Messages) Option {
	return func(v *Validator) {
		v.messages = messages.merged(DefaultMessages())
	}
}

// WithTranslator routes default messages through t before falling back to
// the format strings.
func WithTranslator(t Translator) Option {
	return func(v *Validator) {
		v.translator = t
	}
}

// WithLocale sets the locale handed to the Translator.
func WithLocale(locale string) Option {
	return func(v *Validator) {
		v.locale = strings.TrimSpace(locale)
	}
}

// Validator evaluates descriptors against collected data. It is safe for
// concurrent use; compiled patterns are cached per expression.
type Validator struct {
	messages   Messages
	translator Translator
	locale     string

	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp
}

// New constructs a Validator with the default English messages.
func New(options ...Option) *Validator {
	v := &Validator{
		messages: DefaultMessages(),
		patterns: make(map[string]*regexp.Regexp),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

var defaultValidator = New()

// Validate runs the default validator.
func Validate(data model.CollectedData, fields []model.Field) (Result, error) {
	return defaultValidator.Validate(data, fields)
}

// Validate evaluates every field in descriptor order. User input problems are
// reported through the Result; the error return is reserved for defects in
// the descriptors themselves (bad patterns, failing predicates).
func (v *Validator) Validate(data model.CollectedData, fields []model.Field) (Result, error) {
	errs := make(Errors)
	for _, field := range fields {
		value, present := data[field.Name]
		if !present {
			value = nil
		}
		messages, err := v.ValidateField(field, value)
		if err != nil {
			return Result{}, err
		}
		if len(messages) > 0 {
			errs[field.Name] = messages
		}
	}
	return newResult(errs), nil
}

// ValidateField evaluates a single field against value and returns its
// ordered messages.
func (v *Validator) ValidateField(field model.Field, value any) ([]string, error) {
	display := field.DisplayName()

	if field.Required && isBlank(field, value) {
		return []string{v.message(KeyRequired, v.messages.Required, "", display)}, nil
	}
	if !field.Required && isEmpty(value) {
		return nil, nil
	}

	var (
		messages        []string
		numericReported bool
	)
	for idx, rule := range field.Rules {
		var number float64
		if isNumericRule(rule) {
			parsed, ok := TryParseNumber(value)
			if !ok {
				// one coercion message per field, however many bounds it has
				if !numericReported {
					messages = append(messages, v.message(KeyNumeric, v.messages.Numeric, "", display))
					numericReported = true
				}
				continue
			}
			number = parsed
		}
		msg, err := v.evaluate(field, rule, value, number)
		if err != nil {
			return nil, fmt.Errorf("validation: field %q rule %d: %w", field.Name, idx, err)
		}
		if msg != "" {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

// evaluate returns the failure message for rule, or "" when it passes. number
// is the coerced value for min and max rules.
func (v *Validator) evaluate(field model.Field, rule model.Rule, value any, number float64) (string, error) {
	display := field.DisplayName()

	switch r := rule.(type) {
	case model.MinRule:
		if number < r.Threshold {
			return v.message(KeyMin, v.messages.Min, r.Message, r.Threshold), nil
		}
	case model.MaxRule:
		if number > r.Threshold {
			return v.message(KeyMax, v.messages.Max, r.Message, r.Threshold), nil
		}
	case model.PatternRule:
		re, err := v.compile(r.Expr)
		if err != nil {
			return "", err
		}
		if !re.MatchString(text(value)) {
			return v.message(KeyPattern, v.messages.Pattern, r.Message, display), nil
		}
	case model.CustomRule:
		if r.Predicate == nil {
			return "", model.ErrPredicateMissing
		}
		ok, err := r.Predicate(value)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrPredicateFailed, r.Name, err)
		}
		if !ok {
			return v.message(KeyCustom, v.messages.Custom, r.Message, display), nil
		}
	case model.MinLengthRule:
		if utf8.RuneCountInString(text(value)) < r.Length {
			return v.message(KeyMinLength, v.messages.MinLength, r.Message, display, r.Length), nil
		}
	case model.MaxLengthRule:
		if utf8.RuneCountInString(text(value)) > r.Length {
			return v.message(KeyMaxLength, v.messages.MaxLength, r.Message, display, r.Length), nil
		}
	case nil:
		return "", model.ErrRuleMissing
	default:
		return "", fmt.Errorf("validation: unsupported rule %T", rule)
	}
	return "", nil
}

func (v *Validator) compile(expr string) (*regexp.Regexp, error) {
	v.mu.RLock()
	re, ok := v.patterns[expr]
	v.mu.RUnlock()
	if ok {
		return re, nil
	}

	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidPattern, err)
	}

	v.mu.Lock()
	v.patterns[expr] = compiled
	v.mu.Unlock()
	return compiled, nil
}

func isNumericRule(rule model.Rule) bool {
	switch rule.(type) {
	case model.MinRule, model.MaxRule:
		return true
	}
	return false
}

// isBlank implements the required check: missing, nil, whitespace-only text,
// and unchecked checkboxes all count as blank.
func isBlank(field model.Field, value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		return field.EffectiveKind() == model.KindCheckbox && !v
	default:
		return false
	}
}

// isEmpty decides whether an optional field skips its rules. Only a missing
// value or the empty string qualifies.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}

func text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

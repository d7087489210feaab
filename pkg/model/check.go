package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrFieldNameMissing = errors.New("field name is required")
	ErrDuplicateField   = errors.New("duplicate field name")
	ErrOptionsMissing   = errors.New("select field requires options")
	ErrInvalidPattern   = errors.New("invalid pattern")
	ErrPredicateMissing = errors.New("custom rule requires a predicate")
	ErrRuleMissing      = errors.New("rule is nil")
	ErrUnsupportedRule  = errors.New("unsupported rule")
)

// Check reports configuration defects in a descriptor list. These are
// programming errors, so callers should surface them instead of rendering a
// partially working form.
func Check(fields []Field) error {
	seen := make(map[string]struct{}, len(fields))
	for idx, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("model: field at index %d: %w", idx, ErrFieldNameMissing)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("model: field %q: %w", name, ErrDuplicateField)
		}
		seen[name] = struct{}{}

		if err := checkField(field); err != nil {
			return fmt.Errorf("model: field %q: %w", name, err)
		}
	}
	return nil
}

func checkField(field Field) error {
	if field.EffectiveKind() == KindSelect && len(field.Options) == 0 {
		return ErrOptionsMissing
	}
	for idx, rule := range field.Rules {
		switch r := rule.(type) {
		case nil:
			return fmt.Errorf("rule %d: %w", idx, ErrRuleMissing)
		case PatternRule:
			if _, err := regexp.Compile(r.Expr); err != nil {
				return fmt.Errorf("rule %d: %w: %v", idx, ErrInvalidPattern, err)
			}
		case CustomRule:
			if r.Predicate == nil {
				return fmt.Errorf("rule %d (%s): %w", idx, r.Name, ErrPredicateMissing)
			}
		case MinRule, MaxRule, MinLengthRule, MaxLengthRule:
		default:
			// pointer variants satisfy Rule but are not evaluated
			return fmt.Errorf("rule %d: %w: %T", idx, ErrUnsupportedRule, rule)
		}
	}
	return nil
}

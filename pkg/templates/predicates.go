package templates

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-calcform/pkg/model"
	"github.com/goliatone/go-calcform/pkg/validation"
)

// Built-in predicate names usable from template files.
const (
	PredicateNumber   = "number"
	PredicateInteger  = "integer"
	PredicateNonZero  = "nonZero"
	PredicateHexColor = "hexColor"
)

// ErrUnknownPredicate is returned when a template references a predicate that
// was never registered.
var ErrUnknownPredicate = errors.New("templates: unknown predicate")

var (
	predicatesMu sync.RWMutex
	predicates   = map[string]model.Predicate{
		PredicateNumber:   IsNumber,
		PredicateInteger:  IsInteger,
		PredicateNonZero:  IsNonZero,
		PredicateHexColor: IsHexColor,
	}
)

// RegisterPredicate makes fn available to custom rules in template files.
// Registering an existing name replaces it.
func RegisterPredicate(name string, fn model.Predicate) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || fn == nil {
		return fmt.Errorf("templates: predicate name and function required")
	}
	predicatesMu.Lock()
	defer predicatesMu.Unlock()
	predicates[trimmed] = fn
	return nil
}

// LookupPredicate returns the predicate registered under name.
func LookupPredicate(name string) (model.Predicate, error) {
	predicatesMu.RLock()
	defer predicatesMu.RUnlock()
	fn, ok := predicates[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPredicate, name)
	}
	return fn, nil
}

// PredicateNames lists the registered predicate names.
func PredicateNames() []string {
	predicatesMu.RLock()
	defer predicatesMu.RUnlock()
	names := make([]string, 0, len(predicates))
	for name := range predicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsNumber accepts anything TryParseNumber can coerce.
func IsNumber(value any) (bool, error) {
	_, ok := validation.TryParseNumber(value)
	return ok, nil
}

// IsInteger accepts numbers without a fractional part.
func IsInteger(value any) (bool, error) {
	n, ok := validation.TryParseNumber(value)
	if !ok {
		return false, nil
	}
	return n == math.Trunc(n), nil
}

// IsNonZero accepts numbers other than zero.
func IsNonZero(value any) (bool, error) {
	n, ok := validation.TryParseNumber(value)
	return ok && n != 0, nil
}

// IsHexColor accepts #rgb and #rrggbb colors.
func IsHexColor(value any) (bool, error) {
	s, ok := value.(string)
	if !ok {
		return false, nil
	}
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return false, nil
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false, nil
		}
	}
	return true, nil
}

package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Errors maps field names to their ordered validation messages.
type Errors map[string][]string

// Has reports whether the field has at least one message.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Get returns the messages for field.
func (e Errors) Get(field string) []string {
	return e[field]
}

// Fields returns the names carrying messages in lexical order.
func (e Errors) Fields() []string {
	names := make([]string, 0, len(e))
	for name, messages := range e {
		if len(messages) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Error renders a compact summary, which lets Errors travel as an error value
// through callers that prefer that style.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, name := range e.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e[name], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Result is the outcome of one validation pass. Valid is true iff Errors is
// empty.
type Result struct {
	Valid  bool   `json:"isValid"`
	Errors Errors `json:"errors"`
}

func newResult(errs Errors) Result {
	if len(errs) == 0 {
		return Result{Valid: true, Errors: Errors{}}
	}
	return Result{Valid: false, Errors: errs}
}

package templates

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-calcform/pkg/model"
)

// Builder returns a fresh form on every call.
type Builder func() model.Form

// Library maps template names to form builders.
type Library struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{builders: make(map[string]Builder)}
}

// Default returns a library with every built-in preset registered.
func Default() *Library {
	lib := NewLibrary()
	for _, entry := range builtins() {
		lib.MustRegister(entry.ID, entry.build)
	}
	return lib
}

// Register adds a builder. Duplicate names return an error.
func (l *Library) Register(name string, builder Builder) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || builder == nil {
		return fmt.Errorf("templates: template name and builder required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.builders[trimmed]; exists {
		return fmt.Errorf("templates: template %q already registered", trimmed)
	}
	l.builders[trimmed] = builder
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (l *Library) MustRegister(name string, builder Builder) {
	if err := l.Register(name, builder); err != nil {
		panic(err)
	}
}

// Lookup builds the named form.
func (l *Library) Lookup(name string) (model.Form, error) {
	l.mu.RLock()
	builder, ok := l.builders[strings.TrimSpace(name)]
	l.mu.RUnlock()
	if !ok {
		return model.Form{}, fmt.Errorf("templates: template %q not found", name)
	}
	return builder(), nil
}

// MustLookup panics if the template is missing.
func (l *Library) MustLookup(name string) model.Form {
	f, err := l.Lookup(name)
	if err != nil {
		panic(err)
	}
	return f
}

// Names returns the sorted template names.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.builders))
	for name := range l.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Forms returns every template, sorted by name.
func (l *Library) Forms() []model.Form {
	names := l.Names()
	out := make([]model.Form, 0, len(names))
	for _, name := range names {
		if f, err := l.Lookup(name); err == nil {
			out = append(out, f)
		}
	}
	return out
}

type builtin struct {
	model.Form
	fields func() []model.Field
}

func (b builtin) build() model.Form {
	f := b.Form
	f.Fields = b.fields()
	return f
}

func builtins() []builtin {
	return []builtin{
		{Form: model.Form{ID: "tip", Title: "Tip calculator", Category: "financial"}, fields: Tip},
		{Form: model.Form{ID: "loan", Title: "Loan calculator", Category: "financial"}, fields: Financial},
		{Form: model.Form{ID: "length", Title: "Length converter", Category: "converter", SubmitLabel: "Convert"}, fields: func() []model.Field { return UnitConverter(LengthUnits()) }},
		{Form: model.Form{ID: "temperature", Title: "Temperature converter", Category: "converter", SubmitLabel: "Convert"}, fields: Temperature},
		{Form: model.Form{ID: "bmi", Title: "BMI calculator", Category: "health"}, fields: BMI},
		{Form: model.Form{ID: "text", Title: "Text tools", Category: "text", SubmitLabel: "Transform"}, fields: FreeText},
		{Form: model.Form{ID: "password", Title: "Password generator", Category: "security", SubmitLabel: "Generate"}, fields: PasswordGenerator},
		{Form: model.Form{ID: "percentage", Title: "Percentage calculator", Category: "math"}, fields: Percentage},
	}
}

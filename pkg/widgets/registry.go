package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-calcform/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetInput    = "input"
	WidgetNumber   = "number"
	WidgetToggle   = "toggle"
	WidgetSelect   = "select"
	WidgetTextarea = "textarea"
	WidgetPassword = "password"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects a widget name for a field based on registered matchers.
// Higher priority wins; ties fall back to registration order. Fields nothing
// matches resolve to WidgetInput.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher with the provided name and priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field.
func (r *Registry) Resolve(field model.Field) string {
	if r == nil {
		return WidgetInput
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name
		}
	}
	return WidgetInput
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetToggle, 90, func(field model.Field) bool {
		return field.EffectiveKind() == model.KindCheckbox
	})

	r.Register(WidgetSelect, 80, func(field model.Field) bool {
		return field.EffectiveKind() == model.KindSelect
	})

	r.Register(WidgetTextarea, 70, func(field model.Field) bool {
		return field.EffectiveKind() == model.KindTextarea
	})

	r.Register(WidgetPassword, 60, func(field model.Field) bool {
		return field.EffectiveKind() == model.KindPassword
	})

	r.Register(WidgetNumber, 50, func(field model.Field) bool {
		return field.EffectiveKind().IsNumeric()
	})
}

package vanilla

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Class token keys a theme can override through RendererConfig.Tokens.
const (
	TokenForm            = "form"
	TokenTitle           = "title"
	TokenDescription     = "description"
	TokenField           = "field"
	TokenFieldInvalid    = "fieldInvalid"
	TokenLabel           = "label"
	TokenInput           = "input"
	TokenInvalid         = "invalid"
	TokenHelp            = "help"
	TokenError           = "error"
	TokenActions         = "actions"
	TokenButton          = "button"
	TokenButtonSecondary = "buttonSecondary"
	TokenResult          = "result"
	TokenIndex           = "index"

	// AssetStylesheet is the key passed to RendererConfig.AssetURL when a full
	// page is rendered.
	AssetStylesheet = "stylesheet"
)

var defaultClasses = map[string]string{
	TokenForm:            "calcform",
	TokenTitle:           "calcform-title",
	TokenDescription:     "calcform-description",
	TokenField:           "calcform-field",
	TokenFieldInvalid:    "calcform-field--invalid",
	TokenLabel:           "calcform-label",
	TokenInput:           "calcform-input",
	TokenInvalid:         "is-invalid",
	TokenHelp:            "calcform-help",
	TokenError:           "calcform-error",
	TokenActions:         "calcform-actions",
	TokenButton:          "calcform-button",
	TokenButtonSecondary: "calcform-button calcform-button--secondary",
	TokenResult:          "calcform-result",
	TokenIndex:           "calcform-index",
}

type themeContext struct {
	classes  map[string]string
	name     string
	variant  string
	style    string
	partials map[string]string
	assetURL func(string) string
}

func newThemeContext(cfg *theme.RendererConfig) themeContext {
	ctx := themeContext{classes: make(map[string]string, len(defaultClasses))}
	for key, value := range defaultClasses {
		ctx.classes[key] = value
	}
	if cfg == nil {
		return ctx
	}

	for key, value := range cfg.Tokens {
		if _, known := defaultClasses[key]; known && strings.TrimSpace(value) != "" {
			ctx.classes[key] = strings.Join(strings.Fields(value), " ")
		}
	}
	ctx.name = cfg.Theme
	ctx.variant = cfg.Variant
	ctx.style = cssVarsStyle(cfg.CSSVars)
	ctx.partials = cfg.Partials
	ctx.assetURL = cfg.AssetURL
	return ctx
}

func (t themeContext) template(name string) string {
	if partial := strings.TrimSpace(t.partials[name]); partial != "" {
		return partial
	}
	return name
}

func (t themeContext) asset(key string) string {
	if t.assetURL == nil {
		return ""
	}
	return t.assetURL(key)
}

func (t themeContext) data() map[string]any {
	return map[string]any{
		"name":    t.name,
		"variant": t.variant,
		"style":   t.style,
	}
}

// cssVarsStyle renders CSS custom properties as a style attribute value,
// sorted by name. Names without the leading "--" get it added.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	normalized := make(map[string]string, len(vars))
	for key, value := range vars {
		name := strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		normalized[name] = value
	}

	names := make([]string, 0, len(normalized))
	for name := range normalized {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+normalized[name])
	}
	return strings.Join(parts, "; ")
}

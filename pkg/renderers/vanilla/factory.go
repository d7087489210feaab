package vanilla

import (
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-calcform/pkg/model"
	rendertemplate "github.com/goliatone/go-calcform/pkg/render/template"
	"github.com/goliatone/go-calcform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-calcform/pkg/widgets"
)

// DefaultIDPrefix is prepended to field names to build element ids.
const DefaultIDPrefix = "cf-"

// Option configures NewFactory.
type Option func(*config)

type config struct {
	templatesFS  fs.FS
	templatesDir string
	renderer     rendertemplate.TemplateRenderer
	theme        *theme.RendererConfig
	registry     *widgets.Registry
	idPrefix     string
	lang         string
	logger       *zap.Logger
}

// WithTemplatesFS replaces the embedded template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templatesFS = files
	}
}

// WithTemplatesDir loads templates from dir first, falling back to the
// embedded bundle for names dir does not provide.
func WithTemplatesDir(dir string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(dir)
	}
}

// WithTemplateRenderer injects a template renderer. Template options are
// ignored when one is supplied.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.renderer = renderer
		}
	}
}

// WithTheme applies class tokens, CSS variables, partial overrides and the
// stylesheet asset from a go-theme renderer config.
func WithTheme(rc *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.theme = rc
	}
}

// WithRegistry swaps the widget registry used to pick a control per field.
func WithRegistry(reg *widgets.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.registry = reg
		}
	}
}

// WithIDPrefix overrides DefaultIDPrefix, e.g. when two forms share a page.
func WithIDPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.idPrefix = strings.TrimSpace(prefix)
	}
}

// WithLang sets the lang attribute of full-page output.
func WithLang(lang string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(lang); trimmed != "" {
			cfg.lang = trimmed
		}
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Factory creates HTML widgets and renders forms built from them.
type Factory struct {
	templates rendertemplate.TemplateRenderer
	theme     themeContext
	registry  *widgets.Registry
	idPrefix  string
	lang      string
	logger    *zap.Logger
}

var _ widgets.Factory = (*Factory)(nil)

// NewFactory builds a factory backed by the embedded templates unless
// options say otherwise.
func NewFactory(options ...Option) (*Factory, error) {
	cfg := config{
		templatesFS: TemplatesFS(),
		idPrefix:    DefaultIDPrefix,
		lang:        "en",
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	renderer := cfg.renderer
	if renderer == nil {
		engineOpts := []gotemplate.Option{gotemplate.WithFS(cfg.templatesFS), gotemplate.WithLogger(cfg.logger)}
		if cfg.templatesDir != "" {
			engineOpts = append(engineOpts, gotemplate.WithDir(cfg.templatesDir))
		}
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("vanilla: configure template renderer: %w", err)
		}
		renderer = engine
	}

	registry := cfg.registry
	if registry == nil {
		registry = widgets.NewRegistry()
	}

	return &Factory{
		templates: renderer,
		theme:     newThemeContext(cfg.theme),
		registry:  registry,
		idPrefix:  cfg.idPrefix,
		lang:      cfg.lang,
		logger:    cfg.logger,
	}, nil
}

// CreateWidget returns an HTML widget seeded with the field's initial value.
func (f *Factory) CreateWidget(field model.Field) (widgets.Widget, error) {
	return &Widget{
		factory: f,
		field:   field,
		kind:    f.registry.Resolve(field),
		value:   widgets.InitialValue(field),
	}, nil
}

func (f *Factory) classes() map[string]any {
	out := make(map[string]any, len(f.theme.classes))
	for key, value := range f.theme.classes {
		out[key] = value
	}
	return out
}

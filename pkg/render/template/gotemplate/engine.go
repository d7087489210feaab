package gotemplate

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	gotemplatepkg "github.com/goliatone/go-template"
	"go.uber.org/zap"

	"github.com/goliatone/go-calcform/pkg/render/template"
)

// DefaultExtension is appended to template names that carry no extension.
const DefaultExtension = ".tmpl"

// ErrNoSource is returned by New when neither WithDir nor WithFS is given.
var ErrNoSource = errors.New("gotemplate: a template dir or fs.FS is required")

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	dir     string
	files   fs.FS
	ext     string
	globals map[string]any
	logger  *zap.Logger
}

// WithDir loads templates from a directory on disk. Directory templates take
// precedence over WithFS ones with the same name, so a deployment can
// override the embedded set file by file.
func WithDir(dir string) Option {
	return func(cfg *config) {
		cfg.dir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithExtension overrides DefaultExtension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		if ext = strings.TrimSpace(ext); ext != "" {
			cfg.ext = ext
		}
	}
}

// WithGlobals seeds values visible to every template.
func WithGlobals(globals map[string]any) Option {
	return func(cfg *config) {
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(globals))
		}
		for key, value := range globals {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// WithLogger sets the logger that traces rendered templates at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Engine is a go-template engine set up for the calcform templates. Render
// data is converted through its JSON encoding, so numbers reach templates as
// float64 and structs expose their json field names.
type Engine struct {
	*gotemplatepkg.Engine
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine. At least one of WithDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := config{ext: DefaultExtension, logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.dir == "" && cfg.files == nil {
		return nil, ErrNoSource
	}

	engineOpts := []gotemplatepkg.Option{gotemplatepkg.WithExtension(cfg.ext)}
	if cfg.dir != "" {
		engineOpts = append(engineOpts, gotemplatepkg.WithBaseDir(cfg.dir))
	}
	if cfg.files != nil {
		engineOpts = append(engineOpts, gotemplatepkg.WithFS(cfg.files))
	}
	if len(cfg.globals) > 0 {
		engineOpts = append(engineOpts, gotemplatepkg.WithGlobalData(cfg.globals))
	}

	engine, err := gotemplatepkg.NewRenderer(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load templates: %w", err)
	}

	logger := cfg.logger
	engine.RegisterPostHook(func(ctx *gotemplatepkg.HookContext) (string, error) {
		name := ctx.TemplateName
		if name == "" {
			name = "inline"
		}
		logger.Debug("template rendered", zap.String("template", name), zap.Int("bytes", len(ctx.Output)))
		return ctx.Output, nil
	})

	return &Engine{Engine: engine}, nil
}

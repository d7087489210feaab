// Command calcform lists, inspects, validates, renders and serves calculator
// forms from the built-in template library and optional template files.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-calcform/pkg/render"
	"github.com/goliatone/go-calcform/pkg/templates"
	"github.com/goliatone/go-calcform/pkg/validation"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errInvalid marks a run that completed but rejected its input. It maps to
// exit status 1 without an extra error line.
var errInvalid = errors.New("input rejected")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "calcform:", err)
		os.Exit(1)
	}

	if err := rootCmd(cfg).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "calcform:", err)
		}
		stop()
		os.Exit(1)
	}
}

// app holds what every subcommand needs once the persistent flags are parsed.
type app struct {
	templatesDir string
	messagesFile string
	locale       string
	logLevel     string
	logFormat    string

	logger    *zap.Logger
	library   *templates.Library
	validator *validation.Validator
}

func rootCmd(cfg config) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "calcform",
		Short: "Build and validate calculator forms",
		Long: `calcform works with the calculator form templates: the built-in library
(tip, loan, length, temperature, bmi, text, password, percentage) plus any
YAML, JSON or TOML template files found under --templates.

Flag defaults can be set with CALCFORM_* environment variables or a .env
file in the working directory.

Template files look like:
  forms:
    discount:
      title: Discount calculator
      fields:
        - name: price
          kind: number
          required: true
          rules:
            - kind: min
              threshold: 0`,
		Version:       fmt.Sprintf("%s (%s) %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("calcform %s (%s) %s\n", version, commit, date))

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.templatesDir, "templates", cfg.Templates, "Directory of YAML/JSON/TOML template files added to the built-in library [CALCFORM_TEMPLATES]")
	flags.StringVar(&a.messagesFile, "messages", cfg.Messages, "YAML message catalog (locale: {key: format}) used for validation messages [CALCFORM_MESSAGES]")
	flags.StringVar(&a.locale, "locale", cfg.Locale, "Locale looked up in the message catalog [CALCFORM_LOCALE]")
	flags.StringVar(&a.logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error) [CALCFORM_LOG_LEVEL]")
	flags.StringVar(&a.logFormat, "log-format", cfg.LogFormat, "Log format (console, json) [CALCFORM_LOG_FORMAT]")

	cmd.AddCommand(
		listCmd(a),
		describeCmd(a),
		schemaCmd(a),
		validateCmd(a),
		renderCmd(a),
		runCmd(a),
		serveCmd(a, cfg.Addr),
		lintCmd(a),
	)
	return cmd
}

func (a *app) setup() error {
	logger, err := newLogger(a.logLevel, a.logFormat)
	if err != nil {
		return err
	}
	a.logger = logger

	lib := templates.Default()
	if dir := strings.TrimSpace(a.templatesDir); dir != "" {
		if err := templates.LoadFS(lib, os.DirFS(dir)); err != nil {
			return err
		}
		logger.Debug("templates loaded", zap.String("dir", dir), zap.Strings("names", lib.Names()))
	}
	a.library = lib

	options := []validation.Option{validation.WithLocale(a.locale)}
	if file := strings.TrimSpace(a.messagesFile); file != "" {
		catalog, err := render.LoadCatalog(os.DirFS(filepath.Dir(file)), filepath.Base(file))
		if err != nil {
			return err
		}
		options = append(options, validation.WithTranslator(catalog))
		logger.Debug("message catalog loaded", zap.String("file", file), zap.Strings("locales", catalog.Locales()))
	}
	a.validator = validation.New(options...)
	return nil
}

// newLogger builds a zap logger writing to stderr. The console format uses
// the development encoder, json the production one.
func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("invalid --log-format %q (expected console or json)", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

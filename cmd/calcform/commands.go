package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-calcform/pkg/form"
	"github.com/goliatone/go-calcform/pkg/model"
	"github.com/goliatone/go-calcform/pkg/openapi"
	"github.com/goliatone/go-calcform/pkg/render"
	"github.com/goliatone/go-calcform/pkg/renderers/vanilla"
	"github.com/goliatone/go-calcform/pkg/templates"
	"github.com/goliatone/go-calcform/pkg/widgets"
)

func listCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			forms := a.library.Forms()
			if jsonOutput {
				type entry struct {
					ID       string `json:"id"`
					Title    string `json:"title,omitempty"`
					Category string `json:"category,omitempty"`
					Fields   int    `json:"fields"`
				}
				entries := make([]entry, 0, len(forms))
				for _, f := range forms {
					entries = append(entries, entry{ID: f.ID, Title: f.Title, Category: f.Category, Fields: len(f.Fields)})
				}
				return writeJSON(cmd, entries)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, f := range forms {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", f.ID, f.Category, f.Title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func describeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe NAME...",
		Short: "Print template descriptors as YAML",
		Long: `Print the descriptors of one or more templates in the template file format,
so the output can be edited and loaded back with --templates.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			forms := make([]model.Form, 0, len(args))
			for _, name := range args {
				f, err := a.library.Lookup(name)
				if err != nil {
					return err
				}
				forms = append(forms, f)
			}
			out, err := templates.MarshalYAML(forms...)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func schemaCmd(a *app) *cobra.Command {
	var title, docVersion string

	cmd := &cobra.Command{
		Use:   "schema [NAME]",
		Short: "Print the OpenAPI schema of a template",
		Long: `Print the JSON schema of a template's submission body. Without NAME the
complete OpenAPI document (one POST /forms/{name} operation per template) is
printed after validation.`,
		Example: `  calcform schema bmi
  calcform schema --title "My tools" > openapi.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f, err := a.library.Lookup(args[0])
				if err != nil {
					return err
				}
				out, err := openapi.MarshalSchema(f)
				if err != nil {
					return err
				}
				return writeLine(cmd, out)
			}

			doc := openapi.Document(openapi.Info{Title: title, Version: docVersion}, a.library.Forms())
			if err := openapi.Validate(cmd.Context(), doc); err != nil {
				return err
			}
			out, err := openapi.MarshalDocument(doc)
			if err != nil {
				return err
			}
			return writeLine(cmd, out)
		},
	}
	cmd.Flags().StringVar(&title, "title", "calcform", "Document title")
	cmd.Flags().StringVar(&docVersion, "doc-version", version, "Document version")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "validate NAME",
		Short: "Validate values against a template",
		Long: `Build the template with in-memory widgets, write every --set value, submit
and print the result as JSON. Fields without --set keep their defaults. The
exit status is 1 when the values are rejected.`,
		Example: `  calcform validate tip --set amount=42.50 --set people=3
  calcform validate password --set length=4 --set digits=true`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.build(args[0], widgets.NewHeadlessFactory())
			if err != nil {
				return err
			}
			if err := applySets(h, sets); err != nil {
				return err
			}

			result, err := h.Submit()
			if err != nil {
				return err
			}
			payload := struct {
				Valid  bool                `json:"isValid"`
				Errors map[string][]string `json:"errors"`
				Data   model.CollectedData `json:"data,omitempty"`
			}{Valid: result.Valid, Errors: result.Errors}
			if result.Valid {
				payload.Data = h.Collect()
			}
			if err := writeJSON(cmd, payload); err != nil {
				return err
			}
			if !result.Valid {
				return errInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field value as name=value (repeatable)")
	return cmd
}

func renderCmd(a *app) *cobra.Command {
	var (
		format       string
		action       string
		document     bool
		themeName    string
		themeVariant string
		cssVars      []string
		stylesheet   string
		htmlTemplate string
		sets         []string
		submit       bool
	)

	cmd := &cobra.Command{
		Use:   "render NAME",
		Short: "Render a template as HTML or a JSON snapshot",
		Example: `  calcform render tip --document > tip.html
  calcform render bmi --set height=10 --submit --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options := []vanilla.Option{vanilla.WithLogger(a.logger)}
			if htmlTemplate != "" {
				options = append(options, vanilla.WithTemplatesDir(htmlTemplate))
			}
			if themeName != "" || len(cssVars) > 0 || stylesheet != "" {
				vars, err := parsePairs(cssVars)
				if err != nil {
					return err
				}
				rc := &theme.RendererConfig{Theme: themeName, Variant: themeVariant, CSSVars: vars}
				if stylesheet != "" {
					rc.AssetURL = func(key string) string {
						if key == vanilla.AssetStylesheet {
							return stylesheet
						}
						return ""
					}
				}
				options = append(options, vanilla.WithTheme(rc))
			}
			factory, err := vanilla.NewFactory(options...)
			if err != nil {
				return err
			}

			h, err := a.build(args[0], factory)
			if err != nil {
				return err
			}
			if err := applySets(h, sets); err != nil {
				return err
			}
			if submit {
				if _, err := h.Submit(); err != nil {
					return err
				}
			}

			var renderer render.Renderer = factory
			switch format {
			case "html":
			case "json":
				renderer = render.JSONRenderer{}
			default:
				return fmt.Errorf("invalid --format %q (expected html or json)", format)
			}
			out, err := renderer.Render(cmd.Context(), h, render.RenderOptions{Action: action, Document: document})
			if err != nil {
				return err
			}
			return writeLine(cmd, out)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&format, "format", "html", "Output format (html, json)")
	flags.StringVar(&action, "action", "", "Form action URL")
	flags.BoolVar(&document, "document", false, "Wrap the form in a complete HTML page")
	flags.StringVar(&themeName, "theme", "", "Theme name written to data-theme")
	flags.StringVar(&themeVariant, "variant", "", "Theme variant written to data-theme-variant")
	flags.StringArrayVar(&cssVars, "css-var", nil, "CSS variable as name=value (repeatable)")
	flags.StringVar(&stylesheet, "stylesheet", "", "Stylesheet URL linked from the page")
	flags.StringVar(&htmlTemplate, "html-templates", "", "Directory overriding the embedded HTML templates")
	flags.StringArrayVar(&sets, "set", nil, "Field value as name=value (repeatable)")
	flags.BoolVar(&submit, "submit", false, "Submit before rendering so validation errors are shown")
	return cmd
}

func (a *app) build(name string, factory widgets.Factory) (*form.Handle, error) {
	f, err := a.library.Lookup(name)
	if err != nil {
		return nil, err
	}
	return form.BuildForm(f, factory,
		form.WithValidator(a.validator),
		form.WithLogger(a.logger),
	)
}

// applySets writes name=value pairs into the matching widgets.
func applySets(h *form.Handle, sets []string) error {
	values, err := parsePairs(sets)
	if err != nil {
		return err
	}
	for name, value := range values {
		w, ok := h.Widget(name)
		if !ok {
			return fmt.Errorf("unknown field %q", name)
		}
		w.WriteValue(value)
	}
	return nil
}

func parsePairs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", pair)
		}
		out[name] = value
	}
	return out, nil
}

func writeJSON(cmd *cobra.Command, payload any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func writeLine(cmd *cobra.Command, out []byte) error {
	w := cmd.OutOrStdout()
	if _, err := w.Write(out); err != nil {
		return err
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		_, err := fmt.Fprintln(w)
		return err
	}
	return nil
}

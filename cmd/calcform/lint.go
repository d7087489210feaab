package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-calcform/pkg/model"
	"github.com/goliatone/go-calcform/pkg/openapi"
	"github.com/goliatone/go-calcform/pkg/templates"
	"github.com/goliatone/go-calcform/pkg/validation"
)

type violation struct {
	file     string
	location string
	message  string
}

func lintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [PATH...]",
		Short: "Check template files",
		Long: `Load every YAML/JSON/TOML template file under the given paths (default: the
--templates directory) and report descriptor defects: files that fail to
parse or load, names that shadow built-in templates, defaults that do not fit
their field, inverted bounds and schemas the OpenAPI validator rejects.`,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			logger, err := newLogger(a.logLevel, a.logFormat)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				if a.templatesDir == "" {
					return fmt.Errorf("no paths given and --templates is not set")
				}
				paths = []string{a.templatesDir}
			}

			files, err := templateFiles(paths)
			if err != nil {
				return err
			}

			var violations []violation
			for _, file := range files {
				violations = append(violations, lintFile(cmd, file)...)
			}

			sort.Slice(violations, func(i, j int) bool {
				if violations[i].file == violations[j].file {
					if violations[i].location == violations[j].location {
						return violations[i].message < violations[j].message
					}
					return violations[i].location < violations[j].location
				}
				return violations[i].file < violations[j].file
			})
			for _, v := range violations {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s -> %s\n", v.file, v.location, v.message)
			}
			if len(violations) > 0 {
				return errInvalid
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) ok\n", len(files))
			return nil
		},
	}
}

func templateFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !entry.IsDir() && templates.IsTemplateFile(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func lintFile(cmd *cobra.Command, file string) []violation {
	lib := templates.NewLibrary()
	if err := templates.LoadFile(lib, os.DirFS(filepath.Dir(file)), filepath.Base(file)); err != nil {
		return []violation{{file: file, location: "file", message: err.Error()}}
	}

	builtin := templates.Default()
	var result []violation
	forms := lib.Forms()
	for _, f := range forms {
		base := []string{"forms", f.ID}
		if _, err := builtin.Lookup(f.ID); err == nil {
			result = append(result, violation{file: file, location: formatLocation(base), message: "shadows a built-in template"})
		}
		for _, field := range f.Fields {
			for _, message := range lintField(field) {
				result = append(result, violation{
					file:     file,
					location: formatLocation(append(base, "fields", field.Name)),
					message:  message,
				})
			}
		}
	}

	doc := openapi.Document(openapi.Info{Title: file}, forms)
	if err := openapi.Validate(cmd.Context(), doc); err != nil {
		result = append(result, violation{file: file, location: "openapi", message: err.Error()})
	}
	return result
}

func lintField(field model.Field) []string {
	var messages []string
	c := field.Constraints
	if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
		messages = append(messages, fmt.Sprintf("constraint min %v is greater than max %v", *c.Min, *c.Max))
	}
	if c.Step != nil && *c.Step <= 0 {
		messages = append(messages, "constraint step must be positive")
	}

	if field.Default == nil {
		return messages
	}
	switch kind := field.EffectiveKind(); {
	case kind.IsNumeric():
		if _, ok := validation.TryParseNumber(field.Default); !ok {
			messages = append(messages, fmt.Sprintf("default %v is not a number", field.Default))
		}
	case kind == model.KindSelect:
		value := fmt.Sprint(field.Default)
		found := false
		for _, opt := range field.Options {
			if opt.Value == value {
				found = true
				break
			}
		}
		if !found {
			messages = append(messages, fmt.Sprintf("default %q is not one of the options", value))
		}
	case kind == model.KindCheckbox:
		if _, ok := field.Default.(bool); !ok {
			messages = append(messages, fmt.Sprintf("checkbox default must be a boolean (got %T)", field.Default))
		}
	}
	return messages
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}

package templates

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-calcform/pkg/model"
)

// LoadFS walks fsys and registers every form declared in JSON, YAML or TOML
// files into lib. A file looks like:
//
//	forms:
//	  discount:
//	    title: Discount calculator
//	    fields:
//	      - name: price
//	        kind: number
//	        required: true
//	        rules:
//	          - kind: min
//	            threshold: 0
//	          - kind: custom
//	            predicate: nonZero
//	            message: Price cannot be zero
//
// Descriptors are checked with model.Check before registration.
func LoadFS(lib *Library, fsys fs.FS) error {
	if lib == nil {
		return fmt.Errorf("templates: library is required")
	}
	if fsys == nil {
		return nil
	}

	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !IsTemplateFile(path) {
			return nil
		}
		return LoadFile(lib, fsys, path)
	})
}

// LoadFile registers the forms declared in a single template file.
func LoadFile(lib *Library, fsys fs.FS, path string) error {
	if lib == nil {
		return fmt.Errorf("templates: library is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("templates: read %s: %w", path, err)
	}
	doc, err := parseDocument(data, path)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(doc.Forms))
	for id := range doc.Forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			return fmt.Errorf("templates: file %s defines an empty form id", path)
		}
		f, err := doc.Forms[id].toForm(trimmed)
		if err != nil {
			return fmt.Errorf("templates: form %q (file %s): %w", trimmed, path, err)
		}
		if err := lib.Register(trimmed, cloneBuilder(f)); err != nil {
			return fmt.Errorf("%w (file %s)", err, path)
		}
	}
	return nil
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms" toml:"forms"`
}

type formFile struct {
	Title       string      `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Category    string      `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
	SubmitLabel string      `json:"submitLabel,omitempty" yaml:"submitLabel,omitempty" toml:"submitLabel,omitempty"`
	ResetLabel  string      `json:"resetLabel,omitempty" yaml:"resetLabel,omitempty" toml:"resetLabel,omitempty"`
	Fields      []fieldFile `json:"fields" yaml:"fields" toml:"fields"`
}

type fieldFile struct {
	model.Field `yaml:",inline"`
	Rules       []ruleFile `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules,omitempty"`
}

type ruleFile struct {
	Kind      string   `json:"kind" yaml:"kind" toml:"kind"`
	Threshold *float64 `json:"threshold,omitempty" yaml:"threshold,omitempty" toml:"threshold,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern,omitempty"`
	Length    *int     `json:"length,omitempty" yaml:"length,omitempty" toml:"length,omitempty"`
	Predicate string   `json:"predicate,omitempty" yaml:"predicate,omitempty" toml:"predicate,omitempty"`
	Message   string   `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("templates: file %s is empty", source)
	}

	var err error
	switch strings.ToLower(filepath.Ext(source)) {
	case ".toml":
		_, err = toml.Decode(string(data), &doc)
	case ".json":
		err = json.Unmarshal(data, &doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return documentFile{}, fmt.Errorf("templates: parse %s: %w", source, err)
	}
	return doc, nil
}

func (raw formFile) toForm(id string) (model.Form, error) {
	f := model.Form{
		ID:          id,
		Title:       raw.Title,
		Description: raw.Description,
		Category:    raw.Category,
		SubmitLabel: raw.SubmitLabel,
		ResetLabel:  raw.ResetLabel,
		Fields:      make([]model.Field, 0, len(raw.Fields)),
	}
	for _, rf := range raw.Fields {
		field := rf.Field
		field.Rules = nil
		for idx, rule := range rf.Rules {
			converted, err := rule.toRule()
			if err != nil {
				return model.Form{}, fmt.Errorf("field %q rule %d: %w", field.Name, idx, err)
			}
			field.Rules = append(field.Rules, converted)
		}
		f.Fields = append(f.Fields, field)
	}
	if err := model.Check(f.Fields); err != nil {
		return model.Form{}, err
	}
	return f, nil
}

func (r ruleFile) toRule() (model.Rule, error) {
	switch strings.TrimSpace(r.Kind) {
	case model.RuleMin:
		if r.Threshold == nil {
			return nil, fmt.Errorf("min rule requires threshold")
		}
		return model.MinRule{Threshold: *r.Threshold, Message: r.Message}, nil
	case model.RuleMax:
		if r.Threshold == nil {
			return nil, fmt.Errorf("max rule requires threshold")
		}
		return model.MaxRule{Threshold: *r.Threshold, Message: r.Message}, nil
	case model.RulePattern:
		if r.Pattern == "" {
			return nil, fmt.Errorf("pattern rule requires pattern")
		}
		return model.PatternRule{Expr: r.Pattern, Message: r.Message}, nil
	case model.RuleMinLength:
		if r.Length == nil {
			return nil, fmt.Errorf("minLength rule requires length")
		}
		return model.MinLengthRule{Length: *r.Length, Message: r.Message}, nil
	case model.RuleMaxLength:
		if r.Length == nil {
			return nil, fmt.Errorf("maxLength rule requires length")
		}
		return model.MaxLengthRule{Length: *r.Length, Message: r.Message}, nil
	case model.RuleCustom:
		fn, err := LookupPredicate(r.Predicate)
		if err != nil {
			return nil, err
		}
		return model.CustomRule{Name: r.Predicate, Predicate: fn, Message: r.Message}, nil
	default:
		return nil, fmt.Errorf("unknown rule kind %q", r.Kind)
	}
}

// MarshalYAML encodes forms in the file format LoadFS reads, so a described
// template can be edited and loaded back.
func MarshalYAML(forms ...model.Form) ([]byte, error) {
	doc := documentFile{Forms: make(map[string]formFile, len(forms))}
	for _, f := range forms {
		raw := formFile{
			Title:       f.Title,
			Description: f.Description,
			Category:    f.Category,
			SubmitLabel: f.SubmitLabel,
			ResetLabel:  f.ResetLabel,
			Fields:      make([]fieldFile, 0, len(f.Fields)),
		}
		for _, field := range f.Fields {
			entry := fieldFile{Field: field}
			entry.Field.Rules = nil
			for _, rule := range field.Rules {
				entry.Rules = append(entry.Rules, fromRule(rule))
			}
			raw.Fields = append(raw.Fields, entry)
		}
		doc.Forms[f.ID] = raw
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("templates: encode: %w", err)
	}
	return out, nil
}

func fromRule(rule model.Rule) ruleFile {
	out := ruleFile{Kind: rule.Kind(), Message: rule.OverrideMessage()}
	switch r := rule.(type) {
	case model.MinRule:
		out.Threshold = &r.Threshold
	case model.MaxRule:
		out.Threshold = &r.Threshold
	case model.PatternRule:
		out.Pattern = r.Expr
	case model.MinLengthRule:
		out.Length = &r.Length
	case model.MaxLengthRule:
		out.Length = &r.Length
	case model.CustomRule:
		out.Predicate = r.Name
	}
	return out
}

// cloneBuilder returns a builder producing a copy of f, so callers mutating a
// looked-up form never touch the registered one.
func cloneBuilder(f model.Form) Builder {
	return func() model.Form {
		out := f
		out.Fields = make([]model.Field, len(f.Fields))
		for i, field := range f.Fields {
			field.Options = append([]model.Option(nil), field.Options...)
			field.Rules = append([]model.Rule(nil), field.Rules...)
			out.Fields[i] = field
		}
		return out
	}
}

// IsTemplateFile reports whether path has a template file extension.
func IsTemplateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}

package openapi

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-calcform/pkg/model"
)

// ExtensionPredicates lists the custom rule names attached to a property.
// Predicates have no schema equivalent so they are only advertised.
const ExtensionPredicates = "x-predicates"

// SchemaFor maps the descriptors of f to an object schema describing a valid
// submission payload.
func SchemaFor(f model.Form) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = f.Title
	schema.Description = f.Description

	for _, field := range f.Fields {
		schema.WithProperty(field.Name, propertyFor(field))
		if field.Required {
			schema.Required = append(schema.Required, field.Name)
		}
	}
	return schema
}

// MarshalSchema renders SchemaFor(f) as indented JSON.
func MarshalSchema(f model.Form) ([]byte, error) {
	return json.MarshalIndent(SchemaFor(f), "", "  ")
}

func propertyFor(field model.Field) *openapi3.Schema {
	kind := field.EffectiveKind()

	var prop *openapi3.Schema
	switch {
	case kind == model.KindCheckbox:
		prop = openapi3.NewBoolSchema()
		prop.Default = field.DefaultBool()
	case kind.IsNumeric():
		prop = openapi3.NewFloat64Schema()
		applyNumericRules(prop, field.Rules)
		if field.Constraints.Step != nil && *field.Constraints.Step > 0 {
			step := *field.Constraints.Step
			prop.MultipleOf = &step
		}
		prop.Default = field.Default
	case kind == model.KindSelect:
		prop = openapi3.NewStringSchema()
		values := make([]any, 0, len(field.Options))
		for _, opt := range field.Options {
			values = append(values, opt.Value)
		}
		prop.WithEnum(values...)
		prop.Default = field.Default
	default:
		prop = openapi3.NewStringSchema()
		if format := stringFormat(kind); format != "" {
			prop.Format = format
		}
		if kind == model.KindPassword {
			prop.WriteOnly = true
		}
		applyStringRules(prop, field.Rules)
		prop.Default = field.Default
	}

	prop.Title = field.DisplayName()
	prop.Description = field.Help

	if names := predicateNames(field.Rules); len(names) > 0 {
		if prop.Extensions == nil {
			prop.Extensions = make(map[string]any)
		}
		prop.Extensions[ExtensionPredicates] = names
	}
	return prop
}

// applyNumericRules keeps the tightest bound when several rules of the same
// kind are declared.
func applyNumericRules(prop *openapi3.Schema, rules []model.Rule) {
	for _, rule := range rules {
		switch r := rule.(type) {
		case model.MinRule:
			if prop.Min == nil || r.Threshold > *prop.Min {
				prop.WithMin(r.Threshold)
			}
		case model.MaxRule:
			if prop.Max == nil || r.Threshold < *prop.Max {
				prop.WithMax(r.Threshold)
			}
		}
	}
}

func applyStringRules(prop *openapi3.Schema, rules []model.Rule) {
	var patterns []string
	for _, rule := range rules {
		switch r := rule.(type) {
		case model.PatternRule:
			patterns = append(patterns, r.Expr)
		case model.MinLengthRule:
			if r.Length > 0 && uint64(r.Length) > prop.MinLength {
				prop.WithMinLength(int64(r.Length))
			}
		case model.MaxLengthRule:
			if r.Length >= 0 && (prop.MaxLength == nil || uint64(r.Length) < *prop.MaxLength) {
				prop.WithMaxLength(int64(r.Length))
			}
		}
	}

	switch len(patterns) {
	case 0:
	case 1:
		prop.WithPattern(patterns[0])
	default:
		// A single schema carries one pattern; the rest become allOf members.
		prop.WithPattern(patterns[0])
		for _, expr := range patterns[1:] {
			prop.AllOf = append(prop.AllOf, openapi3.NewSchemaRef("", openapi3.NewStringSchema().WithPattern(expr)))
		}
	}
}

func stringFormat(kind model.FieldKind) string {
	switch kind {
	case model.KindEmail:
		return "email"
	case model.KindDate:
		return "date"
	case model.KindPassword:
		return "password"
	case model.KindColor:
		return "color"
	default:
		return ""
	}
}

func predicateNames(rules []model.Rule) []string {
	var names []string
	for _, rule := range rules {
		if r, ok := rule.(model.CustomRule); ok && strings.TrimSpace(r.Name) != "" {
			names = append(names, r.Name)
		}
	}
	sort.Strings(names)
	return names
}

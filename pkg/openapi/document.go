package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-calcform/pkg/model"
)

const (
	// Version is the OpenAPI version emitted by Document.
	Version = "3.0.3"

	schemaRefPrefix = "#/components/schemas/"
)

// Info carries the document metadata.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Document builds an OpenAPI document with one `POST /forms/{id}` operation
// per form. Request bodies reference the form schema; responses describe the
// validation result.
func Document(info Info, forms []model.Form) *openapi3.T {
	if info.Title == "" {
		info.Title = "calcform"
	}
	if info.Version == "" {
		info.Version = "0.0.0"
	}

	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"ValidationResult": openapi3.NewSchemaRef("", resultSchema()),
			},
		},
	}

	for _, f := range forms {
		schema := SchemaFor(f)
		doc.Components.Schemas[f.ID] = openapi3.NewSchemaRef("", schema)

		op := openapi3.NewOperation()
		op.OperationID = "submit_" + f.ID
		op.Summary = f.Title
		op.Tags = []string{f.Category}
		if f.Category == "" {
			op.Tags = nil
		}
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithJSONSchemaRef(&openapi3.SchemaRef{Ref: schemaRefPrefix + f.ID, Value: schema}),
		}
		op.Responses = openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, resultResponse("Submission accepted")),
			openapi3.WithStatus(http.StatusUnprocessableEntity, resultResponse("Submission rejected by validation")),
		)

		item := &openapi3.PathItem{Post: op}
		doc.Paths.Set("/forms/"+f.ID, item)
	}
	return doc
}

// Validate checks doc with kin-openapi. Descriptor defaults are not checked
// against their own schemas because templates may declare defaults outside
// the validated range (a blank required field, for example).
func Validate(ctx context.Context, doc *openapi3.T) error {
	if doc == nil {
		return fmt.Errorf("openapi: document is required")
	}
	if err := doc.Validate(ctx, openapi3.DisableSchemaDefaultsValidation()); err != nil {
		return fmt.Errorf("openapi: validate document: %w", err)
	}
	return nil
}

// MarshalDocument renders doc as indented JSON.
func MarshalDocument(doc *openapi3.T) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

func resultResponse(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription(description).
			WithJSONSchemaRef(&openapi3.SchemaRef{Ref: schemaRefPrefix + "ValidationResult", Value: resultSchema()}),
	}
}

func resultSchema() *openapi3.Schema {
	messages := openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	errorsSchema := openapi3.NewObjectSchema().WithAdditionalProperties(messages)

	schema := openapi3.NewObjectSchema().
		WithProperty("isValid", openapi3.NewBoolSchema()).
		WithProperty("errors", errorsSchema).
		WithProperty("data", openapi3.NewObjectSchema())
	schema.Required = []string{"isValid", "errors"}
	return schema
}

package apispec

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docform/pkg/docx"
	"github.com/goliatone/go-docform/pkg/model"
	"github.com/goliatone/go-docform/pkg/registry"
)

const (
	openAPIVersion   = "3.0.3"
	ExtensionLabel   = "x-docform-label"
	ExtensionWidget  = "x-docform-widget"
	ExtensionType    = "x-docform-type"
	schemaPrefix     = "Submission_"
	generateRequest  = "GenerateRequest"
	analysisSchema   = "Analysis"
	typeGroupsSchema = "TypeGroups"
)

// Info fills the document's info object.
type Info struct {
	Title       string
	Version     string
	Description string
}

// DefaultInfo is used when Build receives a zero Info.
func DefaultInfo() Info {
	return Info{Title: "docform", Version: "1.0.0", Description: "Fill administrative document templates from reference data."}
}

// Build returns a validated OpenAPI document for the API. analyses is keyed
// by entry label; entries without an analysis get an open submission schema.
func Build(ctx context.Context, info Info, entries []registry.Entry, analyses map[string]model.Analysis) (*openapi3.T, error) {
	if info.Title == "" {
		info = DefaultInfo()
	}
	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:       info.Title,
			Version:     info.Version,
			Description: info.Description,
		},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: openapi3.Schemas{}},
	}

	labels := make([]any, 0, len(entries))
	submissions := make([]*openapi3.SchemaRef, 0, len(entries))
	used := make(map[string]int, len(entries))
	for _, entry := range entries {
		labels = append(labels, entry.Label)
		name := uniqueName(schemaName(entry), used)
		analysis, ok := analyses[entry.Label]
		schema := submissionSchema(entry, analysis, ok)
		doc.Components.Schemas[name] = openapi3.NewSchemaRef("", schema)
		submissions = append(submissions, openapi3.NewSchemaRef(componentRef(name), schema))
	}

	values := openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema())
	if len(submissions) > 0 {
		values.AnyOf = submissions
	}
	doc.Components.Schemas[generateRequest] = openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
		WithProperty("values", values))
	doc.Components.Schemas[analysisSchema] = openapi3.NewSchemaRef("", analysisObject())
	doc.Components.Schemas[typeGroupsSchema] = openapi3.NewSchemaRef("", openapi3.NewArraySchema().
		WithItems(openapi3.NewObjectSchema().
			WithProperty("category", openapi3.NewStringSchema()).
			WithProperty("entries", openapi3.NewArraySchema().WithItems(entryObject())),
		))

	typeParam := func() openapi3.Parameters {
		schema := openapi3.NewStringSchema()
		if len(labels) > 0 {
			schema = schema.WithEnum(labels...)
		}
		return openapi3.Parameters{{Value: openapi3.NewQueryParameter("type").WithSchema(schema).WithRequired(true)}}
	}

	types := openapi3.NewOperation()
	types.OperationID = "listTypes"
	types.Summary = "List document types grouped by category"
	types.Responses = responses(jsonResponse(doc, "Document types", typeGroupsSchema))
	doc.Paths.Set("/api/types", &openapi3.PathItem{Get: types})

	analyze := openapi3.NewOperation()
	analyze.OperationID = "analyzeType"
	analyze.Summary = "Analyse a document type: fields, prefilled data, placeholders and missing fields"
	analyze.Parameters = typeParam()
	analyze.Responses = responses(jsonResponse(doc, "Analysis", analysisSchema))
	analyze.Responses.Set("404", &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Unknown document type")})
	doc.Paths.Set("/api/analysis", &openapi3.PathItem{Get: analyze})

	generate := openapi3.NewOperation()
	generate.OperationID = "generateDocument"
	generate.Summary = "Render the template with prefilled and submitted values"
	generate.Parameters = typeParam()
	generate.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchemaRef(component(doc, generateRequest))}
	generate.Responses = responses(&openapi3.ResponseRef{Value: openapi3.NewResponse().
		WithDescription("Generated document").
		WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema().WithFormat("binary"), []string{docx.ContentType}))})
	generate.Responses.Set("409", &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Reference or template file missing")})
	generate.Responses.Set("422", &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Template could not be rendered")})
	doc.Paths.Set("/api/generate", &openapi3.PathItem{Post: generate})

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("apispec: validate document: %w", err)
	}
	return doc, nil
}

func submissionSchema(entry registry.Entry, analysis model.Analysis, analysed bool) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = entry.Label
	schema.Extensions = map[string]any{ExtensionType: entry.Label}
	if !analysed {
		return schema.WithAdditionalProperties(openapi3.NewStringSchema())
	}
	for _, field := range analysis.Missing {
		property := openapi3.NewStringSchema()
		property.Title = field.Label
		property.Extensions = map[string]any{ExtensionLabel: field.Label, ExtensionWidget: widgetFor(field)}
		schema.WithProperty(field.Name, property)
	}
	return schema
}

func widgetFor(field model.Field) string {
	if field.Kind == model.KindMultiLineText {
		return "textarea"
	}
	return "text"
}

func analysisObject() *openapi3.Schema {
	fieldSchema := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("label", openapi3.NewStringSchema()).
		WithProperty("kind", openapi3.NewStringSchema().WithEnum(string(model.KindShortText), string(model.KindMultiLineText)))
	status := openapi3.NewObjectSchema().
		WithProperty("role", openapi3.NewStringSchema()).
		WithProperty("path", openapi3.NewStringSchema()).
		WithProperty("exists", openapi3.NewBoolSchema())
	return openapi3.NewObjectSchema().
		WithProperty("label", openapi3.NewStringSchema()).
		WithProperty("category", openapi3.NewStringSchema()).
		WithProperty("template", status).
		WithProperty("reference", status).
		WithProperty("fields", openapi3.NewArraySchema().WithItems(fieldSchema)).
		WithProperty("data", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema())).
		WithProperty("placeholders", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())).
		WithProperty("missing", openapi3.NewArraySchema().WithItems(fieldSchema)).
		WithProperty("diagnostics", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))
}

func entryObject() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("label", openapi3.NewStringSchema()).
		WithProperty("category", openapi3.NewStringSchema()).
		WithProperty("reference", openapi3.NewStringSchema()).
		WithProperty("template", openapi3.NewStringSchema()).
		WithProperty("help", openapi3.NewStringSchema())
}

func jsonResponse(doc *openapi3.T, description, name string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().
		WithDescription(description).
		WithJSONSchemaRef(component(doc, name))}
}

func responses(ok *openapi3.ResponseRef) *openapi3.Responses {
	return openapi3.NewResponses(openapi3.WithStatus(200, ok))
}

// component references a registered component schema. The value is carried
// along so the document validates without a loader pass.
func component(doc *openapi3.T, name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef(componentRef(name), doc.Components.Schemas[name].Value)
}

func componentRef(name string) string {
	return "#/components/schemas/" + name
}

// schemaName derives an ASCII component name from the template file name.
func schemaName(entry registry.Entry) string {
	stem := strings.TrimSuffix(path.Base(strings.ReplaceAll(entry.TemplatePath, "\\", "/")), path.Ext(entry.TemplatePath))
	var b strings.Builder
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		name = "type"
	}
	return schemaPrefix + name
}

func uniqueName(name string, used map[string]int) string {
	used[name]++
	if n := used[name]; n > 1 {
		return fmt.Sprintf("%s_%d", name, n)
	}
	return name
}

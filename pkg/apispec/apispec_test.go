package apispec

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docform/pkg/model"
	"github.com/goliatone/go-docform/pkg/registry"
)

func TestBuildDescribesMissingFields(t *testing.T) {
	entries := registry.Builtin()
	analysis := model.Analysis{
		Label: "Mẫu 7: Tờ trình",
		Missing: []model.Field{
			{Name: "noi_dung", Label: "Nội dung", Kind: model.KindMultiLineText},
			{Name: "nguoi_ky", Label: "Người ký", Kind: model.KindShortText},
		},
	}

	doc, err := Build(context.Background(), Info{}, entries, map[string]model.Analysis{analysis.Label: analysis})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if doc.Info.Title != "docform" {
		t.Fatalf("expected default info, got %+v", doc.Info)
	}
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("document must validate: %v", err)
	}

	schemaRef := doc.Components.Schemas["Submission_mau_7_to_trinh"]
	if schemaRef == nil {
		t.Fatalf("missing submission schema, have %v", keys(doc.Components.Schemas))
	}
	schema := schemaRef.Value
	if diff := cmp.Diff([]string{"noi_dung", "nguoi_ky"}, sortedByInsertion(schema, analysis.Missing)); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
	if got := schema.Properties["noi_dung"].Value.Extensions[ExtensionWidget]; got != "textarea" {
		t.Fatalf("expected textarea widget, got %v", got)
	}
	if got := schema.Properties["nguoi_ky"].Value.Extensions[ExtensionLabel]; got != "Người ký" {
		t.Fatalf("expected label extension, got %v", got)
	}

	open := doc.Components.Schemas["Submission_mau_8_bien_ban"].Value
	if open.AdditionalProperties.Schema == nil || len(open.Properties) != 0 {
		t.Fatalf("unanalysed types should accept any string values")
	}
	if open.Extensions[ExtensionType] != "Mẫu 8: Biên bản" {
		t.Fatalf("expected type extension, got %v", open.Extensions)
	}

	for _, path := range []string{"/api/types", "/api/analysis", "/api/generate"} {
		if doc.Paths.Value(path) == nil {
			t.Fatalf("missing path %s", path)
		}
	}
	generate := doc.Paths.Value("/api/generate").Post
	if generate == nil || generate.RequestBody == nil || generate.Responses.Value("200") == nil {
		t.Fatalf("generate operation incomplete")
	}
	param := generate.Parameters[0].Value
	if param.Name != "type" || !param.Required || len(param.Schema.Value.Enum) != len(entries) {
		t.Fatalf("unexpected type parameter %+v", param)
	}
}

func TestBuildMarshalsRefs(t *testing.T) {
	doc, err := Build(context.Background(), Info{Title: "API", Version: "2"}, registry.Builtin()[:1], nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	loaded, err := openapi3.NewLoader().LoadFromData(data)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if err := loaded.Validate(context.Background()); err != nil {
		t.Fatalf("reloaded document must validate: %v", err)
	}
	body := loaded.Paths.Value("/api/generate").Post.RequestBody.Value.Content.Get("application/json")
	if body.Schema.Ref != "#/components/schemas/GenerateRequest" {
		t.Fatalf("expected component ref, got %q", body.Schema.Ref)
	}
}

func TestSchemaNames(t *testing.T) {
	used := map[string]int{}
	cases := []struct {
		entry registry.Entry
		want  string
	}{
		{registry.Entry{TemplatePath: "mau_1.docx"}, "Submission_mau_1"},
		{registry.Entry{TemplatePath: "sub/Mẫu số 2.docx"}, "Submission_M_u_s__2"},
		{registry.Entry{TemplatePath: "mau_1.docx"}, "Submission_mau_1_2"},
		{registry.Entry{TemplatePath: "Đơn.docx"}, "Submission_n"},
		{registry.Entry{TemplatePath: "ư.docx"}, "Submission_type"},
	}
	for _, tc := range cases {
		if got := uniqueName(schemaName(tc.entry), used); got != tc.want {
			t.Fatalf("%s: want %q, got %q", tc.entry.TemplatePath, tc.want, got)
		}
	}
}

func sortedByInsertion(schema *openapi3.Schema, fields []model.Field) []string {
	var out []string
	for _, field := range fields {
		if _, ok := schema.Properties[field.Name]; ok {
			out = append(out, field.Name)
		}
	}
	return out
}

func keys(schemas openapi3.Schemas) []string {
	out := make([]string, 0, len(schemas))
	for key := range schemas {
		out = append(out, key)
	}
	return out
}

package orchestrator

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-docform/pkg/model"
)

const presetJSON = `{
  "fields": {
    "nguoi_ky": {"kind": "multi-line-text", "label": "Người ký (ghi rõ họ tên)"}
  },
  "types": {
    "Công văn": {"fields": {"nguoi_ky": {"value": "Nguyễn Văn A"}, "so_ky_hieu": {"value": "ignored"}}}
  }
}`

func TestJSONPresetTransformer(t *testing.T) {
	fsys := fstest.MapFS{"presets.json": {Data: []byte(presetJSON)}}
	preset, err := NewJSONPresetTransformerFromFS(fsys, "presets.json")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}

	orch := newFixture(t, WithTransformer(preset))
	analysis, err := orch.Analyze(context.Background(), typeLetter)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	field, ok := model.Reference{Fields: analysis.Fields}.Lookup("nguoi_ky")
	if !ok || field.Kind != model.KindMultiLineText || field.Label != "Người ký (ghi rõ họ tên)" {
		t.Fatalf("patch not applied: %+v", field)
	}
	if analysis.Data["nguoi_ky"] != "Nguyễn Văn A" {
		t.Fatalf("preset value missing: %v", analysis.Data)
	}
	if analysis.Data["so_ky_hieu"] != "123/UBND-VP" {
		t.Fatalf("preset must not override extracted values: %v", analysis.Data)
	}
	if len(analysis.Missing) != 1 || analysis.Missing[0].Name != "noi_nhan" {
		t.Fatalf("missing fields must reflect preset values: %+v", analysis.Missing)
	}
}

func TestJSONPresetTransformerErrors(t *testing.T) {
	if _, err := NewJSONPresetTransformer([]byte("  ")); err == nil {
		t.Fatalf("expected empty document error")
	}
	if _, err := NewJSONPresetTransformer([]byte(`{"fields": {"a": {"kind": "date"}}}`)); err == nil {
		t.Fatalf("expected unknown kind error")
	}
	if _, err := NewJSONPresetTransformerFromFS(fstest.MapFS{}, "missing.json"); err == nil {
		t.Fatalf("expected read error")
	}
	preset, _ := NewJSONPresetTransformer([]byte(`{}`))
	if err := preset.Transform(context.Background(), nil); err == nil {
		t.Fatalf("expected nil analysis error")
	}
}

func TestChainStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	var calls int
	chain := Chain(
		TransformerFunc(func(context.Context, *model.Analysis) error { calls++; return nil }),
		nil,
		TransformerFunc(func(context.Context, *model.Analysis) error { return boom }),
		TransformerFunc(func(context.Context, *model.Analysis) error { calls++; return nil }),
	)

	orch := newFixture(t, WithTransformer(chain))
	if _, err := orch.Analyze(context.Background(), typeLetter); !errors.Is(err, boom) {
		t.Fatalf("expected chained error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one call before failure, got %d", calls)
	}
}

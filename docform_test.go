package docform

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-docform/pkg/docx"
	"github.com/goliatone/go-docform/pkg/orchestrator"
	"github.com/goliatone/go-docform/pkg/registry"
	"github.com/goliatone/go-docform/pkg/testsupport"
)

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	testsupport.NewDocx().
		Paragraph("so_ky_hieu: 45/QĐ-UBND").
		Paragraph("trich_yeu:").
		WriteFile(t, dir, "list.docx")
	testsupport.NewDocx().
		Paragraph("Số: {{ so_ky_hieu }}").
		Paragraph("V/v {{ trich_yeu }}").
		WriteFile(t, dir, "mau.docx")
	types := registry.MustNew([]Entry{{Label: "Quyết định", ReferencePath: "list.docx", TemplatePath: "mau.docx"}})
	opts := []orchestrator.Option{orchestrator.WithRegistry(types), orchestrator.WithDataDir(dir)}

	analysis, err := Analyze(context.Background(), "Quyết định", opts...)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(analysis.Missing) != 1 || analysis.Missing[0].Name != "trich_yeu" {
		t.Fatalf("unexpected missing fields %+v", analysis.Missing)
	}

	out, err := Generate(context.Background(), "Quyết định", map[string]string{"trich_yeu": "phê duyệt kế hoạch"}, opts...)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out.FileName != "cong_van_45_QĐ-UBND.docx" {
		t.Fatalf("unexpected file name %q", out.FileName)
	}
	doc, err := docx.ReadBytes(out.Content)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got := strings.Join(doc.Paragraphs, "|"); got != "Số: 45/QĐ-UBND|V/v phê duyệt kế hoạch" {
		t.Fatalf("unexpected output %q", got)
	}

	if _, err := Generate(context.Background(), "Nope", nil, opts...); !errors.Is(err, registry.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestEmbeddedFS(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
	data, err := fs.ReadFile(AssetsFS(), "docform.css")
	if err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
	if !strings.Contains(string(data), ".docform-") {
		t.Fatalf("stylesheet missing docform classes")
	}
}

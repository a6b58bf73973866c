package registry_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docform/pkg/registry"
)

func TestBuiltinRegistry(t *testing.T) {
	reg := registry.NewBuiltin()

	if got := reg.Len(); got != 14 {
		t.Fatalf("expected 14 builtin entries, got %d", got)
	}

	def, ok := reg.Default()
	if !ok || def.Label != registry.DefaultLabel {
		t.Fatalf("unexpected default entry: %+v (ok=%v)", def, ok)
	}
	if def.ReferencePath != "list_5a.docx" || def.TemplatePath != "mau_5a_cong_van_hanh_chinh_mot.docx" {
		t.Fatalf("unexpected default paths: %+v", def)
	}

	groups := reg.Groups()
	var categories []string
	for _, group := range groups {
		categories = append(categories, group.Category)
	}
	want := []string{registry.CategoryDecisions, registry.CategoryLetters, registry.CategoryOther}
	if diff := cmp.Diff(want, categories); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupUnknown(t *testing.T) {
	reg := registry.NewBuiltin()
	_, err := reg.Lookup("Mẫu 99")
	if !errors.Is(err, registry.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestEntryResolve(t *testing.T) {
	entry := registry.Entry{ReferencePath: "list_1.docx", TemplatePath: "mau_1.docx"}

	ref, tpl := entry.Resolve("data")
	if ref != filepath.Join("data", "list_1.docx") || tpl != filepath.Join("data", "mau_1.docx") {
		t.Fatalf("unexpected resolved paths %q %q", ref, tpl)
	}

	ref, _ = entry.Resolve("")
	if ref != "list_1.docx" {
		t.Fatalf("expected relative path without base dir, got %q", ref)
	}
}

func TestNewRejectsInvalidEntries(t *testing.T) {
	cases := map[string][]registry.Entry{
		"missing label": {{ReferencePath: "a", TemplatePath: "b"}},
		"missing paths": {{Label: "A"}},
		"duplicate": {
			{Label: "A", ReferencePath: "a", TemplatePath: "b"},
			{Label: " A ", ReferencePath: "c", TemplatePath: "d"},
		},
	}
	for name, entries := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := registry.New(entries); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	_, err := registry.New([]registry.Entry{{Label: "A", ReferencePath: "a", TemplatePath: "b"}}, registry.WithDefault("B"))
	if !errors.Is(err, registry.ErrUnknownType) {
		t.Fatalf("expected unknown default error, got %v", err)
	}
}

func TestEntriesAreCopies(t *testing.T) {
	reg := registry.NewBuiltin()
	entries := reg.Entries()
	entries[0].Label = "mutated"

	if reg.Entries()[0].Label == "mutated" {
		t.Fatalf("registry must be immutable through Entries()")
	}
}

func TestLoadYAMLWithCategories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.yaml")
	payload := `
default: "Giấy mời"
categories:
  - name: Mời họp
    types:
      - label: "Giấy mời"
        reference: list_9a.docx
        template: mau_9a_giay_moi.docx
        help: "<b>Dùng</b> cho cuộc họp <script>alert(1)</script>"
types:
  - label: "Tờ trình"
    reference: list_7.docx
    template: mau_7_to_trinh.docx
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	reg, err := registry.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"Giấy mời", "Tờ trình"}, reg.Labels()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	invite, err := reg.Lookup("Giấy mời")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if invite.Category != "Mời họp" {
		t.Fatalf("expected category inherited, got %q", invite.Category)
	}
	if strings.Contains(invite.Help, "script") || !strings.Contains(invite.Help, "<b>Dùng</b>") {
		t.Fatalf("help not sanitized as expected: %q", invite.Help)
	}

	def, _ := reg.Default()
	if def.Label != "Giấy mời" {
		t.Fatalf("unexpected default %q", def.Label)
	}
}

func TestLoadRejectsEmpty(t *testing.T) {
	if _, err := registry.Load([]byte("  "), "inline"); err == nil {
		t.Fatalf("expected error for empty file")
	}
	if _, err := registry.Load([]byte("types: []"), "inline"); err == nil {
		t.Fatalf("expected error for file without types")
	}
}

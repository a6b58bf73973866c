package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docform/pkg/model"
	"github.com/goliatone/go-docform/pkg/render"
)

func TestMergeContext(t *testing.T) {
	prefilled := model.Data{"so_ky_hieu": "123/QĐ", "ngay": "01/01/2026", "nguoi_ky": "A"}
	submitted := map[string]string{"noi_dung": "Test", "ngay": "02/02/2026", "nguoi_ky": ""}
	placeholders := model.NewPlaceholderSet("so_ky_hieu", "noi_dung", "ngay", "nguoi_ky", "trich_yeu")

	got := render.MergeContext(prefilled, submitted, placeholders)

	want := model.Context{
		"so_ky_hieu": "123/QĐ",
		"noi_dung":   "Test",
		"ngay":       "02/02/2026",
		"nguoi_ky":   "[nguoi_ky]",
		"trich_yeu":  "[trich_yeu]",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("context mismatch (-want +got):\n%s", diff)
	}
	if prefilled["ngay"] != "01/01/2026" {
		t.Fatalf("prefilled data must not be modified")
	}
}

func TestMergeContextEveryPlaceholderHasValue(t *testing.T) {
	placeholders := model.NewPlaceholderSet("a", "b", "c")
	got := render.MergeContext(nil, map[string]string{"a": "", "z": "kept"}, placeholders)

	for name := range placeholders {
		if got[name] == "" {
			t.Fatalf("placeholder %q has no value", name)
		}
	}
	if got["a"] != "[a]" || got["z"] != "kept" {
		t.Fatalf("unexpected context %v", got)
	}
}

func TestSubmittedOverridesPrefilledWithoutPlaceholder(t *testing.T) {
	got := render.MergeContext(model.Data{"ghi_chu": "cũ"}, map[string]string{"ghi_chu": ""}, nil)
	if value, ok := got["ghi_chu"]; !ok || value != "" {
		t.Fatalf("expected empty submission to override prefilled value, got %q (ok=%v)", value, ok)
	}
}

func TestCollectSubmission(t *testing.T) {
	fields := []model.Field{{Name: "noi_dung"}, {Name: "nguoi_ky"}, {Name: "ngay"}}
	form := map[string][]string{
		"noi_dung": {"Dòng 1\r\nDòng 2"},
		"nguoi_ky": {""},
		"other":    {"ignored"},
	}

	got := render.CollectSubmission(form, fields)
	want := map[string]string{"noi_dung": "Dòng 1\nDòng 2", "nguoi_ky": ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
}

func TestNamingFileName(t *testing.T) {
	naming := render.DefaultNaming()

	cases := []struct {
		name   string
		values model.Context
		want   string
	}{
		{name: "slash replaced", values: model.Context{"so_ky_hieu": "123/QĐ"}, want: "cong_van_123_QĐ.docx"},
		{name: "several slashes", values: model.Context{"so_ky_hieu": "12/2026/NĐ-CP"}, want: "cong_van_12_2026_NĐ-CP.docx"},
		{name: "missing", values: model.Context{}, want: "van_ban_hoan_thanh.docx"},
		{name: "blank", values: model.Context{"so_ky_hieu": "  "}, want: "van_ban_hoan_thanh.docx"},
		{name: "unfilled marker", values: model.Context{"so_ky_hieu": "[so_ky_hieu]"}, want: "cong_van_[so_ky_hieu].docx"},
		{name: "backslash", values: model.Context{"so_ky_hieu": `1\2`}, want: "cong_van_1_2.docx"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := naming.FileName(tc.values); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}

	custom := render.Naming{Field: "so", Pattern: "qd_%s.docx", Default: "qd.docx"}
	if got := custom.FileName(model.Context{"so": "7/QĐ"}); got != "qd_7_QĐ.docx" {
		t.Fatalf("custom naming: got %q", got)
	}
	broken := render.Naming{Pattern: "no-verb.docx"}
	if got := broken.FileName(model.Context{"so_ky_hieu": "1"}); got != "cong_van_1.docx" {
		t.Fatalf("pattern without verb must fall back, got %q", got)
	}
}

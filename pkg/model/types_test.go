package model_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docform/pkg/model"
)

func TestDataHas(t *testing.T) {
	data := model.Data{"filled": "x", "blank": ""}

	if !data.Has("filled") {
		t.Fatalf("expected filled to be usable")
	}
	if data.Has("blank") {
		t.Fatalf("expected blank value to be treated as missing")
	}
	if data.Has("absent") {
		t.Fatalf("expected absent key to be missing")
	}
	var nilData model.Data
	if nilData.Has("x") {
		t.Fatalf("nil data must not report values")
	}
}

func TestDataCloneIsIndependent(t *testing.T) {
	original := model.Data{"a": "1"}
	clone := original.Clone()
	clone["a"] = "2"
	if original["a"] != "1" {
		t.Fatalf("clone mutated original: %v", original)
	}

	var nilData model.Data
	if got := nilData.Clone(); got == nil {
		t.Fatalf("expected non-nil clone of nil data")
	}
}

func TestPlaceholderSetJSONIsSorted(t *testing.T) {
	set := model.NewPlaceholderSet("noi_dung", "so_ky_hieu", "", "noi_dung")

	payload, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(payload), `["noi_dung","so_ky_hieu"]`; got != want {
		t.Fatalf("unexpected json: want %s got %s", want, got)
	}

	var decoded model.PlaceholderSet
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(set.Sorted(), decoded.Sorted()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalysisReadiness(t *testing.T) {
	analysis := model.Analysis{
		Template:  model.FileStatus{Role: model.RoleTemplate, Exists: true},
		Reference: model.FileStatus{Role: model.RoleReference, Exists: true},
		Fields:    []model.Field{{Name: "so_ky_hieu"}},
	}
	if !analysis.Ready() || !analysis.Complete() {
		t.Fatalf("expected ready and complete analysis")
	}

	analysis.Missing = []model.Field{{Name: "so_ky_hieu"}}
	if analysis.Complete() {
		t.Fatalf("analysis with missing fields is not complete")
	}

	analysis.Template.Exists = false
	if analysis.Ready() {
		t.Fatalf("analysis without template is not ready")
	}

	analysis.AddDiagnostic("  ")
	analysis.AddDiagnostic("reference: parse failed")
	if diff := cmp.Diff([]string{"reference: parse failed"}, analysis.Diagnostics); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

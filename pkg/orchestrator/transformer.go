package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-docform/pkg/model"
)

// Transformer adjusts an analysis after extraction. Implementations can relabel
// fields, change their kind or supply default values.
type Transformer interface {
	Transform(ctx context.Context, analysis *model.Analysis) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, analysis *model.Analysis) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, analysis *model.Analysis) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, analysis)
}

// Chain runs transformers in order and stops at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, analysis *model.Analysis) error {
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if err := t.Transform(ctx, analysis); err != nil {
				return err
			}
		}
		return nil
	})
}

// JSONPresetTransformer applies declarative field patches loaded from JSON.
// Patches under "fields" apply to every document type; patches under "types"
// apply to the named type only and win over the shared ones:
//
//	{
//	  "fields": {"noi_dung": {"kind": "multi-line-text"}},
//	  "types": {
//	    "Mẫu 7: Tờ trình": {"fields": {"nguoi_ky": {"label": "Người ký", "value": "Nguyễn Văn A"}}}
//	  }
//	}
//
// A "value" fills the field only when the reference document left it empty.
// Patches for fields the reference does not declare are ignored.
type JSONPresetTransformer struct {
	document jsonPresetDocument
}

type jsonPresetDocument struct {
	Fields map[string]jsonFieldPatch `json:"fields"`
	Types  map[string]jsonTypePatch  `json:"types"`
}

type jsonTypePatch struct {
	Fields map[string]jsonFieldPatch `json:"fields"`
}

type jsonFieldPatch struct {
	Label string `json:"label"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonPresetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	for _, patches := range append([]map[string]jsonFieldPatch{document.Fields}, typePatches(document.Types)...) {
		for name, patch := range patches {
			if err := patch.validate(); err != nil {
				return nil, fmt.Errorf("json preset transformer: field %q: %w", name, err)
			}
		}
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the shared patches, then the patches of analysis.Label.
func (t *JSONPresetTransformer) Transform(ctx context.Context, analysis *model.Analysis) error {
	if analysis == nil {
		return errors.New("json preset transformer: analysis is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	applyFieldPatches(analysis, t.document.Fields)
	if typed, ok := t.document.Types[analysis.Label]; ok {
		applyFieldPatches(analysis, typed.Fields)
	}
	return nil
}

func applyFieldPatches(analysis *model.Analysis, patches map[string]jsonFieldPatch) {
	if len(patches) == 0 {
		return
	}
	for idx := range analysis.Fields {
		field := &analysis.Fields[idx]
		patch, ok := patches[field.Name]
		if !ok {
			continue
		}
		if patch.Label != "" {
			field.Label = patch.Label
		}
		if patch.Kind != "" {
			field.Kind = model.FieldKind(patch.Kind)
		}
		if patch.Value != "" && !analysis.Data.Has(field.Name) {
			if analysis.Data == nil {
				analysis.Data = model.Data{}
			}
			analysis.Data[field.Name] = patch.Value
		}
	}
}

func (p jsonFieldPatch) validate() error {
	switch model.FieldKind(p.Kind) {
	case "", model.KindShortText, model.KindMultiLineText:
		return nil
	default:
		return fmt.Errorf("unknown kind %q", p.Kind)
	}
}

func typePatches(types map[string]jsonTypePatch) []map[string]jsonFieldPatch {
	out := make([]map[string]jsonFieldPatch, 0, len(types))
	for _, patch := range types {
		out = append(out, patch.Fields)
	}
	return out
}

package widgets

import (
	"fmt"

	"github.com/goliatone/go-docform/pkg/model"
)

const (
	// IDPrefix prefixes every input element id.
	IDPrefix = "fg-"
	// TextAreaHeight is the visible height hint of multi-line inputs.
	TextAreaHeight = "100px"
	// TextAreaRows is the row count of multi-line inputs.
	TextAreaRows = 4
)

// Control describes one rendered input. Name equals the field name so
// submitted values map straight back onto fields.
type Control struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	Label       string `json:"label"`
	Widget      string `json:"widget"`
	Placeholder string `json:"placeholder"`
	Height      string `json:"height,omitempty"`
	Rows        int    `json:"rows,omitempty"`
	Value       string `json:"value,omitempty"`
}

// Multiline reports whether the control renders as a textarea.
func (c Control) Multiline() bool {
	return c.Widget == WidgetTextArea
}

// MissingFields returns, in order, the fields whose value is absent or empty
// in data.
func MissingFields(fields []model.Field, data model.Data) []model.Field {
	missing := make([]model.Field, 0, len(fields))
	for _, field := range fields {
		if !data.Has(field.Name) {
			missing = append(missing, field)
		}
	}
	return missing
}

// Describe builds the control for field. Unresolved fields fall back to a
// single-line input.
func (r *Registry) Describe(field model.Field) Control {
	widget, ok := r.Resolve(field)
	if !ok {
		widget = WidgetText
	}
	label := field.Label
	if label == "" {
		label = field.Name
	}
	control := Control{
		Name:        field.Name,
		ID:          IDPrefix + field.Name,
		Label:       label,
		Widget:      widget,
		Placeholder: fmt.Sprintf("Nhập %s...", label),
	}
	if widget == WidgetTextArea {
		control.Height = TextAreaHeight
		control.Rows = TextAreaRows
	}
	return control
}

// Controls describes every field, in order.
func (r *Registry) Controls(fields []model.Field) []Control {
	controls := make([]Control, 0, len(fields))
	for _, field := range fields {
		controls = append(controls, r.Describe(field))
	}
	return controls
}

var defaultRegistry = NewRegistry()

// Describe builds a control with the built-in registry.
func Describe(field model.Field) Control {
	return defaultRegistry.Describe(field)
}

// Controls describes fields with the built-in registry.
func Controls(fields []model.Field) []Control {
	return defaultRegistry.Controls(fields)
}

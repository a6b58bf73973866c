package render

import (
	"strings"

	"github.com/goliatone/go-docform/pkg/model"
)

// Fallback is the visible marker written for a placeholder without a value.
func Fallback(name string) string {
	return "[" + name + "]"
}

// MergeContext builds the final render context: prefilled values, then every
// submitted value on top (submitted values win, including empty strings),
// then Fallback(name) for each placeholder still absent or empty. Inputs are
// not modified.
func MergeContext(prefilled model.Data, submitted map[string]string, placeholders model.PlaceholderSet) model.Context {
	out := make(model.Context, len(prefilled)+len(submitted)+len(placeholders))
	for key, value := range prefilled {
		out[key] = value
	}
	for key, value := range submitted {
		out[key] = value
	}
	for name := range placeholders {
		if out[name] == "" {
			out[name] = Fallback(name)
		}
	}
	return out
}

// CollectSubmission picks the submitted values for fields out of a posted
// form. Only declared field names are read; a field that was posted without a
// value is kept as an empty string, while a field that was not posted at all
// is left out.
func CollectSubmission(form map[string][]string, fields []model.Field) map[string]string {
	out := make(map[string]string, len(fields))
	for _, field := range fields {
		values, ok := form[field.Name]
		if !ok {
			continue
		}
		value := ""
		if len(values) > 0 {
			value = values[0]
		}
		out[field.Name] = strings.ReplaceAll(value, "\r\n", "\n")
	}
	return out
}

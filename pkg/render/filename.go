package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-docform/pkg/model"
)

// Naming derives the download file name from one context field.
type Naming struct {
	// Field holds the reference number used in the name.
	Field string
	// Pattern receives the cleaned field value through a single %s verb.
	Pattern string
	// Default is used when the field is absent or empty.
	Default string
}

// DefaultNaming names documents after their reference number.
func DefaultNaming() Naming {
	return Naming{
		Field:   "so_ky_hieu",
		Pattern: "cong_van_%s.docx",
		Default: "van_ban_hoan_thanh.docx",
	}
}

// FileName returns the suggested name for a document rendered from values.
// Slashes in the reference number become underscores.
func (n Naming) FileName(values model.Context) string {
	n = n.withDefaults()
	value := strings.TrimSpace(values.Get(n.Field))
	if value == "" {
		return n.Default
	}
	value = strings.ReplaceAll(value, "/", "_")
	return cleanFileName(fmt.Sprintf(n.Pattern, value))
}

func (n Naming) withDefaults() Naming {
	def := DefaultNaming()
	if strings.TrimSpace(n.Field) == "" {
		n.Field = def.Field
	}
	if !strings.Contains(n.Pattern, "%s") {
		n.Pattern = def.Pattern
	}
	if strings.TrimSpace(n.Default) == "" {
		n.Default = def.Default
	}
	return n
}

// cleanFileName strips path separators so the name cannot escape a download
// directory.
func cleanFileName(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_", "\x00", "").Replace(name)
}

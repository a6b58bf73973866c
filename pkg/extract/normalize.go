package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultHeaderMarkers identify the header row of a reference table. Only the
// first cell of a table's first row is checked.
var DefaultHeaderMarkers = []string{"tên trường", "field", "trường"}

// DefaultLongContentMarkers mark labels whose values need a multi-line input.
var DefaultLongContentMarkers = []string{"nội dung", "trích yếu", "nơi nhận"}

// NormalizeName turns a raw field label into an identifier: NFC, lowercase,
// spaces to underscores, every rune that is not a letter, digit or underscore
// to an underscore, surrounding underscores trimmed. The result may be empty.
func NormalizeName(raw string) string {
	lowered := strings.ToLower(norm.NFC.String(raw))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

// containsAny reports whether the lowercased NFC form of text contains one of
// the markers.
func containsAny(text string, markers []string) bool {
	folded := fold(text)
	for _, marker := range markers {
		if marker == "" {
			continue
		}
		if strings.Contains(folded, fold(marker)) {
			return true
		}
	}
	return false
}

func fold(text string) string {
	return strings.ToLower(norm.NFC.String(text))
}

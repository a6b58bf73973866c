package docx

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// textElement matches a w:t element with content. Self-closing w:t tags are
// skipped; w:tab, w:tbl and friends never match because the tag name must end
// right after "w:t".
var textElement = regexp.MustCompile(`(?s)<w:t(?:\s[^>]*[^/])?>(.*?)</w:t>`)

// simplePlaceholder matches `{{ name }}` tags including Unicode names and
// non-ASCII spacing.
var simplePlaceholder = regexp.MustCompile(`\{\{[\s\p{Z}]*([\p{L}\p{M}\p{N}_]+)[\s\p{Z}]*\}\}`)

var asciiIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const aliasPrefix = "docform_v"

type textSegment struct {
	start int // start of the opening tag
	end   int // end of the closing tag
	text  string
}

// mergeSplitTags rewrites a part so every template tag lives inside a single
// w:t element. Word frequently splits "{{ name }}" over several runs when the
// text is edited or spell checked; the tag is moved into the first run and the
// remaining runs keep their properties with empty text.
func mergeSplitTags(part string) string {
	locs := textElement.FindAllStringSubmatchIndex(part, -1)
	if len(locs) < 2 {
		return part
	}

	segments := make([]textSegment, len(locs))
	for i, loc := range locs {
		segments[i] = textSegment{start: loc[0], end: loc[1], text: part[loc[2]:loc[3]]}
	}

	var (
		out    strings.Builder
		cursor int
	)
	out.Grow(len(part))

	for i := 0; i < len(segments); {
		text := segments[i].text
		j := i
		for j+1 < len(segments) && continues(text, segments[j+1].text) &&
			!paragraphBoundary(part[segments[j].end:segments[j+1].start]) {
			j++
			text += segments[j].text
		}
		if j == i {
			i++
			continue
		}

		out.WriteString(part[cursor:segments[i].start])
		out.WriteString(`<w:t xml:space="preserve">`)
		out.WriteString(text)
		out.WriteString(`</w:t>`)
		for k := i + 1; k <= j; k++ {
			out.WriteString(part[segments[k-1].end:segments[k].start])
			out.WriteString(`<w:t></w:t>`)
		}
		cursor = segments[j].end
		i = j + 1
	}
	if cursor == 0 {
		return part
	}
	out.WriteString(part[cursor:])
	return out.String()
}

// continues reports whether text leaves a tag open that the next segment has
// to complete.
func continues(text, next string) bool {
	if openTag(text) {
		return true
	}
	return strings.HasSuffix(text, "{") && (strings.HasPrefix(next, "{") || strings.HasPrefix(next, "%"))
}

func openTag(text string) bool {
	open := max(strings.LastIndex(text, "{{"), strings.LastIndex(text, "{%"))
	if open < 0 {
		return false
	}
	rest := text[open+2:]
	return !strings.Contains(rest, "}}") && !strings.Contains(rest, "%}")
}

func paragraphBoundary(between string) bool {
	return strings.Contains(between, "</w:p>") ||
		strings.Contains(between, "<w:p>") ||
		strings.Contains(between, "<w:p ")
}

// aliasPlaceholders rewrites simple placeholders whose names the template
// engine cannot parse (non-ASCII letters, leading digits, exotic spacing) to
// generated ASCII identifiers. The returned map points each alias at the
// NFC form of the original name, the form values are keyed by.
func aliasPlaceholders(part string, aliases map[string]string, names map[string]string) string {
	return simplePlaceholder.ReplaceAllStringFunc(part, func(match string) string {
		sub := simplePlaceholder.FindStringSubmatch(match)
		name := sub[1]
		if asciiIdentifier.MatchString(name) && strings.TrimSpace(match[2:len(match)-2]) == name && isASCII(match) {
			return match
		}
		alias, ok := names[name]
		if !ok {
			alias = fmt.Sprintf("%s%d", aliasPrefix, len(names))
			names[name] = alias
			aliases[alias] = norm.NFC.String(name)
		}
		return "{{ " + alias + " }}"
	})
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

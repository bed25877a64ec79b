// Package richtext turns plain user text into display-ready HTML fragments:
// bare http(s) URLs become links and newlines become line breaks.
package richtext

import (
	"html"
	"html/template"
	"regexp"
	"strings"
	"unicode/utf16"
)

// DefaultMaxLength is the truncation length used by Truncate.
const DefaultMaxLength = 200

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// LineBreak replaces every newline in rendered text.
const LineBreak = "<br>"

// LinkClass is the CSS class set on generated links.
const LinkClass = "rich-link"

// urlPattern matches "http://" or "https://" followed by everything up to the
// next whitespace character. The excluded set is the full ECMAScript \s
// class, which is wider than RE2's ASCII-only \s. Trailing punctuation is
// part of the match.
var urlPattern = regexp.MustCompile(
	`https?://[^\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]+`,
)

// RenderRichText wraps every URL in text in an anchor that opens in a new
// tab without an opener reference, then replaces newlines with <br>.
// Other HTML in text is passed through untouched; use RenderSafeRichText for
// untrusted input.
func RenderRichText(text string) string {
	if text == "" {
		return ""
	}
	return strings.ReplaceAll(linkify(text), "\n", LineBreak)
}

// RenderSafeRichText escapes text before rendering it, so the only markup in
// the result is the generated links and line breaks.
func RenderSafeRichText(text string) template.HTML {
	return template.HTML(RenderRichText(html.EscapeString(text)))
}

func linkify(text string) string {
	return urlPattern.ReplaceAllStringFunc(text, func(url string) string {
		return `<a href="` + url + `" target="_blank" rel="noopener noreferrer" class="` + LinkClass + `">` + url + `</a>`
	})
}

// TruncateText shortens text to maxLength characters and appends "...".
// Length is counted in UTF-16 code units, so a character outside the Basic
// Multilingual Plane counts as two and may be cut in half, in which case the
// dangling half is rendered as U+FFFD. Text that already fits is returned
// unchanged.
func TruncateText(text string, maxLength int) string {
	if text == "" {
		return ""
	}
	// A UTF-8 string never has more UTF-16 units than bytes.
	if len(text) <= maxLength {
		return text
	}

	units := utf16.Encode([]rune(text))
	if len(units) <= maxLength {
		return text
	}
	if maxLength < 0 {
		maxLength = 0
	}
	return string(utf16.Decode(units[:maxLength])) + Ellipsis
}

// Truncate is TruncateText with DefaultMaxLength.
func Truncate(text string) string {
	return TruncateText(text, DefaultMaxLength)
}

// ExtractURLs returns every URL in text in order of appearance. The result
// is never nil.
func ExtractURLs(text string) []string {
	if text == "" {
		return []string{}
	}
	urls := urlPattern.FindAllString(text, -1)
	if urls == nil {
		return []string{}
	}
	return urls
}

// HasURLs reports whether text contains at least one URL.
func HasURLs(text string) bool {
	if text == "" {
		return false
	}
	return urlPattern.MatchString(text)
}

// FuncMap returns template helpers for rendering rich text in html/template.
//
//	{{ richText .Body }}
//	{{ truncate .Body 80 }}
//	{{ if hasURLs .Body }}...{{ end }}
//	{{ range extractURLs .Body }}...{{ end }}
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"richText": RenderSafeRichText,
		"truncate": func(text string, maxLength ...int) string {
			if len(maxLength) > 0 {
				return TruncateText(text, maxLength[0])
			}
			return Truncate(text)
		},
		"hasURLs":     HasURLs,
		"extractURLs": ExtractURLs,
	}
}

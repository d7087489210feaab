package model

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nameSeparators = regexp.MustCompile(`[_\-.\s]+`)

// Humanize turns a field name such as "annual_rate" or "loanAmount" into
// "Annual Rate" / "Loan Amount". Prompt-driven widgets use it when a field has
// no label, since a terminal prompt always needs a caption.
func Humanize(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}

	var words []string
	for _, chunk := range nameSeparators.Split(name, -1) {
		if chunk == "" {
			continue
		}
		for _, word := range strings.Fields(splitCamel(chunk)) {
			words = append(words, capitalize(word))
		}
	}
	return strings.Join(words, " ")
}

// PromptLabel returns the label, or the humanized name when the label is
// blank.
func (f Field) PromptLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return Humanize(f.Name)
}

func splitCamel(input string) string {
	runes := []rune(input)
	var out strings.Builder
	for i, r := range runes {
		if i > 0 && wordBoundary(runes[i-1], r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func wordBoundary(prev, r rune) bool {
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	}
	return false
}

// capitalize title-cases one word. Casers keep state, so each call gets its
// own.
func capitalize(word string) string {
	return cases.Title(language.Und).String(word)
}

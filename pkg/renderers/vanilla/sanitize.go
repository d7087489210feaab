package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce   sync.Once
	inlinePolicy *bluemonday.Policy
	strictPolicy *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		inline := bluemonday.NewPolicy()
		inline.AllowElements("b", "strong", "i", "em", "code", "small", "sub", "sup", "abbr")
		inline.AllowAttrs("title").OnElements("abbr")
		inline.AllowAttrs("href").OnElements("a")
		inline.AllowStandardURLs()
		inline.RequireNoFollowOnLinks(true)
		inline.AddTargetBlankToFullyQualifiedLinks(true)

		inlinePolicy = inline
		strictPolicy = bluemonday.StrictPolicy()
	})
	return inlinePolicy, strictPolicy
}

// inlineMarkup keeps a small set of inline formatting elements. The result is
// safe to emit unescaped.
func inlineMarkup(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	inline, _ := policies()
	return strings.TrimSpace(inline.Sanitize(raw))
}

// plainText strips every element. The result is escaped text, safe to emit
// unescaped.
func plainText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	_, strict := policies()
	return strings.TrimSpace(strict.Sanitize(raw))
}

package chat

import (
	"strings"
	"unicode"
)

// canonicalQuery reduces a question to the key used for reply caching and
// trending counters: lower-cased, punctuation treated as spaces, runs of
// whitespace collapsed.
func canonicalQuery(q string) string {
	lowered := strings.ToLower(strings.TrimSpace(q))
	var builder strings.Builder
	builder.Grow(len(lowered))
	lastSpace := true
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			builder.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(builder.String())
}

package filter

import (
	"regexp"
	"strings"
)

// Matcher is a compiled wildcard pattern. `*` matches any run of characters
// (including none); everything else is literal. Matching is anchored at both
// ends, so the pattern must cover the whole candidate string.
type Matcher struct {
	re *regexp.Regexp
}

// Compile turns a wildcard pattern into a Matcher. An empty pattern compiles
// to nil, which the filter set treats as an unset slot that never rejects.
func Compile(pattern string) *Matcher {
	if pattern == "" {
		return nil
	}
	parts := strings.Split(pattern, "*")
	for i := range parts {
		parts[i] = regexp.QuoteMeta(parts[i])
	}
	return &Matcher{re: regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")}
}

func (m *Matcher) Match(s string) bool {
	return m.re.MatchString(s)
}

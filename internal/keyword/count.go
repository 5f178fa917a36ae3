package keyword

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Count is the number of posts that mention a group.
type Count struct {
	Group Group `json:"group"`
	Posts int   `json:"posts"`
}

// Matcher tests post bodies against one group.
type Matcher struct {
	group   Group
	pattern *regexp.Regexp
}

// Group returns the group the matcher was compiled from.
func (m *Matcher) Group() Group {
	return m.group
}

// Match reports whether a lower-cased body mentions any synonym.
func (m *Matcher) Match(lowered string) bool {
	return m.pattern.MatchString(lowered)
}

// Compile builds one matcher per group. Longer synonyms are tried first so
// that a synonym contained in another does not shadow it.
func Compile(groups []Group) ([]*Matcher, error) {
	matchers := make([]*Matcher, 0, len(groups))
	for _, g := range groups {
		if len(g.Synonyms) == 0 {
			return nil, fmt.Errorf("group %q has no synonyms", g.DisplayName)
		}

		synonyms := slices.Clone(g.Synonyms)
		slices.SortStableFunc(synonyms, func(a, b string) int {
			return utf8.RuneCountInString(b) - utf8.RuneCountInString(a)
		})

		alternatives := make([]string, len(synonyms))
		for i, s := range synonyms {
			alternatives[i] = regexp.QuoteMeta(strings.ToLower(s))
		}

		re, err := regexp.Compile("(?i)(?:" + strings.Join(alternatives, "|") + ")")
		if err != nil {
			return nil, fmt.Errorf("compile group %q: %w", g.DisplayName, err)
		}
		matchers = append(matchers, &Matcher{group: g, pattern: re})
	}
	return matchers, nil
}

// CountPosts returns, in group order, how many posts mention each group.
// A post adds at most one to a group.
func CountPosts(posts []string, groups []Group) ([]Count, error) {
	matchers, err := Compile(groups)
	if err != nil {
		return nil, err
	}

	counts := make([]Count, len(matchers))
	for i, m := range matchers {
		counts[i].Group = m.Group()
	}

	for _, post := range posts {
		lowered := strings.ToLower(post)
		for i, m := range matchers {
			if m.Match(lowered) {
				counts[i].Posts++
			}
		}
	}
	return counts, nil
}

package keyword

import "strings"

// SynonymSeparator separates synonyms inside one specification.
const SynonymSeparator = "|"

// Group is a named set of interchangeable keywords.
type Group struct {
	// DisplayName is the first synonym and labels the group in results.
	DisplayName string `json:"displayName"`

	// Synonyms holds at least one non-empty keyword.
	Synonyms []string `json:"synonyms"`
}

// ParseGroups converts specifications into groups in input order.
// Specifications that contain no usable keyword are dropped. Duplicate
// specifications produce duplicate groups.
func ParseGroups(specs []string) []Group {
	groups := make([]Group, 0, len(specs))
	for _, spec := range specs {
		if g, ok := parseGroup(spec); ok {
			groups = append(groups, g)
		}
	}
	return groups
}

func parseGroup(spec string) (Group, bool) {
	var synonyms []string
	for part := range strings.SplitSeq(spec, SynonymSeparator) {
		if s := strings.TrimSpace(part); s != "" {
			synonyms = append(synonyms, s)
		}
	}
	if len(synonyms) == 0 {
		return Group{}, false
	}
	return Group{DisplayName: synonyms[0], Synonyms: synonyms}, true
}

// SplitSpecs splits free-form input on commas and line breaks into
// trimmed, non-empty specifications.
func SplitSpecs(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	specs := make([]string, 0, len(fields))
	for _, f := range fields {
		if s := strings.TrimSpace(f); s != "" {
			specs = append(specs, s)
		}
	}
	return specs
}

package extract

import (
	"regexp"
	"strings"
)

const (
	// datFieldSeparator delimits name, mail, date/ID, body and title.
	datFieldSeparator = "<>"

	// datBodyField is the zero-based index of the body field.
	datBodyField = 3
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// datEntities are unescaped in this order, one pass each.
var datEntities = [][2]string{
	{"&gt;", ">"},
	{"&lt;", "<"},
	{"&amp;", "&"},
	{"&quot;", `"`},
}

// ParseDat parses dat content into posts. Lines with fewer than four fields
// are skipped. Empty bodies are kept so that numbering matches the thread.
func ParseDat(text string) []Post {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var bodies []string
	for line := range strings.SplitSeq(text, "\n") {
		fields := strings.Split(line, datFieldSeparator)
		if len(fields) <= datBodyField {
			continue
		}
		bodies = append(bodies, normalizeDatBody(fields[datBodyField]))
	}

	return number(bodies)
}

// normalizeDatBody converts a dat body field to plain text.
func normalizeDatBody(body string) string {
	body = strings.ReplaceAll(body, "<br>", "\n")
	body = tagPattern.ReplaceAllString(body, "")
	for _, e := range datEntities {
		body = strings.ReplaceAll(body, e[0], e[1])
	}
	return strings.TrimSpace(body)
}

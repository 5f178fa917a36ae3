package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Strategy finds post bodies in a parsed thread page.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string

	// Extract returns the post texts found in doc. matched reports whether
	// the strategy recognised the page layout, even when every post in it
	// was empty.
	Extract(doc *goquery.Document) (texts []string, matched bool)
}

// heuristic marks strategies that still run after a known layout matched
// without yielding text.
type heuristic interface {
	heuristic()
}

// SelectorStrategy selects post bodies with a CSS selector.
type SelectorStrategy struct {
	Selector string
}

// Name returns the selector.
func (s SelectorStrategy) Name() string { return s.Selector }

// Extract returns the non-empty text of every element matching the
// selector. Any match at all counts as a recognised layout.
func (s SelectorStrategy) Extract(doc *goquery.Document) ([]string, bool) {
	matches := doc.Find(s.Selector)

	var texts []string
	matches.Each(func(_ int, sel *goquery.Selection) {
		if text := nodeText(sel); text != "" {
			texts = append(texts, text)
		}
	})
	return texts, matches.Length() > 0
}

// ClassStrategy is the last-resort heuristic for unknown layouts: it visits
// every element whose class matches Container and takes the text of the first
// descendant whose class matches Body.
type ClassStrategy struct {
	Container *regexp.Regexp
	Body      *regexp.Regexp
}

// Name returns a description of the class patterns.
func (s ClassStrategy) Name() string {
	return "class~" + s.Container.String() + ">" + s.Body.String()
}

func (ClassStrategy) heuristic() {}

// Extract returns the body texts found under matching containers. It never
// claims the layout.
func (s ClassStrategy) Extract(doc *goquery.Document) ([]string, bool) {
	var texts []string
	doc.Find("[class]").Each(func(_ int, container *goquery.Selection) {
		if !classMatches(container, s.Container) {
			return
		}
		body := container.Find("[class]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
			return classMatches(sel, s.Body)
		}).First()
		if body.Length() == 0 {
			return
		}
		if text := nodeText(body); text != "" {
			texts = append(texts, text)
		}
	})
	return texts, false
}

// DefaultStrategies lists the known 5ch layouts, newest first, followed by
// the class heuristic.
func DefaultStrategies() []Strategy {
	return []Strategy{
		SelectorStrategy{Selector: "div.message"},
		SelectorStrategy{Selector: "dd.thread_in"},
		SelectorStrategy{Selector: "div.post-content"},
		SelectorStrategy{Selector: "article.post div.message"},
		SelectorStrategy{Selector: "div.res div.message"},
		ClassStrategy{
			Container: regexp.MustCompile(`post|res|comment`),
			Body:      regexp.MustCompile(`message|body|content`),
		},
	}
}

// classMatches reports whether the class attribute, or any single class in
// it, matches re.
func classMatches(sel *goquery.Selection, re *regexp.Regexp) bool {
	class, ok := sel.Attr("class")
	if !ok {
		return false
	}
	if re.MatchString(class) {
		return true
	}
	for _, c := range strings.Fields(class) {
		if re.MatchString(c) {
			return true
		}
	}
	return false
}

// nodeText returns the visible text of the selection with each text node
// trimmed and placed on its own line. Script and style contents are skipped.
func nodeText(sel *goquery.Selection) string {
	var lines []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if s := strings.TrimSpace(n.Data); s != "" {
				lines = append(lines, s)
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}

	return strings.Join(lines, "\n")
}

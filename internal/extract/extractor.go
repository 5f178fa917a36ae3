package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/threadodds/internal/fetcher"
)

// Extractor converts RawContent into posts.
type Extractor struct {
	strategies []Strategy
	logger     *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithStrategies replaces the page strategies. They are tried in order.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Extractor) {
		e.strategies = strategies
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// New creates an Extractor using DefaultStrategies.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		strategies: DefaultStrategies(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Extract parses raw according to its source kind.
// It returns ErrNoPosts when nothing could be parsed.
func (e *Extractor) Extract(raw *fetcher.RawContent) ([]Post, error) {
	if raw == nil {
		return nil, ErrNoPosts
	}

	var (
		posts []Post
		err   error
	)
	switch raw.Kind {
	case fetcher.SourceDat:
		posts = ParseDat(raw.Text)
	case fetcher.SourceHTML:
		posts, err = e.ParseHTML(raw.Text)
	default:
		return nil, fmt.Errorf("unknown source kind %q", raw.Kind)
	}
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, fmt.Errorf("%w from %s content", ErrNoPosts, raw.Kind)
	}
	return posts, nil
}

// ParseHTML parses a rendered thread page. Strategies are tried in order and
// the first one that yields any text decides the result. Once a strategy
// has matched the layout, only heuristic strategies are tried after it.
func (e *Extractor) ParseHTML(text string) ([]Post, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	layout := ""
	for _, s := range e.strategies {
		if _, ok := s.(heuristic); layout != "" && !ok {
			continue
		}

		texts, matched := s.Extract(doc)
		if len(texts) > 0 {
			e.logger.Debug("posts extracted", "strategy", s.Name(), "posts", len(texts))
			return number(texts), nil
		}
		if matched && layout == "" {
			layout = s.Name()
			e.logger.Debug("layout matched without text", "strategy", layout)
		}
	}

	return nil, nil
}

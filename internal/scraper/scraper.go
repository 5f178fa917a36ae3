package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/threadodds/internal/extract"
	"github.com/nao1215/threadodds/internal/fetcher"
	"github.com/nao1215/threadodds/internal/thread"
)

// Thread is a scraped thread.
type Thread struct {
	// Locator identifies the thread.
	Locator thread.Locator

	// Source is the format the posts were parsed from.
	Source fetcher.SourceKind

	// Lossy is true when undecodable bytes were replaced.
	Lossy bool

	// Posts is the full post sequence in thread order.
	Posts []extract.Post
}

// TotalPosts returns the number of posts in the thread.
func (t *Thread) TotalPosts() int {
	return len(t.Posts)
}

// Scraper combines URL resolution, fetching and extraction.
type Scraper struct {
	fetcher   *fetcher.Fetcher
	extractor *extract.Extractor
	logger    *slog.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithExtractor sets the post extractor.
func WithExtractor(e *extract.Extractor) Option {
	return func(s *Scraper) {
		s.extractor = e
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// New creates a Scraper that fetches with f.
func New(f *fetcher.Fetcher, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher: f,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.extractor == nil {
		s.extractor = extract.New(extract.WithLogger(s.logger))
	}

	return s
}

// Scrape returns every post of the referenced thread.
//
// Errors wrap thread.ErrInvalidURL, fetcher.ErrFetch or extract.ErrNoPosts.
func (s *Scraper) Scrape(ctx context.Context, reference string) (*Thread, error) {
	loc, err := thread.Parse(reference)
	if err != nil {
		return nil, err
	}

	raw, err := s.fetcher.FetchPrimary(ctx, loc)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		posts, err := s.extractor.Extract(raw)
		if err == nil {
			return s.result(loc, raw, posts), nil
		}
		s.logger.Debug("dat yielded no posts", "thread", loc.String(), "error", err)
	}

	s.logger.Debug("falling back to thread page",
		"thread", loc.String(),
		"delay", s.fetcher.Delay(),
	)

	raw, err = s.fetcher.FetchFallback(ctx, loc)
	if err != nil {
		return nil, err
	}

	posts, err := s.extractor.Extract(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc.String(), err)
	}

	return s.result(loc, raw, posts), nil
}

func (s *Scraper) result(loc thread.Locator, raw *fetcher.RawContent, posts []extract.Post) *Thread {
	s.logger.Info("thread scraped",
		"thread", loc.String(),
		"source", raw.Kind,
		"posts", len(posts),
	)
	return &Thread{
		Locator: loc,
		Source:  raw.Kind,
		Lossy:   raw.Lossy,
		Posts:   posts,
	}
}

package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nao1215/threadodds/internal/thread"
)

const (
	// DefaultUserAgent is the Monazilla client identity expected by dat servers.
	DefaultUserAgent = "Monazilla/1.00 (threadodds/1.0)"

	// DefaultTimeout bounds each request.
	DefaultTimeout = 30 * time.Second

	// DefaultFallbackDelay is the courtesy interval before a fallback request.
	DefaultFallbackDelay = 1 * time.Second

	// DefaultMaxBodySize limits how much of a response body is read.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB
)

// SourceKind tells which format a RawContent came from.
type SourceKind string

const (
	// SourceDat is the compact line-record format served from /dat/.
	SourceDat SourceKind = "dat"
	// SourceHTML is the rendered read.cgi page.
	SourceHTML SourceKind = "html"
)

// RawContent is a fetched thread payload decoded to UTF-8.
type RawContent struct {
	// Kind is the format of Text.
	Kind SourceKind

	// Text is the decoded payload.
	Text string

	// Encoding is the name of the charset Text was decoded from.
	Encoding string

	// Lossy is true when invalid bytes were replaced while decoding.
	Lossy bool

	// URL is the address the payload was fetched from.
	URL string
}

// Profile carries per-host request settings, typically from the config file.
type Profile struct {
	// UserAgent overrides the fetcher's client identity when non-empty.
	UserAgent string

	// Cookie is sent verbatim as the Cookie header when non-empty.
	Cookie string

	// Headers are extra request headers.
	Headers map[string]string
}

// Fetcher downloads thread content over HTTP.
type Fetcher struct {
	// client performs the requests.
	client *http.Client

	// userAgent is the default client identity.
	userAgent string

	// timeout bounds each request.
	timeout time.Duration

	// maxBodySize limits the bytes read from a response.
	maxBodySize int64

	// fallbackDelay is used to build a Gate when none is supplied.
	fallbackDelay time.Duration

	// gate spaces requests per host.
	gate *Gate

	// profile returns per-host overrides.
	profile func(host string) Profile

	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent sets the client identity string.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithFallbackDelay sets the courtesy interval used when no Gate is supplied.
func WithFallbackDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fallbackDelay = d
	}
}

// WithGate shares a Gate between fetchers.
func WithGate(g *Gate) Option {
	return func(f *Fetcher) {
		f.gate = g
	}
}

// WithProfiles sets a lookup for per-host request settings.
func WithProfiles(lookup func(host string) Profile) Option {
	return func(f *Fetcher) {
		f.profile = lookup
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher. If client is nil a plain http.Client is used.
func New(client *http.Client, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:        client,
		userAgent:     DefaultUserAgent,
		timeout:       DefaultTimeout,
		maxBodySize:   DefaultMaxBodySize,
		fallbackDelay: DefaultFallbackDelay,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{}
	}
	if f.gate == nil {
		f.gate = NewGate(f.fallbackDelay)
	}
	if f.profile == nil {
		f.profile = func(string) Profile { return Profile{} }
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}

	return f
}

// FetchPrimary downloads the dat file of the thread.
//
// It returns (nil, nil) when the server answers anything but 200 or the
// request fails in transport; only a cancelled context is reported as an error.
// The Go transport requests gzip and decompresses it transparently.
func (f *Fetcher) FetchPrimary(ctx context.Context, loc thread.Locator) (*RawContent, error) {
	datURL := loc.DatURL()
	profile := f.profile(loc.Host)

	headers := map[string]string{
		"User-Agent": f.identity(profile),
	}

	status, _, body, err := f.get(ctx, datURL, headers, profile)
	f.gate.Mark(loc.Host)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.logger.Debug("dat request failed", "url", datURL, "error", err)
		return nil, nil
	}
	if status != http.StatusOK {
		f.logger.Debug("dat not available", "url", datURL, "status", status)
		return nil, nil
	}

	text, lossy := decodeLegacy(body)
	if lossy {
		f.logger.Debug("dat contained invalid Shift_JIS bytes", "url", datURL)
	}

	return &RawContent{
		Kind:     SourceDat,
		Text:     text,
		Encoding: LegacyEncoding,
		Lossy:    lossy,
		URL:      datURL,
	}, nil
}

// FetchFallback downloads the rendered thread page after waiting for the
// host's courtesy interval.
func (f *Fetcher) FetchFallback(ctx context.Context, loc thread.Locator) (*RawContent, error) {
	if err := f.gate.Wait(ctx, loc.Host); err != nil {
		return nil, err
	}

	pageURL := loc.Reference
	profile := f.profile(loc.Host)

	headers := map[string]string{
		"User-Agent":      f.identity(profile),
		"Accept":          "text/html,application/xhtml+xml",
		"Accept-Language": "ja,en-US;q=0.9,en;q=0.8",
	}

	status, contentType, body, err := f.get(ctx, pageURL, headers, profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, pageURL, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: HTTP %d", ErrFetch, pageURL, status)
	}

	text, name, lossy := decodePage(contentType, body)
	f.logger.Debug("fetched thread page",
		"url", pageURL,
		"encoding", name,
		"bytes", len(body),
	)

	return &RawContent{
		Kind:     SourceHTML,
		Text:     text,
		Encoding: name,
		Lossy:    lossy,
		URL:      pageURL,
	}, nil
}

// Delay returns the courtesy interval applied before fallbacks.
func (f *Fetcher) Delay() time.Duration {
	return f.gate.Delay()
}

// identity returns the User-Agent for a request.
func (f *Fetcher) identity(p Profile) string {
	if p.UserAgent != "" {
		return p.UserAgent
	}
	return f.userAgent
}

// get performs a GET and returns the status, content type and bounded body.
func (f *Fetcher) get(ctx context.Context, target string, headers map[string]string, p Profile) (int, string, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, "", nil, err
	}

	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if p.Cookie != "" {
		req.Header.Set("Cookie", p.Cookie)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return resp.StatusCode, "", nil, err
	}

	return resp.StatusCode, resp.Header.Get("Content-Type"), body, nil
}

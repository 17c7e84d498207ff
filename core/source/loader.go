// Package source implements the Loader interface.
// It reads documents from local files or over HTTP and decodes them to UTF-8.
package source

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gaurav-prasanna/mdconvert/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "mdconvert/1.0 (https://github.com/gaurav-prasanna/mdconvert)"
	maxBodyBytes     = 32 << 20
)

// Loader loads documents from disk or via HTTP GET.
type Loader struct {
	client    *http.Client
	userAgent string
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.client.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with HTTP requests.
func WithUserAgent(ua string) Option {
	return func(l *Loader) {
		if ua != "" {
			l.userAgent = ua
		}
	}
}

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) Option {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// New creates a Loader with a sensible timeout.
func New(opts ...Option) *Loader {
	l := &Loader{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsURL reports whether location is an http(s) URL.
func IsURL(location string) bool {
	u, err := url.Parse(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Load reads location, which is either a file path or an http(s) URL.
func (l *Loader) Load(ctx context.Context, location string) (*core.SourceDocument, error) {
	if IsURL(location) {
		return l.fetch(ctx, location)
	}
	return l.readFile(location)
}

func (l *Loader) readFile(p string) (*core.SourceDocument, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("reading %s: is a directory", p)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}
	if !IsText(p, data) {
		return nil, fmt.Errorf("reading %s: not a text file", p)
	}
	return &core.SourceDocument{
		Location: p,
		Name:     filepath.Base(p),
		Format:   DetectFormat(p, "", data),
		Text:     DecodeText(data),
		Size:     info.Size(),
		Modified: info.ModTime(),
	}, nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) (*core.SourceDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "text/markdown,text/plain,text/html;q=0.9,*/*;q=0.5")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	doc := &core.SourceDocument{
		Location: rawURL,
		Name:     nameFromURL(rawURL),
		Format:   DetectFormat(rawURL, resp.Header.Get("Content-Type"), body),
		Text:     DecodeText(body),
		Size:     int64(len(body)),
	}
	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			doc.Modified = t
		}
	}
	return doc, nil
}

// nameFromURL returns the last path segment, or the host for a bare URL.
func nameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if base := path.Base(strings.TrimSuffix(u.Path, "/")); base != "." && base != "/" && base != "" {
		return base
	}
	return u.Host
}

// DetectFormat decides between Markdown and HTML from the extension, then
// the Content-Type, then a sniff of the leading bytes.
func DetectFormat(location, contentType string, data []byte) core.Format {
	p := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && u.Host != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm", ".xhtml":
		return core.FormatHTML
	case ".md", ".markdown", ".mdown", ".txt":
		return core.FormatMarkdown
	}
	if contentType != "" {
		if mt, _, err := mime.ParseMediaType(contentType); err == nil {
			switch mt {
			case "text/html", "application/xhtml+xml":
				return core.FormatHTML
			case "text/markdown", "text/x-markdown", "text/plain":
				return core.FormatMarkdown
			}
		}
	}
	head := strings.ToLower(strings.TrimSpace(DecodeText(sample(data))))
	if strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html") {
		return core.FormatHTML
	}
	return core.FormatMarkdown
}

func sample(data []byte) []byte {
	if len(data) > textDetectionSampleSize {
		return data[:textDetectionSampleSize]
	}
	return data
}

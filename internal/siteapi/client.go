// Package siteapi fetches HTML pages from a Stack Exchange site.
package siteapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultTimeout = 30 * time.Second

// Options tunes the HTTP behaviour of a Client.
type Options struct {
	// Timeout bounds a single request. Zero uses the default.
	Timeout time.Duration
	// UserAgent is sent with every request when non-empty.
	UserAgent string
	// Cookie is an optional session cookie header value.
	Cookie string
	// HTTPClient overrides the underlying client, mostly for tests.
	HTTPClient *http.Client
}

type Client struct {
	logger    *slog.Logger
	base      *url.URL
	http      *http.Client
	userAgent string
	cookie    string
}

func NewClient(logger *slog.Logger, baseURL string, opts Options) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q, expected scheme://host", baseURL)
	}
	base.Path = strings.TrimSuffix(base.Path, "/")

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		logger:    logger,
		base:      base,
		http:      httpClient,
		userAgent: strings.TrimSpace(opts.UserAgent),
		cookie:    strings.TrimSpace(opts.Cookie),
	}, nil
}

// BaseURL returns the site root the client talks to.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// FetchTimeline retrieves /posts/{postID}/timeline as a parsed document.
func (c *Client) FetchTimeline(ctx context.Context, postID string) (*goquery.Document, error) {
	postID = strings.TrimSpace(postID)
	if err := validateID("post", postID); err != nil {
		return nil, err
	}
	return c.FetchDocument(ctx, "/posts/"+postID+"/timeline")
}

// FetchQuestion retrieves /questions/{questionID} as a parsed document.
func (c *Client) FetchQuestion(ctx context.Context, questionID string) (*goquery.Document, error) {
	questionID = strings.TrimSpace(questionID)
	if err := validateID("question", questionID); err != nil {
		return nil, err
	}
	return c.FetchDocument(ctx, "/questions/"+questionID)
}

// FetchDocument issues a GET for a site-relative path and parses the body as HTML.
// The returned document carries the request URL so relative links resolve.
func (c *Client) FetchDocument(ctx context.Context, path string) (*goquery.Document, error) {
	target := *c.base
	target.Path = c.base.Path + "/" + strings.TrimPrefix(path, "/")
	rawURL := target.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", "text/html")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	if c.logger != nil {
		c.logger.Debug("site request", "url", rawURL)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &ParseError{URL: rawURL, Err: err}
	}
	doc.Url = &target

	if c.logger != nil {
		c.logger.Debug("site response parsed", "url", rawURL, "status", resp.StatusCode)
	}
	return doc, nil
}

func validateID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s id is empty", kind)
	}
	if strings.ContainsAny(id, "/?#") {
		return fmt.Errorf("invalid %s id %q", kind, id)
	}
	return nil
}

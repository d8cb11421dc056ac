package timeline

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/PuerkitoBio/goquery"
)

// FileSource serves a saved timeline page regardless of the requested post.
type FileSource struct {
	// Path is the saved HTML file.
	Path string
	// BaseURL resolves relative review links. Optional.
	BaseURL string
}

func (s FileSource) FetchTimeline(_ context.Context, _ string) (*goquery.Document, error) {
	return LoadDocument(s.Path, s.BaseURL)
}

// LoadDocument parses an HTML file from disk, attaching baseURL when given.
func LoadDocument(path, baseURL string) (*goquery.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
		}
		doc.Url = u
	}
	return doc, nil
}
